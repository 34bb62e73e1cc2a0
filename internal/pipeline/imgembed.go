package pipeline

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MaxEmbeddedImageSize caps the size of a single embedded image (10MB).
const MaxEmbeddedImageSize = 10 << 20

// EmbedLocalImages inlines images referenced by a relative img[src] as
// base64 data URIs, so the output no longer depends on files next to the
// notebook. An empty sourceDir returns the content unchanged.
//
// Left as is: URLs, data URIs, absolute paths, paths leaving sourceDir,
// unreadable files, non-image files and files over MaxEmbeddedImageSize.
//
// The HTML is re-serialized, so text comes back normalized
// (a bare "<" in a code block becomes "&lt;").
func EmbedLocalImages(content, sourceDir string) (string, error) {
	if sourceDir == "" {
		return content, nil
	}

	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	nodes, err := parseNodes(content)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		walkImages(n, func(img *html.Node) { inlineImage(img, root) })
	}
	return renderNodes(nodes)
}

// parseNodes parses a complete document into its document node, or a
// fragment into its top-level nodes under a body context.
func parseNodes(content string) ([]*html.Node, error) {
	if isDocument(content) {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return []*html.Node{doc}, nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: atom.Body.String()}
	return html.ParseFragment(strings.NewReader(content), body)
}

func isDocument(content string) bool {
	start := strings.ToLower(strings.TrimLeftFunc(content, unicode.IsSpace))
	return strings.HasPrefix(start, "<!doctype") || strings.HasPrefix(start, "<html")
}

func renderNodes(nodes []*html.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func walkImages(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkImages(c, visit)
	}
}

// inlineImage rewrites the src of img when it names an image inside root.
func inlineImage(img *html.Node, root string) {
	for i := range img.Attr {
		attr := &img.Attr[i]
		if attr.Key != "src" || !isRelativePath(attr.Val) {
			continue
		}

		path := filepath.Join(root, filepath.FromSlash(attr.Val))
		if !insideDir(path, root) {
			continue
		}
		if uri, err := imageDataURI(path); err == nil {
			attr.Val = uri
		}
	}
}

// imageDataURI reads an image file and encodes it as a data URI.
func imageDataURI(path string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(path))))
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("not an image: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() || info.Size() > MaxEmbeddedImageSize {
		return "", fmt.Errorf("not embeddable: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- checked to be inside the source dir
	if err != nil {
		return "", err
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// isRelativePath reports whether src is a relative file reference:
// no scheme, no host, no bare fragment and not absolute.
func isRelativePath(src string) bool {
	if src == "" || strings.HasPrefix(src, "//") || filepath.IsAbs(src) {
		return false
	}
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && u.Path != ""
}

// insideDir reports whether path is dir or below it, lexically.
func insideDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
