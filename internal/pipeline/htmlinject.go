package pipeline

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Sentinel errors for HTML injection.
var (
	ErrElementNotFound = errors.New("target element not found")
	ErrEmptyElementID  = errors.New("target element ID cannot be empty")
	ErrHostParse       = errors.New("failed to parse host document")
)

// documentTemplate wraps a rendered fragment in a complete HTML5 document.
// Arguments: title, fragment.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// defaultTitle is used when no document title is given.
const defaultTitle = "Notebook"

// WrapDocument wraps a fragment in a standalone HTML5 document.
// The title is escaped; the fragment is inserted as is.
func WrapDocument(title, fragment string) string {
	if title == "" {
		title = defaultTitle
	}
	return fmt.Sprintf(documentTemplate, html.EscapeString(title), fragment)
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	// Try inserting before </head>
	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	// Try inserting after <body>
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		// Find the closing > of <body...>
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	// Fallback: prepend
	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// InsertFragment appends a fragment as the last children of the element
// with the given id in a host HTML document, and returns the whole document.
func InsertFragment(hostHTML, elementID, fragment string) (string, error) {
	if elementID == "" {
		return "", ErrEmptyElementID
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(hostHTML))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHostParse, err)
	}

	target := doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == elementID
	}).First()
	if target.Length() == 0 {
		return "", fmt.Errorf("%w: #%s", ErrElementNotFound, elementID)
	}

	target.AppendHtml(fragment)

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("rendering host document: %w", err)
	}
	return out, nil
}
