package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates an external markdown conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// MarkdownConverter abstracts markdown to HTML fragment conversion.
type MarkdownConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkOption configures a GoldmarkConverter.
type GoldmarkOption func(*goldmarkConfig)

type goldmarkConfig struct {
	chromaStyle string
	rawHTML     bool
}

// WithChromaStyle highlights fenced code blocks with the named chroma style.
// Output uses CSS classes, so the style sheet must be provided separately.
func WithChromaStyle(style string) GoldmarkOption {
	return func(c *goldmarkConfig) {
		c.chromaStyle = style
	}
}

// WithRawHTML lets raw HTML in markdown through to the output.
// Notebook prose often embeds HTML; leave this off for untrusted input.
func WithRawHTML() GoldmarkOption {
	return func(c *goldmarkConfig) {
		c.rawHTML = true
	}
}

// GoldmarkConverter converts CommonMark + GFM markdown to HTML using goldmark.
// It is the "external" converter alternative to BlockConverter.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
func NewGoldmarkConverter(opts ...GoldmarkOption) *GoldmarkConverter {
	var cfg goldmarkConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	extensions := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
	}
	if cfg.chromaStyle != "" {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.chromaStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if cfg.rawHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(
			rendererOpts...,
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
