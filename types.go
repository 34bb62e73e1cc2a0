package nb2html

import (
	"context"
	"log/slog"
)

// Input contains the data for a single render.
type Input struct {
	Source     []byte // notebook JSON (required)
	SourceDir  string // when set, relative <img> paths are embedded as data URIs
	Standalone bool   // wrap the fragment in a complete HTML document
	Title      string // document title when Standalone (default "Notebook")
	CSS        string // stylesheet injected into the output
}

// Result holds the output of a render.
type Result struct {
	HTML     string // concatenated cell fragments, or a full document if Standalone
	Cells    int    // cells in the notebook
	Skipped  int    // cells dropped because rendering failed
	Language string // kernel language reported by the notebook metadata
}

// MarkdownConverter converts markdown cell source to HTML.
// Implementations must be safe for concurrent use.
type MarkdownConverter interface {
	ToHTML(ctx context.Context, markdown string) (string, error)
}

// MarkdownConverterFunc adapts a function to the MarkdownConverter interface.
type MarkdownConverterFunc func(ctx context.Context, markdown string) (string, error)

// ToHTML calls f(ctx, markdown).
func (f MarkdownConverterFunc) ToHTML(ctx context.Context, markdown string) (string, error) {
	return f(ctx, markdown)
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	settings    RenderSettings
	chromaStyle string
	rawHTML     bool
}

// WithSettings sets the render settings.
func WithSettings(s RenderSettings) Option {
	return func(c *Converter) {
		c.cfg.settings = s
	}
}

// WithLogger sets the logger receiving per-cell failures.
// Panics if l is nil (programmer error).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("nb2html: WithLogger logger must not be nil")
	}
	return func(c *Converter) {
		c.logger = l
	}
}

// WithMarkdownConverter sets the converter used when settings select
// MarkdownExternal. Without it, goldmark is used.
func WithMarkdownConverter(m MarkdownConverter) Option {
	return func(c *Converter) {
		c.external = m
	}
}

// WithChromaStyle sets the chroma style for HighlighterChroma.
func WithChromaStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.chromaStyle = style
	}
}

// WithRawHTML lets the goldmark converter pass raw HTML in markdown cells through.
// The built-in block converter always passes blocks starting with "<" through.
func WithRawHTML() Option {
	return func(c *Converter) {
		c.cfg.rawHTML = true
	}
}
