package nb2html

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alnah/go-nb2html/internal/highlight"
	"github.com/alnah/go-nb2html/internal/notebook"
	"github.com/alnah/go-nb2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownConverter = (*pipeline.BlockConverter)(nil)
	_ pipeline.MarkdownConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.MarkdownConverter = MarkdownConverterFunc(nil)
	_ pipeline.CSSInjector       = (*pipeline.CSSInjection)(nil)
	_ Fetcher                    = (*HTTPFetcher)(nil)
	_ Fetcher                    = (*FileFetcher)(nil)
)

// Converter renders notebooks to HTML.
// Create with NewConverter. Safe for concurrent use.
type Converter struct {
	cfg         converterConfig
	logger      *slog.Logger
	external    MarkdownConverter
	cells       *pipeline.CellRenderer
	cssInjector pipeline.CSSInjector
}

// NewConverter creates a Converter with DefaultSettings.
// Returns an error if the settings or the chroma style are invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{settings: DefaultSettings(), chromaStyle: highlight.DefaultStyle},
		logger:      slog.New(slog.DiscardHandler),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.settings.Validate(); err != nil {
		return nil, err
	}

	if c.cfg.settings.CodeHighlighter == HighlighterChroma {
		if _, err := highlight.New(c.cfg.chromaStyle); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidChromaStyle, err)
		}
	}

	c.cells = pipeline.NewCellRenderer(c.cfg.settings.cellOptions(), c.markdownConverter())
	return c, nil
}

// markdownConverter resolves the converter for markdown cells.
func (c *Converter) markdownConverter() pipeline.MarkdownConverter {
	if c.cfg.settings.MarkdownConverter != MarkdownExternal {
		return pipeline.NewBlockConverter()
	}
	if c.external != nil {
		return c.external
	}

	var opts []pipeline.GoldmarkOption
	if c.cfg.settings.CodeHighlighter == HighlighterChroma {
		opts = append(opts, pipeline.WithChromaStyle(c.cfg.chromaStyle))
	}
	if c.cfg.rawHTML {
		opts = append(opts, pipeline.WithRawHTML())
	}
	return pipeline.NewGoldmarkConverter(opts...)
}

// Settings returns the settings the converter renders with.
func (c *Converter) Settings() RenderSettings {
	return c.cfg.settings
}

// Render parses the notebook and renders every cell in order.
// A cell that fails to render contributes nothing; the failure is logged
// and counted in Result.Skipped. Malformed notebook JSON fails the whole render.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if len(input.Source) == 0 {
		return nil, ErrEmptySource
	}

	nb, err := notebook.Parse(input.Source)
	if err != nil {
		return nil, err
	}

	res := &Result{Cells: len(nb.Cells), Language: nb.Language()}

	var sb strings.Builder
	for i, cell := range nb.Cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fragment, err := c.renderCell(ctx, i, cell)
		if err != nil {
			// Cancellation is not a cell failure.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res.Skipped++
			c.logger.Warn("skipping cell", "index", i, "type", string(cell.Type), "error", err)
			continue
		}
		sb.WriteString(fragment)
	}
	htmlContent := sb.String()

	css := input.CSS
	if c.cfg.settings.CodeHighlighter == HighlighterChroma {
		var chromaCSS string
		htmlContent, chromaCSS, err = c.highlight(htmlContent, res.Language)
		if err != nil {
			return nil, err
		}
		if input.Standalone {
			css = chromaCSS + css
		}
	}

	if input.SourceDir != "" {
		htmlContent, err = pipeline.EmbedLocalImages(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("embedding images: %w", err)
		}
	}

	if input.Standalone {
		htmlContent = pipeline.WrapDocument(input.Title, htmlContent)
	}
	htmlContent = c.cssInjector.InjectCSS(htmlContent, css)

	res.HTML = htmlContent
	return res, nil
}

// renderCell renders one cell, turning a panic into an ErrCellRender error.
func (c *Converter) renderCell(ctx context.Context, index int, cell notebook.Cell) (fragment string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: cell %d: %v", ErrCellRender, index, r)
		}
	}()

	fragment, err = c.cells.RenderCell(ctx, index, cell)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCellRender, err)
	}
	return fragment, nil
}

// highlight colors code cells and returns the matching stylesheet.
func (c *Converter) highlight(htmlContent, language string) (string, string, error) {
	h, err := highlight.New(c.cfg.chromaStyle, highlight.WithLanguage(language))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidChromaStyle, err)
	}

	colored, err := h.Highlight(htmlContent)
	if err != nil {
		return "", "", fmt.Errorf("highlighting code: %w", err)
	}

	css, err := h.CSS()
	if err != nil {
		return "", "", err
	}
	return colored, css, nil
}

// RenderFrom fetches a notebook, renders it, and hands the HTML to deliver.
// deliver is not called when fetching or rendering fails.
func (c *Converter) RenderFrom(ctx context.Context, fetch Fetcher, deliver func(html string) error) error {
	data, err := fetch.Fetch(ctx)
	if err != nil {
		return err
	}

	res, err := c.Render(ctx, Input{Source: data})
	if err != nil {
		return err
	}
	return deliver(res.HTML)
}

// Insert fetches and renders a notebook, then appends the fragment as the
// last children of the element with the given id in hostHTML.
// With HighlighterChroma, the chroma stylesheet is injected into the host.
func (c *Converter) Insert(ctx context.Context, fetch Fetcher, hostHTML, elementID string) (string, error) {
	if elementID == "" {
		return "", ErrEmptyElementID
	}

	data, err := fetch.Fetch(ctx)
	if err != nil {
		return "", err
	}

	res, err := c.Render(ctx, Input{Source: data})
	if err != nil {
		return "", err
	}

	out, err := pipeline.InsertFragment(hostHTML, elementID, res.HTML)
	if err != nil {
		return "", err
	}

	css, err := c.HighlightCSS()
	if err != nil {
		return "", err
	}
	return c.cssInjector.InjectCSS(out, css), nil
}

// HighlightCSS returns the chroma stylesheet when settings select
// HighlighterChroma, and "" otherwise. Standalone renders include it already.
func (c *Converter) HighlightCSS() (string, error) {
	if c.cfg.settings.CodeHighlighter != HighlighterChroma {
		return "", nil
	}
	h, err := highlight.New(c.cfg.chromaStyle)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidChromaStyle, err)
	}
	return h.CSS()
}

// RenderToString renders notebook JSON with the given settings.
// Per-cell failures are dropped silently; use Converter.Render for details.
func RenderToString(settings RenderSettings, src string) (string, error) {
	conv, err := NewConverter(WithSettings(settings))
	if err != nil {
		return "", err
	}

	res, err := conv.Render(context.Background(), Input{Source: []byte(src)})
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}
