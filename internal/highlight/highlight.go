// Package highlight colors notebook code cells server side with chroma.
//
// It operates on rendered HTML: every figure.highlight > pre > code element
// produced by the cell renderer is re-tokenized and replaced with chroma's
// class-based markup. Stylesheets for the selected style come from CSS.
package highlight

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// codeSelector matches code emitted for code cells.
const codeSelector = "figure.highlight pre code"

// ErrUnknownStyle is returned for style names chroma does not register.
var ErrUnknownStyle = errors.New("unknown highlight style")

// Highlighter rewrites code cell markup with chroma token spans.
// Safe for concurrent use.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	language  string
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithLanguage sets the lexer used for every code element.
// When empty or unknown, the lexer is guessed from the code itself.
func WithLanguage(lang string) Option {
	return func(h *Highlighter) {
		h.language = lang
	}
}

// New creates a Highlighter for a registered chroma style.
// An empty style selects DefaultStyle.
func New(style string, opts ...Option) (*Highlighter, error) {
	if style == "" {
		style = DefaultStyle
	}
	s, ok := styles.Registry[style]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	h := &Highlighter{
		style: s,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Highlight returns htmlContent with each code cell colored.
// Documents keep their structure; fragments come back as fragments.
func (h *Highlighter) Highlight(htmlContent string) (string, error) {
	if !strings.Contains(htmlContent, "<code") {
		return htmlContent, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	var firstErr error
	doc.Find(codeSelector).Each(func(_ int, s *goquery.Selection) {
		if firstErr != nil {
			return
		}
		colored, err := h.highlightCode(s.Text())
		if err != nil {
			firstErr = err
			return
		}
		s.SetHtml(colored)
		s.AddClass("chroma")
	})
	if firstErr != nil {
		return "", firstErr
	}

	if isDocument(htmlContent) {
		return doc.Html()
	}
	return doc.Find("body").Html()
}

// CSS returns the stylesheet for the highlighter's style.
func (h *Highlighter) CSS() (string, error) {
	var sb strings.Builder
	if err := h.formatter.WriteCSS(&sb, h.style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return sb.String(), nil
}

// Styles lists the registered chroma style names in sorted order.
func Styles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *Highlighter) highlightCode(code string) (string, error) {
	lexer := h.lexer(code)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenizing code: %w", err)
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", fmt.Errorf("formatting code: %w", err)
	}
	return sb.String(), nil
}

func (h *Highlighter) lexer(code string) chroma.Lexer {
	var lexer chroma.Lexer
	if h.language != "" {
		lexer = lexers.Get(h.language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func isDocument(content string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html")
}
