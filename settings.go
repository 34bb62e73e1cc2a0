package nb2html

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-nb2html/internal/pipeline"
)

// Highlighter names the code highlighting scheme the output targets.
type Highlighter string

// Code highlighters.
const (
	HighlighterNone        Highlighter = "none"
	HighlighterPrettyPrint Highlighter = "prettyprint" // marks code with class="prettyprint"
	HighlighterHighlightJS Highlighter = "highlightjs" // left to highlight.js in the browser
	HighlighterChroma      Highlighter = "chroma"      // colored server side
)

var validHighlighters = map[Highlighter]bool{
	HighlighterNone:        true,
	HighlighterPrettyPrint: true,
	HighlighterHighlightJS: true,
	HighlighterChroma:      true,
}

// Validate checks that the highlighter is known.
func (h Highlighter) Validate() error {
	if !validHighlighters[h] {
		return fmt.Errorf("%w: %q (must be none, prettyprint, highlightjs or chroma)", ErrInvalidHighlighter, h)
	}
	return nil
}

// MarkdownConverterKind selects the converter used for markdown cells.
type MarkdownConverterKind string

// Markdown converters.
const (
	MarkdownDefault  MarkdownConverterKind = "default"  // built-in block converter
	MarkdownExternal MarkdownConverterKind = "external" // goldmark, or the one set with WithMarkdownConverter
)

// Validate checks that the converter kind is known.
func (k MarkdownConverterKind) Validate() error {
	if k != MarkdownDefault && k != MarkdownExternal {
		return fmt.Errorf("%w: %q (must be default or external)", ErrInvalidMarkdownConverter, k)
	}
	return nil
}

// Setting keys as accepted by MergeSettings.
// Lookups are case-insensitive, so codeHighlighter and codehighlighter are the same key.
const (
	KeyCode              = "code"
	KeyMarkdown          = "markdown"
	KeyTables            = "tables"
	KeyImages            = "images"
	KeyHeadline          = "headline"
	KeyTableOutline      = "tableoutline"
	KeyCodeHighlighter   = "codehighlighter"
	KeyMarkdownConverter = "markdownconverter"

	keyMarkdownConverterShort = "mdconverter"
)

// RenderSettings controls what a render emits.
type RenderSettings struct {
	Code              bool                  // emit code cell source
	Markdown          bool                  // reserved; markdown cells are always rendered
	Tables            bool                  // permit text/html outputs
	Images            bool                  // permit image/png outputs
	Headline          bool                  // keep the first heading of the first cell
	TableOutline      bool                  // keep border="1" on output tables
	CodeHighlighter   Highlighter           // highlighting scheme
	MarkdownConverter MarkdownConverterKind // converter for markdown cells
}

// DefaultSettings returns the settings used when nothing is overridden.
func DefaultSettings() RenderSettings {
	return RenderSettings{
		Code:              true,
		Markdown:          true,
		Tables:            true,
		Images:            true,
		Headline:          true,
		TableOutline:      false,
		CodeHighlighter:   HighlighterNone,
		MarkdownConverter: MarkdownDefault,
	}
}

// MergeSettings applies overrides to DefaultSettings.
func MergeSettings(overrides map[string]any) RenderSettings {
	return DefaultSettings().Merge(overrides)
}

// Merge returns a copy of s with recognized keys from overrides applied.
// Unknown keys and values of the wrong type are ignored.
func (s RenderSettings) Merge(overrides map[string]any) RenderSettings {
	for key, value := range overrides {
		switch v := value.(type) {
		case bool:
			if field := s.boolField(key); field != nil {
				*field = v
			}
		case string:
			switch strings.ToLower(key) {
			case KeyCodeHighlighter:
				s.CodeHighlighter = Highlighter(v)
			case KeyMarkdownConverter, keyMarkdownConverterShort:
				s.MarkdownConverter = MarkdownConverterKind(v)
			}
		}
	}
	return s
}

// MergeStrings applies textual overrides such as query parameters or
// key=value flags. Boolean keys must parse with strconv.ParseBool.
func (s RenderSettings) MergeStrings(values map[string]string) (RenderSettings, error) {
	overrides := make(map[string]any, len(values))

	// Sorted for a deterministic first error.
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := values[key]
		if s.boolField(key) != nil {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return s, fmt.Errorf("%w: %s: invalid boolean %q", ErrInvalidSetting, key, raw)
			}
			overrides[key] = b
			continue
		}
		overrides[key] = raw
	}
	return s.Merge(overrides), nil
}

// Validate checks enum fields.
func (s RenderSettings) Validate() error {
	if err := s.CodeHighlighter.Validate(); err != nil {
		return err
	}
	return s.MarkdownConverter.Validate()
}

// Map returns the settings keyed by their canonical names.
func (s RenderSettings) Map() map[string]any {
	return map[string]any{
		KeyCode:              s.Code,
		KeyMarkdown:          s.Markdown,
		KeyTables:            s.Tables,
		KeyImages:            s.Images,
		KeyHeadline:          s.Headline,
		KeyTableOutline:      s.TableOutline,
		KeyCodeHighlighter:   string(s.CodeHighlighter),
		KeyMarkdownConverter: string(s.MarkdownConverter),
	}
}

func (s *RenderSettings) boolField(key string) *bool {
	switch strings.ToLower(key) {
	case KeyCode:
		return &s.Code
	case KeyMarkdown:
		return &s.Markdown
	case KeyTables:
		return &s.Tables
	case KeyImages:
		return &s.Images
	case KeyHeadline:
		return &s.Headline
	case KeyTableOutline:
		return &s.TableOutline
	}
	return nil
}

func (s RenderSettings) cellOptions() pipeline.CellOptions {
	return pipeline.CellOptions{
		Code:         s.Code,
		Tables:       s.Tables,
		Images:       s.Images,
		Headline:     s.Headline,
		TableOutline: s.TableOutline,
		PrettyPrint:  s.CodeHighlighter == HighlighterPrettyPrint,
	}
}
