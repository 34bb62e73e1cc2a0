package nb2html

import (
	"errors"
	"reflect"
	"testing"
)

// ---------------------------------------------------------------------------
// TestMergeSettings - Defaults and overrides
// ---------------------------------------------------------------------------

func TestMergeSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[string]any
		want      func(*RenderSettings)
	}{
		{
			name:      "nil overrides keep defaults",
			overrides: nil,
			want:      func(*RenderSettings) {},
		},
		{
			name:      "bool override",
			overrides: map[string]any{"code": false, "tableoutline": true},
			want: func(s *RenderSettings) {
				s.Code = false
				s.TableOutline = true
			},
		},
		{
			name:      "camelCase keys",
			overrides: map[string]any{"tableOutline": true, "codeHighlighter": "prettyprint", "markdownConverter": "external"},
			want: func(s *RenderSettings) {
				s.TableOutline = true
				s.CodeHighlighter = HighlighterPrettyPrint
				s.MarkdownConverter = MarkdownExternal
			},
		},
		{
			name:      "original short key",
			overrides: map[string]any{"mdconverter": "external", "codehighlighter": "highlightjs"},
			want: func(s *RenderSettings) {
				s.MarkdownConverter = MarkdownExternal
				s.CodeHighlighter = HighlighterHighlightJS
			},
		},
		{
			name:      "unknown keys ignored",
			overrides: map[string]any{"theme": "dark", "verbose": true},
			want:      func(*RenderSettings) {},
		},
		{
			name:      "wrong value types ignored",
			overrides: map[string]any{"code": "no", "images": 0, "codehighlighter": true},
			want:      func(*RenderSettings) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := DefaultSettings()
			tt.want(&want)

			if got := MergeSettings(tt.overrides); got != want {
				t.Errorf("MergeSettings(%v)\n got: %+v\nwant: %+v", tt.overrides, got, want)
			}
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	if !s.Code || !s.Markdown || !s.Tables || !s.Images || !s.Headline {
		t.Errorf("DefaultSettings() booleans should default to true: %+v", s)
	}
	if s.TableOutline {
		t.Error("DefaultSettings().TableOutline should be false")
	}
	if s.CodeHighlighter != HighlighterNone || s.MarkdownConverter != MarkdownDefault {
		t.Errorf("DefaultSettings() enums = %q, %q", s.CodeHighlighter, s.MarkdownConverter)
	}
}

func TestMerge_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := DefaultSettings()
	_ = base.Merge(map[string]any{"code": false})

	if !base.Code {
		t.Error("Merge() mutated its receiver")
	}
}

// ---------------------------------------------------------------------------
// TestMergeStrings - Textual overrides
// ---------------------------------------------------------------------------

func TestMergeStrings(t *testing.T) {
	t.Parallel()

	got, err := DefaultSettings().MergeStrings(map[string]string{
		"images":          "false",
		"headline":        "0",
		"codeHighlighter": "chroma",
		"ignored":         "x",
	})
	if err != nil {
		t.Fatalf("MergeStrings() error = %v", err)
	}

	want := DefaultSettings()
	want.Images = false
	want.Headline = false
	want.CodeHighlighter = HighlighterChroma
	if got != want {
		t.Errorf("MergeStrings()\n got: %+v\nwant: %+v", got, want)
	}
}

func TestMergeStrings_InvalidBool(t *testing.T) {
	t.Parallel()

	_, err := DefaultSettings().MergeStrings(map[string]string{"code": "maybe"})
	if !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("MergeStrings() error = %v, want ErrInvalidSetting", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Enum validation
// ---------------------------------------------------------------------------

func TestRenderSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*RenderSettings)
		wantErr error
	}{
		{"defaults", func(*RenderSettings) {}, nil},
		{"chroma", func(s *RenderSettings) { s.CodeHighlighter = HighlighterChroma }, nil},
		{"unknown highlighter", func(s *RenderSettings) { s.CodeHighlighter = "pygments" }, ErrInvalidHighlighter},
		{"empty highlighter", func(s *RenderSettings) { s.CodeHighlighter = "" }, ErrInvalidHighlighter},
		{"unknown converter", func(s *RenderSettings) { s.MarkdownConverter = "showdown" }, ErrInvalidMarkdownConverter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderSettings_Map(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.Code = false

	if got := MergeSettings(s.Map()); !reflect.DeepEqual(got, s) {
		t.Errorf("MergeSettings(Map()) = %+v, want %+v", got, s)
	}
}
