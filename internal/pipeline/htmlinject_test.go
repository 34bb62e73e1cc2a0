package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no escape needed", "body { color: red; }", "body { color: red; }"},
		{"escapes style close", "</style>", `<\/style>`},
		{"multiple occurrences", "</a></b>", `<\/a><\/b>`},
		{"case variation STYLE", "</STYLE>", `<\/STYLE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInjectCSS - Style block placement
// ---------------------------------------------------------------------------

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	injector := &CSSInjection{}

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{"empty css", "<p>x</p>", "", "<p>x</p>"},
		{"before head close", "<html><head></head><body></body></html>", "a{}", "<html><head><style>a{}</style></head><body></body></html>"},
		{"after body open", `<body class="x"><p>y</p></body>`, "a{}", `<body class="x"><style>a{}</style><p>y</p></body>`},
		{"fragment prepended", "<p>x</p>", "a{}", "<style>a{}</style><p>x</p>"},
		{"uppercase head", "<HEAD></HEAD>", "a{}", "<HEAD><style>a{}</style></HEAD>"},
		{"sanitized", "<p>x</p>", "</style><script>", `<style><\/style><script></style><p>x</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := injector.InjectCSS(tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS()\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWrapDocument - Standalone document output
// ---------------------------------------------------------------------------

func TestWrapDocument(t *testing.T) {
	t.Parallel()

	got := WrapDocument("A & B", "<p>x</p>")

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<meta charset="utf-8">`,
		"<title>A &amp; B</title>",
		"<body>\n<p>x</p>\n</body>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WrapDocument() missing %q in:\n%s", want, got)
		}
	}

	if def := WrapDocument("", ""); !strings.Contains(def, "<title>Notebook</title>") {
		t.Errorf("WrapDocument() default title missing:\n%s", def)
	}
}

// ---------------------------------------------------------------------------
// TestInsertFragment - Insertion into a host document by element ID
// ---------------------------------------------------------------------------

func TestInsertFragment(t *testing.T) {
	t.Parallel()

	host := `<!DOCTYPE html><html><head></head><body><div id="nb"><p>existing</p></div><div id="other"></div></body></html>`

	got, err := InsertFragment(host, "nb", "<h1>Inserted</h1>")
	if err != nil {
		t.Fatalf("InsertFragment() error = %v", err)
	}

	want := `<div id="nb"><p>existing</p><h1>Inserted</h1></div><div id="other"></div>`
	if !strings.Contains(got, want) {
		t.Errorf("InsertFragment() missing %q in:\n%s", want, got)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("InsertFragment() lost doctype:\n%s", got)
	}
}

func TestInsertFragment_IDWithSelectorCharacters(t *testing.T) {
	t.Parallel()

	host := `<body><section id="cell.1:out"></section></body>`

	got, err := InsertFragment(host, "cell.1:out", "<p>ok</p>")
	if err != nil {
		t.Fatalf("InsertFragment() error = %v", err)
	}
	if !strings.Contains(got, `<section id="cell.1:out"><p>ok</p></section>`) {
		t.Errorf("InsertFragment() = %s", got)
	}
}

func TestInsertFragment_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"empty id", "", ErrEmptyElementID},
		{"missing element", "absent", ErrElementNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := InsertFragment(`<div id="nb"></div>`, tt.id, "<p>x</p>")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("InsertFragment() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
