package nb2html

// Notes:
// - Notebooks are written as JSON literals so each test shows the exact
//   document shape it exercises.
// - Failure isolation uses a MarkdownConverter that errors or panics on
//   marked input; the goldmark path is covered in internal/pipeline.

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleNotebook = `{
  "metadata": {"language_info": {"name": "python"}},
  "nbformat": 4,
  "nbformat_minor": 5,
  "cells": [
    {"cell_type": "markdown", "source": ["# Analysis\n", "\n", "Some **bold** text"]},
    {"cell_type": "code", "source": ["df.head()"], "outputs": [
      {"output_type": "execute_result", "data": {
        "text/html": ["<table border=\"1\">", "<tr><td>1</td></tr></table>"],
        "image/png": "iVBORw0KGgo=",
        "text/plain": ["   a\n", "0  1"]
      }}
    ]},
    {"cell_type": "raw", "source": ["ignored"]},
    {"cell_type": "markdown", "source": ["## Results"]}
  ]
}`

func mustConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	c, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// TestRender - Notebook assembly
// ---------------------------------------------------------------------------

func TestRender_Sample(t *testing.T) {
	t.Parallel()

	c := mustConverter(t)
	res, err := c.Render(context.Background(), Input{Source: []byte(sampleNotebook)})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := "<h1>Analysis</h1><p>Some <strong>bold</strong> text</p>" +
		`<figure class="highlight"><pre><code>df.head()</code></pre></figure>` +
		"<table ><tr><td>1</td></tr></table>" +
		"<h2>Results</h2>"
	if res.HTML != want {
		t.Errorf("Render()\n got: %q\nwant: %q", res.HTML, want)
	}
	if res.Cells != 4 || res.Skipped != 0 || res.Language != "python" {
		t.Errorf("Render() result = %+v", res)
	}
}

func TestRender_EmptyNotebook(t *testing.T) {
	t.Parallel()

	c := mustConverter(t)
	for _, src := range []string{`{"cells": []}`, `{}`} {
		res, err := c.Render(context.Background(), Input{Source: []byte(src)})
		if err != nil {
			t.Fatalf("Render(%s) error = %v", src, err)
		}
		if res.HTML != "" {
			t.Errorf("Render(%s) = %q, want empty", src, res.HTML)
		}
	}
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	c := mustConverter(t)

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{"empty source", "", ErrEmptySource},
		{"malformed JSON", `{"cells": [`, ErrNotebookParse},
		{"null document", "null", ErrNotebookParse},
		{"cells not an array", `{"cells": 3}`, ErrNotebookParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := c.Render(context.Background(), Input{Source: []byte(tt.source)})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Render() error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Errorf("Render() returned partial result %+v", res)
			}
		})
	}
}

func TestRender_OrderPreserved(t *testing.T) {
	t.Parallel()

	src := `{"cells": [
		{"cell_type": "markdown", "source": ["first"]},
		{"cell_type": "code", "source": ["second"], "outputs": []},
		{"cell_type": "markdown", "source": ["third"]}
	]}`

	got, err := RenderToString(DefaultSettings(), src)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}

	i1, i2, i3 := strings.Index(got, "first"), strings.Index(got, "second"), strings.Index(got, "third")
	if !(i1 >= 0 && i1 < i2 && i2 < i3) {
		t.Errorf("cells out of order: %q", got)
	}
}

func TestRender_HeadlineOnlyFirstCell(t *testing.T) {
	t.Parallel()

	src := `{"cells": [
		{"cell_type": "markdown", "source": ["# Title"]},
		{"cell_type": "markdown", "source": ["# Title"]}
	]}`

	settings := MergeSettings(map[string]any{"headline": false})
	got, err := RenderToString(settings, src)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	if got != "<h1>Title</h1>" {
		t.Errorf("RenderToString() = %q, want the second heading only", got)
	}
}

func TestRender_HTMLBeatsImage(t *testing.T) {
	t.Parallel()

	src := `{"cells": [{"cell_type": "code", "source": [], "outputs": [
		{"data": {"text/html": ["<b>t</b>"], "image/png": "AAAA"}}
	]}]}`

	got, err := RenderToString(MergeSettings(map[string]any{"code": false}), src)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	if got != "<b>t</b>" {
		t.Errorf("RenderToString() = %q, want %q", got, "<b>t</b>")
	}
}

// ---------------------------------------------------------------------------
// TestRender_CellFailure - Isolation of failing cells
// ---------------------------------------------------------------------------

func TestRender_CellFailureIsolated(t *testing.T) {
	t.Parallel()

	failing := MarkdownConverterFunc(func(_ context.Context, md string) (string, error) {
		switch md {
		case "boom":
			return "", errors.New("converter exploded")
		case "panic":
			panic("converter panicked")
		}
		return "<p>" + md + "</p>", nil
	})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	c := mustConverter(t,
		WithSettings(MergeSettings(map[string]any{"markdownConverter": "external"})),
		WithMarkdownConverter(failing),
		WithLogger(logger),
	)

	src := `{"cells": [
		{"cell_type": "markdown", "source": ["ok1"]},
		{"cell_type": "markdown", "source": ["boom"]},
		{"cell_type": "markdown", "source": ["panic"]},
		{"cell_type": "markdown", "source": ["ok2"]}
	]}`

	res, err := c.Render(context.Background(), Input{Source: []byte(src)})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if res.HTML != "<p>ok1</p><p>ok2</p>" {
		t.Errorf("Render() = %q", res.HTML)
	}
	if res.Skipped != 2 {
		t.Errorf("Render() skipped = %d, want 2", res.Skipped)
	}
	for _, want := range []string{"skipping cell", "index=1", "index=2", "converter exploded"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q:\n%s", want, logs.String())
		}
	}
}

func TestRender_ContextCanceled(t *testing.T) {
	t.Parallel()

	c := mustConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Render(ctx, Input{Source: []byte(sampleNotebook)}); !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestRender_Output - Standalone documents, CSS, images, highlighting
// ---------------------------------------------------------------------------

func TestRender_Standalone(t *testing.T) {
	t.Parallel()

	c := mustConverter(t)
	res, err := c.Render(context.Background(), Input{
		Source:     []byte(sampleNotebook),
		Standalone: true,
		Title:      "Report",
		CSS:        "body{margin:0}",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{"<!DOCTYPE html>", "<title>Report</title>", "<style>body{margin:0}</style></head>", "<h1>Analysis</h1>"} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("Render() missing %q in:\n%s", want, res.HTML)
		}
	}
}

func TestRender_EmbedsLocalImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plot.png"), []byte("\x89PNG"), 0o600); err != nil {
		t.Fatal(err)
	}

	src := `{"cells": [{"cell_type": "markdown", "source": ["![plot](plot.png)"]}]}`

	c := mustConverter(t)
	res, err := c.Render(context.Background(), Input{Source: []byte(src), SourceDir: dir})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(res.HTML, `src="data:image/png;base64,`) {
		t.Errorf("Render() did not embed image:\n%s", res.HTML)
	}
}

func TestRender_Chroma(t *testing.T) {
	t.Parallel()

	c := mustConverter(t,
		WithSettings(MergeSettings(map[string]any{"codeHighlighter": "chroma"})),
		WithChromaStyle("monokai"),
	)

	res, err := c.Render(context.Background(), Input{Source: []byte(sampleNotebook), Standalone: true})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(res.HTML, `class="chroma"`) {
		t.Errorf("Render() code not highlighted:\n%s", res.HTML)
	}
	if !strings.Contains(res.HTML, ".chroma") {
		t.Errorf("Render() standalone output missing chroma CSS:\n%s", res.HTML)
	}
}

func TestRender_PrettyPrintMarker(t *testing.T) {
	t.Parallel()

	got, err := RenderToString(MergeSettings(map[string]any{"codehighlighter": "prettyprint"}), sampleNotebook)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	if !strings.Contains(got, `<code class="prettyprint">df.head()</code>`) {
		t.Errorf("RenderToString() missing prettyprint marker:\n%s", got)
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Option validation
// ---------------------------------------------------------------------------

func TestNewConverter_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "unknown highlighter",
			opts:    []Option{WithSettings(MergeSettings(map[string]any{"codehighlighter": "pygments"}))},
			wantErr: ErrInvalidHighlighter,
		},
		{
			name:    "unknown converter",
			opts:    []Option{WithSettings(MergeSettings(map[string]any{"mdconverter": "showdown"}))},
			wantErr: ErrInvalidMarkdownConverter,
		},
		{
			name: "unknown chroma style",
			opts: []Option{
				WithSettings(MergeSettings(map[string]any{"codehighlighter": "chroma"})),
				WithChromaStyle("no-such-style"),
			},
			wantErr: ErrInvalidChromaStyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewConverter(tt.opts...); !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithLogger_NilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithLogger(nil) should panic")
		}
	}()
	WithLogger(nil)
}

// ---------------------------------------------------------------------------
// TestRenderFrom / TestInsert - Fetch-based entry points
// ---------------------------------------------------------------------------

func TestRenderFrom(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nb.ipynb" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"cells": [{"cell_type": "markdown", "source": ["hello"]}]}`))
	}))
	t.Cleanup(srv.Close)

	c := mustConverter(t)

	t.Run("delivers HTML", func(t *testing.T) {
		t.Parallel()

		var got string
		err := c.RenderFrom(context.Background(), &HTTPFetcher{URL: srv.URL + "/nb.ipynb", Client: srv.Client()}, func(html string) error {
			got = html
			return nil
		})
		if err != nil {
			t.Fatalf("RenderFrom() error = %v", err)
		}
		if got != "<p>hello</p>" {
			t.Errorf("delivered %q, want %q", got, "<p>hello</p>")
		}
	})

	t.Run("non-200 not delivered", func(t *testing.T) {
		t.Parallel()

		called := false
		err := c.RenderFrom(context.Background(), &HTTPFetcher{URL: srv.URL + "/missing", Client: srv.Client()}, func(string) error {
			called = true
			return nil
		})
		if !errors.Is(err, ErrFetch) {
			t.Errorf("RenderFrom() error = %v, want ErrFetch", err)
		}
		if called {
			t.Error("deliver called after failed fetch")
		}
	})

	t.Run("deliver error returned", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("sink closed")
		err := c.RenderFrom(context.Background(), BytesFetcher([]byte(`{"cells":[]}`)), func(string) error {
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Errorf("RenderFrom() error = %v, want %v", err, sentinel)
		}
	})
}

func TestInsert(t *testing.T) {
	t.Parallel()

	host := `<!DOCTYPE html><html><head></head><body><main id="nb"><p>intro</p></main></body></html>`
	fetch := BytesFetcher([]byte(`{"cells": [{"cell_type": "markdown", "source": ["## Inserted"]}]}`))

	t.Run("appends as last child", func(t *testing.T) {
		t.Parallel()

		got, err := mustConverter(t).Insert(context.Background(), fetch, host, "nb")
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if !strings.Contains(got, `<main id="nb"><p>intro</p><h2>Inserted</h2></main>`) {
			t.Errorf("Insert() = %s", got)
		}
	})

	t.Run("chroma CSS injected into host", func(t *testing.T) {
		t.Parallel()

		c := mustConverter(t, WithSettings(MergeSettings(map[string]any{"codehighlighter": "chroma"})))
		got, err := c.Insert(context.Background(), fetch, host, "nb")
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if !strings.Contains(got, "<style>") || !strings.Contains(got, ".chroma") {
			t.Errorf("Insert() missing chroma CSS:\n%s", got)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		c := mustConverter(t)
		if _, err := c.Insert(context.Background(), fetch, host, ""); !errors.Is(err, ErrEmptyElementID) {
			t.Errorf("Insert() error = %v, want ErrEmptyElementID", err)
		}
		if _, err := c.Insert(context.Background(), fetch, host, "absent"); !errors.Is(err, ErrElementNotFound) {
			t.Errorf("Insert() error = %v, want ErrElementNotFound", err)
		}
	})
}
