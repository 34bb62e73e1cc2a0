package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-nb2html/internal/notebook"
)

// CellOptions holds the rendering switches that affect a single cell.
type CellOptions struct {
	Code         bool // emit code cell source
	Tables       bool // allow text/html outputs
	Images       bool // allow image/png outputs
	Headline     bool // keep the first heading of the first cell
	TableOutline bool // keep border="1" on output tables
	PrettyPrint  bool // mark code with class="prettyprint"
}

// CellRenderer produces the HTML fragment for one notebook cell.
// Safe for concurrent use if its MarkdownConverter is.
type CellRenderer struct {
	opts     CellOptions
	markdown MarkdownConverter
}

// NewCellRenderer creates a CellRenderer. A nil converter selects BlockConverter.
func NewCellRenderer(opts CellOptions, markdown MarkdownConverter) *CellRenderer {
	if markdown == nil {
		markdown = NewBlockConverter()
	}
	return &CellRenderer{opts: opts, markdown: markdown}
}

// RenderCell renders a cell at its zero-based position in the notebook.
// Cells of unrecognized type render to "" without error.
func (r *CellRenderer) RenderCell(ctx context.Context, index int, cell notebook.Cell) (string, error) {
	switch cell.Type {
	case notebook.CellMarkdown:
		return r.RenderMarkdown(ctx, index, cell.Text())
	case notebook.CellCode:
		return r.RenderCode(cell), nil
	default:
		return "", nil
	}
}

// RenderMarkdown converts markdown cell source. For the first cell, when
// headlines are disabled, the first heading element is removed.
func (r *CellRenderer) RenderMarkdown(ctx context.Context, index int, source string) (string, error) {
	htmlContent, err := r.markdown.ToHTML(ctx, source)
	if err != nil {
		return "", fmt.Errorf("converting markdown cell %d: %w", index, err)
	}

	if index == 0 && !r.opts.Headline {
		htmlContent = StripFirstHeading(htmlContent)
	}
	return htmlContent, nil
}

// RenderCode renders a code cell: its source, then each output in order.
func (r *CellRenderer) RenderCode(cell notebook.Cell) string {
	var sb strings.Builder

	if r.opts.Code {
		sb.WriteString(`<figure class="highlight"><pre><code`)
		if r.opts.PrettyPrint {
			sb.WriteString(` class="prettyprint"`)
		}
		sb.WriteString(">")
		sb.WriteString(cell.Text())
		sb.WriteString("</code></pre></figure>")
	}

	for _, out := range cell.Outputs {
		sb.WriteString(r.renderOutput(out))
	}

	htmlContent := sb.String()
	if !r.opts.TableOutline {
		htmlContent = StripFirstBorder(htmlContent)
	}
	return htmlContent
}

// renderOutput picks one representation of an output.
// Data bundles use the first MIME type present in the order
// text/html, image/png, text/plain; a disabled type still wins the
// selection and renders nothing. Stream text is used only without data.
func (r *CellRenderer) renderOutput(out notebook.Output) string {
	if out.IsData() {
		if content, ok := out.MIME(notebook.MIMETextHTML); ok {
			if !r.opts.Tables {
				return ""
			}
			return content
		}
		if content, ok := out.MIME(notebook.MIMEImagePNG); ok {
			if !r.opts.Images {
				return ""
			}
			return `<img src="data:image/png;base64,` + content + `"/>`
		}
		if content, ok := out.MIME(notebook.MIMETextPlain); ok {
			return "<pre>" + content + "</pre>"
		}
		return ""
	}

	if out.IsStream() {
		return `<figure class="highlight"><pre>` + out.Text.String() + "</pre></figure>"
	}

	return ""
}
