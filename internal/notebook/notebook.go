// Package notebook decodes Jupyter notebook documents (.ipynb).
//
// Only the fields needed for HTML rendering are modeled: the ordered cell
// list, each cell's source and outputs, and the kernel language from the
// notebook metadata. Everything else in the document is ignored.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrParse indicates the notebook document is not valid notebook JSON.
var ErrParse = errors.New("failed to parse notebook")

// CellType identifies the kind of a cell.
type CellType string

// Cell types recognized by the renderer. Any other value is skipped.
const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
	CellRaw      CellType = "raw"
)

// MIME types with dedicated rendering rules.
const (
	MIMETextHTML  = "text/html"
	MIMEImagePNG  = "image/png"
	MIMETextPlain = "text/plain"
)

// MultilineString is the notebook representation of text: either a single
// JSON string or an array of strings that concatenate without separators.
type MultilineString []string

// UnmarshalJSON accepts a string or an array of strings.
// Any other JSON value (null, objects, numbers) decodes to nil without error,
// so unknown MIME payloads such as application/json never fail a document.
func (m *MultilineString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*m = nil
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*m = MultilineString{s}
	case '[':
		var lines []string
		if err := json.Unmarshal(trimmed, &lines); err != nil {
			*m = nil
			return nil
		}
		if lines == nil {
			lines = []string{}
		}
		*m = lines
	default:
		*m = nil
	}
	return nil
}

// String joins all lines with no separator.
func (m MultilineString) String() string {
	return strings.Join(m, "")
}

// Output is one captured result of executing a code cell.
// Data outputs (execute_result, display_data) carry a MIME bundle;
// stream outputs carry plain text.
type Output struct {
	OutputType string                     `json:"output_type"`
	Name       string                     `json:"name,omitempty"`
	Data       map[string]MultilineString `json:"data,omitempty"`
	Text       MultilineString            `json:"text,omitempty"`
}

// IsData reports whether the output carries a MIME bundle.
func (o Output) IsData() bool {
	return o.Data != nil
}

// IsStream reports whether the output carries stream text.
func (o Output) IsStream() bool {
	return o.Text != nil
}

// MIME returns the content for a MIME type and whether it was present.
func (o Output) MIME(mimeType string) (string, bool) {
	content, ok := o.Data[mimeType]
	if !ok {
		return "", false
	}
	return content.String(), true
}

// Cell is one unit of a notebook.
type Cell struct {
	Type    CellType        `json:"cell_type"`
	Source  MultilineString `json:"source"`
	Outputs []Output        `json:"outputs,omitempty"`
}

// Text returns the concatenated source of the cell.
func (c Cell) Text() string {
	return c.Source.String()
}

// KernelSpec describes the kernel the notebook was written for.
type KernelSpec struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
}

// LanguageInfo describes the programming language of code cells.
type LanguageInfo struct {
	Name          string `json:"name"`
	FileExtension string `json:"file_extension"`
}

// Metadata holds the notebook-level metadata used for rendering.
type Metadata struct {
	KernelSpec   *KernelSpec   `json:"kernelspec,omitempty"`
	LanguageInfo *LanguageInfo `json:"language_info,omitempty"`
}

// Notebook is an ordered sequence of cells.
type Notebook struct {
	Cells         []Cell   `json:"cells"`
	Metadata      Metadata `json:"metadata"`
	NBFormat      int      `json:"nbformat"`
	NBFormatMinor int      `json:"nbformat_minor"`
}

// Language returns the code cell language declared in the metadata,
// preferring language_info over kernelspec. Empty if neither is set.
func (n *Notebook) Language() string {
	if n.Metadata.LanguageInfo != nil && n.Metadata.LanguageInfo.Name != "" {
		return n.Metadata.LanguageInfo.Name
	}
	if n.Metadata.KernelSpec != nil {
		return n.Metadata.KernelSpec.Language
	}
	return ""
}

// Parse decodes a notebook document.
// Malformed JSON, a non-object document, or a mistyped cells field
// all return an error wrapping ErrParse.
func Parse(data []byte) (*Notebook, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}

	var nb *Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if nb == nil {
		return nil, fmt.Errorf("%w: document is null", ErrParse)
	}
	return nb, nil
}
