package nb2html

import (
	"errors"

	"github.com/alnah/go-nb2html/internal/notebook"
	"github.com/alnah/go-nb2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptySource    = errors.New("notebook source cannot be empty")
	ErrNotebookParse  = notebook.ErrParse
	ErrCellRender     = errors.New("cell rendering failed")
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// Fetching errors.
	ErrFetch = errors.New("fetching notebook failed")

	// Insertion errors.
	ErrElementNotFound = pipeline.ErrElementNotFound
	ErrEmptyElementID  = pipeline.ErrEmptyElementID

	// Settings validation errors.
	ErrInvalidHighlighter       = errors.New("invalid code highlighter")
	ErrInvalidMarkdownConverter = errors.New("invalid markdown converter")
	ErrInvalidChromaStyle       = errors.New("invalid chroma style")
	ErrInvalidSetting           = errors.New("invalid setting value")
)
