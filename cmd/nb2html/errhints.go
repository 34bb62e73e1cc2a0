package main

import (
	"context"
	"errors"

	nb2html "github.com/alnah/go-nb2html"
	"github.com/alnah/go-nb2html/internal/assets"
	"github.com/alnah/go-nb2html/internal/config"
	"github.com/alnah/go-nb2html/internal/highlight"
	"github.com/alnah/go-nb2html/internal/hints"
)

// highlighterNames lists the accepted codeHighlighter values.
var highlighterNames = []string{
	string(nb2html.HighlighterNone),
	string(nb2html.HighlighterPrettyPrint),
	string(nb2html.HighlighterHighlightJS),
	string(nb2html.HighlighterChroma),
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.UserDir())
	case errors.Is(err, nb2html.ErrFetch):
		return hints.ForFetch(err.Error())
	case errors.Is(err, nb2html.ErrNotebookParse):
		return hints.ForNotebookParse()
	case errors.Is(err, ErrWriteHTML):
		return hints.ForOutputDirectory()
	case errors.Is(err, nb2html.ErrInvalidHighlighter):
		return hints.ForChoices(highlighterNames)
	case errors.Is(err, nb2html.ErrInvalidChromaStyle):
		return hints.ForChoices(highlight.Styles())
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForChoices(assets.StyleNames())
	}
	return ""
}
