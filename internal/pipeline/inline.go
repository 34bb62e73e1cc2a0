package pipeline

import (
	"html"
	"regexp"
)

// inlineStage is one textual substitution of the inline formatting pass.
type inlineStage struct {
	name    string
	pattern *regexp.Regexp
	repl    string
}

// inlineStages run once each, in this order, over already-escaped text.
// A stage never sees its own output again, so constructs do not nest.
var inlineStages = []inlineStage{
	{
		name:    "image",
		pattern: regexp.MustCompile(`!\[([^\]]*)\]\(([^(]+)\)`),
		repl:    `<img alt="${1}" src="${2}">`,
	},
	{
		name:    "link",
		pattern: regexp.MustCompile(`\[([^\]]+)\]\(([^(]+)\)`),
		repl:    `<a href="${2}">${1}</a>`,
	},
	{
		name:    "code",
		pattern: regexp.MustCompile("`([^`]+)`"),
		repl:    `<code>${1}</code>`,
	},
	{
		name:    "strong",
		pattern: regexp.MustCompile(`\*\*([^*]+)\*\*`),
		repl:    `<strong>${1}</strong>`,
	},
	{
		name:    "emphasis",
		pattern: regexp.MustCompile(`\*([^*]+)\*`),
		repl:    `<em>${1}</em>`,
	},
}

// EscapeHTML escapes <, >, &, ' and " as HTML entities.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// InlineEscape escapes text and then applies the inline formatting stages:
// images, links, code spans, strong and emphasis.
func InlineEscape(text string) string {
	out := EscapeHTML(text)
	for _, stage := range inlineStages {
		out = stage.pattern.ReplaceAllString(out, stage.repl)
	}
	return out
}
