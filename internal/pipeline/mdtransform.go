package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Carriage returns are dropped, not converted: "\r\n" becomes "\n".
	carriageReturn = regexp.MustCompile(`\r`)

	// Blocks are separated by runs of two or more newlines.
	blockSeparator = regexp.MustCompile(`\n\n+`)
)

// tabWidth is the number of spaces a tab expands to.
const tabWidth = 4

// normalizeSource prepares raw markdown for block splitting:
// carriage returns removed, outer whitespace trimmed, tabs expanded.
func normalizeSource(content string) string {
	content = carriageReturn.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)
	return strings.ReplaceAll(content, "\t", strings.Repeat(" ", tabWidth))
}

// splitBlocks splits normalized markdown into blank-line separated blocks.
// Returns nil for empty input.
func splitBlocks(content string) []string {
	if content == "" {
		return nil
	}
	return blockSeparator.Split(content, -1)
}
