package pipeline

import (
	"regexp"
	"strings"
)

// headingElement matches a heading of any level on a single line.
// Open and close levels are not required to agree.
var headingElement = regexp.MustCompile(`<h([0-9])(.*?)</h([0-9])>`)

// tableBorder is the attribute pandas and similar libraries put on tables.
const tableBorder = `border="1"`

// StripFirstHeading removes the first heading element from an HTML fragment.
func StripFirstHeading(htmlContent string) string {
	loc := headingElement.FindStringIndex(htmlContent)
	if loc == nil {
		return htmlContent
	}
	return htmlContent[:loc[0]] + htmlContent[loc[1]:]
}

// StripFirstBorder removes only the first border="1" attribute text.
func StripFirstBorder(htmlContent string) string {
	return strings.Replace(htmlContent, tableBorder, "", 1)
}
