// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForTimeout returns a hint about raising the per-notebook timeout.
func ForTimeout() string {
	return format("for large notebooks, use --timeout or NB2HTML_TIMEOUT")
}

// ForConfigNotFound returns hints for config file not found errors.
// userConfigDir is suggested as a location when not empty.
func ForConfigNotFound(userConfigDir string) string {
	hint := "use --config /path/to/file.yaml"
	if userConfigDir != "" {
		hint += " or create one in " + userConfigDir
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForNotebookParse returns hints for sources that are not notebook JSON.
func ForNotebookParse() string {
	return format("input must be the raw .ipynb JSON, not an exported page")
}

// ForFetch returns hints for remote notebooks that could not be downloaded.
// detail is the error text naming the URL; a github.com blob URL serves an
// HTML page, so the raw URL is suggested.
func ForFetch(detail string) string {
	var hints []string
	if strings.Contains(detail, "github.com/") && strings.Contains(detail, "/blob/") {
		hints = append(hints, "use the raw.githubusercontent.com URL instead of the blob page")
	}
	hints = append(hints, "check the URL is reachable from this machine")
	return formatHints(hints)
}

// ForChoices returns a hint listing the accepted values.
func ForChoices(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
