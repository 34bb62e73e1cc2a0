package main

import (
	"errors"
	"os"

	nb2html "github.com/alnah/go-nb2html"
	"github.com/alnah/go-nb2html/internal/assets"
	"github.com/alnah/go-nb2html/internal/config"
)

// Exit codes for the nb2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or settings
	ExitIO      = 3 // File not found, permission denied
	ExitFetch   = 4 // Remote notebook could not be fetched
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, nb2html.ErrFetch) {
		return ExitFetch
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoNotebooks) ||
		errors.Is(err, ErrReadNotebook) ||
		errors.Is(err, ErrReadHost) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, ErrWriteHTML) {
		return ExitIO
	}

	if errors.Is(err, errUsagePrinted) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInsertArgs) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, nb2html.ErrInvalidSetting) ||
		errors.Is(err, nb2html.ErrInvalidHighlighter) ||
		errors.Is(err, nb2html.ErrInvalidMarkdownConverter) ||
		errors.Is(err, nb2html.ErrInvalidChromaStyle) ||
		errors.Is(err, nb2html.ErrEmptyElementID) ||
		errors.Is(err, nb2html.ErrElementNotFound) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	return ExitGeneral
}
