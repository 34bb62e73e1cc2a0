package assets

import (
	"fmt"
	"regexp"
)

// styleName allows letters, digits, hyphens and underscores only, so a
// name can never carry a separator, a traversal or another extension.
var styleName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName reports ErrInvalidAssetName unless name is a plain style name.
func ValidateAssetName(name string) error {
	if !styleName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
