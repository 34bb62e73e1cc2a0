package assets

import "errors"

// Resolver looks styles up in a user directory first and falls back to
// the built-in styles when the name is not found there.
type Resolver struct {
	custom   StyleLoader // nil without a style directory
	embedded StyleLoader
}

// NewResolver creates a Resolver. An empty styleDir uses built-ins only.
func NewResolver(styleDir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if styleDir != "" {
		fsLoader, err := NewFilesystemLoader(styleDir)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// LoadStyle loads name from the user directory, then from the built-ins.
// Validation and read errors from the user directory are not masked.
func (r *Resolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// HasCustomLoader reports whether a style directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ StyleLoader = (*Resolver)(nil)
