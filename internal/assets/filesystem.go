package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads {name}.css files from a directory.
type FilesystemLoader struct {
	dir string // absolute, symlinks resolved
}

// NewFilesystemLoader creates a FilesystemLoader rooted at dir.
// Returns ErrInvalidBasePath if dir is not an existing directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidBasePath, abs)
	}

	return &FilesystemLoader{dir: abs}, nil
}

// LoadStyle reads {dir}/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	path, err := f.resolve(name + ".css")
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- contained in f.dir
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// resolve joins file to the directory and follows symlinks. The real path
// must stay inside the directory. A missing file is returned unresolved.
func (f *FilesystemLoader) resolve(file string) (string, error) {
	joined := filepath.Join(f.dir, file)

	real, err := filepath.EvalSymlinks(joined)
	if errors.Is(err, fs.ErrNotExist) {
		return joined, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	rel, err := filepath.Rel(f.dir, real)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s resolves outside %s", ErrPathTraversal, file, f.dir)
	}
	return real, nil
}

var _ StyleLoader = (*FilesystemLoader)(nil)
