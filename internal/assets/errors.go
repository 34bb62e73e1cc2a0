package assets

import "errors"

// Sentinel errors for style loading.
var (
	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates the style name contains path separators,
	// dots or other characters that could escape the style directory.
	ErrInvalidAssetName = errors.New("invalid style name")

	// ErrInvalidBasePath indicates the style directory is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid style directory")

	// ErrAssetRead indicates an I/O error while reading a style file.
	ErrAssetRead = errors.New("failed to read style")

	// ErrPathTraversal indicates a style path resolved outside its directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
