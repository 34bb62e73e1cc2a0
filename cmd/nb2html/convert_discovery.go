package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	nb2html "github.com/alnah/go-nb2html"
	"github.com/alnah/go-nb2html/internal/config"
	"github.com/alnah/go-nb2html/internal/fileutil"
)

// stdinArg is the input argument that reads a notebook from standard input.
const stdinArg = "-"

// htmlExt is the extension of rendered files.
const htmlExt = ".html"

// checkpointDir holds Jupyter autosaves, never converted.
const checkpointDir = ".ipynb_checkpoints"

// Sentinel errors for input resolution and file discovery.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoNotebooks        = errors.New("no notebooks found")
	ErrInvalidExtension   = errors.New("file must have .ipynb extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// resolveInputPath returns the input from args, falling back to config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// discoverFiles finds all notebooks to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateNotebookExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if d.Name() == checkpointDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.IsNotebook(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for a notebook.
// An outputDir ending in .html is used as the output file itself.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+htmlExt)
	}

	if strings.HasSuffix(outputDir, htmlExt) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+htmlExt)
		}
	}

	return filepath.Join(outputDir, base+htmlExt)
}

// validateNotebookExtension checks that the file has an .ipynb extension.
func validateNotebookExtension(path string) error {
	if !fileutil.IsNotebook(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > nb2html.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, nb2html.MaxWorkers)
	}
	return nil
}

// titleFromPath derives a document title from a file name or URL.
func titleFromPath(path string) string {
	if path == "" || path == stdinArg {
		return ""
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	base := filepath.Base(filepath.FromSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
