package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	nb2html "github.com/alnah/go-nb2html"
	"github.com/alnah/go-nb2html/internal/assets"
	"github.com/alnah/go-nb2html/internal/config"
	"github.com/alnah/go-nb2html/internal/fileutil"
)

// Sentinel errors for insertion mode.
var (
	ErrInsertArgs = errors.New("--into and --id must be used together")
	ErrReadHost   = errors.New("failed to read host HTML file")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	log := newLogger(env.Stderr, flags.common)
	setMaxProcs(log)

	cfg, err := loadEffectiveConfig(flags.common, env)
	if err != nil {
		return err
	}
	settings, err := applyRenderFlags(flags.render, cfg)
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)

	conv, err := nb2html.NewConverter(converterOptions(cfg, settings, log)...)
	if err != nil {
		return err
	}

	css, err := buildCSS(cfg.Document)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{
		css:         css,
		standalone:  cfg.Document.Standalone,
		title:       cfg.Document.Title,
		embedImages: cfg.Render.EmbedImages,
		timeout:     cfg.Render.TimeoutDuration(),
	}

	if flags.insert.into != "" || flags.insert.id != "" {
		return runInsert(ctx, conv, inputPath, flags, params, env)
	}

	if inputPath == stdinArg || fileutil.IsURL(inputPath) {
		return convertStream(ctx, conv, inputPath, flags.output, params, env, log)
	}

	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoNotebooks, inputPath)
	}

	workers := nb2html.ResolveWorkers(cfg.Render.Workers)
	log.Debug("starting conversion", "files", len(files), "workers", workers, "highlighter", settings.CodeHighlighter)

	results := convertBatch(ctx, conv, files, params, workers)

	failedCount := printResults(results, flags.common, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}
	return nil
}

// mergeConvertFlags merges CLI flags into config. CLI values override config values.
func mergeConvertFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.workers > 0 {
		cfg.Render.Workers = flags.workers
	}
	if flags.embedImages {
		cfg.Render.EmbedImages = true
	}
	if flags.document.standalone {
		cfg.Document.Standalone = true
	}
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.css != "" {
		cfg.Document.CSS = flags.document.css
	}
	if flags.document.style != "" {
		cfg.Document.Style = flags.document.style
	}
	if flags.document.styleDir != "" {
		cfg.Document.StyleDir = flags.document.styleDir
	}
}

// buildCSS concatenates the named style and the stylesheet file, in that
// order, so the file can refine the style.
func buildCSS(doc config.DocumentConfig) (string, error) {
	var style string
	if doc.Style != "" {
		resolver, err := assets.NewResolver(doc.StyleDir)
		if err != nil {
			return "", err
		}
		if style, err = resolver.LoadStyle(doc.Style); err != nil {
			return "", err
		}
	}

	css, err := readCSS(doc.CSS)
	if err != nil {
		return "", err
	}

	switch {
	case style == "":
		return css, nil
	case css == "":
		return style, nil
	default:
		return style + "\n" + css, nil
	}
}

// readCSS loads the stylesheet at path; an empty path means no CSS.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}

// sourceFetcher returns the Fetcher for a single input: stdin, URL or file.
func sourceFetcher(input string, env *Environment) nb2html.Fetcher {
	switch {
	case input == stdinArg:
		return nb2html.ReaderFetcher(env.Stdin, "stdin")
	case fileutil.IsURL(input):
		return &nb2html.HTTPFetcher{URL: input, Client: env.HTTPClient}
	default:
		return nb2html.FetcherFunc(func(ctx context.Context) ([]byte, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			data, err := os.ReadFile(input) // #nosec G304 -- user-provided path
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrReadNotebook, err)
			}
			return data, nil
		})
	}
}

// convertStream renders a notebook from stdin or a URL.
// Output goes to the --output file, or stdout when none is given.
func convertStream(ctx context.Context, r Renderer, input, output string, params *conversionParams, env *Environment, log *slog.Logger) error {
	renderCtx, cancel := withTimeout(ctx, params.timeout)
	defer cancel()

	source, err := sourceFetcher(input, env).Fetch(renderCtx)
	if err != nil {
		return err
	}

	in := nb2html.Input{
		Source:     source,
		Standalone: params.standalone,
		Title:      params.title,
		CSS:        params.css,
	}
	if in.Title == "" {
		in.Title = titleFromPath(input)
	}
	if params.embedImages && input == stdinArg {
		in.SourceDir = "."
	}

	res, err := r.Render(renderCtx, in)
	if err != nil {
		return err
	}
	log.Debug("rendered notebook", "source", input, "cells", res.Cells, "skipped", res.Skipped, "language", res.Language)

	return writeOutput(output, res.HTML, env.Stdout)
}

// runInsert renders a single notebook into the element --id of the --into host.
func runInsert(ctx context.Context, conv *nb2html.Converter, input string, flags *convertFlags, params *conversionParams, env *Environment) error {
	if flags.insert.into == "" || flags.insert.id == "" {
		return ErrInsertArgs
	}

	host, err := os.ReadFile(flags.insert.into) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadHost, err)
	}

	renderCtx, cancel := withTimeout(ctx, params.timeout)
	defer cancel()

	out, err := conv.Insert(renderCtx, sourceFetcher(input, env), string(host), flags.insert.id)
	if err != nil {
		return err
	}
	return writeOutput(flags.output, out, env.Stdout)
}

// writeOutput writes html to path atomically, or to w when path is empty.
func writeOutput(path, html string, w io.Writer) error {
	if path == "" {
		if _, err := io.WriteString(w, html); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteHTML, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	return nil
}
