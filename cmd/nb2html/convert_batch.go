package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	nb2html "github.com/alnah/go-nb2html"
	"github.com/alnah/go-nb2html/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadNotebook = errors.New("failed to read notebook file")
	ErrReadCSS      = errors.New("failed to read CSS file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
)

// Renderer is the rendering service used by the CLI.
type Renderer interface {
	Render(ctx context.Context, input nb2html.Input) (*nb2html.Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*nb2html.Converter)(nil)

// conversionParams groups parameters shared across a batch.
type conversionParams struct {
	css         string
	standalone  bool
	title       string // empty = derived from each file name
	embedImages bool
	timeout     time.Duration
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
	Size       int // bytes of HTML written
	Cells      int
	Skipped    int
}

// convertBatch renders files concurrently with a bounded worker pool.
// The Converter is shared: it is safe for concurrent use.
func convertBatch(ctx context.Context, r Renderer, files []FileToConvert, params *conversionParams, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, r, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile renders a single notebook file and writes the HTML.
func convertFile(ctx context.Context, r Renderer, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadNotebook, err))
	}

	input := nb2html.Input{
		Source:     content,
		Standalone: params.standalone,
		Title:      params.title,
		CSS:        params.css,
	}
	if input.Title == "" {
		input.Title = titleFromPath(f.InputPath)
	}
	if params.embedImages {
		input.SourceDir = filepath.Dir(f.InputPath)
	}

	renderCtx, cancel := withTimeout(ctx, params.timeout)
	defer cancel()

	res, err := r.Render(renderCtx, input)
	if err != nil {
		return fail(err)
	}
	result.Cells = res.Cells
	result.Skipped = res.Skipped
	result.Size = len(res.HTML)

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w", err))
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(res.HTML), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteHTML, err))
	}

	result.Duration = time.Since(start)
	return result
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, f commonFlags, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if f.quiet {
			continue
		}

		if f.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %s, %d cells, %d skipped)\n",
				r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond),
				humanize.IBytes(uint64(r.Size)), r.Cells, r.Skipped) // #nosec G115 -- len is non-negative
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !f.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
