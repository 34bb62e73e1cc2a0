package nb2html

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// MaxNotebookSize caps the bytes read from any notebook source (64MB).
const MaxNotebookSize = 64 << 20

// defaultFetchTimeout bounds an HTTP fetch when the client has no timeout.
const defaultFetchTimeout = 30 * time.Second

// Fetcher retrieves raw notebook JSON.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]byte, error)

// Fetch calls f(ctx).
func (f FetcherFunc) Fetch(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// BytesFetcher returns a Fetcher serving data as is.
func BytesFetcher(data []byte) Fetcher {
	return FetcherFunc(func(ctx context.Context) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return data, nil
	})
}

// HTTPFetcher downloads a notebook with a GET request.
// Only a 200 response is accepted.
type HTTPFetcher struct {
	URL    string
	Client *http.Client // nil uses a client with a 30s timeout
}

// Fetch performs the request.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/x-ipynb+json, application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, f.URL, resp.Status)
	}

	return readLimited(resp.Body, f.URL)
}

// FileFetcher reads a notebook from the local filesystem.
type FileFetcher struct {
	Path string
}

// Fetch reads the file.
func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.Path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer file.Close()

	return readLimited(file, f.Path)
}

// ReaderFetcher returns a Fetcher reading r once, for stdin and request bodies.
func ReaderFetcher(r io.Reader, name string) Fetcher {
	return FetcherFunc(func(ctx context.Context) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return readLimited(r, name)
	})
}

func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxNotebookSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFetch, name, err)
	}
	if len(data) > MaxNotebookSize {
		return nil, fmt.Errorf("%w: %s exceeds %s", ErrFetch, name, humanize.IBytes(MaxNotebookSize))
	}
	return data, nil
}
