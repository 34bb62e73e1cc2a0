package main

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"
)

// testNotebook renders to "<h1>Demo</h1><p>text</p>" followed by the code cell.
const testNotebook = `{
  "metadata": {"language_info": {"name": "python"}},
  "cells": [
    {"cell_type": "markdown", "source": ["# Demo\n", "\n", "text"]},
    {"cell_type": "code", "source": ["print(1)"], "outputs": [{"output_type": "stream", "name": "stdout", "text": ["1\n"]}]}
  ]
}`

// testEnvironment captures output and serves a fixed environment.
type testEnvironment struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
}

func newTestEnv(t *testing.T, vars map[string]string) *testEnvironment {
	t.Helper()
	if vars == nil {
		vars = map[string]string{}
	}
	te := &testEnvironment{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   vars,
	}
	te.Environment = &Environment{
		Now:        func() time.Time { return time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) },
		Stdin:      strings.NewReader(""),
		Stdout:     te.stdout,
		Stderr:     te.stderr,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Getenv:     func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return te
}

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Now == nil || env.Stdin == nil || env.Stdout == nil || env.Stderr == nil {
		t.Fatal("DefaultEnv() left an I/O field nil")
	}
	if env.HTTPClient == nil || env.HTTPClient.Timeout == 0 {
		t.Error("DefaultEnv() HTTPClient should carry a timeout")
	}
	if env.Getenv == nil || env.Environ == nil {
		t.Error("DefaultEnv() environment accessors are nil")
	}
}
