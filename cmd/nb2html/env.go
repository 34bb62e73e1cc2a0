package main

import (
	"io"
	"net/http"
	"os"
	"time"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now        func() time.Time
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	HTTPClient *http.Client // used for URL inputs
	Getenv     func(string) string
	Environ    func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Getenv:     os.Getenv,
		Environ:    os.Environ,
	}
}
