package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-nb2html/internal/assets"
	"github.com/alnah/go-nb2html/internal/server"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// ErrListen wraps failures to start the HTTP listener.
var ErrListen = errors.New("failed to start server")

// runServe starts the HTTP API and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printServeUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
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
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.maxBodyBytes > 0 {
		cfg.Server.MaxBodyBytes = flags.maxBodyBytes
	}

	styles, err := assets.NewResolver(cfg.Document.StyleDir)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Settings:     settings,
		ChromaStyle:  cfg.Render.ChromaStyle,
		RawHTML:      cfg.Render.RawHTML,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Timeout:      cfg.Render.TimeoutDuration(),
		Styles:       styles,
	}, log)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("%w: %v", ErrListen, err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: %v", ErrListen, err)
	}
	return nil
}
