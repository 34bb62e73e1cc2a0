package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	nb2html "github.com/alnah/go-nb2html"
	"github.com/alnah/go-nb2html/internal/config"
)

// newLogger returns a text logger on w.
// --verbose enables debug records, --quiet keeps only errors.
func newLogger(w io.Writer, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setMaxProcs aligns GOMAXPROCS with the container CPU quota.
// The error is ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply.
func setMaxProcs(log *slog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug(fmt.Sprintf(format, args...))
	}))
}

// loadEffectiveConfig resolves the configuration for a command.
// Sources in increasing priority: defaults, config file, environment.
// Flags are applied by each command on top of the result.
func loadEffectiveConfig(f commonFlags, env *Environment) (*config.Config, error) {
	if !f.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}
	envCfg := loadEnvConfig(env.Getenv)

	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyRenderFlags merges rendering flags into cfg and returns the
// resulting render settings.
func applyRenderFlags(f renderFlags, cfg *config.Config) (nb2html.RenderSettings, error) {
	if f.chromaStyle != "" {
		cfg.Render.ChromaStyle = f.chromaStyle
	}
	if f.rawHTML {
		cfg.Render.RawHTML = true
	}
	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil || d <= 0 {
			return nb2html.RenderSettings{}, fmt.Errorf("%w: timeout %q", ErrInvalidFlags, f.timeout)
		}
		cfg.Render.Timeout = f.timeout
	}

	return nb2html.MergeSettings(cfg.Settings).MergeStrings(f.set)
}

// converterOptions builds Converter options from the effective config.
func converterOptions(cfg *config.Config, settings nb2html.RenderSettings, log *slog.Logger) []nb2html.Option {
	opts := []nb2html.Option{nb2html.WithSettings(settings), nb2html.WithLogger(log)}
	if cfg.Render.ChromaStyle != "" {
		opts = append(opts, nb2html.WithChromaStyle(cfg.Render.ChromaStyle))
	}
	if cfg.Render.RawHTML {
		opts = append(opts, nb2html.WithRawHTML())
	}
	return opts
}
