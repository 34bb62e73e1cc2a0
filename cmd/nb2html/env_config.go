package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	nb2html "github.com/alnah/go-nb2html"
	"github.com/alnah/go-nb2html/internal/config"
)

// envPrefix namespaces the environment variables read by the CLI.
const envPrefix = "NB2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // NB2HTML_CONFIG: config file name or path
	InputDir    string        // NB2HTML_INPUT_DIR: default input directory
	OutputDir   string        // NB2HTML_OUTPUT_DIR: default output directory
	Highlighter string        // NB2HTML_HIGHLIGHTER: codeHighlighter setting
	ChromaStyle string        // NB2HTML_CHROMA_STYLE: chroma style name
	Addr        string        // NB2HTML_ADDR: serve listen address
	Timeout     time.Duration // NB2HTML_TIMEOUT: per-notebook timeout
	Workers     int           // NB2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid NB2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NB2HTML_CONFIG":       true,
	"NB2HTML_INPUT_DIR":    true,
	"NB2HTML_OUTPUT_DIR":   true,
	"NB2HTML_HIGHLIGHTER":  true,
	"NB2HTML_CHROMA_STYLE": true,
	"NB2HTML_ADDR":         true,
	"NB2HTML_TIMEOUT":      true,
	"NB2HTML_WORKERS":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed timeout and worker values are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("NB2HTML_CONFIG"),
		InputDir:    getenv("NB2HTML_INPUT_DIR"),
		OutputDir:   getenv("NB2HTML_OUTPUT_DIR"),
		Highlighter: getenv("NB2HTML_HIGHLIGHTER"),
		ChromaStyle: getenv("NB2HTML_CHROMA_STYLE"),
		Addr:        getenv("NB2HTML_ADDR"),
	}

	if timeout := getenv("NB2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("NB2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized NB2HTML_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// CLI flags are applied afterwards, giving flags > env > file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Highlighter != "" {
		if cfg.Settings == nil {
			cfg.Settings = map[string]any{}
		}
		for key := range cfg.Settings {
			if strings.EqualFold(key, nb2html.KeyCodeHighlighter) {
				delete(cfg.Settings, key)
			}
		}
		cfg.Settings[nb2html.KeyCodeHighlighter] = env.Highlighter
	}
	if env.ChromaStyle != "" {
		cfg.Render.ChromaStyle = env.ChromaStyle
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.Timeout > 0 {
		cfg.Render.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
}
