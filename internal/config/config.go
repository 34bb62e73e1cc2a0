package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-nb2html/internal/fileutil"
	"github.com/alnah/go-nb2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "nb2html"

// appDir is the directory under the user config dir holding named configs.
const appDir = "go-nb2html"

// Field length limits.
const (
	MaxTitleLength = 200
	MaxPathLength  = 4096
	MaxStyleLength = 50
	MaxAddrLength  = 255
)

// Bounds for numeric fields.
const (
	MaxWorkers      = 32
	DefaultAddr     = "127.0.0.1:8080"
	DefaultMaxBody  = 32 << 20
	DefaultTimeout  = "30s"
	MaxSettingsKeys = 64
)

// Config holds all configuration for notebook rendering.
type Config struct {
	Settings map[string]any `yaml:"settings"` // render settings, merged over the defaults
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	Render   RenderConfig   `yaml:"render"`
	Server   ServerConfig   `yaml:"server"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// DocumentConfig defines standalone document options.
type DocumentConfig struct {
	Standalone bool   `yaml:"standalone"` // Wrap output in a full HTML document
	Title      string `yaml:"title"`      // Empty = file name without extension
	CSS        string `yaml:"css"`        // Path to a stylesheet file
	Style      string `yaml:"style"`      // Named style: built-in or {styleDir}/{name}.css
	StyleDir   string `yaml:"styleDir"`   // Directory of custom styles
}

// RenderConfig defines rendering engine options.
type RenderConfig struct {
	Workers     int    `yaml:"workers"`     // 0 = auto
	ChromaStyle string `yaml:"chromaStyle"` // Used with codeHighlighter: chroma
	RawHTML     bool   `yaml:"rawHTML"`     // Let goldmark pass raw HTML through
	EmbedImages bool   `yaml:"embedImages"` // Inline relative images as data URIs
	Timeout     string `yaml:"timeout"`     // Per-notebook timeout, Go duration
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes"`
}

// TimeoutDuration returns the parsed render timeout, falling back to DefaultTimeout.
func (r RenderConfig) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(r.Timeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultTimeout)
	return d
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if len(c.Settings) > MaxSettingsKeys {
		return fmt.Errorf("%w: settings: %d keys (max %d)", ErrInvalidValue, len(c.Settings), MaxSettingsKeys)
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.css", c.Document.CSS, MaxPathLength},
		{"document.style", c.Document.Style, MaxStyleLength},
		{"document.styleDir", c.Document.StyleDir, MaxPathLength},
		{"render.chromaStyle", c.Render.ChromaStyle, MaxStyleLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}

	if c.Render.Timeout != "" {
		d, err := time.ParseDuration(c.Render.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: render.timeout: %q is not a positive duration", ErrInvalidValue, c.Render.Timeout)
		}
	}

	if c.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
			return fmt.Errorf("%w: server.addr: %v", ErrInvalidValue, err)
		}
	}

	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.maxBodyBytes: must not be negative", ErrInvalidValue)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Settings: map[string]any{},
		Render:   RenderConfig{Timeout: DefaultTimeout},
		Server:   ServerConfig{Addr: DefaultAddr, MaxBodyBytes: DefaultMaxBody},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg, true); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Settings == nil {
		cfg.Settings = map[string]any{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Encode(c)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-nb2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if dir := UserDir(); dir != "" {
		for _, ext := range extensions {
			userPath := filepath.Join(dir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// UserDir returns the per-user directory searched for named configs,
// or "" when the platform has no user config directory.
func UserDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir)
}
