// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/jonathan/cardforge/internal/types"
)

// Environment variables that override config file values
const (
	EnvModel         = "CARDFORGE_MODEL"
	EnvModelEndpoint = "CARDFORGE_MODEL_ENDPOINT"
	EnvTimeout       = "CARDFORGE_TIMEOUT"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Canvas
	Width  int `json:"width,omitempty" yaml:"width,omitempty" validate:"gte=0,lte=10000"`
	Height int `json:"height,omitempty" yaml:"height,omitempty" validate:"gte=0,lte=10000"`

	// Model; an empty model name disables inference
	Model         string `json:"model,omitempty" yaml:"model,omitempty"`
	ModelEndpoint string `json:"model_endpoint,omitempty" yaml:"model_endpoint,omitempty" validate:"omitempty,url"`
	Timeout       string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // Go duration, e.g. "30s"
	Retries       *int   `json:"retries,omitempty" yaml:"retries,omitempty" validate:"omitempty,gte=0,lte=1"`

	// Budget
	MaxLinesPerSection int `json:"max_lines_per_section,omitempty" yaml:"max_lines_per_section,omitempty" validate:"omitempty,gte=1,lte=20"`
	MaxCharsPerLine    int `json:"max_chars_per_line,omitempty" yaml:"max_chars_per_line,omitempty" validate:"omitempty,gte=8,lte=400"`

	// Export
	PDF      string `json:"pdf,omitempty" yaml:"pdf,omitempty"` // Path for the paginated export
	PageSize string `json:"page_size,omitempty" yaml:"page_size,omitempty" validate:"omitempty,oneof=a4 letter"`
	DPI      int    `json:"dpi,omitempty" yaml:"dpi,omitempty" validate:"gte=0,lte=1200"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Workers int  `json:"workers,omitempty" yaml:"workers,omitempty" validate:"gte=0,lte=64"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	retries := 1
	return Config{
		Width:         800,
		Height:        600,
		ModelEndpoint: "http://127.0.0.1:11434",
		Timeout:       "30s",
		Retries:       &retries,
		PageSize:      "a4",
		DPI:           150,
		Workers:       4,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, &Error{Message: "config path is empty"}
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, &Error{Message: "failed to get current directory", Cause: err}
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read config file %s", path), Cause: err}
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, &Error{Message: "failed to parse config YAML", Cause: err}
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, &Error{Message: "failed to parse config JSON", Cause: err}
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides model settings from the environment. lookup is
// os.LookupEnv outside tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvModel); ok {
		c.Model = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvModelEndpoint); ok && strings.TrimSpace(v) != "" {
		c.ModelEndpoint = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		c.Timeout = strings.TrimSpace(v)
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &Error{Message: "invalid configuration", Cause: err}
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return &Error{Message: fmt.Sprintf("'timeout' is not a duration: %q", c.Timeout), Cause: err}
		}
		if d <= 0 {
			return &Error{Message: "'timeout' must be positive"}
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ModelEndpoint == "" {
		result.ModelEndpoint = defaults.ModelEndpoint
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Timeout == "" {
		result.Timeout = defaults.Timeout
	}
	if result.PDF == "" {
		result.PDF = defaults.PDF
	}
	if result.PageSize == "" {
		result.PageSize = defaults.PageSize
	}

	// Int fields: use default if zero
	if result.Width == 0 {
		result.Width = defaults.Width
	}
	if result.Height == 0 {
		result.Height = defaults.Height
	}
	if result.MaxLinesPerSection == 0 {
		result.MaxLinesPerSection = defaults.MaxLinesPerSection
	}
	if result.MaxCharsPerLine == 0 {
		result.MaxCharsPerLine = defaults.MaxCharsPerLine
	}
	if result.DPI == 0 {
		result.DPI = defaults.DPI
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.Retries == nil && defaults.Retries != nil {
		retries := *defaults.Retries
		result.Retries = &retries
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// TimeoutDuration returns the per-call model timeout, or fallback when
// Timeout is empty or invalid
func (c *Config) TimeoutDuration(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// RetryCount returns the configured retry count, or fallback when unset
func (c *Config) RetryCount(fallback int) int {
	if c.Retries == nil {
		return fallback
	}
	return *c.Retries
}

// BudgetOverride returns the configured layout budget, or nil when neither
// cap is set and the budget should follow the canvas
func (c *Config) BudgetOverride() *types.LayoutBudget {
	if c.MaxLinesPerSection == 0 && c.MaxCharsPerLine == 0 {
		return nil
	}
	budget := c.Budget()
	return &budget
}

// Budget returns the layout budget the config asks for. Zero fields keep
// the default budget's values.
func (c *Config) Budget() types.LayoutBudget {
	budget := types.DefaultLayoutBudget()
	if c.MaxLinesPerSection > 0 {
		budget.MaxLinesPerSection = c.MaxLinesPerSection
	}
	if c.MaxCharsPerLine > 0 {
		budget.MaxCharsPerLine = c.MaxCharsPerLine
	}
	return budget
}
