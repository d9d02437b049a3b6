// Package config provides configuration loading and validation for the CLI.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when the config file leaves a field unset.
const (
	DefaultMaxRetries          = 3
	DefaultRetryDelaySeconds   = 2
	DefaultFetchTimeoutSeconds = 30
	DefaultMaxContentChars     = 50000
	DefaultInputFile           = "urls.txt"
	DefaultOutputDir           = "output"
)

// Config represents the scraper configuration loaded from a JSON file.
// Only the Gemini API key is mandatory; everything else has defaults.
type Config struct {
	GeminiAPIKey string `json:"gemini_api_key" validate:"required"`

	MaxRetries          int `json:"max_retries,omitempty" validate:"gte=0"`
	RetryDelaySeconds   int `json:"retry_delay_seconds,omitempty" validate:"gte=0"`
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty" validate:"gte=0"`
	MaxContentChars     int `json:"max_content_chars,omitempty" validate:"gte=0"`

	InputFile string `json:"input_file,omitempty"`
	OutputDir string `json:"output_dir,omitempty"`
}

// LoadConfig loads configuration from a JSON file and fills in defaults.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills unset fields with package defaults.
// The API key is additionally read from the GEMINI_API_KEY environment
// variable when absent from the file.
func (c *Config) applyDefaults() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelaySeconds == 0 {
		c.RetryDelaySeconds = DefaultRetryDelaySeconds
	}
	if c.FetchTimeoutSeconds == 0 {
		c.FetchTimeoutSeconds = DefaultFetchTimeoutSeconds
	}
	if c.MaxContentChars == 0 {
		c.MaxContentChars = DefaultMaxContentChars
	}
	if c.InputFile == "" {
		c.InputFile = DefaultInputFile
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// Validate checks that the configuration has valid values.
// A missing or placeholder API key is fatal at startup.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.GeminiAPIKey == "your-api-key-here" {
		return fmt.Errorf("config error: 'gemini_api_key' is still the placeholder value")
	}
	return nil
}

// ReadURLList reads a newline-delimited list of absolute URLs.
// Blank lines and surrounding whitespace are ignored; order is preserved.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL list %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list %s: %w", path, err)
	}

	return urls, nil
}
