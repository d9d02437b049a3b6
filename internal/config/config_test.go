package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Success(t *testing.T) {
	path := writeTempConfig(t, `{"gemini_api_key": "test-key"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)

	// Defaults fill in unspecified fields
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultRetryDelaySeconds, cfg.RetryDelaySeconds)
	assert.Equal(t, DefaultFetchTimeoutSeconds, cfg.FetchTimeoutSeconds)
	assert.Equal(t, DefaultMaxContentChars, cfg.MaxContentChars)
	assert.Equal(t, DefaultInputFile, cfg.InputFile)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeTempConfig(t, `{
		"gemini_api_key": "test-key",
		"max_retries": 5,
		"retry_delay_seconds": 1,
		"max_content_chars": 1000
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 1, cfg.RetryDelaySeconds)
	assert.Equal(t, 1000, cfg.MaxContentChars)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{"gemini_api_key": `)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_EnvFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	path := writeTempConfig(t, `{}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
}

func TestValidate_MissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	path := writeTempConfig(t, `{}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestValidate_PlaceholderKey(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "your-api-key-here"}
	cfg.applyDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placeholder")
}

func TestReadURLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://econ.example.edu/people\n\n  https://cs.example.edu/faculty  \n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := ReadURLList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://econ.example.edu/people",
		"https://cs.example.edu/faculty",
	}, urls)
}

func TestReadURLList_MissingFile(t *testing.T) {
	_, err := ReadURLList(filepath.Join(t.TempDir(), "urls.txt"))
	require.Error(t, err)
}
