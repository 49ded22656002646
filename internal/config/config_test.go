package config_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/neekrasov/esync/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		expected    config.Config
		expectError bool
	}{
		{
			name: "Valid YAML config",
			content: `
logging:
  level: "debug"
  output: "/log"
stress:
  permits: 2
  workers: 8
  iterations: 100
  min_hold: 1us
  max_hold: 21us
  timeout: 30s
process:
  workers: 3
  pattern: "ab"
playground:
  permits: 1
  prompt: "> "
`,
			expected: config.Config{
				Logging: &config.LoggingConfig{Level: "debug", Output: "/log"},
				Stress: &config.StressConfig{
					Permits:    2,
					Workers:    8,
					Iterations: 100,
					MinHold:    time.Microsecond,
					MaxHold:    21 * time.Microsecond,
					Timeout:    30 * time.Second,
				},
				Process:    &config.ProcessConfig{Workers: 3, Pattern: "ab"},
				Playground: &config.PlaygroundConfig{Permits: 1, Prompt: "> "},
			},
		},
		{
			name: "Invalid YAML config (Invalid time format)",
			content: `
stress:
  permits: 2
  min_hold: "invalid-time"
`,
			expectError: true,
		},
		{
			name: "Valid JSON config",
			content: `{
				"logging": {"level": "warn", "output": ""},
				"stress": {"permits": 1, "iterations": 10, "min_hold": "2us", "max_hold": 5000},
				"process": {"workers": 2, "pattern": "a"}
			}`,
			expected: config.Config{
				Logging: &config.LoggingConfig{Level: "warn"},
				Stress: &config.StressConfig{
					Permits:    1,
					Iterations: 10,
					MinHold:    2 * time.Microsecond,
					MaxHold:    5 * time.Microsecond,
				},
				Process: &config.ProcessConfig{Workers: 2, Pattern: "a"},
			},
		},
		{
			name:        "Invalid JSON config (Invalid time format)",
			content:     `{"stress": {"min_hold": "invalid-time"}}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.ParseConfig(io.NopCloser(bytes.NewReader([]byte(tt.content))))
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg         config.Config
		expectError bool
	}{
		"empty config": {
			cfg: config.Config{},
		},
		"negative stress permits": {
			cfg:         config.Config{Stress: &config.StressConfig{Permits: -1}},
			expectError: true,
		},
		"max hold below min hold": {
			cfg: config.Config{Stress: &config.StressConfig{
				Permits: 1, MinHold: time.Second, MaxHold: time.Millisecond,
			}},
			expectError: true,
		},
		"zero process workers": {
			cfg:         config.Config{Process: &config.ProcessConfig{}},
			expectError: true,
		},
		"negative playground permits": {
			cfg:         config.Config{Playground: &config.PlaygroundConfig{Permits: -3}},
			expectError: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := test.cfg.Validate()
			if test.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetConfig_Default(t *testing.T) {
	t.Parallel()

	cfg, err := config.GetConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Stress)
	assert.Equal(t, 4, cfg.Stress.Permits)
	assert.Equal(t, 16, cfg.Stress.Workers)
	assert.Equal(t, time.Microsecond, cfg.Stress.MinHold)
	assert.Equal(t, 20*time.Microsecond, cfg.Stress.MaxHold)
	require.NotNil(t, cfg.Process)
	assert.Equal(t, 4, cfg.Process.Workers)
	require.NotNil(t, cfg.Playground)
	assert.Equal(t, "esync> ", cfg.Playground.Prompt)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestGetConfigReader_FileExists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("test: value"), 0o600))

	reader, err := config.GetConfigReader(path)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "test: value", string(data))
}

func TestGetConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("process:\n  workers: 0\n"), 0o600))

	_, err := config.GetConfig(path)
	assert.Error(t, err)
}
