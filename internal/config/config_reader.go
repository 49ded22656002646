package config

import (
	"io"
	"os"
	"strings"
)

const defaultConfigYaml = `logging:
  level: "info"
  output: ""
stress:
  permits: 4
  workers: 16
  iterations: 1000
  min_hold: 1us
  max_hold: 20us
  timeout: 1m
process:
  workers: 4
  pattern: "a"
playground:
  permits: 1
  prompt: "esync> "
  history_file: ""
`

// GetConfigReader - opens the config file, falling back to the built-in defaults when it does not exist.
func GetConfigReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}

	if !os.IsNotExist(err) {
		return nil, err
	}

	return io.NopCloser(strings.NewReader(defaultConfigYaml)), nil
}
