package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Logging    *LoggingConfig    `yaml:"logging" json:"logging"`
		Stress     *StressConfig     `yaml:"stress" json:"stress"`
		Process    *ProcessConfig    `yaml:"process" json:"process"`
		Playground *PlaygroundConfig `yaml:"playground" json:"playground"`
	}

	LoggingConfig struct {
		Level  string `yaml:"level" json:"level"`
		Output string `yaml:"output" json:"output"`
	}

	StressConfig struct {
		Permits    int           `yaml:"permits" json:"permits"`
		Workers    int           `yaml:"workers" json:"workers"`
		Iterations int           `yaml:"iterations" json:"iterations"`
		MinHold    time.Duration `yaml:"min_hold" json:"min_hold"`
		MaxHold    time.Duration `yaml:"max_hold" json:"max_hold"`
		Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	}

	ProcessConfig struct {
		Workers int    `yaml:"workers" json:"workers"`
		Pattern string `yaml:"pattern" json:"pattern"`
	}

	PlaygroundConfig struct {
		Permits     int    `yaml:"permits" json:"permits"`
		Prompt      string `yaml:"prompt" json:"prompt"`
		HistoryFile string `yaml:"history_file" json:"history_file"`
	}
)

// jsonDuration accepts both Go duration strings and integer nanoseconds.
type jsonDuration time.Duration

func (d *jsonDuration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = jsonDuration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = jsonDuration(parsed)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}

	return nil
}

func (c *StressConfig) UnmarshalJSON(b []byte) error {
	var raw struct {
		Permits    int          `json:"permits"`
		Workers    int          `json:"workers"`
		Iterations int          `json:"iterations"`
		MinHold    jsonDuration `json:"min_hold"`
		MaxHold    jsonDuration `json:"max_hold"`
		Timeout    jsonDuration `json:"timeout"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*c = StressConfig{
		Permits:    raw.Permits,
		Workers:    raw.Workers,
		Iterations: raw.Iterations,
		MinHold:    time.Duration(raw.MinHold),
		MaxHold:    time.Duration(raw.MaxHold),
		Timeout:    time.Duration(raw.Timeout),
	}

	return nil
}

// Validate - checks values that would make the semaphore or the worker pool panic.
func (c *Config) Validate() error {
	var errs []error
	if c.Stress != nil {
		if c.Stress.Permits < 0 {
			errs = append(errs, fmt.Errorf("stress.permits must not be negative, got %d", c.Stress.Permits))
		}
		if c.Stress.Workers < 0 {
			errs = append(errs, fmt.Errorf("stress.workers must not be negative, got %d", c.Stress.Workers))
		}
		if c.Stress.MaxHold < c.Stress.MinHold {
			errs = append(errs, fmt.Errorf("stress.max_hold %s is less than stress.min_hold %s",
				c.Stress.MaxHold, c.Stress.MinHold))
		}
	}

	if c.Process != nil && c.Process.Workers <= 0 {
		errs = append(errs, fmt.Errorf("process.workers must be positive, got %d", c.Process.Workers))
	}

	if c.Playground != nil && c.Playground.Permits < 0 {
		errs = append(errs, fmt.Errorf("playground.permits must not be negative, got %d", c.Playground.Permits))
	}

	return errors.Join(errs...)
}

func GetConfig(path string) (Config, error) {
	configContent, err := GetConfigReader(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := ParseConfig(configContent)
	if err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func ParseConfig(input io.ReadCloser) (Config, error) {
	defer input.Close()

	content, err := io.ReadAll(input)
	if err != nil {
		return Config{}, fmt.Errorf("cant read config: %w", err)
	}

	var parseErr strings.Builder
	for _, parser := range []func([]byte, *Config) error{yamlParser, jsonParser} {
		var cfg Config
		if err = parser(content, &cfg); err == nil {
			return cfg, nil
		}
		_, _ = parseErr.WriteString(fmt.Sprintf("Error parsing config: %s\n", err.Error()))
	}

	return Config{}, errors.New(parseErr.String())
}

func yamlParser(input []byte, config *Config) error {
	if err := yaml.Unmarshal(input, config); err != nil {
		return fmt.Errorf("cant decode yaml config: %w", err)
	}

	return nil
}

func jsonParser(input []byte, config *Config) error {
	if err := json.Unmarshal(input, config); err != nil {
		return fmt.Errorf("cant decode json config: %w", err)
	}

	return nil
}
