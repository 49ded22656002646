package application

import (
	"fmt"
	"io"

	"github.com/neekrasov/esync/internal/config"
	"github.com/neekrasov/esync/pkg/logger"
	"go.uber.org/zap"
)

const defaultPrompt = "esync> "

// Application - wires the configuration, the logger and the runnable commands together.
type Application struct {
	cfg *config.Config
	out io.Writer
}

// New - creates and returns a new instance of Application, missing config sections get defaults.
func New(cfg *config.Config, out io.Writer) *Application {
	if cfg.Logging == nil {
		cfg.Logging = &config.LoggingConfig{Level: "info"}
	}

	if cfg.Stress == nil {
		cfg.Stress = &config.StressConfig{Permits: 1, Iterations: 1000}
	}

	if cfg.Process == nil {
		cfg.Process = &config.ProcessConfig{Workers: 1, Pattern: "a"}
	}

	if cfg.Playground == nil {
		cfg.Playground = &config.PlaygroundConfig{Permits: 1}
	}

	if cfg.Playground.Prompt == "" {
		cfg.Playground.Prompt = defaultPrompt
	}

	return &Application{cfg: cfg, out: out}
}

// Init - initializes the logger from the logging section.
func (a *Application) Init() error {
	if err := logger.InitLogger(a.cfg.Logging.Level, a.cfg.Logging.Output); err != nil {
		return fmt.Errorf("initialize logger failed: %w", err)
	}

	logger.Debug("application initialized", zap.String("log_level", a.cfg.Logging.Level))
	return nil
}

// Close - flushes the logger.
func (a *Application) Close() {
	// stdout/stderr syncing fails on terminals, nothing useful to report
	_ = logger.Sync()
}
