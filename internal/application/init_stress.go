package application

import (
	"context"
	"fmt"

	"github.com/neekrasov/esync/internal/stress"
)

// Stress - runs the stress harness and prints the report.
func (a *Application) Stress(ctx context.Context) error {
	cfg := a.cfg.Stress
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	report, err := stress.Run(ctx, stress.Config{
		Permits:    cfg.Permits,
		Workers:    cfg.Workers,
		Iterations: cfg.Iterations,
		MinHold:    cfg.MinHold,
		MaxHold:    cfg.MaxHold,
	})
	if err != nil {
		return fmt.Errorf("stress failed: %w", err)
	}

	_, err = fmt.Fprintf(a.out, "acquires: %d\nmax holders: %d/%d\nfinal permits: %d\nelapsed: %s\n",
		report.Acquires, report.MaxHolders, cfg.Permits, report.FinalPermits, report.Elapsed)
	return err
}
