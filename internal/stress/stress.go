package stress

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/neekrasov/esync/pkg/logger"
	"github.com/neekrasov/esync/pkg/sync"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvariantViolated - the semaphore admitted too many holders or lost permits.
var ErrInvariantViolated = errors.New("semaphore invariant violated")

// Config - parameters of a stress run.
type Config struct {
	Permits    int           // Initial permits of the semaphore under test.
	Workers    int           // Competing goroutines, 4*Permits when zero.
	Iterations int           // Acquire/release rounds per worker.
	MinHold    time.Duration // Shortest time a permit is held.
	MaxHold    time.Duration // Longest time a permit is held.
}

// Report - outcome of a stress run.
type Report struct {
	Acquires     int64
	MaxHolders   int64
	FinalPermits int
	Elapsed      time.Duration
}

// Run - hammers a fresh semaphore with Workers goroutines that repeatedly
// acquire it, hold it for a random duration and release it.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if cfg.Permits <= 0 {
		return Report{}, fmt.Errorf("permits must be positive, got %d", cfg.Permits)
	}

	if cfg.MaxHold < cfg.MinHold {
		return Report{}, fmt.Errorf("max hold %s is less than min hold %s", cfg.MaxHold, cfg.MinHold)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = 4 * cfg.Permits
	}

	logger.Info("stress run started",
		zap.Int("permits", cfg.Permits),
		zap.Int("workers", workers),
		zap.Int("iterations", cfg.Iterations))

	var (
		sem        = sync.NewSemaphore(cfg.Permits)
		ids        = sync.NewIDGenerator(0)
		holders    atomic.Int64
		maxHolders atomic.Int64
		acquires   atomic.Int64
		start      = time.Now()
	)

	group, groupCtx := errgroup.WithContext(ctx)
	for range workers {
		id := ids.Generate()
		group.Go(func() error {
			for i := 0; i < cfg.Iterations; i++ {
				if err := groupCtx.Err(); err != nil {
					return err
				}

				if err := sem.WaitContext(groupCtx); err != nil {
					return err
				}

				current := holders.Add(1)
				acquires.Add(1)
				updateMax(&maxHolders, current)

				time.Sleep(holdDuration(cfg.MinHold, cfg.MaxHold))

				holders.Add(-1)
				sem.Release()
			}

			logger.Debug("stress worker finished", zap.Int64("worker", id))
			return nil
		})
	}

	err := group.Wait()
	report := Report{
		Acquires:     acquires.Load(),
		MaxHolders:   maxHolders.Load(),
		FinalPermits: sem.AvailablePermits(),
		Elapsed:      time.Since(start),
	}

	if err != nil {
		return report, fmt.Errorf("stress run interrupted: %w", err)
	}

	if report.MaxHolders > int64(cfg.Permits) {
		return report, fmt.Errorf("%w: %d concurrent holders with %d permits",
			ErrInvariantViolated, report.MaxHolders, cfg.Permits)
	}

	if report.FinalPermits != cfg.Permits {
		return report, fmt.Errorf("%w: %d permits left of %d",
			ErrInvariantViolated, report.FinalPermits, cfg.Permits)
	}

	logger.Info("stress run finished",
		zap.Int64("acquires", report.Acquires),
		zap.Int64("max_holders", report.MaxHolders),
		zap.Duration("elapsed", report.Elapsed))

	return report, nil
}

func updateMax(peak *atomic.Int64, value int64) {
	for {
		prev := peak.Load()
		if value <= prev || peak.CompareAndSwap(prev, value) {
			return
		}
	}
}

func holdDuration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}

	return lo + rand.N(hi-lo+1)
}
