package application

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/neekrasov/esync/internal/compression"
	"github.com/neekrasov/esync/pkg/logger"
	"github.com/neekrasov/esync/pkg/workers"
	"go.uber.org/zap"
)

// Process - counts pattern occurrences in every line of the file with a bounded worker pool.
// Compressed inputs are recognised by their extension.
func (a *Application) Process(ctx context.Context, path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}

	pattern := a.cfg.Process.Pattern
	logger.Debug("processing file",
		zap.String("path", path),
		zap.Int("lines", len(lines)),
		zap.Int("workers", a.cfg.Process.Workers))

	counts, err := workers.ProcessContext(ctx, lines, func(ctx context.Context, line string) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return strings.Count(line, pattern), nil
	}, a.cfg.Process.Workers)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	_, err = fmt.Fprintf(a.out, "lines: %d\noccurrences of %q: %d\n", len(lines), pattern, total)
	return err
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input failed: %w", err)
	}
	defer f.Close()

	reader, err := compression.NewReader(f, compression.TypeFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("open decompressor failed: %w", err)
	}
	defer reader.Close()

	var lines []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input failed: %w", err)
	}

	return lines, nil
}
