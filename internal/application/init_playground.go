package application

import (
	"context"
	"fmt"

	"github.com/chzyer/readline"
	"github.com/neekrasov/esync/internal/playground"
)

// Playground - starts the interactive playground on the terminal.
func (a *Application) Playground(ctx context.Context) error {
	cfg := a.cfg.Playground
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init readline failed: %w", err)
	}

	pg := playground.New(cfg.Permits, rl)
	if _, err := rl.Write([]byte(playground.WrapOK(pg.Status()) + "\n")); err != nil {
		rl.Close()
		return err
	}

	return pg.Run(ctx, rl)
}
