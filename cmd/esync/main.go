package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/neekrasov/esync/internal/application"
	"github.com/neekrasov/esync/internal/config"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitHash   = "unset"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "esync",
		Short:        "Counting semaphore toolkit",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Path to config file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("esync version %s\nbuild time: %s\nhash: %s\n",
				version, buildTime, gitHash)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "stress",
		Short: "Hammer a semaphore with competing goroutines and verify its invariants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *application.Application) error {
				return app.Stress(ctx)
			})
		},
	})

	processCmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Count pattern occurrences per line with a bounded worker pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *application.Application) error {
				return app.Process(ctx, args[0])
			})
		},
	}
	rootCmd.AddCommand(processCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "playground",
		Short: "Drive a semaphore interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, app *application.Application) error {
				return app.Playground(ctx)
			})
		},
	})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, action func(context.Context, *application.Application) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.GetConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}

	app := application.New(&cfg, os.Stdout)
	if err := app.Init(); err != nil {
		return err
	}
	defer app.Close()

	return action(ctx, app)
}
