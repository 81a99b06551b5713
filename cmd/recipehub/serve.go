package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matt-dz/recipehub/internal/api"
)

const setupTime = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(ctx, setupTime)
	defer cancel()
	e, err := bootstrap(setupCtx)
	if err != nil {
		return err
	}
	defer func() {
		if err := e.Close(); err != nil {
			e.Logger.Error("failed to release components", slog.Any("error", err))
		}
	}()

	if err := api.Start(ctx, e); err != nil {
		e.Logger.Error("API Failed", slog.Any("error", err))
		return err
	}
	return nil
}
