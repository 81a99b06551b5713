package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/matt-dz/recipehub/internal/config"
	"github.com/matt-dz/recipehub/internal/env"
	"github.com/matt-dz/recipehub/internal/setup"
)

var root = &cobra.Command{
	Use:   "recipehub",
	Short: "RecipeHub - browse, collect and write recipes",
	Long: `RecipeHub serves the recipe browser API: search backed by Spoonacular,
per-profile favorites, liked and created recipes, and draft recovery.`,
	SilenceUsage: true,
}

func Execute() {
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	root.AddCommand(serveCmd)
	root.AddCommand(collectionCmd)
}

// bootstrap loads the configuration and assembles every component.
func bootstrap(ctx context.Context) (*env.Env, error) {
	conf, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := setup.Logger(&conf)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	e, err := setup.Env(ctx, &conf, logger)
	if err != nil {
		logger.Error("failed to set up components", slog.Any("error", err))
		return nil, err
	}
	return e, nil
}
