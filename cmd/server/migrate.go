package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artem13815/hr-trainer/pkg/config"
	"github.com/artem13815/hr-trainer/pkg/logger"
	"github.com/artem13815/hr-trainer/pkg/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply or inspect database migrations",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	command := "up"
	if len(args) == 1 {
		command = args[0]
	}
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return postgres.Migrate(ctx, cfg.DatabaseURL, command, log)
}
