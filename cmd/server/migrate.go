package main

import (
	"context"
	"time"

	"github.com/HYKY/hyky-services/internal/config"
	"github.com/HYKY/hyky-services/internal/infrastructure/db"
	"github.com/spf13/cobra"
)

const defaultMigrateTimeout = 2 * time.Minute

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			defer func() { _ = cfg.Logger.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			database, closeDB, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := db.Migrate(database.WithContext(ctx), cfg.Logger); err != nil {
				return err
			}
			cmd.Println("Migrations applied")
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultMigrateTimeout, "timeout for database operations")

	return cmd
}
