package main

import (
	"context"
	"os"
	"time"

	"github.com/HYKY/hyky-services/internal/config"
	"github.com/HYKY/hyky-services/internal/infrastructure/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// configDir overrides CONFIG_PATH for every subcommand.
var configDir string

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hyky-services",
		Short: "HYKY : Services - authentication API",
		Long: `HYKY : Services issues and checks session tokens for HYKY clients.
Run "serve" to start the HTTP and gRPC servers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configDir != "" {
				return os.Setenv("CONFIG_PATH", configDir)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configDir, "config", "", "directory holding services.yaml")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())

	return cmd
}

// openDatabase connects to postgres alone, for commands that do not need
// redis.
func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, func(), error) {
	database, err := db.NewPostgresDB(ctx, db.Config{
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		SlowThreshold:   time.Duration(cfg.Database.SlowThreshold) * time.Millisecond,
		Debug:           cfg.Server.HTTP.Debug,
	}, cfg.Logger)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		sqlDB, err := database.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			cfg.Logger.Warn("Failed to close database", zap.Error(err))
		}
	}
	return database, closeFn, nil
}
