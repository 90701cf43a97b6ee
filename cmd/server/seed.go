package main

import (
	"context"
	"time"

	"github.com/HYKY/hyky-services/internal/config"
	"github.com/HYKY/hyky-services/internal/domain/service"
	"github.com/HYKY/hyky-services/internal/infrastructure/db"
	"github.com/HYKY/hyky-services/internal/infrastructure/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultSeedTimeout = 30 * time.Second

type seedOptions struct {
	dir     string
	timeout time.Duration
	migrate bool
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	opts := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the bootstrap groups, permissions, roles and users",
		Long: `Loads user.groups.json, user.permissions.json, user.roles.json and
user.users.json from the seed directory. Tables that already hold rows are
skipped, so running it twice changes nothing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "seed directory (default seed.dir from config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", defaultSeedTimeout, "timeout for database operations")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "run migrations before seeding")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *seedOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger
	defer func() { _ = logger.Sync() }()

	dir := opts.dir
	if dir == "" {
		dir = cfg.Seed.Dir
	}
	bundle, err := seed.LoadDir(dir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	database, closeDB, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if opts.migrate {
		if err := db.Migrate(database.WithContext(ctx), logger); err != nil {
			return err
		}
	}

	hasher := service.NewPasswordHasher(cfg.Auth.Salt, cfg.Auth.HashCost)
	report, err := seed.NewSeeder(database, hasher, logger).Run(ctx, bundle)
	if err != nil {
		return err
	}

	logger.Info("Seed finished",
		zap.String("dir", dir),
		zap.Int("groups", report.Groups),
		zap.Int("permissions", report.Permissions),
		zap.Int("roles", report.Roles),
		zap.Int("users", report.Users),
		zap.Strings("skipped", report.Skipped),
	)
	return nil
}
