package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"dental-clinic/cmd/bootstrap"
	"dental-clinic/config"
	"dental-clinic/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "clinic",
		Short:         "Dental clinic management API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by every command.
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := bootstrap.NewLogger(cfg.App)
	log.Info("Configuration loaded successfully")
	return cfg, log, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			config.WatchLogLevel(log)

			app, err := bootstrap.New(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				return m.Up()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return errors.New("steps must be a positive number")
				}
				steps = n
			}
			return withMigrator(func(m *database.Migrator) error {
				return m.Down(steps)
			})
		},
	})

	return cmd
}

func withMigrator(run func(m *database.Migrator) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	db, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		return err
	}

	m, err := database.NewMigrator(db, log)
	if err != nil {
		return err
	}
	// Closing the migrator also closes the database connection.
	defer m.Close()

	return run(m)
}

func seedCmd() *cobra.Command {
	var admin bootstrap.AdminSeed

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert default settings and, optionally, an admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if admin.Username != "" && len(admin.Password) < 6 {
				return errors.New("--admin-password must be at least 6 characters")
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}

			db, err := database.NewPostgresConnection(cfg.DB, log)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			return bootstrap.Seed(context.Background(), db, log, admin)
		},
	}

	cmd.Flags().StringVar(&admin.Username, "admin-username", "", "Create an admin user with this username")
	cmd.Flags().StringVar(&admin.Password, "admin-password", "", "Password for the admin user")
	cmd.Flags().StringVar(&admin.FullName, "admin-name", "", "Full name for the admin user")

	return cmd
}
