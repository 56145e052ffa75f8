// Command migrate manages the SITINFRA database schema and seed data.
//
//	migrate up                          # apply pending migrations
//	migrate steps -1                    # roll back the last migration
//	migrate create add_vehicle_mileage  # new up/down pair in ./migrations
//	migrate seed --file seeds/demo.yaml # insert demo users, banks, equipment
//
// Connection settings come from config.toml and SITINFRA_* environment
// variables, like the server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

var (
	migrationsPath string
	logLevel       string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "SITINFRA database migration tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, err = logger.New(&logger.Config{
			Level:  logLevel,
			Format: "console",
			Output: "stdout",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		migrationsPath, err = resolveMigrationsPath(migrationsPath)
		if err != nil {
			return err
		}
		log.Debug("Migration CLI started",
			zap.String("command", cmd.Name()),
			zap.String("migrations_path", migrationsPath),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync(log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "migrations directory (default ./migrations)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveMigrationsPath returns an absolute path. Without --path it tries
// ./migrations, then the directory two levels above the executable.
func resolveMigrationsPath(path string) (string, error) {
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if exe, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve migrations path: %w", err)
	}
	return abs, nil
}
