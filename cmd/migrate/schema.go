package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// withMigrator opens the database, runs fn and closes everything again
func withMigrator(ctx context.Context, fn func(m *migration.Migrator) error) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("SQL migrations need the postgres driver, got %q (sqlite databases are migrated by the server)", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := migration.New(db, migrationsPath, log)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return fn(m)
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(m *migration.Migrator) error { return m.Up(cmd.Context()) })
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(m *migration.Migrator) error { return m.Down(cmd.Context()) })
	},
}

var stepsCmd = &cobra.Command{
	Use:   "steps <n>",
	Short: "Apply n migrations; a negative n rolls back",
	Example: `  migrate steps 1
  migrate steps -- -1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n == 0 {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return withMigrator(cmd.Context(), func(m *migration.Migrator) error { return m.Steps(cmd.Context(), n) })
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <version>",
	Short: "Migrate up or down to a specific version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(cmd.Context(), func(m *migration.Migrator) error { return m.GoTo(cmd.Context(), uint(version)) })
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current migration version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(m *migration.Migrator) error {
			status, err := m.Status()
			if err != nil {
				return err
			}
			if status.Version == 0 {
				log.Info("No migrations applied")
				return nil
			}
			log.Info("Current migration version",
				zap.Uint("version", status.Version),
				zap.Bool("dirty", status.Dirty),
			)
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force <version>",
	Short: "Record a version without running migrations (clears the dirty flag)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(cmd.Context(), func(m *migration.Migrator) error { return m.Force(version) })
	},
}

var dropConfirmed bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop every table (requires --confirm)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !dropConfirmed {
			return fmt.Errorf("drop cancelled: rerun with --confirm to delete all data")
		}
		return withMigrator(cmd.Context(), func(m *migration.Migrator) error { return m.Drop() })
	},
}

var createCmd = &cobra.Command{
	Use:   "create <name> [description]",
	Short: "Create a new up/down migration pair",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := ""
		if len(args) > 1 {
			description = args[1]
		}
		mf, err := migration.CreateMigration(migrationsPath, args[0], description)
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the migrations found on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		migrations, err := migration.ListMigrations(migrationsPath)
		if err != nil {
			return err
		}
		if len(migrations) == 0 {
			log.Info("No migrations found")
			return nil
		}
		for _, m := range migrations {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	},
}

func init() {
	dropCmd.Flags().BoolVar(&dropConfirmed, "confirm", false, "confirm that all data will be lost")

	rootCmd.AddCommand(upCmd, downCmd, stepsCmd, gotoCmd, versionCmd, forceCmd, dropCmd, createCmd, listCmd)
}
