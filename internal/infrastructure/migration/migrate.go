// Package migration applies the SQL schema in migrations/ with golang-migrate
// and loads YAML seed data.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// statementTimeout bounds a single migration statement
const statementTimeout = 5 * time.Minute

// Migrator applies the SQL migrations to a PostgreSQL database
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.Logger
}

// Status is the schema version recorded in schema_migrations. Version 0
// means nothing was applied yet.
type Status struct {
	Version uint
	Dirty   bool
}

// migrateLogger routes golang-migrate's progress lines to zap at debug level
type migrateLogger struct{ log *zap.Logger }

func (l migrateLogger) Printf(format string, v ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return l.log.Core().Enabled(zap.DebugLevel)
}

// New reads migrations from dir and applies them through db. Close closes db.
func New(db *sql.DB, dir string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{StatementTimeout: statementTimeout})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("open migrations in %s: %w", dir, err)
	}
	m.Log = migrateLogger{logger.Named("migrate")}
	return &Migrator{migrate: m, logger: logger}, nil
}

// run executes step, asking golang-migrate to stop after the current
// migration once ctx is done. ErrNoChange is not an error.
func (m *Migrator) run(ctx context.Context, action string, step func() error) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.migrate.GracefulStop <- true
		case <-done:
		}
	}()

	switch err := step(); {
	case errors.Is(err, migrate.ErrNoChange):
		m.logger.Info("No migrations to apply", zap.String("action", action))
		return nil
	case err != nil:
		return fmt.Errorf("migrate %s: %w", action, err)
	}

	status, err := m.Status()
	if err != nil {
		return err
	}
	m.logger.Info("Migration completed",
		zap.String("action", action),
		zap.Uint("version", status.Version),
		zap.Bool("dirty", status.Dirty),
	)
	return ctx.Err()
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, "up", m.migrate.Up)
}

func (m *Migrator) Down(ctx context.Context) error {
	return m.run(ctx, "down", m.migrate.Down)
}

// Steps applies n migrations; negative n rolls back
func (m *Migrator) Steps(ctx context.Context, n int) error {
	return m.run(ctx, fmt.Sprintf("steps %d", n), func() error { return m.migrate.Steps(n) })
}

// GoTo migrates up or down to version
func (m *Migrator) GoTo(ctx context.Context, version uint) error {
	return m.run(ctx, fmt.Sprintf("goto %d", version), func() error { return m.migrate.Migrate(version) })
}

func (m *Migrator) Status() (Status, error) {
	version, dirty, err := m.migrate.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return Status{}, nil
	case err != nil:
		return Status{}, fmt.Errorf("read migration version: %w", err)
	}
	return Status{Version: version, Dirty: dirty}, nil
}

// Force records version without running any migration. It clears the dirty
// flag after a failed migration was repaired by hand.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every table, schema_migrations included
func (m *Migrator) Drop() error {
	m.logger.Warn("Dropping all tables")
	if err := m.migrate.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

// Close releases the source and the database connection
func (m *Migrator) Close() error {
	return errors.Join(m.migrate.Close())
}
