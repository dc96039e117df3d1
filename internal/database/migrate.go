package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var sqlMigrations embed.FS

// Migrations returns the embedded schema migrations.
func Migrations() (*migrate.Migrations, error) {
	m := migrate.NewMigrations()
	if err := m.Discover(sqlMigrations); err != nil {
		return nil, fmt.Errorf("discover migrations: %w", err)
	}
	return m, nil
}

// MigrationStatus is one embedded migration and whether it has run.
type MigrationStatus struct {
	Name    string
	Comment string
	Applied bool
	GroupID int64
}

type Migrator struct {
	m    *migrate.Migrator
	logr *zap.Logger
}

func NewMigrator(db *bun.DB, logr *zap.Logger) (*Migrator, error) {
	migrations, err := Migrations()
	if err != nil {
		return nil, err
	}
	return &Migrator{m: migrate.NewMigrator(db, migrations), logr: logr}, nil
}

// Up applies all pending migrations as one group.
func (m *Migrator) Up(ctx context.Context) error {
	if err := m.m.Init(ctx); err != nil {
		return fmt.Errorf("init migrations table: %w", err)
	}
	if err := m.m.Lock(ctx); err != nil {
		return fmt.Errorf("lock migrations: %w", err)
	}
	defer m.unlock(ctx)

	group, err := m.m.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if group.IsZero() {
		m.logr.Info("no pending migrations")
		return nil
	}
	m.logr.Info("migrations applied", zap.String("group", group.String()))
	return nil
}

// Rollback reverts the last applied group.
func (m *Migrator) Rollback(ctx context.Context) error {
	if err := m.m.Init(ctx); err != nil {
		return fmt.Errorf("init migrations table: %w", err)
	}
	if err := m.m.Lock(ctx); err != nil {
		return fmt.Errorf("lock migrations: %w", err)
	}
	defer m.unlock(ctx)

	group, err := m.m.Rollback(ctx)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	if group.IsZero() {
		m.logr.Info("nothing to roll back")
		return nil
	}
	m.logr.Info("migrations rolled back", zap.String("group", group.String()))
	return nil
}

func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	if err := m.m.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations table: %w", err)
	}
	ms, err := m.m.MigrationsWithStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status: %w", err)
	}
	out := make([]MigrationStatus, 0, len(ms))
	for _, mg := range ms {
		out = append(out, MigrationStatus{
			Name:    mg.Name,
			Comment: mg.Comment,
			Applied: mg.IsApplied(),
			GroupID: mg.GroupID,
		})
	}
	return out, nil
}

func (m *Migrator) unlock(ctx context.Context) {
	if err := m.m.Unlock(ctx); err != nil {
		m.logr.Warn("failed to release migration lock", zap.Error(err))
	}
}
