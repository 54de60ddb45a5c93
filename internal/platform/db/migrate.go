package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/pressly/goose/v3/lock"
)

// NewMigrator builds a goose provider over the NNNN_name.sql files at the root
// of fsys. Concurrent runs from several processes are serialized by a
// PostgreSQL advisory lock held for the whole run.
func NewMigrator(sqlDB *sql.DB, fsys fs.FS) (*goose.Provider, error) {
	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return nil, fmt.Errorf("platform/db: migration lock: %w", err)
	}
	provider, err := goose.NewProvider(database.DialectPostgres, sqlDB, fsys, goose.WithSessionLocker(locker))
	if err != nil {
		return nil, fmt.Errorf("platform/db: load migrations: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration and returns the names of the files
// it applied, e.g. "0001_rent".
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) ([]string, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	provider, err := NewMigrator(sqlDB, fsys)
	if err != nil {
		return nil, err
	}

	results, err := provider.Up(ctx)
	applied := make([]string, 0, len(results))
	for _, r := range results {
		if r.Error == nil {
			applied = append(applied, MigrationName(r.Source))
		}
	}
	if err != nil {
		return applied, fmt.Errorf("platform/db: migrate: %w", err)
	}
	return applied, nil
}

// MigrationState reports whether one migration file has been applied.
type MigrationState struct {
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// MigrationStatus lists every migration in fsys with its applied state.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS) ([]MigrationState, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	provider, err := NewMigrator(sqlDB, fsys)
	if err != nil {
		return nil, err
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("platform/db: migration status: %w", err)
	}
	out := make([]MigrationState, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, MigrationState{
			Name:      MigrationName(st.Source),
			Applied:   st.State == goose.StateApplied,
			AppliedAt: st.AppliedAt,
		})
	}
	return out, nil
}

// MigrationName is the file name of src without its extension.
func MigrationName(src *goose.Source) string {
	if src == nil {
		return ""
	}
	name := path.Base(src.Path)
	return strings.TrimSuffix(name, path.Ext(name))
}
