package application

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// MigrationManager collects per-module migration filesystems and applies
// them with goose, which records applied versions in goose_db_version so
// every migration runs exactly once per database.
type MigrationManager interface {
	RegisterSchema(fsys *embed.FS)
	Run(ctx context.Context) error
}

func NewMigrationManager(pool *pgxpool.Pool) MigrationManager {
	return &migrationManager{pool: pool}
}

type migrationManager struct {
	pool    *pgxpool.Pool
	schemas []*embed.FS
}

func (m *migrationManager) RegisterSchema(fsys *embed.FS) {
	m.schemas = append(m.schemas, fsys)
}

func (m *migrationManager) Run(ctx context.Context) error {
	if len(m.schemas) == 0 {
		return nil
	}
	// goose works on database/sql handles; this one borrows connections
	// from the pool and does not close it.
	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()

	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	defer goose.SetBaseFS(nil)

	for _, fsys := range m.schemas {
		dir, err := migrationsDir(fsys)
		if err != nil {
			return err
		}
		sub, err := fs.Sub(fsys, dir)
		if err != nil {
			return fmt.Errorf("failed to open migration dir %q: %w", dir, err)
		}
		goose.SetBaseFS(sub)
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return fmt.Errorf("failed to apply migrations in %q: %w", dir, err)
		}
	}
	return nil
}

// migrationsDir locates the directory holding a module's embedded .sql
// migration files.
func migrationsDir(fsys *embed.FS) (string, error) {
	var dir string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".sql") {
			dir = path.Dir(p)
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("error scanning migration files: %w", err)
	}
	if dir == "" {
		return "", fmt.Errorf("no .sql migration files embedded")
	}
	return dir, nil
}
