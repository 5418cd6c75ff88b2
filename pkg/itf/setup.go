// Package itf provides the scaffolding for tests that need a real
// PostgreSQL instance: a throwaway database per test, a pool wired into the
// context, and the embedded schema applied.
package itf

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/lioratech/mvp-web-sub001/pkg/application"
	"github.com/lioratech/mvp-web-sub001/pkg/composables"
	"github.com/lioratech/mvp-web-sub001/pkg/configuration"
	"github.com/lioratech/mvp-web-sub001/pkg/eventbus"
)

type TestEnvironment struct {
	Ctx  context.Context
	Pool *pgxpool.Pool
	App  application.Application
}

// Setup skips unless ITF_ENABLED is set, then creates a database named after
// the test, applies the schema of the given modules and returns a ready
// environment. The database is dropped on cleanup.
func Setup(t *testing.T, mods ...application.Module) *TestEnvironment {
	t.Helper()
	if os.Getenv("ITF_ENABLED") == "" {
		t.Skip("set ITF_ENABLED=1 to run database tests")
	}

	conf := configuration.Use()
	dbName := databaseName(t)
	createDatabase(t, &conf.Database, dbName)

	pool, err := pgxpool.New(context.Background(), connectionString(&conf.Database, dbName))
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	for _, m := range mods {
		if err := m.Register(app); err != nil {
			t.Fatalf("registering module %s: %v", m.Name(), err)
		}
	}
	if err := app.Migrations().Run(context.Background()); err != nil {
		t.Fatalf("applying schema: %v", err)
	}

	return &TestEnvironment{
		Ctx:  composables.WithPool(context.Background(), pool),
		Pool: pool,
		App:  app,
	}
}

func databaseName(t *testing.T) string {
	name := strings.ToLower(t.Name())
	name = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, name)
	return "itf_" + name
}

// createDatabase uses a plain database/sql admin connection: pgx pools
// cannot run CREATE DATABASE against a database that does not exist yet.
func createDatabase(t *testing.T, opts *configuration.DatabaseOptions, name string) {
	t.Helper()
	admin, err := sql.Open("postgres", connectionString(opts, "postgres"))
	if err != nil {
		t.Fatalf("opening admin connection: %v", err)
	}
	defer admin.Close()

	if _, err := admin.Exec("DROP DATABASE IF EXISTS " + name); err != nil {
		t.Fatalf("dropping stale test database: %v", err)
	}
	if _, err := admin.Exec("CREATE DATABASE " + name); err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() {
		admin, err := sql.Open("postgres", connectionString(opts, "postgres"))
		if err != nil {
			return
		}
		defer admin.Close()
		_, _ = admin.Exec("DROP DATABASE IF EXISTS " + name)
	})
}

func connectionString(opts *configuration.DatabaseOptions, dbName string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		opts.Host, opts.Port, opts.User, dbName, opts.Password,
	)
}
