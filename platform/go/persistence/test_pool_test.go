package persistence

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	sqlassets "github.com/tidenote/tidenote/database"
)

var coreSchemaOnce sync.Once
var coreSchemaStatements []string

// mustTestPool creates a test database connection pool and applies the embedded
// core schema DDL. Tests that need Postgres are skipped unless TEST_DATABASE_URL
// points at a disposable database (e.g. Testcontainers or a local instance).
func mustTestPool(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	url, ok := os.LookupEnv("TEST_DATABASE_URL")
	if !ok || url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres-backed test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("create test pool: %v", err)
	}

	if err := applyCoreSchemaDDL(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("apply core schema: %v", err)
	}

	cleanup := func() {
		pool.Close()
	}

	return pool, cleanup
}

// applyCoreSchemaDDL executes the embedded schema statements so tests can
// bootstrap a clean database without external migration tooling.
func applyCoreSchemaDDL(ctx context.Context, pool *pgxpool.Pool) error {
	coreSchemaOnce.Do(func() {
		for _, raw := range strings.Split(sqlassets.CoreSchemaSQL, ";") {
			stmt := strings.TrimSpace(raw)
			if stmt == "" {
				continue
			}
			coreSchemaStatements = append(coreSchemaStatements, stmt)
		}
	})

	for _, stmt := range coreSchemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
