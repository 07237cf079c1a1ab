// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"stockroom/internal/database"
	"stockroom/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing, read from
// the environment with development defaults.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "stockroom")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "stockroom")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database, runs migrations, and
// seeds the category set. If the database is unavailable, the test is
// skipped. A cleanup function closes the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("failed to seed categories: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanProducts removes test products whose names match the given LIKE
// patterns. Call in t.Cleanup().
func cleanProducts(t *testing.T, db *sql.DB, patterns ...string) {
	t.Helper()
	for _, p := range patterns {
		db.Exec("DELETE FROM products WHERE name LIKE $1", p)
	}
}

// categoryID looks up a seeded category by name.
func categoryID(t *testing.T, db *sql.DB, name string) uuid.UUID {
	t.Helper()
	cs := NewCategoryStore(db)
	c, err := cs.FindByName(name)
	if err != nil {
		t.Fatalf("find category %q: %v", name, err)
	}
	if c == nil {
		t.Fatalf("category %q not seeded", name)
	}
	return c.ID
}

// mustCreate inserts a product or fails the test.
func mustCreate(t *testing.T, s *ProductStore, name string, quantity int, categories ...uuid.UUID) *models.Product {
	t.Helper()
	p, err := s.Create(name, "", quantity, categories)
	if err != nil {
		t.Fatalf("create product %q: %v", name, err)
	}
	return p
}
