// handler_test.go provides shared test infrastructure for handler tests.
// Tests that need PostgreSQL are skipped when it is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"stockroom/internal/database"
	"stockroom/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL, runs migrations, and
// seeds categories. Skips the test when the database is unreachable.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "stockroom")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "stockroom")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("seed: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// newTestAPI creates an API handler group backed by the test database.
func newTestAPI(t *testing.T) (*API, *sql.DB) {
	t.Helper()
	db := testDB(t)
	return NewAPI(store.NewProductStore(db), store.NewCategoryStore(db)), db
}

// cleanProducts removes test products whose names match the given LIKE
// patterns. Call in t.Cleanup().
func cleanProducts(t *testing.T, db *sql.DB, patterns ...string) {
	t.Helper()
	for _, p := range patterns {
		db.Exec("DELETE FROM products WHERE name LIKE $1", p)
	}
}

// seededCategoryID returns the id of a seeded category by name.
func seededCategoryID(t *testing.T, db *sql.DB, name string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := db.QueryRow("SELECT id FROM categories WHERE name = $1", name).Scan(&id); err != nil {
		t.Fatalf("category %q not seeded: %v", name, err)
	}
	return id
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
