package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stockroom/internal/handlers"
	"stockroom/internal/render"
)

// testRouter builds the router with a real renderer and nil stores —
// enough for routes that never touch the database.
func testRouter(t *testing.T) http.Handler {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	api := handlers.NewAPI(nil, nil)
	ui := handlers.NewUI(renderer, nil, nil)
	return New(api, ui)
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestStaticAssetsServed(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/static/app.css", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "product-table") {
		t.Error("stylesheet content missing")
	}
}

func TestListRejectsNonPositiveLimitThroughRouter(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=0", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
