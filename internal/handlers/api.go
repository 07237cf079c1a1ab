// Package handlers contains the HTTP handlers for the Stockroom inventory
// server. Handlers are grouped by concern (JSON API, HTML UI) and receive
// their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stockroom/internal/listing"
	"stockroom/internal/models"
	"stockroom/internal/store"
)

// API groups the JSON REST handlers for the inventory endpoints.
type API struct {
	products   *store.ProductStore
	categories *store.CategoryStore
}

// NewAPI creates a new API handler group with the given stores.
func NewAPI(products *store.ProductStore, categories *store.CategoryStore) *API {
	return &API{products: products, categories: categories}
}

// listResponse is the paginated product payload for GET /api/products.
type listResponse struct {
	Data       []models.Product   `json:"data"`
	Pagination listing.Pagination `json:"pagination"`
}

// ProductsList handles GET /api/products. Query parameters are normalized
// rather than rejected, with one exception: an explicit limit <= 0 would
// make the page count undefined, so it is invalid input.
func (a *API) ProductsList(w http.ResponseWriter, r *http.Request) {
	f := listing.ParseFilter(r.URL.Query())
	if f.Limit <= 0 {
		writeError(w, http.StatusBadRequest, "Limit must be a positive integer")
		return
	}

	products, pagination, err := a.products.List(f)
	if err != nil {
		slog.Error("list products failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Data: products, Pagination: pagination})
}

// createProductRequest is the POST /api/products body. Quantity decodes as
// json.Number so a missing or fractional value surfaces as a field-level
// validation message instead of a decode failure.
type createProductRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Quantity    json.Number `json:"quantity"`
	CategoryIDs []string    `json:"categoryIds"`
}

// ProductCreate handles POST /api/products. Validation rejects the request
// with all failing fields before any store mutation; a duplicate name is
// reported as a conflict.
func (a *API) ProductCreate(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quantity, quantityOK := parseQuantity(req.Quantity)
	errs := validateProduct(req.Name, quantity, quantityOK, req.CategoryIDs)
	ids, idsOK := parseCategoryIDs(req.CategoryIDs)
	if len(req.CategoryIDs) > 0 && !idsOK {
		errs = append(errs, "Category ids must be valid")
	}
	if len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	p, err := a.products.Create(strings.TrimSpace(req.Name), req.Description, quantity, ids)
	if err == store.ErrDuplicateName {
		writeError(w, http.StatusConflict, "Product name must be unique")
		return
	}
	if err != nil {
		slog.Error("create product failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// ProductDelete handles DELETE /api/products/{id}. A missing product is a
// 404, not a server fault; a malformed id cannot match anything.
func (a *API) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	existed, err := a.products.Delete(id)
	if err != nil {
		slog.Error("delete product failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if !existed {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// CategoriesList handles GET /api/products/categories.
func (a *API) CategoriesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	writeJSON(w, http.StatusOK, items)
}

// parseQuantity converts the decoded quantity. ok is false for an absent
// or non-integer value.
func parseQuantity(n json.Number) (int, bool) {
	if n == "" {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(v), true
}
