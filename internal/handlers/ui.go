package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stockroom/internal/listing"
	"stockroom/internal/models"
	"stockroom/internal/render"
	"stockroom/internal/store"
)

// UI groups the server-rendered inventory page handlers. The current
// filter state travels in the URL query string: every link the UI emits
// is an encoded Filter, so the browser holds the state and the server
// stays stateless.
type UI struct {
	renderer   *render.Renderer
	products   *store.ProductStore
	categories *store.CategoryStore
}

// NewUI creates a new UI handler group with the given dependencies.
func NewUI(renderer *render.Renderer, products *store.ProductStore, categories *store.CategoryStore) *UI {
	return &UI{renderer: renderer, products: products, categories: categories}
}

// column is a product table header cell. Sortable columns carry the link
// that cycles their sort direction.
type column struct {
	Label    string
	Sortable bool
	URL      string
	Active   bool
	Arrow    string
}

// pageLink is one button in the pagination control.
type pageLink struct {
	Number int
	URL    string
	Active bool
}

// categoryOption is a filter checkbox for one category.
type categoryOption struct {
	models.Category
	Selected bool
}

// ProductsPage renders the inventory listing with filters, sortable
// headers, and pagination. A store failure renders an inline error panel
// instead of replacing the page.
func (u *UI) ProductsPage(w http.ResponseWriter, r *http.Request) {
	f := listing.ParseFilter(r.URL.Query())
	if f.Limit <= 0 {
		f.Limit = listing.DefaultLimit
	}

	categories, err := u.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	loadError := false
	products, pagination, err := u.products.List(f)
	if err != nil {
		slog.Error("list products failed", "error", err)
		loadError = true
		products = nil
		pagination = listing.NewPagination(0, f.Page, f.Limit)
	}

	selected := make(map[string]bool, len(f.Categories))
	for _, id := range f.Categories {
		selected[id] = true
	}
	options := make([]categoryOption, len(categories))
	for i, c := range categories {
		options[i] = categoryOption{Category: c, Selected: selected[c.ID.String()]}
	}

	u.renderer.Page(w, "products", &render.PageData{
		Title: "Products",
		Data: map[string]any{
			"Products":   products,
			"Pagination": pagination,
			"Filter":     f,
			"Columns":    buildColumns(f),
			"Pages":      buildPages(f, pagination),
			"Categories": options,
			"LoadError":  loadError,
		},
	})
}

// buildColumns assembles the table header cells. Clicking an inactive
// sortable column sorts ascending; clicking the active one flips the
// direction. Either way the link lands on page 1.
func buildColumns(f listing.Filter) []column {
	sortable := []struct {
		label string
		field listing.SortField
	}{
		{"Product Name", listing.SortByName},
		{"Quantity", listing.SortByQuantity},
		{"Created Date", listing.SortByCreatedAt},
	}

	cols := make([]column, 0, 5)
	for i, sc := range sortable {
		active := f.SortBy == string(sc.field)
		order := listing.SortAsc
		arrow := ""
		if active {
			current := listing.ParseSortOrder(f.SortOrder)
			order = current.Toggle()
			if current == listing.SortAsc {
				arrow = "▲"
			} else {
				arrow = "▼"
			}
		}
		cols = append(cols, column{
			Label:    sc.label,
			Sortable: true,
			URL:      "/?" + f.WithSorting(sc.field, order).Encode(),
			Active:   active,
			Arrow:    arrow,
		})
		// Categories sits between the name and quantity columns and
		// never toggles sort.
		if i == 0 {
			cols = append(cols, column{Label: "Categories"})
		}
	}
	return append(cols, column{Label: "Actions"})
}

// buildPages renders one link per page number. Page links keep the rest
// of the filter untouched.
func buildPages(f listing.Filter, p listing.Pagination) []pageLink {
	if p.TotalPages < 2 {
		return nil
	}
	pages := make([]pageLink, p.TotalPages)
	for i := range pages {
		n := i + 1
		pages[i] = pageLink{
			Number: n,
			URL:    "/?" + f.WithPage(n).Encode(),
			Active: n == p.CurrentPage,
		}
	}
	return pages
}

// productForm holds submitted form values so a failed validation can
// re-render the form with the user's input intact.
type productForm struct {
	Name        string
	Description string
	Quantity    string
	Selected    map[string]bool
}

// ProductNewPage renders the create-product form.
func (u *UI) ProductNewPage(w http.ResponseWriter, r *http.Request) {
	u.renderProductForm(w, nil, &productForm{Selected: map[string]bool{}})
}

// ProductCreate handles the create-product form submission. Validation
// failures re-render the form listing every failing field.
func (u *UI) ProductCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := &productForm{
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
		Quantity:    r.PostForm.Get("quantity"),
		Selected:    map[string]bool{},
	}
	rawCategories := r.PostForm["categories"]
	for _, id := range rawCategories {
		form.Selected[id] = true
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(form.Quantity))
	quantityOK := err == nil

	errs := validateProduct(form.Name, quantity, quantityOK, rawCategories)
	ids, idsOK := parseCategoryIDs(rawCategories)
	if len(rawCategories) > 0 && !idsOK {
		errs = append(errs, "Category ids must be valid")
	}
	if len(errs) > 0 {
		u.renderProductForm(w, errs, form)
		return
	}

	_, err = u.products.Create(strings.TrimSpace(form.Name), form.Description, quantity, ids)
	if err == store.ErrDuplicateName {
		u.renderProductForm(w, []string{"Product name must be unique"}, form)
		return
	}
	if err != nil {
		slog.Error("create product failed", "error", err)
		u.renderProductForm(w, []string{"Something went wrong — the product was not saved"}, form)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderProductForm renders the create form with any validation errors.
func (u *UI) renderProductForm(w http.ResponseWriter, errs []string, form *productForm) {
	categories, err := u.categories.List()
	if err != nil {
		slog.Error("list categories failed", "error", err)
	}

	u.renderer.Page(w, "product_new", &render.PageData{
		Title: "Add Product",
		Data: map[string]any{
			"Categories": categories,
			"Errors":     errs,
			"Form":       form,
		},
	})
}

// ProductDeletePage renders the delete confirmation, keyed to the
// product's id and name. Cancel is a plain link back to the listing — no
// request is sent.
func (u *UI) ProductDeletePage(w http.ResponseWriter, r *http.Request) {
	p := u.findProduct(w, r)
	if p == nil {
		return
	}

	u.renderer.Page(w, "product_delete", &render.PageData{
		Title: "Delete Product",
		Data:  map[string]any{"Product": p},
	})
}

// ProductDelete handles the confirmed deletion and returns to the listing.
func (u *UI) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	existed, err := u.products.Delete(id)
	if err != nil {
		slog.Error("delete product failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !existed {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// findProduct loads the product addressed by the {id} URL parameter,
// writing a 404 and returning nil when it cannot.
func (u *UI) findProduct(w http.ResponseWriter, r *http.Request) *models.Product {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil
	}

	p, err := u.products.FindByID(id)
	if err != nil {
		slog.Error("find product failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	if p == nil {
		http.NotFound(w, r)
		return nil
	}
	return p
}
