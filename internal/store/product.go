package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"stockroom/internal/listing"
	"stockroom/internal/models"
)

// ErrDuplicateName is returned by Create when the product name collides
// with an existing product.
var ErrDuplicateName = errors.New("product name already exists")

// ProductStore handles all product-related database operations.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, description, quantity, created_at, updated_at`

// scanProduct scans a product row into a Product struct.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Description, &p.Quantity, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List executes the product listing pipeline: count the full filtered set,
// select the sorted page slice, and resolve category references for the
// selected products. The caller must supply a positive limit.
func (s *ProductStore) List(f listing.Filter) ([]models.Product, listing.Pagination, error) {
	where, args := buildProductWhere(f)

	// The total reflects the whole filtered set, independent of pagination.
	var totalItems int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products`+where, args...).Scan(&totalItems)
	if err != nil {
		return nil, listing.Pagination{}, fmt.Errorf("count products: %w", err)
	}

	sortField := listing.ParseSortField(f.SortBy)
	sortOrder := listing.ParseSortOrder(f.SortOrder)

	// Sort column and direction come from the whitelist mapping, never
	// from request input. Ties break on id for a stable page order.
	query := fmt.Sprintf(`
		SELECT `+productColumns+`
		FROM products%s
		ORDER BY %s %s, id
		LIMIT $%d OFFSET $%d
	`, where, sortField.Column(), sortOrder.SQL(), len(args)+1, len(args)+2)

	pageArgs := append(append([]any{}, args...), f.Limit, f.Offset())
	rows, err := s.db.Query(query, pageArgs...)
	if err != nil {
		return nil, listing.Pagination{}, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, listing.Pagination{}, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, listing.Pagination{}, fmt.Errorf("list products: %w", err)
	}

	if err := s.attachCategories(products); err != nil {
		return nil, listing.Pagination{}, err
	}

	return products, listing.NewPagination(totalItems, f.Page, f.Limit), nil
}

// buildProductWhere translates the filter into a WHERE clause. Search is a
// case-insensitive substring match on name; a non-empty category selection
// matches products tagged with ANY of the selected categories. Category
// ids that are not valid UUIDs match nothing.
func buildProductWhere(f listing.Filter) (string, []any) {
	var conds []string
	var args []any

	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	if len(f.Categories) > 0 {
		var ids []uuid.UUID
		for _, raw := range f.Categories {
			if id, err := uuid.Parse(raw); err == nil {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			// Every supplied id was malformed: the filter matches nothing.
			conds = append(conds, "FALSE")
		} else {
			placeholders := make([]string, len(ids))
			for i, id := range ids {
				args = append(args, id)
				placeholders[i] = fmt.Sprintf("$%d", len(args))
			}
			conds = append(conds, fmt.Sprintf(
				"id IN (SELECT product_id FROM product_categories WHERE category_id IN (%s))",
				strings.Join(placeholders, ", "),
			))
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// attachCategories resolves category references for the given products in
// one query, preserving the order categories were attached. A reference
// whose category no longer exists resolves to the name "Unknown" instead
// of failing the read.
func (s *ProductStore) attachCategories(products []models.Product) error {
	for i := range products {
		products[i].Categories = []models.CategoryRef{}
	}
	if len(products) == 0 {
		return nil
	}

	placeholders := make([]string, len(products))
	args := make([]any, len(products))
	for i, p := range products {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = p.ID
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT pc.product_id, pc.category_id, COALESCE(c.name, 'Unknown')
		FROM product_categories pc
		LEFT JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id IN (%s)
		ORDER BY pc.product_id, pc.position
	`, strings.Join(placeholders, ", ")), args...)
	if err != nil {
		return fmt.Errorf("resolve categories: %w", err)
	}
	defer rows.Close()

	refs := make(map[uuid.UUID][]models.CategoryRef)
	for rows.Next() {
		var productID uuid.UUID
		var ref models.CategoryRef
		if err := rows.Scan(&productID, &ref.ID, &ref.Name); err != nil {
			return fmt.Errorf("scan category ref: %w", err)
		}
		refs[productID] = append(refs[productID], ref)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("resolve categories: %w", err)
	}

	for i := range products {
		if r, ok := refs[products[i].ID]; ok {
			products[i].Categories = r
		}
	}
	return nil
}

// Create inserts a new product with its category references and returns
// the product re-read from the store, so category names are resolved.
// Returns ErrDuplicateName if the name collides with an existing product.
func (s *ProductStore) Create(name, description string, quantity int, categoryIDs []uuid.UUID) (*models.Product, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRow(`
		INSERT INTO products (name, description, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, description, quantity).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	// Link categories in submitted order; duplicates in the request
	// collapse onto the first occurrence.
	for i, categoryID := range categoryIDs {
		_, err := tx.Exec(`
			INSERT INTO product_categories (product_id, category_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, id, categoryID, i)
		if err != nil {
			return nil, fmt.Errorf("link category %s: %w", categoryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create product: %w", err)
	}

	return s.FindByID(id)
}

// FindByID retrieves a product by its UUID with categories resolved.
// Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}

	products := []models.Product{*p}
	if err := s.attachCategories(products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// Delete removes a product by ID, reporting whether it existed. Absence is
// not an error at this layer; the handler decides how to surface it.
func (s *ProductStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return affected > 0, nil
}

// isUniqueViolation reports whether err is the products name uniqueness
// constraint firing.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
