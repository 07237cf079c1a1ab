package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
)

// seedCategories is the fixed category set available for tagging products.
var seedCategories = []string{
	"Electronics",
	"Furniture",
	"Clothing",
	"Books",
	"Groceries",
	"Toys",
	"Automotive",
	"Beauty",
}

// Seed ensures the fixed category set exists. It upserts each category by
// name, so running it repeatedly (every startup) is a no-op once the
// categories are in place.
func Seed(db *sql.DB) error {
	for _, name := range seedCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name)
			VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, name)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}

	slog.Info("categories seeded", "count", len(seedCategories))
	return nil
}

// demoAdjectives and demoNouns combine into the sample product names
// inserted for development environments.
var demoAdjectives = []string{
	"Aluminum", "Bamboo", "Ceramic", "Compact", "Cordless",
	"Foldable", "Oak", "Steel", "Vintage", "Wireless",
}

var demoNouns = []string{
	"Backpack", "Bookshelf", "Desk Lamp", "Headphones", "Keyboard",
	"Monitor Stand", "Notebook", "Office Chair", "Toolbox", "Water Bottle",
}

// demoDescription marks rows created by the demo seeder.
const demoDescription = "Sample inventory item"

// SeedDemo fills an empty products table with sample inventory so the
// listing has data to show in development. Each product gets a random
// quantity and one or two random category tags. It is a no-op once any
// product exists.
func SeedDemo(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	categoryIDs, err := allCategoryIDs(db)
	if err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return fmt.Errorf("seed demo products: no categories to tag")
	}

	seeded := 0
	for _, adj := range demoAdjectives {
		for _, noun := range demoNouns {
			name := adj + " " + noun

			var productID uuid.UUID
			err := db.QueryRow(`
				INSERT INTO products (name, description, quantity)
				VALUES ($1, $2, $3)
				RETURNING id
			`, name, demoDescription, rand.Intn(100)).Scan(&productID)
			if err != nil {
				return fmt.Errorf("seed demo product %q: %w", name, err)
			}

			for pos, categoryID := range pickCategories(categoryIDs) {
				_, err := db.Exec(`
					INSERT INTO product_categories (product_id, category_id, position)
					VALUES ($1, $2, $3)
					ON CONFLICT DO NOTHING
				`, productID, categoryID, pos)
				if err != nil {
					return fmt.Errorf("tag demo product %q: %w", name, err)
				}
			}
			seeded++
		}
	}

	slog.Info("demo products seeded", "count", seeded)
	return nil
}

// allCategoryIDs returns every category id available for tagging.
func allCategoryIDs(db *sql.DB) ([]uuid.UUID, error) {
	rows, err := db.Query(`SELECT id FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// pickCategories selects one or two distinct random categories.
func pickCategories(ids []uuid.UUID) []uuid.UUID {
	first := rand.Intn(len(ids))
	picks := []uuid.UUID{ids[first]}
	if len(ids) > 1 && rand.Intn(2) == 1 {
		second := rand.Intn(len(ids))
		if second != first {
			picks = append(picks, ids[second])
		}
	}
	return picks
}
