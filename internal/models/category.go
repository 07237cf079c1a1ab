package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a product tag. Categories are reference data seeded
// at startup; their lifetime is independent of any product.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
