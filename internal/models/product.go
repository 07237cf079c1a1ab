package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents an inventory item. Categories carries the resolved
// {id, name} pairs in the order they were attached to the product.
type Product struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Quantity    int           `json:"quantity"`
	Categories  []CategoryRef `json:"categories"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// CategoryRef is a resolved category reference attached to a product.
// When the referenced category no longer exists, Name is "Unknown" —
// a dangling reference never fails a product read.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
