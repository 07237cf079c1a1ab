package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// minProductNameLen is the minimum product name length after trimming.
const minProductNameLen = 3

// validateProduct checks create inputs and returns the messages for every
// failing field, not just the first. quantityOK is false when the quantity
// value was absent or not an integer.
func validateProduct(name string, quantity int, quantityOK bool, categoryIDs []string) []string {
	var errs []string

	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs = append(errs, "Product name is required")
	case utf8.RuneCountInString(name) < minProductNameLen:
		errs = append(errs, "Product name must be at least 3 characters long")
	}

	if !quantityOK || quantity < 0 {
		errs = append(errs, "Quantity must be a non-negative integer")
	}

	if len(categoryIDs) == 0 {
		errs = append(errs, "At least one category must be selected")
	}

	return errs
}

// parseCategoryIDs parses raw category ids into UUIDs. ok is false when
// any supplied id is malformed.
func parseCategoryIDs(raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
