package listing

// Pagination describes the full filtered result set behind one page of
// products. It is computed fresh per request and never persisted.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// NewPagination computes page metadata for a filtered set. TotalPages is
// the ceiling of totalItems / limit, zero when the set is empty. A page
// beyond TotalPages is legal: it yields an empty data slice while the
// metadata still reflects the full set.
func NewPagination(totalItems, page, limit int) Pagination {
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return Pagination{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	}
}
