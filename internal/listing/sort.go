package listing

// SortField is a product column permitted for server-side ordering.
type SortField string

const (
	SortByName      SortField = "name"
	SortByQuantity  SortField = "quantity"
	SortByCreatedAt SortField = "createdAt"
)

// DefaultSortField is used when the caller supplies no sort field or one
// outside the whitelist: newest products first.
const DefaultSortField = SortByCreatedAt

// sortColumns maps each permitted sort field to its SQL column.
var sortColumns = map[SortField]string{
	SortByName:      "name",
	SortByQuantity:  "quantity",
	SortByCreatedAt: "created_at",
}

// ParseSortField resolves a raw sortBy value against the whitelist.
// Anything outside the whitelist is silently replaced with the default.
func ParseSortField(s string) SortField {
	f := SortField(s)
	if _, ok := sortColumns[f]; ok {
		return f
	}
	return DefaultSortField
}

// Column returns the SQL column for the field. The mapping is total:
// values outside the whitelist order by the default column.
func (f SortField) Column() string {
	if col, ok := sortColumns[f]; ok {
		return col
	}
	return sortColumns[DefaultSortField]
}

// SortOrder is a sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder resolves a raw sortOrder value: "asc" sorts ascending,
// anything else (including absent) descending.
func ParseSortOrder(s string) SortOrder {
	if s == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

// SQL returns the ORDER BY direction keyword.
func (o SortOrder) SQL() string {
	if o == SortAsc {
		return "ASC"
	}
	return "DESC"
}

// Toggle returns the opposite direction. Used by the UI to cycle a
// column's sort on repeated clicks.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}
