// Package listing implements the product listing query pipeline: the
// filter state controlling which products are shown, its query-string
// encoding and decoding, the sort-field whitelist, and pagination
// arithmetic. The same Filter value travels from UI links through the
// HTTP boundary down to the product store.
package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultLimit is the page size used when the request does not specify one.
const DefaultLimit = 10

// maxPage and maxLimit cap parsed values so offset arithmetic stays well
// inside integer range.
const (
	maxPage  = 1_000_000
	maxLimit = 10_000
)

// Filter is the full set of parameters controlling which products are
// listed and in what order and page. It is an immutable value: mutators
// return a new Filter rather than modifying in place.
type Filter struct {
	Page       int
	Limit      int
	Search     string
	Categories []string
	SortBy     string
	SortOrder  string
}

// DefaultFilter returns the initial filter state: first page, default page
// size, no search, no category filter, no explicit sort.
func DefaultFilter() Filter {
	return Filter{Page: 1, Limit: DefaultLimit}
}

// WithSearch returns a copy with the search text replaced. Changing the
// query invalidates the old page position, so the page resets to 1.
func (f Filter) WithSearch(search string) Filter {
	f.Search = search
	f.Page = 1
	return f
}

// WithPage returns a copy positioned on the given page. The rest of the
// filter is unchanged.
func (f Filter) WithPage(page int) Filter {
	f.Page = page
	return f
}

// WithCategories returns a copy with the category selection replaced and
// the page reset to 1.
func (f Filter) WithCategories(ids []string) Filter {
	f.Categories = ids
	f.Page = 1
	return f
}

// WithSorting returns a copy sorted by the given field and direction,
// replacing any previous sort and resetting the page to 1.
func (f Filter) WithSorting(field SortField, order SortOrder) Filter {
	f.SortBy = string(field)
	f.SortOrder = string(order)
	f.Page = 1
	return f
}

// Reset returns the default filter state.
func (f Filter) Reset() Filter {
	return DefaultFilter()
}

// Offset returns the number of rows skipped before the current page.
func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Query encodes the filter as URL query parameters. Empty search, empty
// category selection, and unset sort fields are omitted; category ids are
// comma-joined.
func (f Filter) Query() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.Limit))
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if len(f.Categories) > 0 {
		v.Set("categories", strings.Join(f.Categories, ","))
	}
	if f.SortBy != "" {
		v.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		v.Set("sortOrder", f.SortOrder)
	}
	return v
}

// Encode returns the filter as a raw query string, e.g. "limit=10&page=2".
func (f Filter) Encode() string {
	return f.Query().Encode()
}

// ParseFilter decodes query parameters into a Filter. Decoding never
// fails: missing or non-numeric page and limit fall back to 1 and
// DefaultLimit, a page below 1 is normalized to 1, oversized values clamp
// to maxPage and maxLimit, and categories accept both repeated parameters
// and comma-joined values with no validation (unknown ids simply match
// nothing).
//
// An explicit numeric limit <= 0 is passed through unchanged; the query
// engine rejects it rather than guessing a page size.
func ParseFilter(values url.Values) Filter {
	f := DefaultFilter()

	if n, err := strconv.Atoi(values.Get("page")); err == nil {
		f.Page = n
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > maxPage {
		f.Page = maxPage
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil {
		f.Limit = n
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	f.Search = values.Get("search")

	// Checkbox forms repeat the parameter; API clients comma-join it.
	for _, raw := range values["categories"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				f.Categories = append(f.Categories, id)
			}
		}
	}

	f.SortBy = values.Get("sortBy")
	f.SortOrder = values.Get("sortOrder")
	return f
}
