package listing

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseFilterDefaults(t *testing.T) {
	f := ParseFilter(url.Values{})

	if f.Page != 1 {
		t.Errorf("Page = %d, want 1", f.Page)
	}
	if f.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", f.Limit, DefaultLimit)
	}
	if f.Search != "" {
		t.Errorf("Search = %q, want empty", f.Search)
	}
	if len(f.Categories) != 0 {
		t.Errorf("Categories = %v, want none", f.Categories)
	}
	if f.SortBy != "" || f.SortOrder != "" {
		t.Errorf("sort = %q/%q, want unset", f.SortBy, f.SortOrder)
	}
}

func TestParseFilterNormalizes(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"non-numeric page", "page=abc&limit=20", 1, 20},
		{"non-numeric limit", "page=3&limit=xyz", 3, DefaultLimit},
		{"zero page", "page=0", 1, DefaultLimit},
		{"negative page", "page=-5", 1, DefaultLimit},
		{"empty values", "page=&limit=", 1, DefaultLimit},
		// Explicit non-positive limit passes through for the engine to reject.
		{"zero limit passes through", "limit=0", 1, 0},
		{"negative limit passes through", "limit=-2", 1, -2},
		// Oversized values clamp instead of overflowing the offset math.
		{"huge page clamps", "page=9223372036854775807", maxPage, DefaultLimit},
		{"huge limit clamps", "limit=9223372036854775807", 1, maxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			f := ParseFilter(v)
			if f.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", f.Page, tt.wantPage)
			}
			if f.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", f.Limit, tt.wantLimit)
			}
		})
	}
}

func TestParseFilterCategories(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "cat1", []string{"cat1"}},
		{"multiple", "catA,catB", []string{"catA", "catB"}},
		{"stray commas", ",catA,,catB,", []string{"catA", "catB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := url.Values{}
			if tt.raw != "" {
				v.Set("categories", tt.raw)
			}
			f := ParseFilter(v)
			if !reflect.DeepEqual(f.Categories, tt.want) {
				t.Errorf("Categories = %v, want %v", f.Categories, tt.want)
			}
		})
	}

	// Checkbox forms repeat the parameter instead of comma-joining.
	t.Run("repeated parameters", func(t *testing.T) {
		v := url.Values{"categories": {"catA", "catB"}}
		f := ParseFilter(v)
		if !reflect.DeepEqual(f.Categories, []string{"catA", "catB"}) {
			t.Errorf("Categories = %v", f.Categories)
		}
	})
}

func TestMutatorsResetPage(t *testing.T) {
	base := DefaultFilter().WithPage(4)

	if got := base.WithSearch("widget"); got.Page != 1 {
		t.Errorf("WithSearch: Page = %d, want 1", got.Page)
	}
	if got := base.WithCategories([]string{"c1"}); got.Page != 1 {
		t.Errorf("WithCategories: Page = %d, want 1", got.Page)
	}
	if got := base.WithSorting(SortByName, SortAsc); got.Page != 1 {
		t.Errorf("WithSorting: Page = %d, want 1", got.Page)
	}
	if got := base.WithPage(7); got.Page != 7 {
		t.Errorf("WithPage: Page = %d, want 7", got.Page)
	}
}

func TestMutatorsDoNotShareState(t *testing.T) {
	base := DefaultFilter().WithSearch("chair")
	derived := base.WithSearch("table")

	if base.Search != "chair" {
		t.Errorf("base mutated: Search = %q", base.Search)
	}
	if derived.Search != "table" {
		t.Errorf("derived Search = %q", derived.Search)
	}
}

func TestReset(t *testing.T) {
	f := DefaultFilter().
		WithSearch("desk").
		WithCategories([]string{"c1", "c2"}).
		WithSorting(SortByQuantity, SortAsc).
		WithPage(3)

	got := f.Reset()
	if !reflect.DeepEqual(got, DefaultFilter()) {
		t.Errorf("Reset() = %+v, want defaults", got)
	}
}

func TestQueryEncoding(t *testing.T) {
	f := Filter{
		Page:       2,
		Limit:      25,
		Search:     "lamp",
		Categories: []string{"c1", "c2"},
		SortBy:     "quantity",
		SortOrder:  "asc",
	}

	v := f.Query()
	if v.Get("page") != "2" || v.Get("limit") != "25" {
		t.Errorf("page/limit = %q/%q", v.Get("page"), v.Get("limit"))
	}
	if v.Get("search") != "lamp" {
		t.Errorf("search = %q", v.Get("search"))
	}
	if v.Get("categories") != "c1,c2" {
		t.Errorf("categories = %q", v.Get("categories"))
	}
	if v.Get("sortBy") != "quantity" || v.Get("sortOrder") != "asc" {
		t.Errorf("sort = %q/%q", v.Get("sortBy"), v.Get("sortOrder"))
	}
}

func TestQueryOmitsEmptyFields(t *testing.T) {
	v := DefaultFilter().Query()

	for _, key := range []string{"search", "categories", "sortBy", "sortOrder"} {
		if _, ok := v[key]; ok {
			t.Errorf("query contains %q for default filter", key)
		}
	}
	if _, ok := v["page"]; !ok {
		t.Error("query missing page")
	}
	if _, ok := v["limit"]; !ok {
		t.Error("query missing limit")
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	f := Filter{
		Page:       3,
		Limit:      10,
		Search:     "office chair",
		Categories: []string{"catA", "catB"},
		SortBy:     "name",
		SortOrder:  "asc",
	}

	v, err := url.ParseQuery(f.Encode())
	if err != nil {
		t.Fatalf("parse encoded query: %v", err)
	}
	got := ParseFilter(v)
	if !reflect.DeepEqual(got, f) {
		t.Errorf("round trip = %+v, want %+v", got, f)
	}
}

func TestOffsetStaysNonNegativeAtExtremes(t *testing.T) {
	v, err := url.ParseQuery("page=9223372036854775807&limit=9223372036854775807")
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	f := ParseFilter(v)
	if got := f.Offset(); got < 0 {
		t.Errorf("Offset() = %d, want non-negative", got)
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
	}
	for _, tt := range tests {
		f := Filter{Page: tt.page, Limit: tt.limit}
		if got := f.Offset(); got != tt.want {
			t.Errorf("Offset(page=%d, limit=%d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}
