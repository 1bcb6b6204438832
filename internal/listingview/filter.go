// Package listingview turns a listing snapshot plus a viewer's filter, sort and
// favorite choices into the list the marketplace renders.
//
// Everything here is a pure function of its inputs except Store, which holds the
// most recent snapshot fetched from the database.
package listingview

import (
	"strings"

	"agrisolve/internal/domain/models"
)

// AllSelector disables the category or location predicate.
const AllSelector = "all"

// SortKey orders the materialized list.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)

// ParseSortKey falls back to SortNewest for unknown input.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh:
		return k
	}
	return SortNewest
}

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseViewMode falls back to ViewGrid for unknown input.
func ParseViewMode(s string) ViewMode {
	if ViewMode(strings.ToLower(strings.TrimSpace(s))) == ViewList {
		return ViewList
	}
	return ViewGrid
}

// FilterState is the full set of viewer-chosen browse parameters.
type FilterState struct {
	Search   string   `json:"search"`
	Category string   `json:"category"`
	Location string   `json:"location"`
	Sort     SortKey  `json:"sort"`
	View     ViewMode `json:"view"`
}

// DefaultFilter matches everything, newest first, in grid mode.
func DefaultFilter() FilterState {
	return FilterState{
		Category: AllSelector,
		Location: AllSelector,
		Sort:     SortNewest,
		View:     ViewGrid,
	}
}

// Normalize fills every missing or unknown field with its default. The search text
// is kept verbatim so the substring rule sees exactly what the viewer typed.
func (f FilterState) Normalize() FilterState {
	f.Category = normalizeSelector(f.Category)
	f.Location = normalizeSelector(f.Location)
	f.Sort = ParseSortKey(string(f.Sort))
	f.View = ParseViewMode(string(f.View))
	return f
}

// Narrowing reports whether any predicate can exclude a record.
func (f FilterState) Narrowing() bool {
	f = f.Normalize()
	return f.Search != "" || f.Category != AllSelector || f.Location != AllSelector
}

// ClearFilters resets the predicates but keeps sort and view mode.
func (f FilterState) ClearFilters() FilterState {
	f.Search = ""
	f.Category = AllSelector
	f.Location = AllSelector
	return f.Normalize()
}

func normalizeSelector(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AllSelector
	}
	return s
}

// Match reports whether rec passes the search, category and location predicates.
func Match(rec models.Listing, f FilterState) bool {
	f = f.Normalize()
	return MatchSearch(f.Search, rec.Title, rec.Description, rec.SellerName) &&
		MatchSelector(rec.Category, f.Category) &&
		MatchSelector(rec.Location, f.Location)
}

// MatchSearch is true for an empty query or when any field contains it, ignoring case.
func MatchSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// MatchSelector uses containment rather than equality so a short token such as
// "grains" selects "Grains & Cereals".
func MatchSelector(value, selector string) bool {
	selector = normalizeSelector(selector)
	if selector == AllSelector {
		return true
	}
	return strings.Contains(strings.ToLower(value), selector)
}
