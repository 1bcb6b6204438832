package listingview

import (
	"cmp"
	"slices"

	"agrisolve/internal/domain/models"
)

// Compare orders a before b (negative), after b (positive) or as equal (zero) for key.
func Compare(a, b models.Listing, key SortKey) int {
	switch ParseSortKey(string(key)) {
	case SortPriceLow:
		return cmp.Compare(a.Price, b.Price)
	case SortPriceHigh:
		return cmp.Compare(b.Price, a.Price)
	case SortOldest:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return b.CreatedAt.Compare(a.CreatedAt)
	}
}

// SortRecords returns a stably sorted copy; recs is left untouched.
func SortRecords(recs []models.Listing, key SortKey) []models.Listing {
	out := slices.Clone(recs)
	slices.SortStableFunc(out, func(a, b models.Listing) int {
		return Compare(a, b, key)
	})
	return out
}
