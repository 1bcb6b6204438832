package listingview

import "agrisolve/internal/domain/models"

// State tells the caller which of the mutually exclusive render states applies.
type State string

const (
	StateLoading   State = "loading"
	StateReady     State = "ready"
	StateNoRecords State = "no-records"
	StateNoMatches State = "no-matches"
)

// Item is one rendered listing. Favorite is display metadata only.
type Item struct {
	models.Listing
	Favorite bool `json:"favorite"`
}

// Counts are summary numbers for the page header. Only Filtered looks at the
// filtered list; the rest describe the whole snapshot.
type Counts struct {
	Total      int `json:"total"`
	Filtered   int `json:"filtered"`
	Categories int `json:"categories"`
	Locations  int `json:"locations"`
}

type Result struct {
	Items  []Item      `json:"items"`
	Counts Counts      `json:"counts"`
	Filter FilterState `json:"filter"`
	State  State       `json:"state"`
}

// Materialize filters records, sorts the survivors and flags favorites.
func Materialize(records []models.Listing, f FilterState, favs FavoriteSet) Result {
	f = f.Normalize()

	filtered := make([]models.Listing, 0, len(records))
	for _, rec := range records {
		if Match(rec, f) {
			filtered = append(filtered, rec)
		}
	}
	sorted := SortRecords(filtered, f.Sort)

	items := make([]Item, len(sorted))
	for i, rec := range sorted {
		items[i] = Item{Listing: rec, Favorite: favs.Has(rec.ID)}
	}

	res := Result{
		Items:  items,
		Counts: countRecords(records, len(items)),
		Filter: f,
		State:  StateReady,
	}
	switch {
	case len(records) == 0:
		res.State = StateNoRecords
	case len(items) == 0:
		res.State = StateNoMatches
	}
	return res
}

// MaterializeLoading is the result while the snapshot has not been fetched yet.
func MaterializeLoading(f FilterState) Result {
	return Result{
		Items:  []Item{},
		Filter: f.Normalize(),
		State:  StateLoading,
	}
}

// Reflag applies a new favorite set without recomputing membership or order.
func (r Result) Reflag(favs FavoriteSet) Result {
	items := make([]Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = Item{Listing: it.Listing, Favorite: favs.Has(it.ID)}
	}
	r.Items = items
	return r
}

func countRecords(records []models.Listing, filtered int) Counts {
	categories := map[string]struct{}{}
	locations := map[string]struct{}{}
	for _, rec := range records {
		categories[rec.Category] = struct{}{}
		locations[rec.Location] = struct{}{}
	}
	return Counts{
		Total:      len(records),
		Filtered:   filtered,
		Categories: len(categories),
		Locations:  len(locations),
	}
}
