package listingview

import (
	"maps"
	"slices"
)

// FavoriteSet is an immutable set of listing ids. The zero value is empty and usable.
type FavoriteSet struct {
	ids map[string]struct{}
}

func NewFavoriteSet(ids ...string) FavoriteSet {
	set := FavoriteSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			set.ids[id] = struct{}{}
		}
	}
	return set
}

func (s FavoriteSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle returns a new set with id's membership flipped.
func (s FavoriteSet) Toggle(id string) FavoriteSet {
	next := FavoriteSet{ids: maps.Clone(s.ids)}
	if next.ids == nil {
		next.ids = map[string]struct{}{}
	}
	if _, ok := next.ids[id]; ok {
		delete(next.ids, id)
	} else if id != "" {
		next.ids[id] = struct{}{}
	}
	return next
}

func (s FavoriteSet) Len() int {
	return len(s.ids)
}

// IDs returns the members in lexical order.
func (s FavoriteSet) IDs() []string {
	return slices.Sorted(maps.Keys(s.ids))
}
