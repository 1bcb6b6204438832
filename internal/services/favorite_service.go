package services

import (
	"context"
	"fmt"

	"agrisolve/internal/domain"
	"agrisolve/internal/domain/models"
	"agrisolve/internal/favorites"
	"agrisolve/internal/listingview"
	"agrisolve/internal/utils"
)

// FavoriteService toggles session favorites. Store failures are reported to the
// caller but never block browsing.
type FavoriteService struct {
	Store     favorites.Store
	Snapshot  *listingview.Store
	RequestID string
}

// Load returns an empty set alongside any store error.
func (s FavoriteService) Load(ctx context.Context, sessionID string) (listingview.FavoriteSet, error) {
	if sessionID == "" {
		return listingview.FavoriteSet{}, nil
	}
	set, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		utils.LogFailure(s.RequestID, "favorites", "load", err)
		return listingview.FavoriteSet{}, err
	}
	return set, nil
}

// Toggle flips one listing and reports whether it is now a favorite.
func (s FavoriteService) Toggle(ctx context.Context, sessionID, listingID string) (bool, error) {
	listingID = utils.TrimOrEmpty(listingID)
	if sessionID == "" {
		return false, domain.ValidationError{Field: "session", Msg: "session id required"}
	}
	if listingID == "" {
		return false, domain.ValidationError{Field: "listing_id", Msg: "listing id required"}
	}
	on, err := s.Store.Toggle(ctx, sessionID, listingID)
	if err != nil {
		utils.LogFailure(s.RequestID, "favorites", "toggle", err)
		return false, domain.InternalError{Msg: "favorites unavailable", Err: err}
	}
	utils.LogEvent(s.RequestID, "favorites", "toggle", fmt.Sprintf("listing_id=%s favorite=%t", listingID, on))
	return on, nil
}

// List resolves the session's favorites against the current snapshot.
// Ids whose listing no longer exists are skipped.
func (s FavoriteService) List(ctx context.Context, sessionID string) ([]string, []models.Listing, error) {
	set, err := s.Load(ctx, sessionID)
	if err != nil {
		return []string{}, []models.Listing{}, domain.InternalError{Msg: "favorites unavailable", Err: err}
	}
	out := []models.Listing{}
	if s.Snapshot != nil {
		for _, l := range s.Snapshot.Snapshot().Records {
			if set.Has(l.ID) {
				out = append(out, l)
			}
		}
	}
	return set.IDs(), out, nil
}
