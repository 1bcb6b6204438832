package services

import (
	"context"
	"fmt"
	"time"

	"agrisolve/internal/domain"
	"agrisolve/internal/domain/models"
	"agrisolve/internal/listingview"
	"agrisolve/internal/utils"
)

// ListingStore is the persistence the marketplace needs.
type ListingStore interface {
	List(ctx context.Context) ([]models.Listing, error)
	ListBySeller(ctx context.Context, sellerID string) ([]models.Listing, error)
	GetByID(ctx context.Context, id string) (models.Listing, error)
	Create(ctx context.Context, l models.Listing) (models.Listing, error)
	Update(ctx context.Context, l models.Listing) (models.Listing, error)
	Delete(ctx context.Context, id string) error
}

// ListingInput is what a seller submits for a new listing.
type ListingInput struct {
	Title       string   `json:"title" binding:"required,min=5"`
	Description string   `json:"description" binding:"required,min=20"`
	Price       float64  `json:"price" binding:"gt=0"`
	Unit        string   `json:"unit" binding:"required"`
	Quantity    string   `json:"quantity" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Location    string   `json:"location" binding:"required,min=2"`
	SellerPhone string   `json:"seller_phone" binding:"required,min=10"`
	Images      []string `json:"images" binding:"max=5"`
}

// MarketplaceService serves browse requests from the shared snapshot and writes
// through to the database.
type MarketplaceService struct {
	Repo      ListingStore
	Snapshot  *listingview.Store
	RequestID string
}

// Refresh reloads the snapshot. A failure keeps the previous snapshot readable.
// Overlapping refreshes resolve to the one that started last.
func (s MarketplaceService) Refresh(ctx context.Context) error {
	gen := s.Snapshot.Begin()
	records, err := s.Repo.List(ctx)
	if err != nil {
		s.Snapshot.Fail(gen, err)
		utils.LogFailure(s.RequestID, "marketplace", "refresh", err)
		return err
	}
	if !s.Snapshot.Replace(gen, records) {
		utils.LogEvent(s.RequestID, "marketplace", "refresh", "superseded by a newer fetch")
		return nil
	}
	utils.LogEvent(s.RequestID, "marketplace", "refresh", fmt.Sprintf("listings=%d", len(records)))
	return nil
}

// Run refreshes immediately and then on every tick until ctx is cancelled.
func (s MarketplaceService) Run(ctx context.Context, interval time.Duration) {
	_ = s.Refresh(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}

// Browse materializes the snapshot for one viewer. Before the first successful
// fetch it tries once more and otherwise returns the loading result with the
// fetch error.
func (s MarketplaceService) Browse(ctx context.Context, f listingview.FilterState, favs listingview.FavoriteSet) (listingview.Result, error) {
	if !s.Snapshot.Snapshot().Loaded {
		if err := s.Refresh(ctx); err != nil {
			return listingview.MaterializeLoading(f), err
		}
	}
	return s.Snapshot.View(f, favs), nil
}

func (s MarketplaceService) Get(ctx context.Context, id string) (models.Listing, error) {
	return s.Repo.GetByID(ctx, id)
}

// Mine lists the caller's own listings, newest first.
func (s MarketplaceService) Mine(ctx context.Context, rc domain.RequestContext) ([]models.Listing, error) {
	if !rc.Authenticated() {
		return nil, domain.UnauthorizedError{Msg: "login required"}
	}
	return s.Repo.ListBySeller(ctx, rc.UserID)
}

func (s MarketplaceService) Create(ctx context.Context, rc domain.RequestContext, in ListingInput) (models.Listing, error) {
	if !rc.Authenticated() {
		return models.Listing{}, domain.UnauthorizedError{Msg: "login required to create a listing"}
	}
	l := normalizeListing(models.Listing{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Unit:        in.Unit,
		Quantity:    in.Quantity,
		Category:    in.Category,
		Location:    in.Location,
		SellerPhone: in.SellerPhone,
		Images:      in.Images,
		SellerID:    rc.UserID,
		SellerName:  rc.Name,
		Status:      domain.ListingAvailable,
	})
	if err := validateListing(l); err != nil {
		return models.Listing{}, err
	}

	created, err := s.Repo.Create(ctx, l)
	if err != nil {
		return models.Listing{}, err
	}
	utils.LogEvent(s.RequestID, "marketplace", "create", fmt.Sprintf("listing_id=%s seller_id=%s", created.ID, rc.UserID))
	s.refreshAfterWrite(ctx)
	return created, nil
}

func (s MarketplaceService) Update(ctx context.Context, rc domain.RequestContext, id string, patch models.ListingPatch) (models.Listing, error) {
	existing, err := s.owned(ctx, rc, id)
	if err != nil {
		return models.Listing{}, err
	}
	if patch.Status != nil {
		st, ok := domain.ParseListingStatus(string(*patch.Status))
		if !ok {
			return models.Listing{}, domain.ValidationError{Field: "status", Msg: "must be available, reserved or sold"}
		}
		patch.Status = &st
	}
	next := normalizeListing(patch.Apply(existing))
	if err := validateListing(next); err != nil {
		return models.Listing{}, err
	}

	updated, err := s.Repo.Update(ctx, next)
	if err != nil {
		return models.Listing{}, err
	}
	utils.LogEvent(s.RequestID, "marketplace", "update", fmt.Sprintf("listing_id=%s", id))
	s.refreshAfterWrite(ctx)
	return updated, nil
}

// SetStatus moves a listing between available, reserved and sold.
func (s MarketplaceService) SetStatus(ctx context.Context, rc domain.RequestContext, id, status string) (models.Listing, error) {
	st, ok := domain.ParseListingStatus(status)
	if !ok {
		return models.Listing{}, domain.ValidationError{Field: "status", Msg: "must be available, reserved or sold"}
	}
	return s.Update(ctx, rc, id, models.ListingPatch{Status: &st})
}

func (s MarketplaceService) Delete(ctx context.Context, rc domain.RequestContext, id string) error {
	if _, err := s.owned(ctx, rc, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "marketplace", "delete", fmt.Sprintf("listing_id=%s", id))
	s.refreshAfterWrite(ctx)
	return nil
}

func (s MarketplaceService) owned(ctx context.Context, rc domain.RequestContext, id string) (models.Listing, error) {
	if !rc.Authenticated() {
		return models.Listing{}, domain.UnauthorizedError{Msg: "login required"}
	}
	l, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}
	if l.SellerID != rc.UserID {
		return models.Listing{}, domain.ForbiddenError{Resource: "listing", Msg: "only the seller can change this listing"}
	}
	return l, nil
}

// refreshAfterWrite keeps browse results in step with the write just made. The
// write already succeeded, so a refresh failure is only logged.
func (s MarketplaceService) refreshAfterWrite(ctx context.Context) {
	if s.Snapshot == nil {
		return
	}
	_ = s.Refresh(ctx)
}

func normalizeListing(l models.Listing) models.Listing {
	l.Title = utils.NormalizeSpace(l.Title)
	l.Description = utils.TrimOrEmpty(l.Description)
	l.Unit = utils.TrimOrEmpty(l.Unit)
	l.Quantity = utils.TrimOrEmpty(l.Quantity)
	l.Category = utils.TrimOrEmpty(l.Category)
	l.Location = utils.TrimOrEmpty(l.Location)
	l.SellerPhone = utils.TrimOrEmpty(l.SellerPhone)
	l.Images = utils.CleanList(l.Images)
	return l
}

// validateListing applies the submission rules to a listing, including one that
// was merged from a partial update.
func validateListing(l models.Listing) error {
	return validateInput(ListingInput{
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Unit:        l.Unit,
		Quantity:    l.Quantity,
		Category:    l.Category,
		Location:    l.Location,
		SellerPhone: l.SellerPhone,
		Images:      l.Images,
	})
}
