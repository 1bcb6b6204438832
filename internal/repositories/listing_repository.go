package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "agrisolve/internal/db"
	"agrisolve/internal/domain"
	"agrisolve/internal/domain/models"
	"agrisolve/internal/utils"

	"github.com/google/uuid"
)

const listingColumns = `id, title, description, price, unit, quantity, category, location,
	images, seller_id, seller_name, COALESCE(seller_phone,''), status, created_at, updated_at`

type ListingRepository struct {
	DB *sql.DB
}

func NewListingRepository(db *sql.DB) ListingRepository {
	return ListingRepository{DB: db}
}

func scanListing(s rowScanner) (models.Listing, error) {
	var (
		l      models.Listing
		images intdb.StringList
		status string
	)
	err := s.Scan(
		&l.ID,
		&l.Title,
		&l.Description,
		&l.Price,
		&l.Unit,
		&l.Quantity,
		&l.Category,
		&l.Location,
		&images,
		&l.SellerID,
		&l.SellerName,
		&l.SellerPhone,
		&status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return l, err
	}
	l.Images = []string(images)
	l.Status = domain.ListingStatus(status)
	return l, nil
}

func (r ListingRepository) query(ctx context.Context, query string, args ...any) ([]models.Listing, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	out := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// List returns every listing, newest first.
func (r ListingRepository) List(ctx context.Context) ([]models.Listing, error) {
	return r.query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY created_at DESC`)
}

func (r ListingRepository) ListBySeller(ctx context.Context, sellerID string) ([]models.Listing, error) {
	return r.query(ctx, `SELECT `+listingColumns+` FROM listings WHERE seller_id = ? ORDER BY created_at DESC`, sellerID)
}

func (r ListingRepository) GetByID(ctx context.Context, id string) (models.Listing, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return l, domain.NotFoundError{Resource: "listing", Err: err}
	}
	if err != nil {
		return l, fmt.Errorf("get listing %s: %w", id, err)
	}
	return l, nil
}

// Create assigns id, timestamps and the default status before inserting.
func (r ListingRepository) Create(ctx context.Context, l models.Listing) (models.Listing, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = domain.ListingAvailable
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	now := utils.DBNow()
	l.CreatedAt, l.UpdatedAt = now, now

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO listings (id, title, description, price, unit, quantity, category, location,
			images, seller_id, seller_name, seller_phone, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Title, l.Description, l.Price, l.Unit, l.Quantity, l.Category, l.Location,
		intdb.StringList(l.Images), l.SellerID, l.SellerName, intdb.NullIfEmpty(l.SellerPhone),
		string(l.Status), l.CreatedAt, l.UpdatedAt,
	)
	if intdb.IsDuplicateKey(err) {
		return l, domain.ConflictError{Resource: "listing", Msg: "id already exists", Err: err}
	}
	if err != nil {
		return l, fmt.Errorf("insert listing: %w", err)
	}
	return l, nil
}

// Update writes every mutable column of l and bumps updated_at. Callers load the
// row first, so a missing id is reported there.
func (r ListingRepository) Update(ctx context.Context, l models.Listing) (models.Listing, error) {
	l.UpdatedAt = utils.DBNow()
	_, err := r.DB.ExecContext(ctx, `
		UPDATE listings
		SET title = ?, description = ?, price = ?, unit = ?, quantity = ?, category = ?,
			location = ?, images = ?, seller_phone = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		l.Title, l.Description, l.Price, l.Unit, l.Quantity, l.Category,
		l.Location, intdb.StringList(l.Images), intdb.NullIfEmpty(l.SellerPhone), string(l.Status), l.UpdatedAt,
		l.ID,
	)
	if err != nil {
		return l, fmt.Errorf("update listing %s: %w", l.ID, err)
	}
	return l, nil
}

func (r ListingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "listing"}
	}
	return nil
}
