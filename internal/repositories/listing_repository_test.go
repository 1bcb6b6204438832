package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"agrisolve/internal/domain"
	"agrisolve/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

var listingRowColumns = []string{
	"id", "title", "description", "price", "unit", "quantity", "category", "location",
	"images", "seller_id", "seller_name", "seller_phone", "status", "created_at", "updated_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestListingRepositoryListScansRows(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .* FROM listings ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(listingRowColumns).
			AddRow("l-2", "Yellow Maize", "dry maize", 45.0, "kg", "2 tons", "Grains & Cereals", "Nakuru County",
				`["https://cdn.test/maize.jpg"]`, "u-1", "Green Valley", "0712345678", "available", created, created).
			AddRow("l-1", "Tomatoes", "grade A", 80.0, "kg", "500 kg", "Vegetables", "Kiambu County",
				nil, "u-2", "Grace", "", "sold", created, created))

	repo := NewListingRepository(db)
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}
	if got[0].ID != "l-2" || got[0].Price != 45 || len(got[0].Images) != 1 {
		t.Fatalf("first listing scanned wrong: %+v", got[0])
	}
	if got[1].Status != domain.ListingSold || got[1].Images == nil {
		t.Fatalf("second listing scanned wrong: %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListingRepositoryGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT .* FROM listings WHERE id = \\?").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(listingRowColumns))

	_, err := NewListingRepository(db).GetByID(context.Background(), "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListingRepositoryCreateDefaults(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO listings").
		WithArgs(sqlmock.AnyArg(), "Fresh Cow Milk", "delivered twice daily", 60.0, "liters", "200 liters",
			"Dairy Products", "Meru County", "[]", "u-1", "Dairy SACCO", nil, "available", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := NewListingRepository(db).Create(context.Background(), models.Listing{
		Title: "Fresh Cow Milk", Description: "delivered twice daily", Price: 60, Unit: "liters",
		Quantity: "200 liters", Category: "Dairy Products", Location: "Meru County",
		SellerID: "u-1", SellerName: "Dairy SACCO",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.ID == "" || got.Status != domain.ListingAvailable || got.CreatedAt.IsZero() {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListingRepositoryCreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO listings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := NewListingRepository(db).Create(context.Background(), models.Listing{ID: "l-1"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListingRepositoryDeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM listings WHERE id = \\?").WithArgs("l-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := NewListingRepository(db).Delete(context.Background(), "l-9"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
