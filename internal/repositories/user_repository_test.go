package repositories

import (
	"context"
	"testing"

	"agrisolve/internal/domain"
	"agrisolve/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.test' for key 'email'"})

	_, err := NewUserRepository(db).Create(context.Background(), models.User{Email: "a@b.test", Role: domain.RoleFarmer})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT .* FROM users WHERE email = \\?").WithArgs("ghost@b.test").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewUserRepository(db).GetByEmail(context.Background(), "ghost@b.test")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
