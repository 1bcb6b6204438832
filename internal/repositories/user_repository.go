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

const userColumns = `id, name, email, COALESCE(phone,''), location, COALESCE(avatar_url,''),
	password_hash, role, created_at, updated_at`

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return UserRepository{DB: db}
}

func scanUser(s rowScanner) (models.User, error) {
	var (
		u    models.User
		role string
	)
	err := s.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Location,
		&u.AvatarURL,
		&u.PasswordHash,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	u.Role = domain.Role(role)
	return u, err
}

func (r UserRepository) getBy(ctx context.Context, column, value string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, value))
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return u, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := utils.DBNow()
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, name, email, phone, location, avatar_url, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, intdb.NullIfEmpty(u.Phone), u.Location, intdb.NullIfEmpty(u.AvatarURL),
		u.PasswordHash, string(u.Role), u.CreatedAt, u.UpdatedAt,
	)
	if intdb.IsDuplicateKey(err) {
		return u, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
	}
	if err != nil {
		return u, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the fields a member may edit about themselves.
func (r UserRepository) UpdateProfile(ctx context.Context, id, name, location, phone string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET name = ?, location = ?, phone = ?, updated_at = ? WHERE id = ?`,
		name, location, intdb.NullIfEmpty(phone), utils.DBNow(), id,
	)
	if err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
