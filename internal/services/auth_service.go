package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrisolve/internal/domain"
	"agrisolve/internal/domain/models"
	"agrisolve/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type UserStore interface {
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	UpdateProfile(ctx context.Context, id, name, location, phone string) error
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
	Location string `json:"location" binding:"required,min=2"`
}

type ProfileInput struct {
	Name     string `json:"name" binding:"required,min=2"`
	Location string `json:"location" binding:"required,min=2"`
	Phone    string `json:"phone" binding:"omitempty,min=10"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type AuthService struct {
	Users     UserStore
	Secret    []byte
	RequestID string
	now       func() time.Time
}

func (s AuthService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Email = strings.ToLower(utils.TrimOrEmpty(in.Email))
	in.Phone = utils.TrimOrEmpty(in.Phone)
	in.Location = utils.TrimOrEmpty(in.Location)
	if err := validateInput(in); err != nil {
		return AuthResult{}, err
	}
	// Role is matched case-insensitively, so it is checked after binding.
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return AuthResult{}, domain.ValidationError{Field: "role", Msg: "must be farmer, trader or expert"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, domain.InternalError{Msg: "could not hash password", Err: err}
	}
	u, err := s.Users.Create(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Location:     in.Location,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return AuthResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%s role=%s", u.ID, u.Role))
	return s.issue(u)
}

// Login answers every credential mismatch with the same error so callers cannot
// probe which emails exist.
func (s AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(utils.TrimOrEmpty(email)))
	if domain.IsNotFound(err) {
		return AuthResult{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	if err != nil {
		return AuthResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%s", u.ID))
	return s.issue(u)
}

func (s AuthService) issue(u models.User) (AuthResult, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"name":    u.Name,
		"role":    string(u.Role),
		"exp":     s.clock().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return AuthResult{}, domain.InternalError{Msg: "could not sign token", Err: err}
	}
	return AuthResult{Token: signed, User: u.ToPublic()}, nil
}

// ParseToken verifies an HS256 token and returns who it belongs to.
func (s AuthService) ParseToken(raw string) (domain.RequestContext, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock))
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid or expired token", Err: err}
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid or expired token", Err: errors.New("missing user_id claim")}
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	return domain.RequestContext{UserID: userID, Name: name, Role: domain.Role(role)}, nil
}

func (s AuthService) Profile(ctx context.Context, rc domain.RequestContext) (models.PublicUser, error) {
	if !rc.Authenticated() {
		return models.PublicUser{}, domain.UnauthorizedError{Msg: "login required"}
	}
	u, err := s.Users.GetByID(ctx, rc.UserID)
	if err != nil {
		return models.PublicUser{}, err
	}
	return u.ToPublic(), nil
}

func (s AuthService) UpdateProfile(ctx context.Context, rc domain.RequestContext, in ProfileInput) (models.PublicUser, error) {
	if !rc.Authenticated() {
		return models.PublicUser{}, domain.UnauthorizedError{Msg: "login required"}
	}
	in = ProfileInput{
		Name:     utils.NormalizeSpace(in.Name),
		Location: utils.TrimOrEmpty(in.Location),
		Phone:    utils.TrimOrEmpty(in.Phone),
	}
	if err := validateInput(in); err != nil {
		return models.PublicUser{}, err
	}
	if err := s.Users.UpdateProfile(ctx, rc.UserID, in.Name, in.Location, in.Phone); err != nil {
		return models.PublicUser{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "update_profile", fmt.Sprintf("user_id=%s", rc.UserID))
	return s.Profile(ctx, rc)
}
