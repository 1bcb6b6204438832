package services

import (
	"context"
	"testing"
	"time"

	"agrisolve/internal/domain"
)

func registerInput() RegisterInput {
	return RegisterInput{
		Name:     "Grace Njeri",
		Email:    "Grace@Example.com ",
		Password: "secret1",
		Role:     "farmer",
		Location: "Nyeri",
	}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := AuthService{Users: newFakeUsers(), Secret: []byte("test-secret")}
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Token == "" || reg.User.Email != "grace@example.com" || reg.User.Role != domain.RoleFarmer {
		t.Fatalf("unexpected register result: %+v", reg)
	}

	if _, err := svc.Register(ctx, registerInput()); !domain.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}

	login, err := svc.Login(ctx, "GRACE@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	rc, err := svc.ParseToken(login.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if rc.UserID != reg.User.ID || rc.Name != "Grace Njeri" || rc.Role != domain.RoleFarmer {
		t.Fatalf("unexpected claims: %+v", rc)
	}
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	svc := AuthService{Users: newFakeUsers(), Secret: []byte("test-secret")}
	ctx := context.Background()
	if _, err := svc.Register(ctx, registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, "grace@example.com", "wrong-pass"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret1"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := AuthService{Users: newFakeUsers(), Secret: []byte("test-secret")}
	cases := map[string]func(*RegisterInput){
		"name":     func(in *RegisterInput) { in.Name = "G" },
		"email":    func(in *RegisterInput) { in.Email = "not-an-email" },
		"password": func(in *RegisterInput) { in.Password = "12345" },
		"role":     func(in *RegisterInput) { in.Role = "admin" },
		"location": func(in *RegisterInput) { in.Location = "" },
	}
	for field, mutate := range cases {
		in := registerInput()
		mutate(&in)
		if _, err := svc.Register(context.Background(), in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", field, err)
		}
	}
}

func TestAuthTokenExpiry(t *testing.T) {
	issued := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := AuthService{Users: newFakeUsers(), Secret: []byte("test-secret"), now: func() time.Time { return issued }}
	reg, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(23 * time.Hour) }
	if _, err := svc.ParseToken(reg.Token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}
	svc.now = func() time.Time { return issued.Add(25 * time.Hour) }
	if _, err := svc.ParseToken(reg.Token); !domain.IsUnauthorized(err) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}

	other := AuthService{Secret: []byte("other-secret"), now: func() time.Time { return issued }}
	if _, err := other.ParseToken(reg.Token); !domain.IsUnauthorized(err) {
		t.Fatalf("expected signature mismatch to be rejected, got %v", err)
	}
}

func TestAuthUpdateProfile(t *testing.T) {
	svc := AuthService{Users: newFakeUsers(), Secret: []byte("test-secret")}
	ctx := context.Background()
	reg, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	rc := domain.RequestContext{UserID: reg.User.ID}

	if _, err := svc.UpdateProfile(ctx, rc, ProfileInput{Name: "Grace", Location: "Nyeri", Phone: "123"}); !domain.IsValidation(err) {
		t.Fatalf("expected phone validation error, got %v", err)
	}
	u, err := svc.UpdateProfile(ctx, rc, ProfileInput{Name: "Grace W. Njeri", Location: "Karatina", Phone: "0711222333"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Name != "Grace W. Njeri" || u.Location != "Karatina" {
		t.Fatalf("profile not updated: %+v", u)
	}
	if _, err := svc.Profile(ctx, domain.RequestContext{}); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
