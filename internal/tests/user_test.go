package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetflow/internal/auth"
	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

// ──────────────────────────────────────────────
// ACCOUNTS
// ──────────────────────────────────────────────

func newUserService() (*service.UserService, *MockUserRepository) {
	repo := NewMockUserRepository()
	authService := auth.NewService("test-secret", time.Hour)
	return service.NewUserService(repo, authService, nil), repo
}

func TestRegister_CreatesActiveAccountWithToken(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService()

	user, token, err := svc.Register(context.Background(), service.RegisterRequest{
		Name:     "Dana Ops",
		Email:    " Dana@Example.COM ",
		Password: "longenough1",
		Role:     domain.RoleDispatcher,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if !user.IsActive {
		t.Error("expected new account active")
	}
	if user.Email != "dana@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "longenough1" {
		t.Error("password must not be stored in clear")
	}
}

func TestRegister_DefaultsToDriverRole(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService()

	user, _, err := svc.Register(context.Background(), service.RegisterRequest{
		Name:     "No Role",
		Email:    "norole@example.com",
		Password: "longenough1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleDriver {
		t.Errorf("expected DRIVER, got %s", user.Role)
	}
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, service.RegisterRequest{
		Email: "bademail", Password: "longenough1",
	}); !errors.Is(err, auth.ErrInvalidEmail) {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}

	if _, _, err := svc.Register(ctx, service.RegisterRequest{
		Email: "a@b.com", Password: "short",
	}); !errors.Is(err, auth.ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}

	if _, _, err := svc.Register(ctx, service.RegisterRequest{
		Email: "a@b.com", Password: "longenough1", Role: domain.Role("INTERN"),
	}); !errors.Is(err, service.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestRegister_DuplicateEmail_Conflicts(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService()
	ctx := context.Background()

	req := service.RegisterRequest{
		Name: "First", Email: "dup@example.com", Password: "longenough1",
	}
	if _, _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	req.Email = "DUP@example.com"
	if _, _, err := svc.Register(ctx, req); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, service.RegisterRequest{
		Name: "Login User", Email: "login@example.com", Password: "longenough1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, err := svc.Login(ctx, "login@example.com", "longenough1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	// Wrong password and unknown email both read as invalid credentials.
	if _, _, err := svc.Login(ctx, "login@example.com", "wrongpassword"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost@example.com", "longenough1"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_InactiveAccount_Rejected(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, service.RegisterRequest{
		Name: "Disabled", Email: "disabled@example.com", Password: "longenough1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.SetUserActive(ctx, user.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, _, err = svc.Login(ctx, "disabled@example.com", "longenough1")
	if !errors.Is(err, auth.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}
