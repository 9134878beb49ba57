package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fleetflow/internal/auth"
	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

// UserService handles account registration, login and administration.
type UserService struct {
	repo repository.UserRepository
	auth *auth.Service
	log  *logrus.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, authService *auth.Service, log *logrus.Logger) *UserService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &UserService{repo: repo, auth: authService, log: log}
}

// RegisterRequest contains the parameters for creating an account.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Register creates a new active account and returns it with a fresh token.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	if err := s.auth.ValidateEmail(req.Email); err != nil {
		return nil, "", err
	}
	if err := s.auth.ValidatePassword(req.Password); err != nil {
		return nil, "", err
	}
	role := req.Role
	if role == "" {
		role = domain.RoleDriver
	}
	if !domain.ValidRole(role) {
		return nil, "", ErrInvalidStatus
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("user registered")

	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Inactive accounts cannot log in.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !s.auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", auth.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", auth.ErrUserInactive
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers retrieves all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// SetUserActive toggles whether an account may log in.
func (s *UserService) SetUserActive(ctx context.Context, id string, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"user_id": id,
		"active":  active,
	}).Info("user active flag updated")
	return nil
}
