package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

// DriverService handles administrative driver operations. Status changes and
// deletes run as a unit of work so the ON_TRIP check and the write see the
// same locked row.
type DriverService struct {
	repo repository.DriverRepository
	uow  repository.UnitOfWork
	log  *logrus.Logger
}

// NewDriverService creates a new DriverService.
func NewDriverService(repo repository.DriverRepository, uow repository.UnitOfWork, log *logrus.Logger) *DriverService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DriverService{repo: repo, uow: uow, log: log}
}

// CreateDriverRequest contains the parameters for registering a driver.
type CreateDriverRequest struct {
	Name            string
	EmployeeID      string
	Phone           string
	Email           string
	LicenseNumber   string
	LicenseCategory string
	LicenseExpiry   time.Time
	SafetyScore     float64
}

// CreateDriver registers a new driver in AVAILABLE status. Registering with
// an already expired license is allowed; the expiry gate applies at trip
// assignment, not at registration.
func (s *DriverService) CreateDriver(ctx context.Context, req CreateDriverRequest) (*domain.Driver, error) {
	safetyScore := req.SafetyScore
	if safetyScore == 0 {
		safetyScore = 100
	}

	driver := &domain.Driver{
		ID:              uuid.New().String(),
		Name:            req.Name,
		EmployeeID:      req.EmployeeID,
		Phone:           req.Phone,
		Email:           req.Email,
		LicenseNumber:   req.LicenseNumber,
		LicenseCategory: req.LicenseCategory,
		LicenseExpiry:   req.LicenseExpiry,
		SafetyScore:     safetyScore,
		Status:          domain.DriverStatusAvailable,
		CreatedAt:       time.Now(),
	}
	if err := s.repo.Create(ctx, driver); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"driver_id":   driver.ID,
		"employee_id": driver.EmployeeID,
	}).Info("driver registered")

	return driver, nil
}

// GetDriver retrieves a driver by ID.
func (s *DriverService) GetDriver(ctx context.Context, id string) (*domain.Driver, error) {
	if id == "" {
		return nil, ErrInvalidDriverID
	}
	return s.repo.GetByID(ctx, id)
}

// ListDrivers retrieves drivers matching the filter.
func (s *DriverService) ListDrivers(ctx context.Context, filter repository.DriverFilter) ([]*domain.Driver, error) {
	return s.repo.List(ctx, filter)
}

// UpdateDriverRequest contains the updatable descriptive fields.
type UpdateDriverRequest struct {
	Name            string
	Phone           string
	Email           string
	LicenseNumber   string
	LicenseCategory string
	LicenseExpiry   time.Time
	SafetyScore     *float64
}

// UpdateDriver updates a driver's descriptive fields.
func (s *DriverService) UpdateDriver(ctx context.Context, id string, req UpdateDriverRequest) (*domain.Driver, error) {
	if id == "" {
		return nil, ErrInvalidDriverID
	}
	driver, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		driver.Name = req.Name
	}
	if req.Phone != "" {
		driver.Phone = req.Phone
	}
	if req.Email != "" {
		driver.Email = req.Email
	}
	if req.LicenseNumber != "" {
		driver.LicenseNumber = req.LicenseNumber
	}
	if req.LicenseCategory != "" {
		driver.LicenseCategory = req.LicenseCategory
	}
	if !req.LicenseExpiry.IsZero() {
		driver.LicenseExpiry = req.LicenseExpiry
	}
	if req.SafetyScore != nil {
		driver.SafetyScore = *req.SafetyScore
	}
	if err := s.repo.Update(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// SetDriverStatus performs an administrative status change between AVAILABLE
// and SUSPENDED. ON_TRIP cannot be set by hand, and a driver on a trip cannot
// be moved off it here; the trip must be completed or cancelled first.
func (s *DriverService) SetDriverStatus(ctx context.Context, id string, status domain.DriverStatus) (*domain.Driver, error) {
	if id == "" {
		return nil, ErrInvalidDriverID
	}
	switch status {
	case domain.DriverStatusAvailable, domain.DriverStatusSuspended:
	case domain.DriverStatusOnTrip:
		return nil, ErrManualOnTrip
	default:
		return nil, ErrInvalidStatus
	}

	var driver *domain.Driver
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		driver, err = repos.Drivers.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if driver.Status == domain.DriverStatusOnTrip {
			return ErrDriverOnTrip
		}
		if err := repos.Drivers.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		driver.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"driver_id": id,
		"status":    status,
	}).Info("driver status updated")

	return driver, nil
}

// DeleteDriver removes a driver. A driver on an active trip cannot be deleted.
func (s *DriverService) DeleteDriver(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidDriverID
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		driver, err := repos.Drivers.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if driver.Status == domain.DriverStatusOnTrip {
			return ErrDriverOnTrip
		}
		return repos.Drivers.Delete(ctx, id)
	})
}
