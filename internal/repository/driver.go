package repository

import (
	"context"

	"fleetflow/internal/domain"
)

// DriverFilter narrows driver listings.
type DriverFilter struct {
	Status          domain.DriverStatus
	LicenseCategory string
}

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByIDForUpdate retrieves a driver and locks its row until the
	// surrounding transaction commits.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Driver, error)

	// List retrieves drivers matching the filter.
	List(ctx context.Context, filter DriverFilter) ([]*domain.Driver, error)

	// Update updates an existing driver's descriptive fields.
	Update(ctx context.Context, driver *domain.Driver) error

	// UpdateStatus updates only the status of a driver.
	UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error

	// IncrementTripsCompleted bumps the completed-trip counter.
	IncrementTripsCompleted(ctx context.Context, id string) error

	// Delete removes a driver.
	Delete(ctx context.Context, id string) error
}
