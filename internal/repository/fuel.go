package repository

import (
	"context"

	"fleetflow/internal/domain"
)

// FuelFilter narrows fuel log listings.
type FuelFilter struct {
	VehicleID string
	TripID    string
}

// FuelRepository defines the persistence operations for fuel logs.
type FuelRepository interface {
	// Create persists a new fuel log.
	Create(ctx context.Context, log *domain.FuelLog) error

	// GetByID retrieves a fuel log by ID.
	GetByID(ctx context.Context, id string) (*domain.FuelLog, error)

	// List retrieves fuel logs matching the filter, newest first.
	List(ctx context.Context, filter FuelFilter) ([]*domain.FuelLog, error)

	// Delete removes a fuel log.
	Delete(ctx context.Context, id string) error
}
