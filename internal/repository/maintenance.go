package repository

import (
	"context"

	"fleetflow/internal/domain"
)

// MaintenanceFilter narrows maintenance log listings. Resolved of nil means
// both resolved and open logs.
type MaintenanceFilter struct {
	VehicleID string
	Resolved  *bool
}

// MaintenanceRepository defines the persistence operations for maintenance logs.
type MaintenanceRepository interface {
	// Create persists a new maintenance log.
	Create(ctx context.Context, log *domain.MaintenanceLog) error

	// GetByID retrieves a maintenance log by ID.
	GetByID(ctx context.Context, id string) (*domain.MaintenanceLog, error)

	// GetByIDForUpdate retrieves a maintenance log and locks its row until
	// the surrounding transaction commits.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.MaintenanceLog, error)

	// List retrieves maintenance logs matching the filter.
	List(ctx context.Context, filter MaintenanceFilter) ([]*domain.MaintenanceLog, error)

	// Update updates descriptive fields of a maintenance log.
	Update(ctx context.Context, log *domain.MaintenanceLog) error

	// Resolve stamps resolved_at on a log.
	Resolve(ctx context.Context, id string) error

	// CountOpenByVehicle returns the number of unresolved logs for a
	// vehicle, excluding the given log ID (pass "" to count all).
	CountOpenByVehicle(ctx context.Context, vehicleID, excludeLogID string) (int, error)

	// ResolveAllByVehicle stamps resolved_at on every open log for a vehicle.
	ResolveAllByVehicle(ctx context.Context, vehicleID string) error
}
