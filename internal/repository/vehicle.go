package repository

import (
	"context"

	"fleetflow/internal/domain"
)

// VehicleFilter narrows vehicle listings.
type VehicleFilter struct {
	Status domain.VehicleStatus
	Type   domain.VehicleType
}

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create adds a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetByIDForUpdate retrieves a vehicle and locks its row until the
	// surrounding transaction commits. Only meaningful on a
	// transaction-scoped repository.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Vehicle, error)

	// List retrieves vehicles matching the filter.
	List(ctx context.Context, filter VehicleFilter) ([]*domain.Vehicle, error)

	// Update updates an existing vehicle's descriptive fields.
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// UpdateStatus updates only the status of a vehicle.
	UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error

	// UpdateOdometer writes the vehicle odometer reading.
	UpdateOdometer(ctx context.Context, id string, odometerKm float64) error

	// Delete removes a vehicle.
	Delete(ctx context.Context, id string) error
}
