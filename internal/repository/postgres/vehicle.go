package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

const vehicleColumns = `id, name, model, license_plate, vehicle_type, max_capacity_kg, odometer_km, acquisition_cost, status, created_at`

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

// Create adds a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, name, model, license_plate, vehicle_type, max_capacity_kg, odometer_km, acquisition_cost, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Model,
		vehicle.LicensePlate,
		vehicle.Type,
		vehicle.MaxCapacityKg,
		vehicle.OdometerKm,
		vehicle.AcquisitionCost,
		vehicle.Status,
		vehicle.CreatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate retrieves a vehicle with a row-level exclusive lock.
func (r *VehicleRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// List retrieves vehicles matching the filter.
func (r *VehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	var args []any
	var where []string

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("vehicle_type = $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

// Update updates an existing vehicle's descriptive fields.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $1, model = $2, license_plate = $3, vehicle_type = $4, max_capacity_kg = $5, odometer_km = $6, acquisition_cost = $7
		WHERE id = $8
	`

	result, err := r.q.ExecContext(ctx, query,
		vehicle.Name,
		vehicle.Model,
		vehicle.LicensePlate,
		vehicle.Type,
		vehicle.MaxCapacityKg,
		vehicle.OdometerKm,
		vehicle.AcquisitionCost,
		vehicle.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	return requireRow(result)
}

// UpdateStatus updates only the status of a vehicle.
func (r *VehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	result, err := r.q.ExecContext(ctx, `UPDATE vehicles SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// UpdateOdometer writes the vehicle odometer reading.
func (r *VehicleRepository) UpdateOdometer(ctx context.Context, id string, odometerKm float64) error {
	result, err := r.q.ExecContext(ctx, `UPDATE vehicles SET odometer_km = $1 WHERE id = $2`, odometerKm, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a vehicle.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *VehicleRepository) scanOne(row *sql.Row) (*domain.Vehicle, error) {
	vehicle, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(s rowScanner) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := s.Scan(
		&vehicle.ID,
		&vehicle.Name,
		&vehicle.Model,
		&vehicle.LicensePlate,
		&vehicle.Type,
		&vehicle.MaxCapacityKg,
		&vehicle.OdometerKm,
		&vehicle.AcquisitionCost,
		&vehicle.Status,
		&vehicle.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
