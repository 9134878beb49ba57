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

const tripColumns = `id, trip_code, vehicle_id, driver_id, origin, destination, cargo_description, cargo_weight_kg, start_odometer_km, end_odometer_km, status, notes, created_by, created_at, dispatched_at, completed_at`

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, trip_code, vehicle_id, driver_id, origin, destination, cargo_description, cargo_weight_kg, start_odometer_km, end_odometer_km, status, notes, created_by, created_at, dispatched_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.Code,
		trip.VehicleID,
		trip.DriverID,
		trip.Origin,
		trip.Destination,
		trip.CargoDescription,
		trip.CargoWeightKg,
		trip.StartOdometerKm,
		trip.EndOdometerKm,
		trip.Status,
		trip.Notes,
		trip.CreatedBy,
		trip.CreatedAt,
		nullTime(trip.DispatchedAt),
		nullTime(trip.CompletedAt),
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate retrieves a trip with a row-level exclusive lock.
func (r *TripRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// List retrieves trips matching the filter, newest first.
func (r *TripRepository) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips`
	var args []any
	var where []string

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.VehicleID != "" {
		args = append(args, filter.VehicleID)
		where = append(where, fmt.Sprintf("vehicle_id = $%d", len(args)))
	}
	if filter.DriverID != "" {
		args = append(args, filter.DriverID)
		where = append(where, fmt.Sprintf("driver_id = $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT 200"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET origin = $1, destination = $2, cargo_description = $3, cargo_weight_kg = $4, start_odometer_km = $5, end_odometer_km = $6, status = $7, notes = $8, dispatched_at = $9, completed_at = $10
		WHERE id = $11
	`

	result, err := r.q.ExecContext(ctx, query,
		trip.Origin,
		trip.Destination,
		trip.CargoDescription,
		trip.CargoWeightKg,
		trip.StartOdometerKm,
		trip.EndOdometerKm,
		trip.Status,
		trip.Notes,
		nullTime(trip.DispatchedAt),
		nullTime(trip.CompletedAt),
		trip.ID,
	)
	if err != nil {
		return err
	}

	return requireRow(result)
}

func (r *TripRepository) scanOne(row *sql.Row) (*domain.Trip, error) {
	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return trip, nil
}

func scanTrip(s rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var dispatchedAt, completedAt sql.NullTime

	err := s.Scan(
		&trip.ID,
		&trip.Code,
		&trip.VehicleID,
		&trip.DriverID,
		&trip.Origin,
		&trip.Destination,
		&trip.CargoDescription,
		&trip.CargoWeightKg,
		&trip.StartOdometerKm,
		&trip.EndOdometerKm,
		&trip.Status,
		&trip.Notes,
		&trip.CreatedBy,
		&trip.CreatedAt,
		&dispatchedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if dispatchedAt.Valid {
		trip.DispatchedAt = dispatchedAt.Time
	}
	if completedAt.Valid {
		trip.CompletedAt = completedAt.Time
	}

	return &trip, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
