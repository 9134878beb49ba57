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

const fuelColumns = `id, vehicle_id, trip_id, liters, cost_per_liter, odometer_at_fill, station, fuel_date, logged_by, created_at`

// FuelRepository is a PostgreSQL implementation of repository.FuelRepository.
type FuelRepository struct {
	q Querier
}

// NewFuelRepository creates a new PostgreSQL fuel repository.
func NewFuelRepository(db *sql.DB) *FuelRepository {
	return &FuelRepository{q: db}
}

// Create persists a new fuel log.
func (r *FuelRepository) Create(ctx context.Context, log *domain.FuelLog) error {
	query := `
		INSERT INTO fuel_logs (id, vehicle_id, trip_id, liters, cost_per_liter, odometer_at_fill, station, fuel_date, logged_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var tripID sql.NullString
	if log.TripID != "" {
		tripID = sql.NullString{String: log.TripID, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		log.ID,
		log.VehicleID,
		tripID,
		log.Liters,
		log.CostPerLiter,
		log.OdometerAtFill,
		log.Station,
		log.FuelDate,
		log.LoggedBy,
		log.CreatedAt,
	)
	return err
}

// GetByID retrieves a fuel log by ID.
func (r *FuelRepository) GetByID(ctx context.Context, id string) (*domain.FuelLog, error) {
	query := `SELECT ` + fuelColumns + ` FROM fuel_logs WHERE id = $1`

	log, err := scanFuelLog(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

// List retrieves fuel logs matching the filter, newest first.
func (r *FuelRepository) List(ctx context.Context, filter repository.FuelFilter) ([]*domain.FuelLog, error) {
	query := `SELECT ` + fuelColumns + ` FROM fuel_logs`
	var args []any
	var where []string

	if filter.VehicleID != "" {
		args = append(args, filter.VehicleID)
		where = append(where, fmt.Sprintf("vehicle_id = $%d", len(args)))
	}
	if filter.TripID != "" {
		args = append(args, filter.TripID)
		where = append(where, fmt.Sprintf("trip_id = $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY fuel_date DESC, created_at DESC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.FuelLog
	for rows.Next() {
		log, err := scanFuelLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// Delete removes a fuel log.
func (r *FuelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM fuel_logs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func scanFuelLog(s rowScanner) (*domain.FuelLog, error) {
	var log domain.FuelLog
	var tripID sql.NullString

	err := s.Scan(
		&log.ID,
		&log.VehicleID,
		&tripID,
		&log.Liters,
		&log.CostPerLiter,
		&log.OdometerAtFill,
		&log.Station,
		&log.FuelDate,
		&log.LoggedBy,
		&log.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tripID.Valid {
		log.TripID = tripID.String
	}

	return &log, nil
}

// Ensure FuelRepository implements repository.FuelRepository.
var _ repository.FuelRepository = (*FuelRepository)(nil)
