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

const maintenanceColumns = `id, vehicle_id, service_type, description, cost, vendor, odometer_at_service, service_date, resolved_at, logged_by, created_at`

// MaintenanceRepository is a PostgreSQL implementation of repository.MaintenanceRepository.
type MaintenanceRepository struct {
	q Querier
}

// NewMaintenanceRepository creates a new PostgreSQL maintenance repository.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{q: db}
}

// NewMaintenanceRepositoryWithTx creates a maintenance repository using a transaction.
func NewMaintenanceRepositoryWithTx(tx *sql.Tx) *MaintenanceRepository {
	return &MaintenanceRepository{q: tx}
}

// Create persists a new maintenance log.
func (r *MaintenanceRepository) Create(ctx context.Context, log *domain.MaintenanceLog) error {
	query := `
		INSERT INTO maintenance_logs (id, vehicle_id, service_type, description, cost, vendor, odometer_at_service, service_date, resolved_at, logged_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		log.ID,
		log.VehicleID,
		log.ServiceType,
		log.Description,
		log.Cost,
		log.Vendor,
		log.OdometerAtService,
		log.ServiceDate,
		nullTime(log.ResolvedAt),
		log.LoggedBy,
		log.CreatedAt,
	)
	return err
}

// GetByID retrieves a maintenance log by ID.
func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceLog, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_logs WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate retrieves a maintenance log with a row-level exclusive lock.
func (r *MaintenanceRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.MaintenanceLog, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_logs WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// List retrieves maintenance logs matching the filter.
func (r *MaintenanceRepository) List(ctx context.Context, filter repository.MaintenanceFilter) ([]*domain.MaintenanceLog, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_logs`
	var args []any
	var where []string

	if filter.VehicleID != "" {
		args = append(args, filter.VehicleID)
		where = append(where, fmt.Sprintf("vehicle_id = $%d", len(args)))
	}
	if filter.Resolved != nil {
		if *filter.Resolved {
			where = append(where, "resolved_at IS NOT NULL")
		} else {
			where = append(where, "resolved_at IS NULL")
		}
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY service_date DESC, created_at DESC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.MaintenanceLog
	for rows.Next() {
		log, err := scanMaintenanceLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// Update updates descriptive fields of a maintenance log.
func (r *MaintenanceRepository) Update(ctx context.Context, log *domain.MaintenanceLog) error {
	query := `
		UPDATE maintenance_logs
		SET service_type = $1, description = $2, cost = $3, vendor = $4, odometer_at_service = $5, service_date = $6
		WHERE id = $7
	`

	result, err := r.q.ExecContext(ctx, query,
		log.ServiceType,
		log.Description,
		log.Cost,
		log.Vendor,
		log.OdometerAtService,
		log.ServiceDate,
		log.ID,
	)
	if err != nil {
		return err
	}

	return requireRow(result)
}

// Resolve stamps resolved_at on a log.
func (r *MaintenanceRepository) Resolve(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `UPDATE maintenance_logs SET resolved_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// CountOpenByVehicle returns the number of unresolved logs for a vehicle,
// excluding the given log ID.
func (r *MaintenanceRepository) CountOpenByVehicle(ctx context.Context, vehicleID, excludeLogID string) (int, error) {
	query := `SELECT COUNT(*) FROM maintenance_logs WHERE vehicle_id = $1 AND resolved_at IS NULL`
	args := []any{vehicleID}

	if excludeLogID != "" {
		query += ` AND id != $2`
		args = append(args, excludeLogID)
	}

	var count int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ResolveAllByVehicle stamps resolved_at on every open log for a vehicle.
func (r *MaintenanceRepository) ResolveAllByVehicle(ctx context.Context, vehicleID string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE maintenance_logs SET resolved_at = NOW() WHERE vehicle_id = $1 AND resolved_at IS NULL`,
		vehicleID,
	)
	return err
}

func (r *MaintenanceRepository) scanOne(row *sql.Row) (*domain.MaintenanceLog, error) {
	log, err := scanMaintenanceLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return log, nil
}

func scanMaintenanceLog(s rowScanner) (*domain.MaintenanceLog, error) {
	var log domain.MaintenanceLog
	var resolvedAt sql.NullTime

	err := s.Scan(
		&log.ID,
		&log.VehicleID,
		&log.ServiceType,
		&log.Description,
		&log.Cost,
		&log.Vendor,
		&log.OdometerAtService,
		&log.ServiceDate,
		&resolvedAt,
		&log.LoggedBy,
		&log.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if resolvedAt.Valid {
		log.ResolvedAt = resolvedAt.Time
	}

	return &log, nil
}

// Ensure MaintenanceRepository implements repository.MaintenanceRepository.
var _ repository.MaintenanceRepository = (*MaintenanceRepository)(nil)
