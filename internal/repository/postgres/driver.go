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

const driverColumns = `id, name, employee_id, phone, email, license_number, license_category, license_expiry, safety_score, trips_completed, status, created_at`

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, employee_id, phone, email, license_number, license_category, license_expiry, safety_score, trips_completed, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.EmployeeID,
		driver.Phone,
		driver.Email,
		driver.LicenseNumber,
		driver.LicenseCategory,
		driver.LicenseExpiry,
		driver.SafetyScore,
		driver.TripsCompleted,
		driver.Status,
		driver.CreatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByIDForUpdate retrieves a driver with a row-level exclusive lock.
func (r *DriverRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// List retrieves drivers matching the filter.
func (r *DriverRepository) List(ctx context.Context, filter repository.DriverFilter) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers`
	var args []any
	var where []string

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.LicenseCategory != "" {
		args = append(args, filter.LicenseCategory)
		where = append(where, fmt.Sprintf("license_category = $%d", len(args)))
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

	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	return drivers, rows.Err()
}

// Update updates an existing driver's descriptive fields.
func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	query := `
		UPDATE drivers
		SET name = $1, employee_id = $2, phone = $3, email = $4, license_number = $5, license_category = $6, license_expiry = $7, safety_score = $8
		WHERE id = $9
	`

	result, err := r.q.ExecContext(ctx, query,
		driver.Name,
		driver.EmployeeID,
		driver.Phone,
		driver.Email,
		driver.LicenseNumber,
		driver.LicenseCategory,
		driver.LicenseExpiry,
		driver.SafetyScore,
		driver.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}

	return requireRow(result)
}

// UpdateStatus updates only the status of a driver.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	result, err := r.q.ExecContext(ctx, `UPDATE drivers SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// IncrementTripsCompleted bumps the completed-trip counter.
func (r *DriverRepository) IncrementTripsCompleted(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `UPDATE drivers SET trips_completed = trips_completed + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a driver.
func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *DriverRepository) scanOne(row *sql.Row) (*domain.Driver, error) {
	driver, err := scanDriver(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return driver, nil
}

func scanDriver(s rowScanner) (*domain.Driver, error) {
	var driver domain.Driver
	err := s.Scan(
		&driver.ID,
		&driver.Name,
		&driver.EmployeeID,
		&driver.Phone,
		&driver.Email,
		&driver.LicenseNumber,
		&driver.LicenseCategory,
		&driver.LicenseExpiry,
		&driver.SafetyScore,
		&driver.TripsCompleted,
		&driver.Status,
		&driver.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// Ensure DriverRepository implements repository.DriverRepository.
var _ repository.DriverRepository = (*DriverRepository)(nil)
