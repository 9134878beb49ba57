package postgres

import (
	"context"
	"database/sql"

	"fleetflow/internal/repository"
)

// AnalyticsRepository runs the read-only aggregation queries backing the
// analytics endpoints. It never writes.
type AnalyticsRepository struct {
	q Querier
}

// NewAnalyticsRepository creates a new PostgreSQL analytics repository.
func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{q: db}
}

// Dashboard returns the high-level KPI counts.
func (r *AnalyticsRepository) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{}

	err := r.q.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'AVAILABLE'),
			COUNT(*) FILTER (WHERE status = 'ON_TRIP'),
			COUNT(*) FILTER (WHERE status = 'IN_SHOP'),
			COUNT(*) FILTER (WHERE status = 'RETIRED'),
			COUNT(*)
		FROM vehicles
	`).Scan(
		&stats.Fleet.Available,
		&stats.Fleet.OnTrip,
		&stats.Fleet.InShop,
		&stats.Fleet.Retired,
		&stats.Fleet.Total,
	)
	if err != nil {
		return nil, err
	}

	if stats.Fleet.Total > 0 {
		stats.Fleet.UtilizationPct = float64(stats.Fleet.OnTrip) / float64(stats.Fleet.Total) * 100
	}

	err = r.q.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'AVAILABLE'),
			COUNT(*) FILTER (WHERE status = 'ON_TRIP'),
			COUNT(*) FILTER (WHERE status = 'SUSPENDED'),
			COUNT(*) FILTER (WHERE license_expiry < CURRENT_DATE)
		FROM drivers
	`).Scan(
		&stats.Drivers.Available,
		&stats.Drivers.OnTrip,
		&stats.Drivers.Suspended,
		&stats.Drivers.ExpiredLicenses,
	)
	if err != nil {
		return nil, err
	}

	err = r.q.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'DISPATCHED'),
			COUNT(*) FILTER (WHERE status = 'DRAFT'),
			COUNT(*) FILTER (WHERE status = 'COMPLETED' AND completed_at >= NOW() - INTERVAL '30 days')
		FROM trips
	`).Scan(
		&stats.Trips.Active,
		&stats.Trips.Pending,
		&stats.Trips.CompletedLast30d,
	)
	if err != nil {
		return nil, err
	}

	err = r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM maintenance_logs WHERE resolved_at IS NULL`,
	).Scan(&stats.Maintenance.Open)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// FuelEfficiency returns km/L per vehicle, computed from odometer readings at
// fill time. Vehicles with a single fill have no efficiency figure.
func (r *AnalyticsRepository) FuelEfficiency(ctx context.Context, vehicleID string) ([]*repository.FuelEfficiencyRow, error) {
	query := `
		SELECT
			v.id,
			v.name,
			v.license_plate,
			COALESCE(SUM(f.liters), 0),
			COALESCE(SUM(f.liters * f.cost_per_liter), 0),
			CASE
				WHEN SUM(f.liters) > 0
				THEN (MAX(f.odometer_at_fill) - MIN(f.odometer_at_fill)) / NULLIF(SUM(f.liters), 0)
			END
		FROM vehicles v
		LEFT JOIN fuel_logs f ON f.vehicle_id = v.id
	`
	var args []any
	if vehicleID != "" {
		args = append(args, vehicleID)
		query += ` WHERE v.id = $1`
	}
	query += ` GROUP BY v.id, v.name, v.license_plate ORDER BY v.name`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*repository.FuelEfficiencyRow
	for rows.Next() {
		var row repository.FuelEfficiencyRow
		var kmPerLiter sql.NullFloat64
		if err := rows.Scan(
			&row.VehicleID,
			&row.VehicleName,
			&row.LicensePlate,
			&row.TotalLiters,
			&row.TotalFuelCost,
			&kmPerLiter,
		); err != nil {
			return nil, err
		}
		if kmPerLiter.Valid {
			row.KmPerLiter = &kmPerLiter.Float64
		}
		result = append(result, &row)
	}

	return result, rows.Err()
}

// CostPerKm returns fuel+maintenance cost per completed-trip kilometre.
func (r *AnalyticsRepository) CostPerKm(ctx context.Context, vehicleID string) ([]*repository.CostPerKmRow, error) {
	query := `
		SELECT
			v.id,
			v.name,
			v.license_plate,
			COALESCE(fuel.total_cost, 0),
			COALESCE(maint.total_cost, 0),
			COALESCE(dist.total_km, 0),
			CASE
				WHEN COALESCE(dist.total_km, 0) > 0
				THEN (COALESCE(fuel.total_cost, 0) + COALESCE(maint.total_cost, 0)) / dist.total_km
			END
		FROM vehicles v
		LEFT JOIN (
			SELECT vehicle_id, SUM(liters * cost_per_liter) AS total_cost
			FROM fuel_logs GROUP BY vehicle_id
		) fuel ON fuel.vehicle_id = v.id
		LEFT JOIN (
			SELECT vehicle_id, SUM(cost) AS total_cost
			FROM maintenance_logs GROUP BY vehicle_id
		) maint ON maint.vehicle_id = v.id
		LEFT JOIN (
			SELECT vehicle_id, SUM(end_odometer_km - start_odometer_km) AS total_km
			FROM trips WHERE status = 'COMPLETED' GROUP BY vehicle_id
		) dist ON dist.vehicle_id = v.id
	`
	var args []any
	if vehicleID != "" {
		args = append(args, vehicleID)
		query += ` WHERE v.id = $1`
	}
	query += ` ORDER BY v.name`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*repository.CostPerKmRow
	for rows.Next() {
		var row repository.CostPerKmRow
		var costPerKm sql.NullFloat64
		if err := rows.Scan(
			&row.VehicleID,
			&row.VehicleName,
			&row.LicensePlate,
			&row.TotalFuelCost,
			&row.TotalMaintenanceCost,
			&row.TotalDistanceKm,
			&costPerKm,
		); err != nil {
			return nil, err
		}
		if costPerKm.Valid {
			row.CostPerKm = &costPerKm.Float64
		}
		result = append(result, &row)
	}

	return result, rows.Err()
}

// Utilization returns monthly completed-trip aggregates for the last year.
func (r *AnalyticsRepository) Utilization(ctx context.Context) ([]*repository.UtilizationRow, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT
			TO_CHAR(dispatched_at, 'YYYY-MM'),
			COUNT(*),
			COUNT(DISTINCT vehicle_id),
			COALESCE(SUM(cargo_weight_kg), 0)
		FROM trips
		WHERE status = 'COMPLETED' AND dispatched_at IS NOT NULL
		GROUP BY 1
		ORDER BY 1 DESC
		LIMIT 12
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*repository.UtilizationRow
	for rows.Next() {
		var row repository.UtilizationRow
		if err := rows.Scan(&row.Month, &row.TotalTrips, &row.UniqueVehicles, &row.TotalCargoKg); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	return result, rows.Err()
}

// DriverPerformance summarizes each driver's record, best safety score first.
func (r *AnalyticsRepository) DriverPerformance(ctx context.Context) ([]*repository.DriverPerformanceRow, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT
			id,
			name,
			employee_id,
			safety_score,
			trips_completed,
			license_expiry < CURRENT_DATE,
			status
		FROM drivers
		ORDER BY safety_score DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*repository.DriverPerformanceRow
	for rows.Next() {
		var row repository.DriverPerformanceRow
		if err := rows.Scan(
			&row.DriverID,
			&row.Name,
			&row.EmployeeID,
			&row.SafetyScore,
			&row.TripsCompleted,
			&row.LicenseExpired,
			&row.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	return result, rows.Err()
}

// MonthlyCosts returns the per-month fuel and maintenance spend for a year.
func (r *AnalyticsRepository) MonthlyCosts(ctx context.Context, year int) ([]*repository.MonthlyCostRow, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT
			TO_CHAR(month, 'YYYY-MM'),
			COALESCE(fuel.total, 0),
			COALESCE(maint.total, 0)
		FROM generate_series(
			make_date($1, 1, 1), make_date($1, 12, 1), INTERVAL '1 month'
		) AS month
		LEFT JOIN (
			SELECT DATE_TRUNC('month', fuel_date) AS m, SUM(liters * cost_per_liter) AS total
			FROM fuel_logs WHERE EXTRACT(YEAR FROM fuel_date) = $1 GROUP BY m
		) fuel ON fuel.m = month
		LEFT JOIN (
			SELECT DATE_TRUNC('month', service_date) AS m, SUM(cost) AS total
			FROM maintenance_logs WHERE EXTRACT(YEAR FROM service_date) = $1 GROUP BY m
		) maint ON maint.m = month
		ORDER BY 1
	`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*repository.MonthlyCostRow
	for rows.Next() {
		var row repository.MonthlyCostRow
		if err := rows.Scan(&row.Month, &row.TotalFuelCost, &row.TotalMaintenanceCost); err != nil {
			return nil, err
		}
		row.TotalOperationalCost = row.TotalFuelCost + row.TotalMaintenanceCost
		result = append(result, &row)
	}

	return result, rows.Err()
}

// Ensure AnalyticsRepository implements repository.AnalyticsRepository.
var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)
