package repository

import "context"

// DashboardStats holds the high-level KPI counts for the dashboard view.
type DashboardStats struct {
	Fleet struct {
		Available      int     `json:"available"`
		OnTrip         int     `json:"on_trip"`
		InShop         int     `json:"in_shop"`
		Retired        int     `json:"retired"`
		Total          int     `json:"total"`
		UtilizationPct float64 `json:"utilization_rate_pct"`
	} `json:"fleet"`
	Drivers struct {
		Available       int `json:"available"`
		OnTrip          int `json:"on_trip"`
		Suspended       int `json:"suspended"`
		ExpiredLicenses int `json:"expired_licenses"`
	} `json:"drivers"`
	Trips struct {
		Active           int `json:"active_trips"`
		Pending          int `json:"pending_trips"`
		CompletedLast30d int `json:"completed_last_30d"`
	} `json:"trips"`
	Maintenance struct {
		Open int `json:"open_maintenance"`
	} `json:"maintenance"`
}

// FuelEfficiencyRow is a per-vehicle km/L aggregation.
type FuelEfficiencyRow struct {
	VehicleID     string   `json:"vehicle_id"`
	VehicleName   string   `json:"vehicle_name"`
	LicensePlate  string   `json:"license_plate"`
	TotalLiters   float64  `json:"total_liters"`
	TotalFuelCost float64  `json:"total_fuel_cost"`
	KmPerLiter    *float64 `json:"fuel_efficiency_km_per_liter"`
}

// CostPerKmRow is a per-vehicle operational cost aggregation.
type CostPerKmRow struct {
	VehicleID            string   `json:"vehicle_id"`
	VehicleName          string   `json:"vehicle_name"`
	LicensePlate         string   `json:"license_plate"`
	TotalFuelCost        float64  `json:"total_fuel_cost"`
	TotalMaintenanceCost float64  `json:"total_maintenance_cost"`
	TotalDistanceKm      float64  `json:"total_distance_km"`
	CostPerKm            *float64 `json:"cost_per_km"`
}

// UtilizationRow is a monthly trip utilization aggregation.
type UtilizationRow struct {
	Month          string  `json:"month"`
	TotalTrips     int     `json:"total_trips"`
	UniqueVehicles int     `json:"unique_vehicles_used"`
	TotalCargoKg   float64 `json:"total_cargo_kg"`
}

// DriverPerformanceRow summarizes a driver's record.
type DriverPerformanceRow struct {
	DriverID       string  `json:"id"`
	Name           string  `json:"name"`
	EmployeeID     string  `json:"employee_id"`
	SafetyScore    float64 `json:"safety_score"`
	TripsCompleted int     `json:"trips_completed"`
	LicenseExpired bool    `json:"license_expired"`
	Status         string  `json:"status"`
}

// MonthlyCostRow is one month of the financial summary.
type MonthlyCostRow struct {
	Month                string  `json:"month"`
	TotalFuelCost        float64 `json:"total_fuel_cost"`
	TotalMaintenanceCost float64 `json:"total_maintenance_cost"`
	TotalOperationalCost float64 `json:"total_operational_cost"`
}

// AnalyticsRepository defines the read-only aggregation queries backing the
// analytics endpoints.
type AnalyticsRepository interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	FuelEfficiency(ctx context.Context, vehicleID string) ([]*FuelEfficiencyRow, error)
	CostPerKm(ctx context.Context, vehicleID string) ([]*CostPerKmRow, error)
	Utilization(ctx context.Context) ([]*UtilizationRow, error)
	DriverPerformance(ctx context.Context) ([]*DriverPerformanceRow, error)
	MonthlyCosts(ctx context.Context, year int) ([]*MonthlyCostRow, error)
}
