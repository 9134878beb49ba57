package domain

import "time"

// DriverStatus represents the current status of a driver.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "AVAILABLE"
	DriverStatusOnTrip    DriverStatus = "ON_TRIP"
	DriverStatusSuspended DriverStatus = "SUSPENDED"
)

// Driver represents a fleet driver.
type Driver struct {
	ID              string
	Name            string
	EmployeeID      string
	Phone           string
	Email           string
	LicenseNumber   string
	LicenseCategory string
	LicenseExpiry   time.Time
	SafetyScore     float64
	TripsCompleted  int
	Status          DriverStatus
	CreatedAt       time.Time
}

// LicenseExpired reports whether the driver's license has expired as of now.
// Expiry is compared by calendar date, not by instant.
func (d *Driver) LicenseExpired(now time.Time) bool {
	ey, em, ed := d.LicenseExpiry.Date()
	ny, nm, nd := now.Date()
	expiry := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return expiry.Before(today)
}
