package domain

import "time"

// MaintenanceLog records a service event for a vehicle. An unresolved log
// keeps the vehicle IN_SHOP.
type MaintenanceLog struct {
	ID                string
	VehicleID         string
	ServiceType       string
	Description       string
	Cost              float64
	Vendor            string
	OdometerAtService float64
	ServiceDate       time.Time
	ResolvedAt        time.Time
	LoggedBy          string
	CreatedAt         time.Time
}

// Resolved reports whether the log has been resolved.
func (m *MaintenanceLog) Resolved() bool {
	return !m.ResolvedAt.IsZero()
}
