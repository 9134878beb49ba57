package domain

import "time"

// VehicleStatus represents the current status of a vehicle.
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "AVAILABLE"
	VehicleStatusOnTrip    VehicleStatus = "ON_TRIP"
	VehicleStatusInShop    VehicleStatus = "IN_SHOP"
	VehicleStatusRetired   VehicleStatus = "RETIRED"
)

// VehicleType classifies a vehicle for capacity planning.
type VehicleType string

const (
	VehicleTypeTruck VehicleType = "TRUCK"
	VehicleTypeVan   VehicleType = "VAN"
	VehicleTypeCar   VehicleType = "CAR"
	VehicleTypeBike  VehicleType = "BIKE"
	VehicleTypeOther VehicleType = "OTHER"
)

// Vehicle represents a fleet vehicle.
// Status is owned by the coordinator for ON_TRIP and IN_SHOP transitions;
// administrative writes may set the remaining values directly.
type Vehicle struct {
	ID              string
	Name            string
	Model           string
	LicensePlate    string
	Type            VehicleType
	MaxCapacityKg   float64
	OdometerKm      float64
	AcquisitionCost float64
	Status          VehicleStatus
	CreatedAt       time.Time
}
