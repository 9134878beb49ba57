package service

import "errors"

var (
	// ErrInvalidVehicleID is returned when a vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidDriverID is returned when a driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidTripID is returned when a trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidLogID is returned when a maintenance or fuel log ID is empty.
	ErrInvalidLogID = errors.New("invalid log id")

	// ErrInvalidCargoWeight is returned when the cargo weight is not positive.
	ErrInvalidCargoWeight = errors.New("cargo weight must be positive")

	// ErrInvalidCapacity is returned when the vehicle capacity is not positive.
	ErrInvalidCapacity = errors.New("max capacity must be positive")

	// ErrInvalidStatus is returned when a status value is not recognized.
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrManualOnTrip is returned when a caller tries to set ON_TRIP directly
	// instead of dispatching a trip.
	ErrManualOnTrip = errors.New("status ON_TRIP can only be set by dispatching a trip")

	// ErrVehicleNotAvailable is returned when the vehicle is not AVAILABLE.
	ErrVehicleNotAvailable = errors.New("vehicle is not available")

	// ErrVehicleOnTrip is returned when an operation requires the vehicle to
	// not be on a trip.
	ErrVehicleOnTrip = errors.New("vehicle is currently on a trip")

	// ErrDriverNotAvailable is returned when the driver is not AVAILABLE.
	ErrDriverNotAvailable = errors.New("driver is not available")

	// ErrDriverSuspended is returned when the driver is suspended.
	ErrDriverSuspended = errors.New("driver is suspended")

	// ErrDriverOnTrip is returned when an operation requires the driver to
	// not be on a trip.
	ErrDriverOnTrip = errors.New("driver is currently on a trip")

	// ErrLicenseExpired is returned when the driver's license has expired.
	ErrLicenseExpired = errors.New("driver license has expired")

	// ErrCapacityExceeded is returned when cargo weight exceeds vehicle capacity.
	ErrCapacityExceeded = errors.New("cargo weight exceeds vehicle capacity")

	// ErrTripNotDraft is returned when dispatching a trip that is not DRAFT.
	ErrTripNotDraft = errors.New("trip is not in draft status")

	// ErrTripNotDispatched is returned when completing a trip that is not DISPATCHED.
	ErrTripNotDispatched = errors.New("trip is not dispatched")

	// ErrTripTerminal is returned for any transition attempted on a
	// completed or cancelled trip.
	ErrTripTerminal = errors.New("trip is already completed or cancelled")

	// ErrOdometerRegression is returned when the end odometer reading is
	// below the start reading.
	ErrOdometerRegression = errors.New("end odometer cannot be less than start odometer")

	// ErrMaintenanceResolved is returned when resolving an already resolved log.
	ErrMaintenanceResolved = errors.New("maintenance log is already resolved")

	// ErrTripVehicleMismatch is returned when a fuel log references a trip
	// that does not belong to the given vehicle.
	ErrTripVehicleMismatch = errors.New("trip does not belong to this vehicle")

	// ErrInvalidLiters is returned when a fuel quantity is not positive.
	ErrInvalidLiters = errors.New("liters must be positive")
)
