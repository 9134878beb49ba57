package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusDraft      TripStatus = "DRAFT"
	TripStatusDispatched TripStatus = "DISPATCHED"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// tripTransitions is the allowed forward edge set of the trip state machine.
// COMPLETED and CANCELLED are terminal.
var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusDraft:      {TripStatusDispatched, TripStatusCancelled},
	TripStatusDispatched: {TripStatusCompleted, TripStatusCancelled},
	TripStatusCompleted:  {},
	TripStatusCancelled:  {},
}

// CanTransition reports whether from -> to is an allowed trip transition.
func CanTransition(from, to TripStatus) bool {
	for _, s := range tripTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s TripStatus) Terminal() bool {
	return len(tripTransitions[s]) == 0
}

// Trip represents a cargo trip. A DRAFT trip is a soft booking: its vehicle
// and driver are only claimed at dispatch.
type Trip struct {
	ID               string
	Code             string
	VehicleID        string
	DriverID         string
	Origin           string
	Destination      string
	CargoDescription string
	CargoWeightKg    float64
	StartOdometerKm  float64
	EndOdometerKm    float64
	Status           TripStatus
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
	DispatchedAt     time.Time
	CompletedAt      time.Time
}
