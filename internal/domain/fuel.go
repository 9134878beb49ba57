package domain

import "time"

// FuelLog is an append-only refueling record. It carries no state-machine
// behavior.
type FuelLog struct {
	ID             string
	VehicleID      string
	TripID         string
	Liters         float64
	CostPerLiter   float64
	OdometerAtFill float64
	Station        string
	FuelDate       time.Time
	LoggedBy       string
	CreatedAt      time.Time
}

// TotalCost returns the cost of the fill.
func (f *FuelLog) TotalCost() float64 {
	return f.Liters * f.CostPerLiter
}
