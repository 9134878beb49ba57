package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

// FuelService handles fuel log records. Fuel logs are append-only and never
// change vehicle or driver status.
type FuelService struct {
	repo     repository.FuelRepository
	vehicles repository.VehicleRepository
	trips    repository.TripRepository
	log      *logrus.Logger
}

// NewFuelService creates a new FuelService.
func NewFuelService(
	repo repository.FuelRepository,
	vehicles repository.VehicleRepository,
	trips repository.TripRepository,
	log *logrus.Logger,
) *FuelService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FuelService{repo: repo, vehicles: vehicles, trips: trips, log: log}
}

// CreateFuelLogRequest contains the parameters for recording a fill.
type CreateFuelLogRequest struct {
	VehicleID      string
	TripID         string
	Liters         float64
	CostPerLiter   float64
	OdometerAtFill float64
	Station        string
	FuelDate       time.Time
	LoggedBy       string
}

// CreateFuelLog records a refueling event. The vehicle must exist, and when
// a trip is referenced it must belong to the same vehicle.
func (s *FuelService) CreateFuelLog(ctx context.Context, req CreateFuelLogRequest) (*domain.FuelLog, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if req.Liters <= 0 {
		return nil, ErrInvalidLiters
	}

	if _, err := s.vehicles.GetByID(ctx, req.VehicleID); err != nil {
		return nil, err
	}
	if req.TripID != "" {
		trip, err := s.trips.GetByID(ctx, req.TripID)
		if err != nil {
			return nil, err
		}
		if trip.VehicleID != req.VehicleID {
			return nil, ErrTripVehicleMismatch
		}
	}

	fuelDate := req.FuelDate
	if fuelDate.IsZero() {
		fuelDate = time.Now()
	}

	fuelLog := &domain.FuelLog{
		ID:             uuid.New().String(),
		VehicleID:      req.VehicleID,
		TripID:         req.TripID,
		Liters:         req.Liters,
		CostPerLiter:   req.CostPerLiter,
		OdometerAtFill: req.OdometerAtFill,
		Station:        req.Station,
		FuelDate:       fuelDate,
		LoggedBy:       req.LoggedBy,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, fuelLog); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"fuel_log_id": fuelLog.ID,
		"vehicle_id":  fuelLog.VehicleID,
		"liters":      fuelLog.Liters,
	}).Info("fuel log recorded")

	return fuelLog, nil
}

// GetFuelLog retrieves a fuel log by ID.
func (s *FuelService) GetFuelLog(ctx context.Context, id string) (*domain.FuelLog, error) {
	if id == "" {
		return nil, ErrInvalidLogID
	}
	return s.repo.GetByID(ctx, id)
}

// ListFuelLogs retrieves fuel logs matching the filter.
func (s *FuelService) ListFuelLogs(ctx context.Context, filter repository.FuelFilter) ([]*domain.FuelLog, error) {
	return s.repo.List(ctx, filter)
}

// DeleteFuelLog removes a fuel log.
func (s *FuelService) DeleteFuelLog(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidLogID
	}
	return s.repo.Delete(ctx, id)
}
