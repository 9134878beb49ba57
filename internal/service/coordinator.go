package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fleetflow/internal/domain"
	"fleetflow/internal/redis"
	"fleetflow/internal/repository"
)

const dispatchLockTTL = 10 * time.Second

// Coordinator owns every status transition that touches more than one entity:
// the trip lifecycle, the maintenance lifecycle, and the vehicle/driver status
// changes they drive. Each operation runs as one unit of work that locks the
// rows it will write before validating, so two concurrent dispatches of the
// same vehicle serialize and the loser fails with a conflict.
//
// The coordinator holds no entity state between calls; the database is the
// only source of truth.
type Coordinator struct {
	uow       repository.UnitOfWork
	tripRepo  repository.TripRepository
	maintRepo repository.MaintenanceRepository
	lockStore redis.LockStoreInterface
	log       *logrus.Logger
}

// NewCoordinator creates a new Coordinator. lockStore may be nil; advisory
// locks only narrow race windows across instances, correctness comes from the
// row locks inside the unit of work.
func NewCoordinator(
	uow repository.UnitOfWork,
	tripRepo repository.TripRepository,
	maintRepo repository.MaintenanceRepository,
	lockStore redis.LockStoreInterface,
	log *logrus.Logger,
) *Coordinator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Coordinator{
		uow:       uow,
		tripRepo:  tripRepo,
		maintRepo: maintRepo,
		lockStore: lockStore,
		log:       log,
	}
}

// CreateTripRequest contains the parameters for creating a trip.
type CreateTripRequest struct {
	VehicleID        string
	DriverID         string
	Origin           string
	Destination      string
	CargoDescription string
	CargoWeightKg    float64
	Notes            string
	CreatedBy        string
}

// CreateTrip creates a trip in DRAFT status. The vehicle and driver are
// validated under row locks but not yet claimed; claiming happens at dispatch.
func (s *Coordinator) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.CargoWeightKg <= 0 {
		return nil, ErrInvalidCargoWeight
	}

	var trip *domain.Trip
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		vehicle, err := repos.Vehicles.GetByIDForUpdate(ctx, req.VehicleID)
		if err != nil {
			return err
		}
		if vehicle.Status != domain.VehicleStatusAvailable {
			return ErrVehicleNotAvailable
		}
		if req.CargoWeightKg > vehicle.MaxCapacityKg {
			return ErrCapacityExceeded
		}

		driver, err := repos.Drivers.GetByIDForUpdate(ctx, req.DriverID)
		if err != nil {
			return err
		}
		if driver.Status == domain.DriverStatusSuspended {
			return ErrDriverSuspended
		}
		if driver.Status != domain.DriverStatusAvailable {
			return ErrDriverNotAvailable
		}
		if driver.LicenseExpired(time.Now()) {
			return ErrLicenseExpired
		}

		trip = &domain.Trip{
			ID:               uuid.New().String(),
			Code:             newTripCode(),
			VehicleID:        req.VehicleID,
			DriverID:         req.DriverID,
			Origin:           req.Origin,
			Destination:      req.Destination,
			CargoDescription: req.CargoDescription,
			CargoWeightKg:    req.CargoWeightKg,
			Status:           domain.TripStatusDraft,
			Notes:            req.Notes,
			CreatedBy:        req.CreatedBy,
			CreatedAt:        time.Now(),
		}
		return repos.Trips.Create(ctx, trip)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"trip_id":    trip.ID,
		"trip_code":  trip.Code,
		"vehicle_id": trip.VehicleID,
		"driver_id":  trip.DriverID,
	}).Info("trip created")

	return trip, nil
}

// DispatchTripRequest contains the parameters for dispatching a trip.
type DispatchTripRequest struct {
	TripID          string
	StartOdometerKm float64
}

// DispatchTrip moves a DRAFT trip to DISPATCHED and claims its vehicle and
// driver. All preconditions are re-validated against current locked state;
// anything may have changed since the draft was created.
func (s *Coordinator) DispatchTrip(ctx context.Context, req DispatchTripRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	var trip *domain.Trip
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		trip, err = repos.Trips.GetByIDForUpdate(ctx, req.TripID)
		if err != nil {
			return err
		}
		if trip.Status.Terminal() {
			return ErrTripTerminal
		}
		if trip.Status != domain.TripStatusDraft {
			return ErrTripNotDraft
		}

		// Advisory locks after the trip row lock so a retry loser fails
		// fast instead of queueing on the vehicle or driver row.
		if s.lockStore != nil {
			locked, lockErr := s.lockStore.AcquireVehicleLock(ctx, trip.VehicleID, dispatchLockTTL)
			if lockErr == nil {
				if !locked {
					return ErrVehicleNotAvailable
				}
				defer func() { _ = s.lockStore.ReleaseVehicleLock(ctx, trip.VehicleID) }()
			}
			locked, lockErr = s.lockStore.AcquireDriverLock(ctx, trip.DriverID, dispatchLockTTL)
			if lockErr == nil {
				if !locked {
					return ErrDriverNotAvailable
				}
				defer func() { _ = s.lockStore.ReleaseDriverLock(ctx, trip.DriverID) }()
			}
		}

		vehicle, err := repos.Vehicles.GetByIDForUpdate(ctx, trip.VehicleID)
		if err != nil {
			return err
		}
		if vehicle.Status != domain.VehicleStatusAvailable {
			return ErrVehicleNotAvailable
		}

		driver, err := repos.Drivers.GetByIDForUpdate(ctx, trip.DriverID)
		if err != nil {
			return err
		}
		if driver.Status == domain.DriverStatusSuspended {
			return ErrDriverSuspended
		}
		if driver.Status != domain.DriverStatusAvailable {
			return ErrDriverNotAvailable
		}
		if driver.LicenseExpired(time.Now()) {
			return ErrLicenseExpired
		}

		trip.Status = domain.TripStatusDispatched
		trip.DispatchedAt = time.Now()
		trip.StartOdometerKm = req.StartOdometerKm
		if trip.StartOdometerKm <= 0 {
			trip.StartOdometerKm = vehicle.OdometerKm
		}
		if err := repos.Trips.Update(ctx, trip); err != nil {
			return err
		}

		if err := repos.Vehicles.UpdateStatus(ctx, trip.VehicleID, domain.VehicleStatusOnTrip); err != nil {
			return err
		}
		return repos.Drivers.UpdateStatus(ctx, trip.DriverID, domain.DriverStatusOnTrip)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"trip_id":    trip.ID,
		"vehicle_id": trip.VehicleID,
		"driver_id":  trip.DriverID,
	}).Info("trip dispatched")

	return trip, nil
}

// CompleteTripRequest contains the parameters for completing a trip.
type CompleteTripRequest struct {
	TripID        string
	EndOdometerKm float64
	Notes         string
}

// CompleteTrip moves a DISPATCHED trip to COMPLETED and releases its vehicle
// and driver back to AVAILABLE.
func (s *Coordinator) CompleteTrip(ctx context.Context, req CompleteTripRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	var trip *domain.Trip
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		trip, err = repos.Trips.GetByIDForUpdate(ctx, req.TripID)
		if err != nil {
			return err
		}
		if trip.Status.Terminal() {
			return ErrTripTerminal
		}
		if trip.Status != domain.TripStatusDispatched {
			return ErrTripNotDispatched
		}

		endOdometer := req.EndOdometerKm
		if endOdometer <= 0 {
			endOdometer = trip.StartOdometerKm
		}
		if endOdometer < trip.StartOdometerKm {
			return ErrOdometerRegression
		}

		if _, err := repos.Vehicles.GetByIDForUpdate(ctx, trip.VehicleID); err != nil {
			return err
		}
		if _, err := repos.Drivers.GetByIDForUpdate(ctx, trip.DriverID); err != nil {
			return err
		}

		trip.Status = domain.TripStatusCompleted
		trip.CompletedAt = time.Now()
		trip.EndOdometerKm = endOdometer
		if req.Notes != "" {
			trip.Notes = req.Notes
		}
		if err := repos.Trips.Update(ctx, trip); err != nil {
			return err
		}

		if err := repos.Vehicles.UpdateStatus(ctx, trip.VehicleID, domain.VehicleStatusAvailable); err != nil {
			return err
		}
		if err := repos.Vehicles.UpdateOdometer(ctx, trip.VehicleID, endOdometer); err != nil {
			return err
		}
		if err := repos.Drivers.UpdateStatus(ctx, trip.DriverID, domain.DriverStatusAvailable); err != nil {
			return err
		}
		return repos.Drivers.IncrementTripsCompleted(ctx, trip.DriverID)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"trip_id":    trip.ID,
		"vehicle_id": trip.VehicleID,
		"driver_id":  trip.DriverID,
	}).Info("trip completed")

	return trip, nil
}

// CancelTrip cancels a DRAFT or DISPATCHED trip. Resources are released only
// if the trip had claimed them (was DISPATCHED); a draft never claimed any.
func (s *Coordinator) CancelTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	var trip *domain.Trip
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		trip, err = repos.Trips.GetByIDForUpdate(ctx, tripID)
		if err != nil {
			return err
		}
		if !domain.CanTransition(trip.Status, domain.TripStatusCancelled) {
			return ErrTripTerminal
		}

		wasDispatched := trip.Status == domain.TripStatusDispatched

		trip.Status = domain.TripStatusCancelled
		if err := repos.Trips.Update(ctx, trip); err != nil {
			return err
		}

		if wasDispatched {
			if _, err := repos.Vehicles.GetByIDForUpdate(ctx, trip.VehicleID); err != nil {
				return err
			}
			if err := repos.Vehicles.UpdateStatus(ctx, trip.VehicleID, domain.VehicleStatusAvailable); err != nil {
				return err
			}
			if _, err := repos.Drivers.GetByIDForUpdate(ctx, trip.DriverID); err != nil {
				return err
			}
			if err := repos.Drivers.UpdateStatus(ctx, trip.DriverID, domain.DriverStatusAvailable); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("trip_id", trip.ID).Info("trip cancelled")

	return trip, nil
}

// LogMaintenanceRequest contains the parameters for logging maintenance.
type LogMaintenanceRequest struct {
	VehicleID         string
	ServiceType       string
	Description       string
	Cost              float64
	Vendor            string
	OdometerAtService float64
	ServiceDate       time.Time
	LoggedBy          string
}

// LogMaintenance records an unresolved maintenance log and forces the vehicle
// IN_SHOP. A vehicle on a trip cannot enter the shop.
func (s *Coordinator) LogMaintenance(ctx context.Context, req LogMaintenanceRequest) (*domain.MaintenanceLog, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	var log *domain.MaintenanceLog
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		vehicle, err := repos.Vehicles.GetByIDForUpdate(ctx, req.VehicleID)
		if err != nil {
			return err
		}
		if vehicle.Status == domain.VehicleStatusOnTrip {
			return ErrVehicleOnTrip
		}

		serviceDate := req.ServiceDate
		if serviceDate.IsZero() {
			serviceDate = time.Now()
		}

		log = &domain.MaintenanceLog{
			ID:                uuid.New().String(),
			VehicleID:         req.VehicleID,
			ServiceType:       req.ServiceType,
			Description:       req.Description,
			Cost:              req.Cost,
			Vendor:            req.Vendor,
			OdometerAtService: req.OdometerAtService,
			ServiceDate:       serviceDate,
			LoggedBy:          req.LoggedBy,
			CreatedAt:         time.Now(),
		}
		if err := repos.Maintenance.Create(ctx, log); err != nil {
			return err
		}

		return repos.Vehicles.UpdateStatus(ctx, req.VehicleID, domain.VehicleStatusInShop)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"log_id":     log.ID,
		"vehicle_id": log.VehicleID,
	}).Info("maintenance logged, vehicle in shop")

	return log, nil
}

// ResolveMaintenance marks a log resolved. The vehicle returns to AVAILABLE
// only when this was its last open log; other open logs keep it IN_SHOP.
func (s *Coordinator) ResolveMaintenance(ctx context.Context, logID string) (*domain.MaintenanceLog, error) {
	if logID == "" {
		return nil, ErrInvalidLogID
	}

	var log *domain.MaintenanceLog
	var released bool
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		log, err = repos.Maintenance.GetByIDForUpdate(ctx, logID)
		if err != nil {
			return err
		}
		if log.Resolved() {
			return ErrMaintenanceResolved
		}

		// Lock the vehicle before counting so a concurrent LogMaintenance
		// cannot slip a new open log in between count and release.
		vehicle, err := repos.Vehicles.GetByIDForUpdate(ctx, log.VehicleID)
		if err != nil {
			return err
		}

		if err := repos.Maintenance.Resolve(ctx, logID); err != nil {
			return err
		}
		log.ResolvedAt = time.Now()

		open, err := repos.Maintenance.CountOpenByVehicle(ctx, log.VehicleID, logID)
		if err != nil {
			return err
		}
		if open == 0 && vehicle.Status == domain.VehicleStatusInShop {
			released = true
			return repos.Vehicles.UpdateStatus(ctx, log.VehicleID, domain.VehicleStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"log_id":           log.ID,
		"vehicle_id":       log.VehicleID,
		"vehicle_released": released,
	}).Info("maintenance resolved")

	return log, nil
}

// ReleaseVehicle is the manager override: it resolves every open maintenance
// log for the vehicle and returns it to AVAILABLE if it was IN_SHOP.
func (s *Coordinator) ReleaseVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	var vehicle *domain.Vehicle
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		vehicle, err = repos.Vehicles.GetByIDForUpdate(ctx, vehicleID)
		if err != nil {
			return err
		}
		if vehicle.Status == domain.VehicleStatusOnTrip {
			return ErrVehicleOnTrip
		}

		if err := repos.Maintenance.ResolveAllByVehicle(ctx, vehicleID); err != nil {
			return err
		}

		if vehicle.Status == domain.VehicleStatusInShop {
			vehicle.Status = domain.VehicleStatusAvailable
			return repos.Vehicles.UpdateStatus(ctx, vehicleID, domain.VehicleStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("vehicle_id", vehicleID).Info("vehicle released from shop")

	return vehicle, nil
}

// GetTrip retrieves a trip by ID.
func (s *Coordinator) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	return s.tripRepo.GetByID(ctx, tripID)
}

// ListTrips retrieves trips matching the filter.
func (s *Coordinator) ListTrips(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	return s.tripRepo.List(ctx, filter)
}

// GetMaintenanceLog retrieves a maintenance log by ID.
func (s *Coordinator) GetMaintenanceLog(ctx context.Context, id string) (*domain.MaintenanceLog, error) {
	if id == "" {
		return nil, ErrInvalidLogID
	}
	return s.maintRepo.GetByID(ctx, id)
}

// ListMaintenanceLogs retrieves maintenance logs matching the filter.
func (s *Coordinator) ListMaintenanceLogs(ctx context.Context, filter repository.MaintenanceFilter) ([]*domain.MaintenanceLog, error) {
	return s.maintRepo.List(ctx, filter)
}

// newTripCode builds a human-readable trip code like TRIP-20250114-4821.
func newTripCode() string {
	return fmt.Sprintf("TRIP-%s-%04d", time.Now().Format("20060102"), rand.Intn(9000)+1000)
}
