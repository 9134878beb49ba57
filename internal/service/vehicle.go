package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

// VehicleService handles administrative vehicle operations. Trip and
// maintenance driven status changes belong to the Coordinator. Status changes
// and deletes run as a unit of work so the ON_TRIP check and the write see
// the same locked row.
type VehicleService struct {
	repo repository.VehicleRepository
	uow  repository.UnitOfWork
	log  *logrus.Logger
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(repo repository.VehicleRepository, uow repository.UnitOfWork, log *logrus.Logger) *VehicleService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &VehicleService{repo: repo, uow: uow, log: log}
}

// CreateVehicleRequest contains the parameters for registering a vehicle.
type CreateVehicleRequest struct {
	Name            string
	Model           string
	LicensePlate    string
	Type            domain.VehicleType
	MaxCapacityKg   float64
	OdometerKm      float64
	AcquisitionCost float64
}

// CreateVehicle registers a new vehicle in AVAILABLE status.
func (s *VehicleService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if req.MaxCapacityKg <= 0 {
		return nil, ErrInvalidCapacity
	}
	vehicleType := req.Type
	if vehicleType == "" {
		vehicleType = domain.VehicleTypeOther
	}
	switch vehicleType {
	case domain.VehicleTypeTruck, domain.VehicleTypeVan, domain.VehicleTypeCar,
		domain.VehicleTypeBike, domain.VehicleTypeOther:
	default:
		return nil, ErrInvalidStatus
	}

	vehicle := &domain.Vehicle{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Model:           req.Model,
		LicensePlate:    req.LicensePlate,
		Type:            vehicleType,
		MaxCapacityKg:   req.MaxCapacityKg,
		OdometerKm:      req.OdometerKm,
		AcquisitionCost: req.AcquisitionCost,
		Status:          domain.VehicleStatusAvailable,
		CreatedAt:       time.Now(),
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"vehicle_id":    vehicle.ID,
		"license_plate": vehicle.LicensePlate,
	}).Info("vehicle registered")

	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	if id == "" {
		return nil, ErrInvalidVehicleID
	}
	return s.repo.GetByID(ctx, id)
}

// ListVehicles retrieves vehicles matching the filter.
func (s *VehicleService) ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, error) {
	return s.repo.List(ctx, filter)
}

// UpdateVehicleRequest contains the updatable descriptive fields.
type UpdateVehicleRequest struct {
	Name            string
	Model           string
	MaxCapacityKg   float64
	AcquisitionCost float64
}

// UpdateVehicle updates a vehicle's descriptive fields. Status and odometer
// are not updatable here.
func (s *VehicleService) UpdateVehicle(ctx context.Context, id string, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	if id == "" {
		return nil, ErrInvalidVehicleID
	}
	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		vehicle.Name = req.Name
	}
	if req.Model != "" {
		vehicle.Model = req.Model
	}
	if req.MaxCapacityKg != 0 {
		if req.MaxCapacityKg < 0 {
			return nil, ErrInvalidCapacity
		}
		vehicle.MaxCapacityKg = req.MaxCapacityKg
	}
	if req.AcquisitionCost != 0 {
		vehicle.AcquisitionCost = req.AcquisitionCost
	}
	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// SetVehicleStatus performs an administrative status change. ON_TRIP cannot
// be set by hand, and a vehicle that is on a trip cannot be moved off it here.
func (s *VehicleService) SetVehicleStatus(ctx context.Context, id string, status domain.VehicleStatus) (*domain.Vehicle, error) {
	if id == "" {
		return nil, ErrInvalidVehicleID
	}
	switch status {
	case domain.VehicleStatusAvailable, domain.VehicleStatusInShop, domain.VehicleStatusRetired:
	case domain.VehicleStatusOnTrip:
		return nil, ErrManualOnTrip
	default:
		return nil, ErrInvalidStatus
	}

	var vehicle *domain.Vehicle
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		vehicle, err = repos.Vehicles.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if vehicle.Status == domain.VehicleStatusOnTrip {
			return ErrVehicleOnTrip
		}
		if err := repos.Vehicles.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		vehicle.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"vehicle_id": id,
		"status":     status,
	}).Info("vehicle status updated")

	return vehicle, nil
}

// DeleteVehicle removes a vehicle. A vehicle on an active trip cannot be
// deleted.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidVehicleID
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		vehicle, err := repos.Vehicles.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if vehicle.Status == domain.VehicleStatusOnTrip {
			return ErrVehicleOnTrip
		}
		return repos.Vehicles.Delete(ctx, id)
	})
}
