package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

// ──────────────────────────────────────────────
// ADMINISTRATIVE STATUS OVERRIDES
// ──────────────────────────────────────────────

func TestSetVehicleStatus_ManualOnTrip_Rejected(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	svc := service.NewVehicleService(uow.Vehicles, uow, nil)

	_, err := svc.SetVehicleStatus(context.Background(), "v1", domain.VehicleStatusOnTrip)
	if !errors.Is(err, service.ErrManualOnTrip) {
		t.Fatalf("expected ErrManualOnTrip, got %v", err)
	}
	if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusAvailable {
		t.Errorf("expected vehicle untouched, got %s", got)
	}
}

func TestSetVehicleStatus_OnTripVehicle_CannotBeOverridden(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	vehicle := availableVehicle("v1", 1000)
	vehicle.Status = domain.VehicleStatusOnTrip
	uow.Vehicles.AddVehicle(vehicle)
	svc := service.NewVehicleService(uow.Vehicles, uow, nil)

	_, err := svc.SetVehicleStatus(context.Background(), "v1", domain.VehicleStatusAvailable)
	if !errors.Is(err, service.ErrVehicleOnTrip) {
		t.Fatalf("expected ErrVehicleOnTrip, got %v", err)
	}
}

func TestSetVehicleStatus_AdminValues_Succeed(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	svc := service.NewVehicleService(uow.Vehicles, uow, nil)

	vehicle, err := svc.SetVehicleStatus(context.Background(), "v1", domain.VehicleStatusRetired)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vehicle.Status != domain.VehicleStatusRetired {
		t.Errorf("expected RETIRED, got %s", vehicle.Status)
	}
}

func TestDeleteVehicle_OnTrip_Rejected(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	vehicle := availableVehicle("v1", 1000)
	vehicle.Status = domain.VehicleStatusOnTrip
	uow.Vehicles.AddVehicle(vehicle)
	svc := service.NewVehicleService(uow.Vehicles, uow, nil)

	err := svc.DeleteVehicle(context.Background(), "v1")
	if !errors.Is(err, service.ErrVehicleOnTrip) {
		t.Fatalf("expected ErrVehicleOnTrip, got %v", err)
	}
	if uow.Vehicles.GetVehicle("v1") == nil {
		t.Error("vehicle must not be deleted while on a trip")
	}
}

func TestSetDriverStatus_ManualOnTrip_Rejected(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Drivers.AddDriver(availableDriver("d1"))
	svc := service.NewDriverService(uow.Drivers, uow, nil)

	_, err := svc.SetDriverStatus(context.Background(), "d1", domain.DriverStatusOnTrip)
	if !errors.Is(err, service.ErrManualOnTrip) {
		t.Fatalf("expected ErrManualOnTrip, got %v", err)
	}
}

func TestSetDriverStatus_SuspendAndReinstate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := NewMockUnitOfWork()
	uow.Drivers.AddDriver(availableDriver("d1"))
	svc := service.NewDriverService(uow.Drivers, uow, nil)

	driver, err := svc.SetDriverStatus(ctx, "d1", domain.DriverStatusSuspended)
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if driver.Status != domain.DriverStatusSuspended {
		t.Errorf("expected SUSPENDED, got %s", driver.Status)
	}

	driver, err = svc.SetDriverStatus(ctx, "d1", domain.DriverStatusAvailable)
	if err != nil {
		t.Fatalf("reinstate: %v", err)
	}
	if driver.Status != domain.DriverStatusAvailable {
		t.Errorf("expected AVAILABLE, got %s", driver.Status)
	}
}

func TestDeleteDriver_OnTrip_Rejected(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	driver := availableDriver("d1")
	driver.Status = domain.DriverStatusOnTrip
	uow.Drivers.AddDriver(driver)
	svc := service.NewDriverService(uow.Drivers, uow, nil)

	err := svc.DeleteDriver(context.Background(), "d1")
	if !errors.Is(err, service.ErrDriverOnTrip) {
		t.Fatalf("expected ErrDriverOnTrip, got %v", err)
	}
}

// DeleteVehicle racing a dispatch of the same vehicle must never leave a
// DISPATCHED trip pointing at a deleted vehicle. The unit of work serializes
// them: whichever runs second sees the first one's committed state and fails.
func TestDeleteVehicle_ConcurrentDispatch_NeverOrphansTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)
	vehicles := service.NewVehicleService(uow.Vehicles, uow, nil)

	trip, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
		VehicleID: "v1", DriverID: "d1", Origin: "A", Destination: "B", CargoWeightKg: 100,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	var dispatchErr, deleteErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, dispatchErr = coordinator.DispatchTrip(ctx, service.DispatchTripRequest{TripID: trip.ID})
	}()
	go func() {
		defer wg.Done()
		deleteErr = vehicles.DeleteVehicle(ctx, "v1")
	}()
	wg.Wait()

	dispatched := uow.Trips.GetTrip(trip.ID).Status == domain.TripStatusDispatched
	deleted := uow.Vehicles.GetVehicle("v1") == nil

	if dispatched && deleted {
		t.Fatal("ON_TRIP vehicle was deleted under a dispatched trip")
	}
	switch {
	case dispatched:
		if !errors.Is(deleteErr, service.ErrVehicleOnTrip) {
			t.Fatalf("expected delete to fail with ErrVehicleOnTrip, got %v", deleteErr)
		}
	case deleted:
		if !errors.Is(dispatchErr, repository.ErrNotFound) {
			t.Fatalf("expected dispatch to fail with ErrNotFound, got %v", dispatchErr)
		}
	default:
		t.Fatalf("expected one operation to win, got dispatch=%v delete=%v", dispatchErr, deleteErr)
	}
}

// Suspending a driver racing a dispatch must never leave a DISPATCHED trip
// with a SUSPENDED driver.
func TestSetDriverStatus_ConcurrentDispatch_NeverSuspendsOnTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)
	drivers := service.NewDriverService(uow.Drivers, uow, nil)

	trip, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
		VehicleID: "v1", DriverID: "d1", Origin: "A", Destination: "B", CargoWeightKg: 100,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	var dispatchErr, suspendErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, dispatchErr = coordinator.DispatchTrip(ctx, service.DispatchTripRequest{TripID: trip.ID})
	}()
	go func() {
		defer wg.Done()
		_, suspendErr = drivers.SetDriverStatus(ctx, "d1", domain.DriverStatusSuspended)
	}()
	wg.Wait()

	dispatched := uow.Trips.GetTrip(trip.ID).Status == domain.TripStatusDispatched
	driverStatus := uow.Drivers.GetDriver("d1").Status

	if dispatched && driverStatus != domain.DriverStatusOnTrip {
		t.Fatalf("dispatched trip but driver is %s", driverStatus)
	}
	switch {
	case dispatched:
		if !errors.Is(suspendErr, service.ErrDriverOnTrip) {
			t.Fatalf("expected suspend to fail with ErrDriverOnTrip, got %v", suspendErr)
		}
	case driverStatus == domain.DriverStatusSuspended:
		if !errors.Is(dispatchErr, service.ErrDriverSuspended) {
			t.Fatalf("expected dispatch to fail with ErrDriverSuspended, got %v", dispatchErr)
		}
	default:
		t.Fatalf("expected one operation to win, got dispatch=%v suspend=%v", dispatchErr, suspendErr)
	}
}

// ──────────────────────────────────────────────
// FUEL LOGS
// ──────────────────────────────────────────────

func TestCreateFuelLog_TripMustBelongToVehicle(t *testing.T) {
	t.Parallel()

	fuelRepo := NewMockFuelRepository()
	vehicleRepo := NewMockVehicleRepository()
	tripRepo := NewMockTripRepository()
	vehicleRepo.AddVehicle(availableVehicle("v1", 1000))
	vehicleRepo.AddVehicle(availableVehicle("v2", 1000))
	tripRepo.AddTrip(&domain.Trip{ID: "t1", VehicleID: "v2", DriverID: "d1", Status: domain.TripStatusDispatched})

	svc := service.NewFuelService(fuelRepo, vehicleRepo, tripRepo, nil)

	_, err := svc.CreateFuelLog(context.Background(), service.CreateFuelLogRequest{
		VehicleID: "v1",
		TripID:    "t1",
		Liters:    40,
	})
	if !errors.Is(err, service.ErrTripVehicleMismatch) {
		t.Fatalf("expected ErrTripVehicleMismatch, got %v", err)
	}
}

func TestCreateFuelLog_Succeeds(t *testing.T) {
	t.Parallel()

	fuelRepo := NewMockFuelRepository()
	vehicleRepo := NewMockVehicleRepository()
	tripRepo := NewMockTripRepository()
	vehicleRepo.AddVehicle(availableVehicle("v1", 1000))
	tripRepo.AddTrip(&domain.Trip{ID: "t1", VehicleID: "v1", DriverID: "d1", Status: domain.TripStatusDispatched})

	svc := service.NewFuelService(fuelRepo, vehicleRepo, tripRepo, nil)

	log, err := svc.CreateFuelLog(context.Background(), service.CreateFuelLogRequest{
		VehicleID:    "v1",
		TripID:       "t1",
		Liters:       40,
		CostPerLiter: 1.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.TotalCost() != 60 {
		t.Errorf("expected total cost 60, got %f", log.TotalCost())
	}
	// Fuel logging never changes vehicle status.
	if got := vehicleRepo.GetVehicle("v1").Status; got != domain.VehicleStatusAvailable {
		t.Errorf("expected vehicle AVAILABLE, got %s", got)
	}
}

func TestCreateFuelLog_NonPositiveLiters_Rejected(t *testing.T) {
	t.Parallel()

	svc := service.NewFuelService(NewMockFuelRepository(), NewMockVehicleRepository(), NewMockTripRepository(), nil)

	_, err := svc.CreateFuelLog(context.Background(), service.CreateFuelLogRequest{
		VehicleID: "v1",
		Liters:    0,
	})
	if !errors.Is(err, service.ErrInvalidLiters) {
		t.Fatalf("expected ErrInvalidLiters, got %v", err)
	}
}
