package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/service"
)

// ──────────────────────────────────────────────
// TRIP LIFECYCLE
// ──────────────────────────────────────────────

func newCoordinator(uow *MockUnitOfWork) *service.Coordinator {
	return service.NewCoordinator(uow, uow.Trips, uow.Maintenance, nil, nil)
}

func availableVehicle(id string, capacityKg float64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:            id,
		Name:          "Test Truck",
		LicensePlate:  "PLATE-" + id,
		Type:          domain.VehicleTypeTruck,
		MaxCapacityKg: capacityKg,
		OdometerKm:    1000,
		Status:        domain.VehicleStatusAvailable,
		CreatedAt:     time.Now(),
	}
}

func availableDriver(id string) *domain.Driver {
	return &domain.Driver{
		ID:            id,
		Name:          "Test Driver",
		EmployeeID:    "EMP-" + id,
		LicenseNumber: "LIC-" + id,
		LicenseExpiry: time.Now().AddDate(1, 0, 0),
		SafetyScore:   100,
		Status:        domain.DriverStatusAvailable,
	}
}

func TestCreateTrip_DraftDoesNotClaimResources(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)

	trip, err := coordinator.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:     "v1",
		DriverID:      "d1",
		Origin:        "Depot A",
		Destination:   "Depot B",
		CargoWeightKg: 500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.Status != domain.TripStatusDraft {
		t.Errorf("expected trip status DRAFT, got %s", trip.Status)
	}
	if trip.Code == "" {
		t.Error("expected a trip code to be assigned")
	}

	// Soft booking: vehicle and driver stay AVAILABLE until dispatch.
	if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusAvailable {
		t.Errorf("expected vehicle AVAILABLE after draft, got %s", got)
	}
	if got := uow.Drivers.GetDriver("d1").Status; got != domain.DriverStatusAvailable {
		t.Errorf("expected driver AVAILABLE after draft, got %s", got)
	}
}

func TestCreateTrip_CapacityExceeded_NoRowCreated(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)

	_, err := coordinator.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:     "v1",
		DriverID:      "d1",
		Origin:        "Depot A",
		Destination:   "Depot B",
		CargoWeightKg: 1500,
	})
	if !errors.Is(err, service.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	if uow.Trips.CountTrips() != 0 {
		t.Errorf("expected no trip rows, got %d", uow.Trips.CountTrips())
	}
}

func TestCreateTrip_ExpiredLicense_Fails(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	driver := availableDriver("d1")
	driver.LicenseExpiry = time.Now().AddDate(0, 0, -1)
	uow.Drivers.AddDriver(driver)
	coordinator := newCoordinator(uow)

	_, err := coordinator.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:     "v1",
		DriverID:      "d1",
		Origin:        "Depot A",
		Destination:   "Depot B",
		CargoWeightKg: 100,
	})
	if !errors.Is(err, service.ErrLicenseExpired) {
		t.Fatalf("expected ErrLicenseExpired, got %v", err)
	}
	if uow.Trips.CountTrips() != 0 {
		t.Error("expected no trip rows after license failure")
	}
}

func TestCreateTrip_VehicleNotAvailable_Fails(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	vehicle := availableVehicle("v1", 1000)
	vehicle.Status = domain.VehicleStatusInShop
	uow.Vehicles.AddVehicle(vehicle)
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)

	_, err := coordinator.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:     "v1",
		DriverID:      "d1",
		Origin:        "A",
		Destination:   "B",
		CargoWeightKg: 100,
	})
	if !errors.Is(err, service.ErrVehicleNotAvailable) {
		t.Fatalf("expected ErrVehicleNotAvailable, got %v", err)
	}
}

func TestDispatchTrip_ClaimsVehicleAndDriver(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)

	trip, err := coordinator.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:     "v1",
		DriverID:      "d1",
		Origin:        "A",
		Destination:   "B",
		CargoWeightKg: 500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	dispatched, err := coordinator.DispatchTrip(context.Background(), service.DispatchTripRequest{TripID: trip.ID})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if dispatched.Status != domain.TripStatusDispatched {
		t.Errorf("expected DISPATCHED, got %s", dispatched.Status)
	}
	if dispatched.DispatchedAt.IsZero() {
		t.Error("expected dispatched_at to be set")
	}
	// Odometer defaults to the vehicle reading when not supplied.
	if dispatched.StartOdometerKm != 1000 {
		t.Errorf("expected start odometer 1000, got %f", dispatched.StartOdometerKm)
	}
	if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusOnTrip {
		t.Errorf("expected vehicle ON_TRIP, got %s", got)
	}
	if got := uow.Drivers.GetDriver("d1").Status; got != domain.DriverStatusOnTrip {
		t.Errorf("expected driver ON_TRIP, got %s", got)
	}
}

func TestDispatchTrip_RevalidatesDriverSuspension(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)

	trip, err := coordinator.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:     "v1",
		DriverID:      "d1",
		Origin:        "A",
		Destination:   "B",
		CargoWeightKg: 500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Driver is suspended between draft and dispatch.
	if err := uow.Drivers.UpdateStatus(context.Background(), "d1", domain.DriverStatusSuspended); err != nil {
		t.Fatalf("suspend: %v", err)
	}

	_, err = coordinator.DispatchTrip(context.Background(), service.DispatchTripRequest{TripID: trip.ID})
	if !errors.Is(err, service.ErrDriverSuspended) {
		t.Fatalf("expected ErrDriverSuspended, got %v", err)
	}

	// Nothing was claimed.
	if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusAvailable {
		t.Errorf("expected vehicle AVAILABLE, got %s", got)
	}
	if got := uow.Trips.GetTrip(trip.ID).Status; got != domain.TripStatusDraft {
		t.Errorf("expected trip still DRAFT, got %s", got)
	}
}

func TestDispatchTrip_RevalidatesLicenseAtCallTime(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	driver := availableDriver("d1")
	uow.Drivers.AddDriver(driver)
	coordinator := newCoordinator(uow)

	trip, err := coordinator.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:     "v1",
		DriverID:      "d1",
		Origin:        "A",
		Destination:   "B",
		CargoWeightKg: 500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// License expires after the draft was created.
	driver.LicenseExpiry = time.Now().AddDate(0, 0, -1)
	if err := uow.Drivers.Update(context.Background(), driver); err != nil {
		t.Fatalf("update: %v", err)
	}

	_, err = coordinator.DispatchTrip(context.Background(), service.DispatchTripRequest{TripID: trip.ID})
	if !errors.Is(err, service.ErrLicenseExpired) {
		t.Fatalf("expected ErrLicenseExpired, got %v", err)
	}
}

func TestCompleteTrip_ReleasesResourcesAndCounts(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)

	trip, err := coordinator.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:     "v1",
		DriverID:      "d1",
		Origin:        "A",
		Destination:   "B",
		CargoWeightKg: 500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := coordinator.DispatchTrip(context.Background(), service.DispatchTripRequest{TripID: trip.ID}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	completed, err := coordinator.CompleteTrip(context.Background(), service.CompleteTripRequest{
		TripID:        trip.ID,
		EndOdometerKm: 1250,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if completed.Status != domain.TripStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", completed.Status)
	}
	if completed.CompletedAt.IsZero() {
		t.Error("expected completed_at to be set")
	}
	if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusAvailable {
		t.Errorf("expected vehicle AVAILABLE, got %s", got)
	}
	if got := uow.Vehicles.GetVehicle("v1").OdometerKm; got != 1250 {
		t.Errorf("expected vehicle odometer 1250, got %f", got)
	}
	if got := uow.Drivers.GetDriver("d1").Status; got != domain.DriverStatusAvailable {
		t.Errorf("expected driver AVAILABLE, got %s", got)
	}
	if got := uow.Drivers.GetDriver("d1").TripsCompleted; got != 1 {
		t.Errorf("expected trips_completed 1, got %d", got)
	}
}

func TestCompleteTrip_OdometerRegression_Fails(t *testing.T) {
	t.Parallel()

	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)

	trip, err := coordinator.CreateTrip(context.Background(), service.CreateTripRequest{
		VehicleID:     "v1",
		DriverID:      "d1",
		Origin:        "A",
		Destination:   "B",
		CargoWeightKg: 500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := coordinator.DispatchTrip(context.Background(), service.DispatchTripRequest{TripID: trip.ID, StartOdometerKm: 2000}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	_, err = coordinator.CompleteTrip(context.Background(), service.CompleteTripRequest{
		TripID:        trip.ID,
		EndOdometerKm: 1500,
	})
	if !errors.Is(err, service.ErrOdometerRegression) {
		t.Fatalf("expected ErrOdometerRegression, got %v", err)
	}

	// Trip still holds its resources.
	if got := uow.Trips.GetTrip(trip.ID).Status; got != domain.TripStatusDispatched {
		t.Errorf("expected trip still DISPATCHED, got %s", got)
	}
	if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusOnTrip {
		t.Errorf("expected vehicle still ON_TRIP, got %s", got)
	}
}

func TestCancelTrip_ReleaseSymmetry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Cancel of a DRAFT trip releases nothing because nothing was claimed.
	t.Run("draft leaves resources untouched", func(t *testing.T) {
		t.Parallel()

		uow := NewMockUnitOfWork()
		uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
		uow.Drivers.AddDriver(availableDriver("d1"))
		coordinator := newCoordinator(uow)

		trip, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
			VehicleID: "v1", DriverID: "d1", Origin: "A", Destination: "B", CargoWeightKg: 500,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		statusCallsBefore := uow.Vehicles.UpdateStatusCallCount
		cancelled, err := coordinator.CancelTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if cancelled.Status != domain.TripStatusCancelled {
			t.Errorf("expected CANCELLED, got %s", cancelled.Status)
		}
		if uow.Vehicles.UpdateStatusCallCount != statusCallsBefore {
			t.Error("draft cancel must not touch vehicle status")
		}
	})

	t.Run("dispatched releases vehicle and driver", func(t *testing.T) {
		t.Parallel()

		uow := NewMockUnitOfWork()
		uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
		uow.Drivers.AddDriver(availableDriver("d1"))
		coordinator := newCoordinator(uow)

		trip, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
			VehicleID: "v1", DriverID: "d1", Origin: "A", Destination: "B", CargoWeightKg: 500,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := coordinator.DispatchTrip(ctx, service.DispatchTripRequest{TripID: trip.ID}); err != nil {
			t.Fatalf("dispatch: %v", err)
		}

		if _, err := coordinator.CancelTrip(ctx, trip.ID); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusAvailable {
			t.Errorf("expected vehicle AVAILABLE, got %s", got)
		}
		if got := uow.Drivers.GetDriver("d1").Status; got != domain.DriverStatusAvailable {
			t.Errorf("expected driver AVAILABLE, got %s", got)
		}
	})
}

func TestTerminalTrip_RejectsEveryTransition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for _, terminal := range []domain.TripStatus{domain.TripStatusCompleted, domain.TripStatusCancelled} {
		terminal := terminal
		t.Run(string(terminal), func(t *testing.T) {
			t.Parallel()

			uow := NewMockUnitOfWork()
			uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
			uow.Drivers.AddDriver(availableDriver("d1"))
			uow.Trips.AddTrip(&domain.Trip{
				ID:        "t1",
				VehicleID: "v1",
				DriverID:  "d1",
				Status:    terminal,
			})
			coordinator := newCoordinator(uow)

			if _, err := coordinator.DispatchTrip(ctx, service.DispatchTripRequest{TripID: "t1"}); !errors.Is(err, service.ErrTripTerminal) {
				t.Errorf("dispatch: expected ErrTripTerminal, got %v", err)
			}
			if _, err := coordinator.CompleteTrip(ctx, service.CompleteTripRequest{TripID: "t1"}); !errors.Is(err, service.ErrTripTerminal) {
				t.Errorf("complete: expected ErrTripTerminal, got %v", err)
			}
			if _, err := coordinator.CancelTrip(ctx, "t1"); !errors.Is(err, service.ErrTripTerminal) {
				t.Errorf("cancel: expected ErrTripTerminal, got %v", err)
			}

			// No state change leaked.
			if got := uow.Trips.GetTrip("t1").Status; got != terminal {
				t.Errorf("expected trip to remain %s, got %s", terminal, got)
			}
			if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusAvailable {
				t.Errorf("expected vehicle untouched, got %s", got)
			}
		})
	}
}

func TestEndToEnd_FullLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)

	trip, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
		VehicleID: "v1", DriverID: "d1", Origin: "A", Destination: "B", CargoWeightKg: 500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if trip.Status != domain.TripStatusDraft {
		t.Fatalf("expected DRAFT, got %s", trip.Status)
	}

	if _, err := coordinator.DispatchTrip(ctx, service.DispatchTripRequest{TripID: trip.ID}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusOnTrip {
		t.Fatalf("expected vehicle ON_TRIP, got %s", got)
	}

	if _, err := coordinator.CompleteTrip(ctx, service.CompleteTripRequest{TripID: trip.ID, EndOdometerKm: 1100}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := uow.Trips.GetTrip(trip.ID).Status; got != domain.TripStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", got)
	}
	if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusAvailable {
		t.Errorf("expected vehicle AVAILABLE, got %s", got)
	}
	if got := uow.Drivers.GetDriver("d1").Status; got != domain.DriverStatusAvailable {
		t.Errorf("expected driver AVAILABLE, got %s", got)
	}
}
