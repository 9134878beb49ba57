package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/service"
)

// ──────────────────────────────────────────────
// DISPATCH CONCURRENCY
// ──────────────────────────────────────────────

// Two DRAFT trips share one vehicle; both dispatch concurrently. The unit of
// work serializes them, so exactly one dispatch may win and the loser must
// fail with a conflict, never a silent double-booking.
func TestDispatch_ConcurrentSameVehicle_ExactlyOneWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	uow.Drivers.AddDriver(availableDriver("d2"))
	coordinator := newCoordinator(uow)

	tripA, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
		VehicleID: "v1", DriverID: "d1", Origin: "A", Destination: "B", CargoWeightKg: 100,
	})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	tripB, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
		VehicleID: "v1", DriverID: "d2", Origin: "A", Destination: "C", CargoWeightKg: 100,
	})
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, tripID := range []string{tripA.ID, tripB.ID} {
		wg.Add(1)
		go func(i int, tripID string) {
			defer wg.Done()
			_, err := coordinator.DispatchTrip(ctx, service.DispatchTripRequest{TripID: tripID})
			results[i] = err
		}(i, tripID)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrVehicleNotAvailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner and one conflict, got wins=%d conflicts=%d", wins, conflicts)
	}

	// At most one trip references the vehicle in DISPATCHED status.
	dispatched := 0
	for _, id := range []string{tripA.ID, tripB.ID} {
		if uow.Trips.GetTrip(id).Status == domain.TripStatusDispatched {
			dispatched++
		}
	}
	if dispatched != 1 {
		t.Fatalf("expected exactly one DISPATCHED trip, got %d", dispatched)
	}
	if got := uow.Vehicles.GetVehicle("v1").Status; got != domain.VehicleStatusOnTrip {
		t.Errorf("expected vehicle ON_TRIP, got %s", got)
	}
}

// The same driver backing two drafts on different vehicles may only be
// claimed once.
func TestDispatch_ConcurrentSameDriver_ExactlyOneWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Vehicles.AddVehicle(availableVehicle("v2", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))
	coordinator := newCoordinator(uow)

	tripA, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
		VehicleID: "v1", DriverID: "d1", Origin: "A", Destination: "B", CargoWeightKg: 100,
	})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	tripB, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
		VehicleID: "v2", DriverID: "d1", Origin: "A", Destination: "C", CargoWeightKg: 100,
	})
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, tripID := range []string{tripA.ID, tripB.ID} {
		wg.Add(1)
		go func(i int, tripID string) {
			defer wg.Done()
			_, err := coordinator.DispatchTrip(ctx, service.DispatchTripRequest{TripID: tripID})
			results[i] = err
		}(i, tripID)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrDriverNotAvailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner and one conflict, got wins=%d conflicts=%d", wins, conflicts)
	}

	// The losing vehicle was never claimed; the conflict aborted its unit
	// of work before any write became visible.
	onTrip := 0
	for _, id := range []string{"v1", "v2"} {
		if uow.Vehicles.GetVehicle(id).Status == domain.VehicleStatusOnTrip {
			onTrip++
		}
	}
	if onTrip != 1 {
		t.Fatalf("expected exactly one vehicle ON_TRIP, got %d", onTrip)
	}
}

// An advisory lock failure surfaces as a conflict before the vehicle row is
// read.
func TestDispatch_AdvisoryLockHeld_FailsFast(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))

	locks := NewMockLockStore()
	locks.ForceAcquireFailure = true
	coordinator := service.NewCoordinator(uow, uow.Trips, uow.Maintenance, locks, nil)

	trip, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
		VehicleID: "v1", DriverID: "d1", Origin: "A", Destination: "B", CargoWeightKg: 100,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = coordinator.DispatchTrip(ctx, service.DispatchTripRequest{TripID: trip.ID})
	if !errors.Is(err, service.ErrVehicleNotAvailable) {
		t.Fatalf("expected ErrVehicleNotAvailable, got %v", err)
	}
	if got := uow.Trips.GetTrip(trip.ID).Status; got != domain.TripStatusDraft {
		t.Errorf("expected trip still DRAFT, got %s", got)
	}
}

// A held driver advisory lock is a conflict too; the vehicle lock alone does
// not admit the dispatch.
func TestDispatch_DriverAdvisoryLockHeld_FailsFast(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uow := NewMockUnitOfWork()
	uow.Vehicles.AddVehicle(availableVehicle("v1", 1000))
	uow.Drivers.AddDriver(availableDriver("d1"))

	locks := NewMockLockStore()
	if held, err := locks.AcquireDriverLock(ctx, "d1", time.Minute); err != nil || !held {
		t.Fatalf("seed driver lock: held=%v err=%v", held, err)
	}
	coordinator := service.NewCoordinator(uow, uow.Trips, uow.Maintenance, locks, nil)

	trip, err := coordinator.CreateTrip(ctx, service.CreateTripRequest{
		VehicleID: "v1", DriverID: "d1", Origin: "A", Destination: "B", CargoWeightKg: 100,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = coordinator.DispatchTrip(ctx, service.DispatchTripRequest{TripID: trip.ID})
	if !errors.Is(err, service.ErrDriverNotAvailable) {
		t.Fatalf("expected ErrDriverNotAvailable, got %v", err)
	}
	if got := uow.Trips.GetTrip(trip.ID).Status; got != domain.TripStatusDraft {
		t.Errorf("expected trip still DRAFT, got %s", got)
	}
	if got := uow.Drivers.GetDriver("d1").Status; got != domain.DriverStatusAvailable {
		t.Errorf("expected driver still AVAILABLE, got %s", got)
	}
}
