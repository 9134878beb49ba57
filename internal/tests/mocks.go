package tests

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
	UpdateOdometerErr error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vehicles {
		if v.LicensePlate == vehicle.LicensePlate {
			return repository.ErrDuplicate
		}
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Vehicle, error) {
	// Serialization is provided by the mock unit of work, not per row.
	return m.GetByID(ctx, id)
}

func (m *MockVehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if filter.Type != "" && v.Type != filter.Type {
			continue
		}
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[vehicle.ID]; !ok {
		return repository.ErrNotFound
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	vehicle.Status = status
	return nil
}

func (m *MockVehicleRepository) UpdateOdometer(ctx context.Context, id string, odometerKm float64) error {
	if m.UpdateOdometerErr != nil {
		return m.UpdateOdometerErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	vehicle.OdometerKm = odometerKm
	return nil
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.vehicles, id)
	return nil
}

// GetVehicle returns the vehicle by ID for test assertions.
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

func (m *MockVehicleRepository) snapshot() map[string]domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]domain.Vehicle, len(m.vehicles))
	for id, v := range m.vehicles {
		snap[id] = *v
	}
	return snap
}

func (m *MockVehicleRepository) restore(snap map[string]domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles = make(map[string]*domain.Vehicle, len(snap))
	for id, v := range snap {
		copy := v
		m.vehicles[id] = &copy
	}
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.drivers {
		if d.EmployeeID == driver.EmployeeID {
			return repository.ErrDuplicate
		}
	}
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Driver, error) {
	return m.GetByID(ctx, id)
}

func (m *MockDriverRepository) List(ctx context.Context, filter repository.DriverFilter) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.LicenseCategory != "" && d.LicenseCategory != filter.LicenseCategory {
			continue
		}
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Status = status
	return nil
}

func (m *MockDriverRepository) IncrementTripsCompleted(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.TripsCompleted++
	return nil
}

func (m *MockDriverRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.drivers, id)
	return nil
}

// GetDriver returns the driver by ID for test assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

func (m *MockDriverRepository) snapshot() map[string]domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]domain.Driver, len(m.drivers))
	for id, d := range m.drivers {
		snap[id] = *d
	}
	return snap
}

func (m *MockDriverRepository) restore(snap map[string]domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers = make(map[string]*domain.Driver, len(snap))
	for id, d := range snap {
		copy := d
		m.drivers[id] = &copy
	}
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error) {
	return m.GetByID(ctx, id)
}

func (m *MockTripRepository) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.VehicleID != "" && t.VehicleID != filter.VehicleID {
			continue
		}
		if filter.DriverID != "" && t.DriverID != filter.DriverID {
			continue
		}
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

// GetTrip returns the trip by ID for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

func (m *MockTripRepository) snapshot() map[string]domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]domain.Trip, len(m.trips))
	for id, t := range m.trips {
		snap[id] = *t
	}
	return snap
}

func (m *MockTripRepository) restore(snap map[string]domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips = make(map[string]*domain.Trip, len(snap))
	for id, t := range snap {
		copy := t
		m.trips[id] = &copy
	}
}

// ──────────────────────────────────────────────
// MOCK MAINTENANCE REPOSITORY
// ──────────────────────────────────────────────

// MockMaintenanceRepository is a mock implementation of MaintenanceRepository.
type MockMaintenanceRepository struct {
	mu   sync.RWMutex
	logs map[string]*domain.MaintenanceLog

	// Counters
	CreateCallCount  int32
	ResolveCallCount int32

	// Error injection
	CreateError  error
	ResolveError error
}

// NewMockMaintenanceRepository creates a new mock maintenance repository.
func NewMockMaintenanceRepository() *MockMaintenanceRepository {
	return &MockMaintenanceRepository{
		logs: make(map[string]*domain.MaintenanceLog),
	}
}

// AddLog adds a maintenance log to the mock repository.
func (m *MockMaintenanceRepository) AddLog(log *domain.MaintenanceLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[log.ID] = log
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, log *domain.MaintenanceLog) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[log.ID] = log
	return nil
}

func (m *MockMaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	log, ok := m.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *log
	return &copy, nil
}

func (m *MockMaintenanceRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.MaintenanceLog, error) {
	return m.GetByID(ctx, id)
}

func (m *MockMaintenanceRepository) List(ctx context.Context, filter repository.MaintenanceFilter) ([]*domain.MaintenanceLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.MaintenanceLog, 0, len(m.logs))
	for _, log := range m.logs {
		if filter.VehicleID != "" && log.VehicleID != filter.VehicleID {
			continue
		}
		if filter.Resolved != nil && log.Resolved() != *filter.Resolved {
			continue
		}
		copy := *log
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockMaintenanceRepository) Update(ctx context.Context, log *domain.MaintenanceLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.logs[log.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *log
	m.logs[log.ID] = &copy
	return nil
}

func (m *MockMaintenanceRepository) Resolve(ctx context.Context, id string) error {
	atomic.AddInt32(&m.ResolveCallCount, 1)
	if m.ResolveError != nil {
		return m.ResolveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	log, ok := m.logs[id]
	if !ok {
		return repository.ErrNotFound
	}
	log.ResolvedAt = time.Now()
	return nil
}

func (m *MockMaintenanceRepository) CountOpenByVehicle(ctx context.Context, vehicleID, excludeLogID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, log := range m.logs {
		if log.VehicleID == vehicleID && !log.Resolved() && log.ID != excludeLogID {
			count++
		}
	}
	return count, nil
}

func (m *MockMaintenanceRepository) ResolveAllByVehicle(ctx context.Context, vehicleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, log := range m.logs {
		if log.VehicleID == vehicleID && !log.Resolved() {
			log.ResolvedAt = now
		}
	}
	return nil
}

// GetLog returns the log by ID for test assertions.
func (m *MockMaintenanceRepository) GetLog(id string) *domain.MaintenanceLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.logs[id]
}

func (m *MockMaintenanceRepository) snapshot() map[string]domain.MaintenanceLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(map[string]domain.MaintenanceLog, len(m.logs))
	for id, l := range m.logs {
		snap[id] = *l
	}
	return snap
}

func (m *MockMaintenanceRepository) restore(snap map[string]domain.MaintenanceLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = make(map[string]*domain.MaintenanceLog, len(snap))
	for id, l := range snap {
		copy := l
		m.logs[id] = &copy
	}
}

// ──────────────────────────────────────────────
// MOCK UNIT OF WORK
// ──────────────────────────────────────────────

// MockUnitOfWork serializes units of work with a mutex, which mirrors the row
// lock queueing of the real transaction runner: two concurrent operations on
// the same entities run one after the other, each seeing the committed state
// of the previous one. On error all repositories are restored to the snapshot
// taken at entry, mirroring rollback.
type MockUnitOfWork struct {
	mu sync.Mutex

	Vehicles    *MockVehicleRepository
	Drivers     *MockDriverRepository
	Trips       *MockTripRepository
	Maintenance *MockMaintenanceRepository

	// Counters
	TxCallCount int32

	// Error injection
	BeginError error
}

// NewMockUnitOfWork creates a mock unit of work over fresh repositories.
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Vehicles:    NewMockVehicleRepository(),
		Drivers:     NewMockDriverRepository(),
		Trips:       NewMockTripRepository(),
		Maintenance: NewMockMaintenanceRepository(),
	}
}

func (m *MockUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	atomic.AddInt32(&m.TxCallCount, 1)
	if m.BeginError != nil {
		return m.BeginError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	vehicleSnap := m.Vehicles.snapshot()
	driverSnap := m.Drivers.snapshot()
	tripSnap := m.Trips.snapshot()
	maintSnap := m.Maintenance.snapshot()

	err := fn(ctx, repository.TxRepos{
		Vehicles:    m.Vehicles,
		Drivers:     m.Drivers,
		Trips:       m.Trips,
		Maintenance: m.Maintenance,
	})
	if err != nil {
		m.Vehicles.restore(vehicleSnap)
		m.Drivers.restore(driverSnap)
		m.Trips.restore(tripSnap)
		m.Maintenance.restore(maintSnap)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsActive = active
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) acquire(key string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if expiry, exists := m.locks[key]; exists && time.Now().Before(expiry) {
		return false, nil
	}
	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) release(key string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

func (m *MockLockStore) AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error) {
	return m.acquire("lock:vehicle:"+vehicleID, ttl)
}

func (m *MockLockStore) ReleaseVehicleLock(ctx context.Context, vehicleID string) error {
	return m.release("lock:vehicle:" + vehicleID)
}

func (m *MockLockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	return m.acquire("lock:driver:"+driverID, ttl)
}

func (m *MockLockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	return m.release("lock:driver:" + driverID)
}

// ──────────────────────────────────────────────
// MOCK FUEL REPOSITORY
// ──────────────────────────────────────────────

// MockFuelRepository is a mock implementation of FuelRepository.
type MockFuelRepository struct {
	mu   sync.RWMutex
	logs map[string]*domain.FuelLog

	// Error injection
	CreateError error
}

// NewMockFuelRepository creates a new mock fuel repository.
func NewMockFuelRepository() *MockFuelRepository {
	return &MockFuelRepository{
		logs: make(map[string]*domain.FuelLog),
	}
}

func (m *MockFuelRepository) Create(ctx context.Context, log *domain.FuelLog) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[log.ID] = log
	return nil
}

func (m *MockFuelRepository) GetByID(ctx context.Context, id string) (*domain.FuelLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	log, ok := m.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *log
	return &copy, nil
}

func (m *MockFuelRepository) List(ctx context.Context, filter repository.FuelFilter) ([]*domain.FuelLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.FuelLog, 0, len(m.logs))
	for _, log := range m.logs {
		if filter.VehicleID != "" && log.VehicleID != filter.VehicleID {
			continue
		}
		if filter.TripID != "" && log.TripID != filter.TripID {
			continue
		}
		copy := *log
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockFuelRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.logs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.logs, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK ANALYTICS + CACHE
// ──────────────────────────────────────────────

// MockAnalyticsRepository is a mock implementation of AnalyticsRepository.
type MockAnalyticsRepository struct {
	DashboardResult *repository.DashboardStats
	DashboardError  error

	// Counters
	DashboardCallCount int32
}

func (m *MockAnalyticsRepository) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	atomic.AddInt32(&m.DashboardCallCount, 1)
	if m.DashboardError != nil {
		return nil, m.DashboardError
	}
	return m.DashboardResult, nil
}

func (m *MockAnalyticsRepository) FuelEfficiency(ctx context.Context, vehicleID string) ([]*repository.FuelEfficiencyRow, error) {
	return nil, nil
}

func (m *MockAnalyticsRepository) CostPerKm(ctx context.Context, vehicleID string) ([]*repository.CostPerKmRow, error) {
	return nil, nil
}

func (m *MockAnalyticsRepository) Utilization(ctx context.Context) ([]*repository.UtilizationRow, error) {
	return nil, nil
}

func (m *MockAnalyticsRepository) DriverPerformance(ctx context.Context) ([]*repository.DriverPerformanceRow, error) {
	return nil, nil
}

func (m *MockAnalyticsRepository) MonthlyCosts(ctx context.Context, year int) ([]*repository.MonthlyCostRow, error) {
	return nil, nil
}

// MockCacheStore is an in-memory implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu        sync.Mutex
	dashboard *repository.DashboardStats

	// Counters
	GetCallCount int32
	SetCallCount int32
}

func (m *MockCacheStore) GetDashboard(ctx context.Context, dest any) (bool, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dashboard == nil {
		return false, nil
	}
	stats, ok := dest.(*repository.DashboardStats)
	if !ok {
		return false, errors.New("mock: unexpected destination type")
	}
	*stats = *m.dashboard
	return true, nil
}

func (m *MockCacheStore) SetDashboard(ctx context.Context, value any) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := value.(*repository.DashboardStats)
	if !ok {
		return errors.New("mock: unexpected value type")
	}
	copy := *stats
	m.dashboard = &copy
	return nil
}

func (m *MockCacheStore) InvalidateDashboard(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dashboard = nil
	return nil
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
