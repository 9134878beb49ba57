package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for advisory locking.
type LockStoreInterface interface {
	AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error)
	ReleaseVehicleLock(ctx context.Context, vehicleID string) error
	AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error)
	ReleaseDriverLock(ctx context.Context, driverID string) error
}

// CacheStoreInterface defines the interface for short-TTL JSON caching.
type CacheStoreInterface interface {
	GetDashboard(ctx context.Context, dest any) (bool, error)
	SetDashboard(ctx context.Context, value any) error
	InvalidateDashboard(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface  = (*LockStore)(nil)
	_ CacheStoreInterface = (*CacheStore)(nil)
)
