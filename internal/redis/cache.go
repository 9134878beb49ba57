package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles short-TTL JSON caching in Redis. Analytics responses are
// the only cached payloads; entity state is never cached to avoid drift from
// the authoritative store.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// DashboardCacheTTL bounds how stale the dashboard KPIs may be.
const DashboardCacheTTL = 30 * time.Second

const dashboardCacheKey = "cache:analytics:dashboard"

// GetDashboard retrieves the cached dashboard payload into dest.
// Returns false on cache miss.
func (s *CacheStore) GetDashboard(ctx context.Context, dest any) (bool, error) {
	data, err := s.client.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetDashboard stores the dashboard payload.
func (s *CacheStore) SetDashboard(ctx context.Context, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, dashboardCacheKey, data, DashboardCacheTTL).Err()
}

// InvalidateDashboard removes the cached dashboard payload. Called after
// coordinator transitions so the KPIs reflect them promptly.
func (s *CacheStore) InvalidateDashboard(ctx context.Context) error {
	return s.client.Del(ctx, dashboardCacheKey).Err()
}
