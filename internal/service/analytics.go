package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"fleetflow/internal/redis"
	"fleetflow/internal/repository"
)

// AnalyticsService serves read-only fleet aggregations. The dashboard is the
// only cached payload; every other report is computed on request.
type AnalyticsService struct {
	repo  repository.AnalyticsRepository
	cache redis.CacheStoreInterface
	log   *logrus.Logger
}

// NewAnalyticsService creates a new AnalyticsService. cache may be nil, in
// which case every dashboard call hits the database.
func NewAnalyticsService(repo repository.AnalyticsRepository, cache redis.CacheStoreInterface, log *logrus.Logger) *AnalyticsService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AnalyticsService{repo: repo, cache: cache, log: log}
}

// Dashboard returns the high-level KPI counts, served from cache when fresh.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	if s.cache != nil {
		var cached repository.DashboardStats
		hit, err := s.cache.GetDashboard(ctx, &cached)
		if err != nil {
			s.log.WithError(err).Warn("dashboard cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	stats, err := s.repo.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, stats); err != nil {
			s.log.WithError(err).Warn("dashboard cache write failed")
		}
	}
	return stats, nil
}

// FuelEfficiency returns per-vehicle km/L figures. vehicleID narrows the
// report to one vehicle when non-empty.
func (s *AnalyticsService) FuelEfficiency(ctx context.Context, vehicleID string) ([]*repository.FuelEfficiencyRow, error) {
	return s.repo.FuelEfficiency(ctx, vehicleID)
}

// CostPerKm returns per-vehicle operational cost figures.
func (s *AnalyticsService) CostPerKm(ctx context.Context, vehicleID string) ([]*repository.CostPerKmRow, error) {
	return s.repo.CostPerKm(ctx, vehicleID)
}

// Utilization returns monthly trip utilization for the last twelve months.
func (s *AnalyticsService) Utilization(ctx context.Context) ([]*repository.UtilizationRow, error) {
	return s.repo.Utilization(ctx)
}

// DriverPerformance returns the per-driver performance summary.
func (s *AnalyticsService) DriverPerformance(ctx context.Context) ([]*repository.DriverPerformanceRow, error) {
	return s.repo.DriverPerformance(ctx)
}

// MonthlyCosts returns the month-by-month cost summary for a year.
func (s *AnalyticsService) MonthlyCosts(ctx context.Context, year int) ([]*repository.MonthlyCostRow, error) {
	return s.repo.MonthlyCosts(ctx, year)
}
