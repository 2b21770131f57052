package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/pkg/cache"
)

const (
	recentCommunicationWindow = 30 * 24 * time.Hour
	upcomingContactDays       = 7
)

// DashboardCacheKey is the cache key of one caller's dashboard. It sits
// below PathDashboard so invalidating that path evicts every caller.
func DashboardCacheKey(userID string) string {
	return domain.PathDashboard + "|" + userID
}

type DashboardService struct {
	base
	repo  domain.DashboardRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewDashboardService creates the service. A nil pages cache disables caching.
func NewDashboardService(repo domain.DashboardRepository, pages cache.Cache, ttl time.Duration, deps Deps) *DashboardService {
	return &DashboardService{base: newBase("DashboardService", deps), repo: repo, cache: pages, ttl: ttl}
}

func (s *DashboardService) Stats(ctx context.Context) domain.Result[*domain.DashboardStats] {
	return run(ctx, &s.base, "Stats", "dashboard", func(ctx context.Context, identity *domain.Identity) (*domain.DashboardStats, error) {
		if s.cache == nil {
			return s.compute(ctx, identity)
		}
		v, err := s.cache.GetOrSet(DashboardCacheKey(identity.ID), s.ttl, func() (interface{}, error) {
			return s.compute(ctx, identity)
		})
		if err != nil {
			return nil, err
		}
		return v.(*domain.DashboardStats), nil
	})
}

// compute runs the independent aggregate queries concurrently. Each one is
// its own snapshot, so figures may come from slightly different instants.
func (s *DashboardService) compute(ctx context.Context, identity *domain.Identity) (*domain.DashboardStats, error) {
	now := s.now()
	today := domain.DateOf(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := &domain.DashboardStats{GeneratedAt: now}
	var pipeline domain.PipelineTotals

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalCustomers, err = s.repo.CountCustomers(ctx, identity)
		return err
	})
	g.Go(func() (err error) {
		stats.CustomersByStatus, err = s.repo.CountCustomersByStatus(ctx, identity)
		return err
	})
	g.Go(func() (err error) {
		pipeline, err = s.repo.OpenPipeline(ctx, identity)
		return err
	})
	g.Go(func() (err error) {
		stats.DealsWonThisMonth, err = s.repo.CountDealsWonSince(ctx, identity, monthStart)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentCommunications, err = s.repo.CountCommunicationsSince(ctx, identity, now.Add(-recentCommunicationWindow))
		return err
	})
	g.Go(func() (err error) {
		stats.UpcomingContacts, err = s.repo.CountCustomersToContact(ctx, identity, today, today.AddDate(0, 0, upcomingContactDays))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.OpenDeals = pipeline.Count
	stats.OpenPipelineValue = pipeline.Value
	stats.WeightedPipelineValue = pipeline.WeightedValue
	if stats.CustomersByStatus == nil {
		stats.CustomersByStatus = map[domain.CustomerStatus]int{}
	}
	return stats, nil
}
