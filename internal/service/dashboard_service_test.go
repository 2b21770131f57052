package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/internal/domain/mocks"
	"github.com/relasjon/crm/pkg/cache"
)

func expectDashboardQueries(repo *mocks.MockDashboardRepository, times int) {
	repo.EXPECT().CountCustomers(gomock.Any(), gomock.Any()).Return(12, nil).Times(times)
	repo.EXPECT().CountCustomersByStatus(gomock.Any(), gomock.Any()).
		Return(map[domain.CustomerStatus]int{domain.CustomerStatusActive: 8, domain.CustomerStatusPotential: 4}, nil).Times(times)
	repo.EXPECT().OpenPipeline(gomock.Any(), gomock.Any()).
		Return(domain.PipelineTotals{Count: 3, Value: 1000, WeightedValue: 450}, nil).Times(times)
	repo.EXPECT().CountDealsWonSince(gomock.Any(), gomock.Any(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).Return(2, nil).Times(times)
	repo.EXPECT().CountCommunicationsSince(gomock.Any(), gomock.Any(), fixedNow.Add(-30*24*time.Hour)).Return(7, nil).Times(times)
	repo.EXPECT().CountCustomersToContact(gomock.Any(), gomock.Any(),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC),
	).Return(1, nil).Times(times)
}

func TestDashboardService_Stats(t *testing.T) {
	t.Run("aggregates every figure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDashboardRepository(ctrl)
		deps, _, _ := testDeps(t)
		svc := NewDashboardService(repo, nil, time.Minute, deps)
		expectDashboardQueries(repo, 1)

		res := svc.Stats(asUser(userA))

		require.True(t, res.Success, res.Error)
		s := res.Data
		assert.Equal(t, 12, s.TotalCustomers)
		assert.Equal(t, 8, s.CustomersByStatus[domain.CustomerStatusActive])
		assert.Equal(t, 3, s.OpenDeals)
		assert.Equal(t, 1000.0, s.OpenPipelineValue)
		assert.Equal(t, 450.0, s.WeightedPipelineValue)
		assert.Equal(t, 2, s.DealsWonThisMonth)
		assert.Equal(t, 7, s.RecentCommunications)
		assert.Equal(t, 1, s.UpcomingContacts)
		assert.Equal(t, fixedNow, s.GeneratedAt)
	})

	t.Run("cached per caller until invalidated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDashboardRepository(ctrl)
		pages := cache.NewInMemoryCache(time.Minute)
		defer pages.Stop()
		deps, _, log := testDeps(t)
		deps.Invalidator = NewPageInvalidator(pages, nil, log)
		svc := NewDashboardService(repo, pages, time.Hour, deps)
		expectDashboardQueries(repo, 3)

		require.True(t, svc.Stats(asUser(userA)).Success)
		require.True(t, svc.Stats(asUser(userA)).Success)
		require.True(t, svc.Stats(asUser(userB)).Success)
		assert.Equal(t, 2, pages.Size())

		require.NoError(t, deps.Invalidator.Invalidate(context.Background(), domain.PathDashboard))
		assert.Equal(t, 0, pages.Size())
		require.True(t, svc.Stats(asUser(userA)).Success)
	})

	t.Run("query failure is not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDashboardRepository(ctrl)
		pages := cache.NewInMemoryCache(time.Minute)
		defer pages.Stop()
		deps, _, _ := testDeps(t)
		svc := NewDashboardService(repo, pages, time.Hour, deps)

		repo.EXPECT().CountCustomers(gomock.Any(), gomock.Any()).Return(0, errors.New("boom")).AnyTimes()
		repo.EXPECT().CountCustomersByStatus(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		repo.EXPECT().OpenPipeline(gomock.Any(), gomock.Any()).Return(domain.PipelineTotals{}, nil).AnyTimes()
		repo.EXPECT().CountDealsWonSince(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
		repo.EXPECT().CountCommunicationsSince(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
		repo.EXPECT().CountCustomersToContact(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()

		res := svc.Stats(asUser(userA))

		assert.Equal(t, domain.ErrCodeDatabase, res.Code)
		assert.Equal(t, 0, pages.Size())
	})
}
