package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_dashboard_repository.go -package mocks github.com/relasjon/crm/internal/domain DashboardRepository
//go:generate mockgen -destination mocks/mock_dashboard_service.go -package mocks github.com/relasjon/crm/internal/domain DashboardService

// DashboardStats is the overview shown on the start page. Each figure comes
// from its own query, so the numbers may be from slightly different instants.
type DashboardStats struct {
	TotalCustomers        int                    `json:"total_customers"`
	CustomersByStatus     map[CustomerStatus]int `json:"customers_by_status"`
	OpenDeals             int                    `json:"open_deals"`
	OpenPipelineValue     float64                `json:"open_pipeline_value"`
	WeightedPipelineValue float64                `json:"weighted_pipeline_value"`
	DealsWonThisMonth     int                    `json:"deals_won_this_month"`
	RecentCommunications  int                    `json:"recent_communications"`
	UpcomingContacts      int                    `json:"upcoming_contacts"`
	GeneratedAt           time.Time              `json:"generated_at"`
}

// PipelineTotals is the open-deal rollup
type PipelineTotals struct {
	Count         int
	Value         float64
	WeightedValue float64
}

type DashboardRepository interface {
	CountCustomers(ctx context.Context, identity *Identity) (int, error)
	CountCustomersByStatus(ctx context.Context, identity *Identity) (map[CustomerStatus]int, error)
	OpenPipeline(ctx context.Context, identity *Identity) (PipelineTotals, error)
	CountDealsWonSince(ctx context.Context, identity *Identity, since time.Time) (int, error)
	CountCommunicationsSince(ctx context.Context, identity *Identity, since time.Time) (int, error)
	CountCustomersToContact(ctx context.Context, identity *Identity, from, to time.Time) (int, error)
}

type DashboardService interface {
	Stats(ctx context.Context) Result[*DashboardStats]
}
