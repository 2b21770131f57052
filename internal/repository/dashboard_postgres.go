package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/internal/policy"
)

var openStages = []domain.DealStage{
	domain.DealStageLead, domain.DealStageQualified, domain.DealStageProposal, domain.DealStageNegotiation,
}

// DashboardRepository implements domain.DashboardRepository. Every figure
// is a separate aggregate over the caller's visible rows.
type DashboardRepository struct {
	store
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *sql.DB, policies *policy.Engine) domain.DashboardRepository {
	return &DashboardRepository{store: newStore(db, policies)}
}

func (r *DashboardRepository) count(ctx context.Context, identity *domain.Identity, what string, b sq.SelectBuilder) (int, error) {
	var n int
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		row, err := queryRow(ctx, tx, b)
		if err != nil {
			return err
		}
		if err := row.Scan(&n); err != nil {
			return fmt.Errorf("failed to count %s: %w", what, err)
		}
		return nil
	})
	return n, err
}

func (r *DashboardRepository) CountCustomers(ctx context.Context, identity *domain.Identity) (int, error) {
	b := psql.Select("COUNT(*)").
		From("customers c").
		Where(r.scope(identity, policy.TableCustomers, "c"))
	return r.count(ctx, identity, "customers", b)
}

func (r *DashboardRepository) CountCustomersByStatus(ctx context.Context, identity *domain.Identity) (map[domain.CustomerStatus]int, error) {
	counts := map[domain.CustomerStatus]int{}
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		query, args, err := psql.Select("c.status", "COUNT(*)").
			From("customers c").
			Where(r.scope(identity, policy.TableCustomers, "c")).
			GroupBy("c.status").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to count customers by status: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var status domain.CustomerStatus
			var n int
			if err := rows.Scan(&status, &n); err != nil {
				return fmt.Errorf("failed to scan status count: %w", err)
			}
			counts[status] = n
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// OpenPipeline sums the deals that are not won or lost. The weighted value
// scales each deal by its probability.
func (r *DashboardRepository) OpenPipeline(ctx context.Context, identity *domain.Identity) (domain.PipelineTotals, error) {
	var totals domain.PipelineTotals
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		b := psql.Select(
			"COUNT(*)",
			"COALESCE(SUM(d.value), 0)",
			"COALESCE(SUM(d.value * d.probability / 100.0), 0)",
		).
			From("deals d").
			Where(r.scope(identity, policy.TableDeals, "d")).
			Where(sq.Eq{"d.stage": openStages})
		row, err := queryRow(ctx, tx, b)
		if err != nil {
			return err
		}
		if err := row.Scan(&totals.Count, &totals.Value, &totals.WeightedValue); err != nil {
			return fmt.Errorf("failed to sum open pipeline: %w", err)
		}
		return nil
	})
	return totals, err
}

func (r *DashboardRepository) CountDealsWonSince(ctx context.Context, identity *domain.Identity, since time.Time) (int, error) {
	b := psql.Select("COUNT(*)").
		From("deals d").
		Where(r.scope(identity, policy.TableDeals, "d")).
		Where(sq.Eq{"d.stage": domain.DealStageWon}).
		Where(sq.GtOrEq{"d.actual_close_date": domain.DateOf(since)})
	return r.count(ctx, identity, "won deals", b)
}

func (r *DashboardRepository) CountCommunicationsSince(ctx context.Context, identity *domain.Identity, since time.Time) (int, error) {
	b := psql.Select("COUNT(*)").
		From("communication_logs l").
		Where(r.scope(identity, policy.TableCommunications, "l")).
		Where(sq.GtOrEq{"l.communication_date": since.UTC()})
	return r.count(ctx, identity, "communications", b)
}

// CountCustomersToContact counts customers whose next contact date is in [from, to]
func (r *DashboardRepository) CountCustomersToContact(ctx context.Context, identity *domain.Identity, from, to time.Time) (int, error) {
	b := psql.Select("COUNT(*)").
		From("customers c").
		Where(r.scope(identity, policy.TableCustomers, "c")).
		Where(sq.GtOrEq{"c.next_contact_date": domain.DateOf(from)}).
		Where(sq.LtOrEq{"c.next_contact_date": domain.DateOf(to)})
	return r.count(ctx, identity, "customers to contact", b)
}
