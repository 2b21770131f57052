package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/internal/policy"
)

// SearchRepository implements domain.SearchRepository. Each entity kind is
// one bounded query in its own transaction so the kinds can run in parallel.
type SearchRepository struct {
	store
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *sql.DB, policies *policy.Engine) domain.SearchRepository {
	return &SearchRepository{store: newStore(db, policies)}
}

// search runs b, which must select id, title, subtitle and customer id
func (r *SearchRepository) search(ctx context.Context, identity *domain.Identity, kind domain.SearchKind, b sq.SelectBuilder, limit int) ([]domain.SearchResult, error) {
	results := []domain.SearchResult{}
	if limit <= 0 {
		limit = domain.SearchLimitPerEntity
	}
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		query, args, err := b.Limit(uint64(limit)).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to search %ss: %w", kind, err)
		}
		defer rows.Close()
		for rows.Next() {
			res := domain.SearchResult{Type: kind}
			if err := rows.Scan(&res.ID, &res.Title, &res.Subtitle, &res.CustomerID); err != nil {
				return fmt.Errorf("failed to scan %s: %w", kind, err)
			}
			results = append(results, res)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *SearchRepository) SearchCustomers(ctx context.Context, identity *domain.Identity, term string, limit int) ([]domain.SearchResult, error) {
	b := psql.Select("c.id", "c.name", "c.industry", "c.id").
		From("customers c").
		Where(r.scope(identity, policy.TableCustomers, "c")).
		Where(ilikeAny(containsPattern(term), "c.name", "c.org_number", "c.industry")).
		OrderBy("c.name", "c.id")
	return r.search(ctx, identity, domain.SearchKindCustomer, b, limit)
}

func (r *SearchRepository) SearchContacts(ctx context.Context, identity *domain.Identity, term string, limit int) ([]domain.SearchResult, error) {
	b := psql.Select("k.id", "k.full_name", "COALESCE(k.job_title, k.email)", "k.customer_id").
		From("contacts k").
		Where(r.scope(identity, policy.TableContacts, "k")).
		Where(ilikeAny(containsPattern(term), "k.full_name", "k.email", "k.job_title")).
		OrderBy("k.full_name", "k.id")
	return r.search(ctx, identity, domain.SearchKindContact, b, limit)
}

func (r *SearchRepository) SearchCommunications(ctx context.Context, identity *domain.Identity, term string, limit int) ([]domain.SearchResult, error) {
	b := psql.Select("l.id", "l.subject", "l.type", "l.customer_id").
		From("communication_logs l").
		Where(r.scope(identity, policy.TableCommunications, "l")).
		Where(ilikeAny(containsPattern(term), "l.subject", "l.description")).
		OrderBy("l.communication_date DESC", "l.id")
	return r.search(ctx, identity, domain.SearchKindCommunication, b, limit)
}

func (r *SearchRepository) SearchDeals(ctx context.Context, identity *domain.Identity, term string, limit int) ([]domain.SearchResult, error) {
	b := psql.Select("d.id", "d.name", "d.stage", "d.customer_id").
		From("deals d").
		Where(r.scope(identity, policy.TableDeals, "d")).
		Where(ilikeAny(containsPattern(term), "d.name", "d.notes")).
		OrderBy("d.updated_at DESC", "d.id")
	return r.search(ctx, identity, domain.SearchKindDeal, b, limit)
}
