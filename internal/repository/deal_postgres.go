package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/internal/policy"
)

var dealColumns = []string{
	"d.id", "d.customer_id", "d.contact_id", "d.name", "d.value", "d.currency", "d.stage",
	"d.probability", "d.expected_close_date", "d.actual_close_date", "d.assigned_to", "d.notes",
	"d.created_by", "d.updated_by", "d.created_at", "d.updated_at",
	"cu.created_by", "cu.assigned_to",
}

// DealRepository implements domain.DealRepository on PostgreSQL
type DealRepository struct {
	store
}

// NewDealRepository creates a new DealRepository
func NewDealRepository(db *sql.DB, policies *policy.Engine) domain.DealRepository {
	return &DealRepository{store: newStore(db, policies)}
}

func scanDeal(row rowScanner) (*domain.Deal, error) {
	d := &domain.Deal{}
	err := row.Scan(
		&d.ID, &d.CustomerID, &d.ContactID, &d.Name, &d.Value, &d.Currency, &d.Stage,
		&d.Probability, &d.ExpectedCloseDate, &d.ActualCloseDate, &d.AssignedTo, &d.Notes,
		&d.CreatedBy, &d.UpdatedBy, &d.CreatedAt, &d.UpdatedAt,
		&d.Customer.CreatedBy, &d.Customer.AssignedTo,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DealRepository) selectDeals(identity *domain.Identity) sq.SelectBuilder {
	return psql.Select(dealColumns...).
		From("deals d").
		Join("customers cu ON cu.id = d.customer_id").
		Where(r.scope(identity, policy.TableDeals, "d"))
}

func (r *DealRepository) Create(ctx context.Context, identity *domain.Identity, d *domain.Deal) error {
	return r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		owner, err := parentOwnership(ctx, tx, &r.store, identity, d.CustomerID)
		if err != nil {
			return err
		}
		d.Customer = owner
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		if err := r.policies.Authorize(identity, policy.TableDeals, policy.OpInsert, policy.DealRow(d)); err != nil {
			return err
		}

		now := r.now()
		d.CreatedAt = now
		d.UpdatedAt = now
		insert := psql.Insert("deals").
			Columns(
				"id", "customer_id", "contact_id", "name", "value", "currency", "stage",
				"probability", "expected_close_date", "actual_close_date", "assigned_to", "notes",
				"created_by", "created_at", "updated_at",
			).
			Values(
				d.ID, d.CustomerID, d.ContactID, d.Name, d.Value, d.Currency, d.Stage,
				d.Probability, d.ExpectedCloseDate, d.ActualCloseDate, d.AssignedTo, d.Notes,
				d.CreatedBy, d.CreatedAt, d.UpdatedAt,
			)
		if _, err := exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("failed to create deal: %w", err)
		}
		return nil
	})
}

func (r *DealRepository) get(ctx context.Context, tx *sql.Tx, identity *domain.Identity, id string, forUpdate bool) (*domain.Deal, error) {
	b := r.selectDeals(identity).Where(sq.Eq{"d.id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE OF d")
	}
	row, err := queryRow(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	d, err := scanDeal(row)
	if err != nil {
		return nil, notFound(err, "deal", "get")
	}
	return d, nil
}

func (r *DealRepository) GetByID(ctx context.Context, identity *domain.Identity, id string) (*domain.Deal, error) {
	var d *domain.Deal
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		var err error
		d, err = r.get(ctx, tx, identity, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DealRepository) list(ctx context.Context, identity *domain.Identity, b sq.SelectBuilder, limit int) ([]*domain.Deal, error) {
	deals := []*domain.Deal{}
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		if limit > 0 {
			b = b.Limit(uint64(limit))
		}
		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list deals: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			d, err := scanDeal(rows)
			if err != nil {
				return fmt.Errorf("failed to scan deal: %w", err)
			}
			deals = append(deals, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return deals, nil
}

// ListForCustomer returns a customer's deals, newest first
func (r *DealRepository) ListForCustomer(ctx context.Context, identity *domain.Identity, customerID string, limit int) ([]*domain.Deal, error) {
	b := r.selectDeals(identity).
		Where(sq.Eq{"d.customer_id": customerID}).
		OrderBy("d.created_at DESC", "d.id")
	return r.list(ctx, identity, b, limit)
}

// ListByStage returns the visible deals in one pipeline stage, next to close first
func (r *DealRepository) ListByStage(ctx context.Context, identity *domain.Identity, stage domain.DealStage, limit int) ([]*domain.Deal, error) {
	b := r.selectDeals(identity).
		Where(sq.Eq{"d.stage": stage}).
		OrderBy("d.expected_close_date ASC NULLS LAST", "d.updated_at DESC", "d.id")
	return r.list(ctx, identity, b, limit)
}

func (r *DealRepository) Update(ctx context.Context, identity *domain.Identity, id string, fn func(*domain.Deal) error) (*domain.Deal, error) {
	var updated *domain.Deal
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		d, err := lockAuthorized(
			func(lock bool) (*domain.Deal, error) { return r.get(ctx, tx, identity, id, lock) },
			func(row *domain.Deal) error {
				return r.policies.Authorize(identity, policy.TableDeals, policy.OpUpdate, policy.DealRow(row))
			},
		)
		if err != nil {
			return err
		}
		customerID := d.CustomerID
		if err := fn(d); err != nil {
			return err
		}
		d.CustomerID = customerID

		d.UpdatedBy = &identity.ID
		d.UpdatedAt = r.now()
		update := psql.Update("deals").
			SetMap(map[string]interface{}{
				"contact_id":          d.ContactID,
				"name":                d.Name,
				"value":               d.Value,
				"currency":            d.Currency,
				"stage":               d.Stage,
				"probability":         d.Probability,
				"expected_close_date": d.ExpectedCloseDate,
				"actual_close_date":   d.ActualCloseDate,
				"assigned_to":         d.AssignedTo,
				"notes":               d.Notes,
				"updated_by":          d.UpdatedBy,
			}).
			Where(sq.Eq{"id": d.ID})
		n, err := exec(ctx, tx, update)
		if err != nil {
			return fmt.Errorf("failed to update deal: %w", err)
		}
		if err := requireAffected(n, "deal"); err != nil {
			return err
		}
		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *DealRepository) Delete(ctx context.Context, identity *domain.Identity, id string, fn func(*domain.Deal) error) error {
	return r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		d, err := lockAuthorized(
			func(lock bool) (*domain.Deal, error) { return r.get(ctx, tx, identity, id, lock) },
			func(row *domain.Deal) error {
				return r.policies.Authorize(identity, policy.TableDeals, policy.OpDelete, policy.DealRow(row))
			},
		)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(d); err != nil {
				return err
			}
		}
		n, err := exec(ctx, tx, psql.Delete("deals").Where(sq.Eq{"id": d.ID}))
		if err != nil {
			return fmt.Errorf("failed to delete deal: %w", err)
		}
		return requireAffected(n, "deal")
	})
}
