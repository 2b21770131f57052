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

var customerColumns = []string{
	"c.id", "c.name", "c.org_number", "c.industry", "c.website", "c.address", "c.notes",
	"c.lifecycle_stage", "c.status", "c.lead_source", "c.annual_revenue", "c.next_contact_date",
	"c.created_by", "c.assigned_to", "c.updated_by", "c.created_at", "c.updated_at",
}

var customerStatsColumns = append(append([]string{}, customerColumns...),
	"c.contact_count", "c.deal_count", "c.open_deal_value",
	"c.communication_count", "c.last_communication_at", "c.primary_contact_name",
)

// CustomerRepository implements domain.CustomerRepository on PostgreSQL
type CustomerRepository struct {
	store
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *sql.DB, policies *policy.Engine) domain.CustomerRepository {
	return &CustomerRepository{store: newStore(db, policies)}
}

func customerDest(c *domain.Customer) []interface{} {
	return []interface{}{
		&c.ID, &c.Name, &c.OrgNumber, &c.Industry, &c.Website, &c.Address, &c.Notes,
		&c.LifecycleStage, &c.Status, &c.LeadSource, &c.AnnualRevenue, &c.NextContactDate,
		&c.CreatedBy, &c.AssignedTo, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
	}
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	c := &domain.Customer{}
	if err := row.Scan(customerDest(c)...); err != nil {
		return nil, err
	}
	return c, nil
}

func scanCustomerWithStats(row rowScanner) (*domain.CustomerWithStats, error) {
	s := &domain.CustomerWithStats{}
	dest := append(customerDest(&s.Customer),
		&s.ContactCount, &s.DealCount, &s.OpenDealValue,
		&s.CommunicationCount, &s.LastCommunication, &s.PrimaryContactName,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a customer owned by the caller
func (r *CustomerRepository) Create(ctx context.Context, identity *domain.Identity, c *domain.Customer) error {
	return r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		now := r.now()
		c.CreatedAt = now
		c.UpdatedAt = now

		if err := r.policies.Authorize(identity, policy.TableCustomers, policy.OpInsert, policy.CustomerRow(c)); err != nil {
			return err
		}

		insert := psql.Insert("customers").
			Columns(
				"id", "name", "org_number", "industry", "website", "address", "notes",
				"lifecycle_stage", "status", "lead_source", "annual_revenue", "next_contact_date",
				"created_by", "assigned_to", "created_at", "updated_at",
			).
			Values(
				c.ID, c.Name, c.OrgNumber, c.Industry, c.Website, c.Address, c.Notes,
				c.LifecycleStage, c.Status, c.LeadSource, c.AnnualRevenue, c.NextContactDate,
				c.CreatedBy, c.AssignedTo, c.CreatedAt, c.UpdatedAt,
			)
		if _, err := exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		return nil
	})
}

func (r *CustomerRepository) get(ctx context.Context, tx *sql.Tx, identity *domain.Identity, id string, forUpdate bool) (*domain.Customer, error) {
	b := psql.Select(customerColumns...).
		From("customers c").
		Where(sq.Eq{"c.id": id}).
		Where(r.scope(identity, policy.TableCustomers, "c"))
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	row, err := queryRow(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	c, err := scanCustomer(row)
	if err != nil {
		return nil, notFound(err, "customer", "get")
	}
	return c, nil
}

// GetByID returns a visible customer
func (r *CustomerRepository) GetByID(ctx context.Context, identity *domain.Identity, id string) (*domain.Customer, error) {
	var c *domain.Customer
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		var err error
		c, err = r.get(ctx, tx, identity, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetWithStats reads one row of customers_with_stats
func (r *CustomerRepository) GetWithStats(ctx context.Context, identity *domain.Identity, id string) (*domain.CustomerWithStats, error) {
	var s *domain.CustomerWithStats
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		b := psql.Select(customerStatsColumns...).
			From("customers_with_stats c").
			Where(sq.Eq{"c.id": id}).
			Where(r.scope(identity, policy.TableCustomers, "c"))
		row, err := queryRow(ctx, tx, b)
		if err != nil {
			return err
		}
		s, err = scanCustomerWithStats(row)
		if err != nil {
			return notFound(err, "customer", "get")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func customerFilters(identity *domain.Identity, params domain.ListCustomersParams) sq.And {
	where := sq.And{}
	if params.Search != "" {
		where = append(where, ilikeAny(containsPattern(params.Search), "c.name", "c.org_number", "c.industry"))
	}
	if params.Status != "" {
		where = append(where, sq.Eq{"c.status": params.Status})
	}
	if params.LifecycleStage != "" {
		where = append(where, sq.Eq{"c.lifecycle_stage": params.LifecycleStage})
	}
	if params.AssignedTo != "" {
		where = append(where, sq.Eq{"c.assigned_to": params.AssignedTo})
	}
	if params.MineOnly {
		where = append(where, sq.Or{
			sq.Eq{"c.created_by": identity.ID},
			sq.Eq{"c.assigned_to": identity.ID},
		})
	}
	return where
}

// List returns one page of customers_with_stats, most recently updated first
func (r *CustomerRepository) List(ctx context.Context, identity *domain.Identity, params domain.ListCustomersParams) (*domain.Page[domain.CustomerWithStats], error) {
	if err := params.Normalize(); err != nil {
		return nil, err
	}

	var page *domain.Page[domain.CustomerWithStats]
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		filters := customerFilters(identity, params)
		scope := r.scope(identity, policy.TableCustomers, "c")

		countQuery := psql.Select("COUNT(*)").From("customers_with_stats c").Where(scope)
		if len(filters) > 0 {
			countQuery = countQuery.Where(filters)
		}
		row, err := queryRow(ctx, tx, countQuery)
		if err != nil {
			return err
		}
		var total int
		if err := row.Scan(&total); err != nil {
			return fmt.Errorf("failed to count customers: %w", err)
		}

		listQuery := psql.Select(customerStatsColumns...).
			From("customers_with_stats c").
			Where(scope).
			OrderBy("c.updated_at DESC", "c.id").
			Limit(uint64(params.Limit)).
			Offset(uint64((params.Page - 1) * params.Limit))
		if len(filters) > 0 {
			listQuery = listQuery.Where(filters)
		}
		query, args, err := listQuery.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list customers: %w", err)
		}
		defer rows.Close()

		items := make([]domain.CustomerWithStats, 0, params.Limit)
		for rows.Next() {
			s, err := scanCustomerWithStats(rows)
			if err != nil {
				return fmt.Errorf("failed to scan customer: %w", err)
			}
			items = append(items, *s)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate customers: %w", err)
		}
		page = domain.NewPage(items, params.Page, params.Limit, total)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Update locks the customer, applies fn and writes the result
func (r *CustomerRepository) Update(ctx context.Context, identity *domain.Identity, id string, fn func(*domain.Customer) error) (*domain.Customer, error) {
	var updated *domain.Customer
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		c, err := lockAuthorized(
			func(lock bool) (*domain.Customer, error) { return r.get(ctx, tx, identity, id, lock) },
			func(row *domain.Customer) error {
				return r.policies.Authorize(identity, policy.TableCustomers, policy.OpUpdate, policy.CustomerRow(row))
			},
		)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if err := r.policies.Authorize(identity, policy.TableCustomers, policy.OpUpdateCheck, policy.CustomerRow(c)); err != nil {
			return err
		}

		c.UpdatedBy = &identity.ID
		c.UpdatedAt = r.now()
		update := psql.Update("customers").
			SetMap(map[string]interface{}{
				"name":              c.Name,
				"org_number":        c.OrgNumber,
				"industry":          c.Industry,
				"website":           c.Website,
				"address":           c.Address,
				"notes":             c.Notes,
				"lifecycle_stage":   c.LifecycleStage,
				"status":            c.Status,
				"lead_source":       c.LeadSource,
				"annual_revenue":    c.AnnualRevenue,
				"next_contact_date": c.NextContactDate,
				"assigned_to":       c.AssignedTo,
				"updated_by":        c.UpdatedBy,
			}).
			Where(sq.Eq{"id": c.ID})
		n, err := exec(ctx, tx, update)
		if err != nil {
			return fmt.Errorf("failed to update customer: %w", err)
		}
		if err := requireAffected(n, "customer"); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete locks the customer and removes it with its children if fn agrees
func (r *CustomerRepository) Delete(ctx context.Context, identity *domain.Identity, id string, fn func(*domain.Customer) error) error {
	return r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		c, err := lockAuthorized(
			func(lock bool) (*domain.Customer, error) { return r.get(ctx, tx, identity, id, lock) },
			func(row *domain.Customer) error {
				return r.policies.Authorize(identity, policy.TableCustomers, policy.OpDelete, policy.CustomerRow(row))
			},
		)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(c); err != nil {
				return err
			}
		}
		n, err := exec(ctx, tx, psql.Delete("customers").Where(sq.Eq{"id": c.ID}))
		if err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		return requireAffected(n, "customer")
	})
}
