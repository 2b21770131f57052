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

var contactColumns = []string{
	"k.id", "k.customer_id", "k.full_name", "k.email", "k.phone", "k.job_title", "k.department",
	"k.linkedin_url", "k.is_decision_maker", "k.is_primary", "k.notes",
	"k.created_by", "k.updated_by", "k.created_at", "k.updated_at",
	"cu.created_by", "cu.assigned_to",
}

// ContactRepository implements domain.ContactRepository on PostgreSQL
type ContactRepository struct {
	store
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *sql.DB, policies *policy.Engine) domain.ContactRepository {
	return &ContactRepository{store: newStore(db, policies)}
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	c := &domain.Contact{}
	err := row.Scan(
		&c.ID, &c.CustomerID, &c.FullName, &c.Email, &c.Phone, &c.JobTitle, &c.Department,
		&c.LinkedInURL, &c.IsDecisionMaker, &c.IsPrimary, &c.Notes,
		&c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
		&c.Customer.CreatedBy, &c.Customer.AssignedTo,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContactRepository) selectContacts(identity *domain.Identity) sq.SelectBuilder {
	return psql.Select(contactColumns...).
		From("contacts k").
		Join("customers cu ON cu.id = k.customer_id").
		Where(r.scope(identity, policy.TableContacts, "k"))
}

// parentOwnership reads the ownership of a visible customer
func parentOwnership(ctx context.Context, tx *sql.Tx, s *store, identity *domain.Identity, customerID string) (domain.Ownership, error) {
	var o domain.Ownership
	b := psql.Select("c.created_by", "c.assigned_to").
		From("customers c").
		Where(sq.Eq{"c.id": customerID}).
		Where(s.scope(identity, policy.TableCustomers, "c"))
	row, err := queryRow(ctx, tx, b)
	if err != nil {
		return o, err
	}
	if err := row.Scan(&o.CreatedBy, &o.AssignedTo); err != nil {
		return o, notFound(err, "customer", "get")
	}
	return o, nil
}

// clearPrimary demotes every primary contact of customerID except keep.
// The caller must hold the customer's advisory lock.
func (r *ContactRepository) clearPrimary(ctx context.Context, tx *sql.Tx, identity *domain.Identity, customerID, keep string) error {
	where := sq.And{sq.Eq{"customer_id": customerID}, sq.Expr("is_primary")}
	if keep != "" {
		where = append(where, sq.NotEq{"id": keep})
	}
	update := psql.Update("contacts").
		Set("is_primary", false).
		Set("updated_by", identity.ID).
		Where(where)
	if _, err := exec(ctx, tx, update); err != nil {
		return fmt.Errorf("failed to clear primary contact: %w", err)
	}
	return nil
}

// Create inserts a contact. A primary contact demotes the previous one in
// the same transaction.
func (r *ContactRepository) Create(ctx context.Context, identity *domain.Identity, c *domain.Contact) error {
	return r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		if c.IsPrimary {
			if err := lockCustomerContacts(ctx, tx, c.CustomerID); err != nil {
				return err
			}
		}
		owner, err := parentOwnership(ctx, tx, &r.store, identity, c.CustomerID)
		if err != nil {
			return err
		}
		c.Customer = owner
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if err := r.policies.Authorize(identity, policy.TableContacts, policy.OpInsert, policy.ContactRow(c)); err != nil {
			return err
		}
		if c.IsPrimary {
			if err := r.clearPrimary(ctx, tx, identity, c.CustomerID, ""); err != nil {
				return err
			}
		}

		now := r.now()
		c.CreatedAt = now
		c.UpdatedAt = now
		insert := psql.Insert("contacts").
			Columns(
				"id", "customer_id", "full_name", "email", "phone", "job_title", "department",
				"linkedin_url", "is_decision_maker", "is_primary", "notes",
				"created_by", "created_at", "updated_at",
			).
			Values(
				c.ID, c.CustomerID, c.FullName, c.Email, c.Phone, c.JobTitle, c.Department,
				c.LinkedInURL, c.IsDecisionMaker, c.IsPrimary, c.Notes,
				c.CreatedBy, c.CreatedAt, c.UpdatedAt,
			)
		if _, err := exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("failed to create contact: %w", err)
		}
		return nil
	})
}

func (r *ContactRepository) get(ctx context.Context, tx *sql.Tx, identity *domain.Identity, id string, forUpdate bool) (*domain.Contact, error) {
	b := r.selectContacts(identity).Where(sq.Eq{"k.id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE OF k")
	}
	row, err := queryRow(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	c, err := scanContact(row)
	if err != nil {
		return nil, notFound(err, "contact", "get")
	}
	return c, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, identity *domain.Identity, id string) (*domain.Contact, error) {
	var c *domain.Contact
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

// ListForCustomer returns the contacts of a customer, primary first
func (r *ContactRepository) ListForCustomer(ctx context.Context, identity *domain.Identity, customerID string, limit int) ([]*domain.Contact, error) {
	contacts := []*domain.Contact{}
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		b := r.selectContacts(identity).
			Where(sq.Eq{"k.customer_id": customerID}).
			OrderBy("k.is_primary DESC", "k.full_name")
		if limit > 0 {
			b = b.Limit(uint64(limit))
		}
		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list contacts: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			c, err := scanContact(rows)
			if err != nil {
				return fmt.Errorf("failed to scan contact: %w", err)
			}
			contacts = append(contacts, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// customerOf resolves the customer of a visible contact without locking it
func (r *ContactRepository) customerOf(ctx context.Context, tx *sql.Tx, identity *domain.Identity, id string) (string, error) {
	b := psql.Select("k.customer_id").
		From("contacts k").
		Where(sq.Eq{"k.id": id}).
		Where(r.scope(identity, policy.TableContacts, "k"))
	row, err := queryRow(ctx, tx, b)
	if err != nil {
		return "", err
	}
	var customerID string
	if err := row.Scan(&customerID); err != nil {
		return "", notFound(err, "contact", "get")
	}
	return customerID, nil
}

// Update locks the contact and writes what fn leaves in it. The customer's
// advisory lock is taken before any row lock so concurrent primary changes
// on the same customer queue up instead of deadlocking.
func (r *ContactRepository) Update(ctx context.Context, identity *domain.Identity, id string, fn func(*domain.Contact) error) (*domain.Contact, error) {
	var updated *domain.Contact
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		customerID, err := r.customerOf(ctx, tx, identity, id)
		if err != nil {
			return err
		}
		if err := lockCustomerContacts(ctx, tx, customerID); err != nil {
			return err
		}
		c, err := r.get(ctx, tx, identity, id, true)
		if err != nil {
			return err
		}
		if err := r.policies.Authorize(identity, policy.TableContacts, policy.OpUpdate, policy.ContactRow(c)); err != nil {
			return err
		}
		wasPrimary := c.IsPrimary
		if err := fn(c); err != nil {
			return err
		}
		c.CustomerID = customerID

		if c.IsPrimary && !wasPrimary {
			if err := r.clearPrimary(ctx, tx, identity, c.CustomerID, c.ID); err != nil {
				return err
			}
		}

		c.UpdatedBy = &identity.ID
		c.UpdatedAt = r.now()
		update := psql.Update("contacts").
			SetMap(map[string]interface{}{
				"full_name":         c.FullName,
				"email":             c.Email,
				"phone":             c.Phone,
				"job_title":         c.JobTitle,
				"department":        c.Department,
				"linkedin_url":      c.LinkedInURL,
				"is_decision_maker": c.IsDecisionMaker,
				"is_primary":        c.IsPrimary,
				"notes":             c.Notes,
				"updated_by":        c.UpdatedBy,
			}).
			Where(sq.Eq{"id": c.ID})
		n, err := exec(ctx, tx, update)
		if err != nil {
			return fmt.Errorf("failed to update contact: %w", err)
		}
		if err := requireAffected(n, "contact"); err != nil {
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

func (r *ContactRepository) Delete(ctx context.Context, identity *domain.Identity, id string, fn func(*domain.Contact) error) error {
	return r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		c, err := r.get(ctx, tx, identity, id, true)
		if err != nil {
			return err
		}
		if err := r.policies.Authorize(identity, policy.TableContacts, policy.OpDelete, policy.ContactRow(c)); err != nil {
			return err
		}
		if fn != nil {
			if err := fn(c); err != nil {
				return err
			}
		}
		n, err := exec(ctx, tx, psql.Delete("contacts").Where(sq.Eq{"id": c.ID}))
		if err != nil {
			return fmt.Errorf("failed to delete contact: %w", err)
		}
		return requireAffected(n, "contact")
	})
}
