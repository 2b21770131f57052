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

var communicationColumns = []string{
	"l.id", "l.customer_id", "l.contact_id", "l.type", "l.communication_date", "l.subject",
	"l.description", "l.logged_by", "l.created_at", "l.updated_at",
	"cu.created_by", "cu.assigned_to",
}

// CommunicationRepository implements domain.CommunicationRepository on PostgreSQL
type CommunicationRepository struct {
	store
}

// NewCommunicationRepository creates a new CommunicationRepository
func NewCommunicationRepository(db *sql.DB, policies *policy.Engine) domain.CommunicationRepository {
	return &CommunicationRepository{store: newStore(db, policies)}
}

func communicationDest(l *domain.CommunicationLog) []interface{} {
	return []interface{}{
		&l.ID, &l.CustomerID, &l.ContactID, &l.Type, &l.CommunicationDate, &l.Subject,
		&l.Description, &l.LoggedBy, &l.CreatedAt, &l.UpdatedAt,
		&l.Customer.CreatedBy, &l.Customer.AssignedTo,
	}
}

func scanCommunication(row rowScanner) (*domain.CommunicationLog, error) {
	l := &domain.CommunicationLog{}
	if err := row.Scan(communicationDest(l)...); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *CommunicationRepository) selectLogs(identity *domain.Identity) sq.SelectBuilder {
	return psql.Select(communicationColumns...).
		From("communication_logs l").
		Join("customers cu ON cu.id = l.customer_id").
		Where(r.scope(identity, policy.TableCommunications, "l"))
}

func (r *CommunicationRepository) Create(ctx context.Context, identity *domain.Identity, l *domain.CommunicationLog) error {
	return r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		owner, err := parentOwnership(ctx, tx, &r.store, identity, l.CustomerID)
		if err != nil {
			return err
		}
		l.Customer = owner
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		if err := r.policies.Authorize(identity, policy.TableCommunications, policy.OpInsert, policy.CommunicationRow(l)); err != nil {
			return err
		}

		now := r.now()
		l.CreatedAt = now
		l.UpdatedAt = now
		insert := psql.Insert("communication_logs").
			Columns(
				"id", "customer_id", "contact_id", "type", "communication_date", "subject",
				"description", "logged_by", "created_at", "updated_at",
			).
			Values(
				l.ID, l.CustomerID, l.ContactID, l.Type, l.CommunicationDate.UTC(), l.Subject,
				l.Description, l.LoggedBy, l.CreatedAt, l.UpdatedAt,
			)
		if _, err := exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("failed to create communication log: %w", err)
		}
		return nil
	})
}

func (r *CommunicationRepository) get(ctx context.Context, tx *sql.Tx, identity *domain.Identity, id string, forUpdate bool) (*domain.CommunicationLog, error) {
	b := r.selectLogs(identity).Where(sq.Eq{"l.id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE OF l")
	}
	row, err := queryRow(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	l, err := scanCommunication(row)
	if err != nil {
		return nil, notFound(err, "communication", "get")
	}
	return l, nil
}

func (r *CommunicationRepository) GetByID(ctx context.Context, identity *domain.Identity, id string) (*domain.CommunicationLog, error) {
	var l *domain.CommunicationLog
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		var err error
		l, err = r.get(ctx, tx, identity, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListForCustomer returns a customer's log, most recent interaction first
func (r *CommunicationRepository) ListForCustomer(ctx context.Context, identity *domain.Identity, customerID string, limit int) ([]*domain.CommunicationLog, error) {
	logs := []*domain.CommunicationLog{}
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		b := r.selectLogs(identity).
			Where(sq.Eq{"l.customer_id": customerID}).
			OrderBy("l.communication_date DESC", "l.id")
		if limit > 0 {
			b = b.Limit(uint64(limit))
		}
		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list communication logs: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			l, err := scanCommunication(rows)
			if err != nil {
				return fmt.Errorf("failed to scan communication log: %w", err)
			}
			logs = append(logs, l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ListRecent returns the latest logged interactions across all customers
func (r *CommunicationRepository) ListRecent(ctx context.Context, identity *domain.Identity, limit int) ([]*domain.RecentCommunication, error) {
	recent := []*domain.RecentCommunication{}
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		b := psql.Select(append(append([]string{}, communicationColumns...), "cu.name", "k.full_name")...).
			From("communication_logs l").
			Join("customers cu ON cu.id = l.customer_id").
			LeftJoin("contacts k ON k.id = l.contact_id").
			Where(r.scope(identity, policy.TableCommunications, "l")).
			OrderBy("l.communication_date DESC", "l.id")
		if limit > 0 {
			b = b.Limit(uint64(limit))
		}
		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list recent communication: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			rc := &domain.RecentCommunication{}
			dest := append(communicationDest(&rc.CommunicationLog), &rc.CustomerName, &rc.ContactName)
			if err := rows.Scan(dest...); err != nil {
				return fmt.Errorf("failed to scan communication log: %w", err)
			}
			recent = append(recent, rc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return recent, nil
}

// Update writes back what fn leaves in the locked log. customer_id and
// logged_by are fixed at creation.
func (r *CommunicationRepository) Update(ctx context.Context, identity *domain.Identity, id string, fn func(*domain.CommunicationLog) error) (*domain.CommunicationLog, error) {
	var updated *domain.CommunicationLog
	err := r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		l, err := lockAuthorized(
			func(lock bool) (*domain.CommunicationLog, error) { return r.get(ctx, tx, identity, id, lock) },
			func(row *domain.CommunicationLog) error {
				return r.policies.Authorize(identity, policy.TableCommunications, policy.OpUpdate, policy.CommunicationRow(row))
			},
		)
		if err != nil {
			return err
		}
		customerID, loggedBy := l.CustomerID, l.LoggedBy
		if err := fn(l); err != nil {
			return err
		}
		l.CustomerID, l.LoggedBy = customerID, loggedBy

		l.UpdatedAt = r.now()
		update := psql.Update("communication_logs").
			SetMap(map[string]interface{}{
				"contact_id":         l.ContactID,
				"type":               l.Type,
				"communication_date": l.CommunicationDate.UTC(),
				"subject":            l.Subject,
				"description":        l.Description,
			}).
			Where(sq.Eq{"id": l.ID})
		n, err := exec(ctx, tx, update)
		if err != nil {
			return fmt.Errorf("failed to update communication log: %w", err)
		}
		if err := requireAffected(n, "communication"); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *CommunicationRepository) Delete(ctx context.Context, identity *domain.Identity, id string, fn func(*domain.CommunicationLog) error) error {
	return r.WithIdentity(ctx, identity, func(tx *sql.Tx) error {
		l, err := lockAuthorized(
			func(lock bool) (*domain.CommunicationLog, error) { return r.get(ctx, tx, identity, id, lock) },
			func(row *domain.CommunicationLog) error {
				return r.policies.Authorize(identity, policy.TableCommunications, policy.OpDelete, policy.CommunicationRow(row))
			},
		)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(l); err != nil {
				return err
			}
		}
		n, err := exec(ctx, tx, psql.Delete("communication_logs").Where(sq.Eq{"id": l.ID}))
		if err != nil {
			return fmt.Errorf("failed to delete communication log: %w", err)
		}
		return requireAffected(n, "communication")
	})
}
