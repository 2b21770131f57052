package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/internal/policy"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// setIdentityQuery installs the caller for row security until the transaction ends
const setIdentityQuery = "SELECT set_config('app.current_user_id', $1, true)"

// advisoryLockQuery serializes primary-contact changes per customer
const advisoryLockQuery = "SELECT pg_advisory_xact_lock(hashtext($1))"

// store is embedded by every repository
type store struct {
	db       *sql.DB
	policies *policy.Engine
	now      func() time.Time
}

func newStore(db *sql.DB, policies *policy.Engine) store {
	if policies == nil {
		policies = policy.Default()
	}
	return store{
		db:       db,
		policies: policies,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithIdentity executes fn within a transaction that carries identity for
// row security. Every statement a repository issues goes through here.
func (s *store) WithIdentity(ctx context.Context, identity *domain.Identity, fn func(*sql.Tx) error) error {
	if identity == nil || identity.ID == "" {
		return domain.NewUnauthorizedError()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Defer rollback - this will be a no-op if we successfully commit
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, setIdentityQuery, identity.ID); err != nil {
		return fmt.Errorf("failed to set identity: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// lockAuthorized reads the visible row, checks it with authorize and only
// then locks it. Under row security SELECT ... FOR UPDATE also applies the
// UPDATE policy, so a row the caller may see but not modify never comes back
// from the locking read.
func lockAuthorized[T any](get func(lock bool) (T, error), authorize func(T) error) (T, error) {
	row, err := get(false)
	if err != nil {
		return row, err
	}
	if err := authorize(row); err != nil {
		return row, err
	}
	locked, err := get(true)
	if err != nil {
		return locked, err
	}
	return locked, authorize(locked)
}

func (s *store) scope(identity *domain.Identity, table, alias string) sq.Sqlizer {
	return s.policies.Scope(identity, table, alias)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// queryRow builds and runs a single-row query
func queryRow(ctx context.Context, tx *sql.Tx, b sq.SelectBuilder) (*sql.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return tx.QueryRowContext(ctx, query, args...), nil
}

// exec builds and runs a statement and returns the affected row count
func exec(ctx context.Context, tx *sql.Tx, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// lockCustomerContacts takes the per-customer advisory lock
func lockCustomerContacts(ctx context.Context, tx *sql.Tx, customerID string) error {
	if _, err := tx.ExecContext(ctx, advisoryLockQuery, customerID); err != nil {
		return fmt.Errorf("failed to lock customer contacts: %w", err)
	}
	return nil
}

// notFound turns sql.ErrNoRows into the domain error and wraps everything else
func notFound(err error, entity, action string) error {
	if err == sql.ErrNoRows {
		return domain.NewNotFoundError(entity)
	}
	return fmt.Errorf("failed to %s %s: %w", action, entity, err)
}

// requireAffected reports a write that row security filtered out.
// The row was visible when locked, so a zero count means the write policy refused it.
func requireAffected(n int64, entity string) error {
	if n == 0 {
		return domain.NewForbiddenError(entity)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// ilikeAny matches pattern against any of columns
func ilikeAny(pattern string, columns ...string) sq.Or {
	or := sq.Or{}
	for _, column := range columns {
		or = append(or, sq.ILike{column: pattern})
	}
	return or
}
