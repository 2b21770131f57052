package policy

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/relasjon/crm/internal/domain"
)

// Engine answers authorization questions for every table it knows
type Engine struct {
	tables map[string]TablePolicy
}

// NewEngine builds an engine from table policies
func NewEngine(tables ...TablePolicy) *Engine {
	e := &Engine{tables: make(map[string]TablePolicy, len(tables))}
	for _, t := range tables {
		e.tables[t.Table] = t
	}
	return e
}

// Default is an engine over the current rule set
func Default() *Engine {
	return NewEngine(Generation2()...)
}

// Table returns the policy of table. Unknown tables get an all-deny policy.
func (e *Engine) Table(table string) TablePolicy {
	if t, ok := e.tables[table]; ok {
		return t
	}
	return TablePolicy{Table: table, Entity: "record"}
}

// Authorize reports whether identity may perform op on row of table.
// A denied read returns NotFound so hidden rows are indistinguishable from
// missing ones; a denied write returns Forbidden.
func (e *Engine) Authorize(identity *domain.Identity, table string, op Operation, row Row) error {
	if identity == nil || identity.ID == "" {
		return domain.NewUnauthorizedError()
	}
	t := e.Table(table)
	if err := t.Policy(op).Eval(identity, row); err != nil {
		if op == OpSelect {
			return domain.NewNotFoundError(t.Entity)
		}
		appErr := domain.NewForbiddenError(t.Entity)
		appErr.Err = err
		return appErr
	}
	return nil
}

// Scope returns the read predicate of table as a query filter over alias,
// bound to identity. Queries on policy tables add it to their WHERE clause.
func (e *Engine) Scope(identity *domain.Identity, table, alias string) sq.Sqlizer {
	return e.ScopeFor(identity, table, OpSelect, alias)
}

// ScopeFor is Scope for an arbitrary operation
func (e *Engine) ScopeFor(identity *domain.Identity, table string, op Operation, alias string) sq.Sqlizer {
	uid := ""
	if identity != nil {
		uid = identity.ID
	}
	return Bind(e.Table(table).Predicate(op), alias, uid)
}

// Bind renders p for alias with one argument per identity reference.
// An empty uid renders a filter that matches nothing.
func Bind(p Predicate, alias, uid string) sq.Sqlizer {
	if uid == "" {
		return sq.Expr("FALSE")
	}
	clause := p.SQL(alias, QueryDialect)
	n := strings.Count(clause, "?")
	args := make([]interface{}, n)
	for i := range args {
		args[i] = uid
	}
	return sq.Expr(fmt.Sprintf("(%s)", clause), args...)
}
