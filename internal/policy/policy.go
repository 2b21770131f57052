// Package policy holds the row-level access rules of every table. The same
// predicates are evaluated in Go before a write and rendered as PostgreSQL
// row security policies, so both enforcement layers read from one source.
package policy

import (
	"errors"
	"fmt"

	"github.com/relasjon/crm/internal/domain"
)

// Decision sentinels returned by rules
var (
	Allow = errors.New("policy: allow rule")
	Deny  = errors.New("policy: deny rule")
	Skip  = errors.New("policy: skip rule")
)

// Denyf returns a formatted error wrapping Deny
func Denyf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, Deny)...)
}

// Rule decides on one row for one identity
type Rule interface {
	Eval(identity *domain.Identity, row Row) error
}

// RuleFunc adapts a function to Rule
type RuleFunc func(identity *domain.Identity, row Row) error

func (f RuleFunc) Eval(identity *domain.Identity, row Row) error {
	return f(identity, row)
}

// Policy is an ordered rule chain. The first non-Skip decision wins and an
// exhausted chain denies.
type Policy []Rule

func (p Policy) Eval(identity *domain.Identity, row Row) error {
	for _, rule := range p {
		switch decision := rule.Eval(identity, row); {
		case decision == nil || errors.Is(decision, Skip):
		case errors.Is(decision, Allow):
			return nil
		default:
			return decision
		}
	}
	return Denyf("policy: no rule allowed the operation")
}

// DenyIfNoIdentity rejects anonymous callers
func DenyIfNoIdentity() Rule {
	return RuleFunc(func(identity *domain.Identity, _ Row) error {
		if identity == nil || identity.ID == "" {
			return Denyf("policy: identity required")
		}
		return Skip
	})
}

// AllowIf allows when the predicate holds for the row and skips otherwise
func AllowIf(p Predicate) Rule {
	return RuleFunc(func(identity *domain.Identity, row Row) error {
		if identity != nil && p.Eval(identity.ID, row) {
			return Allow
		}
		return Skip
	})
}

// AlwaysDeny terminates a chain
func AlwaysDeny() Rule {
	return RuleFunc(func(*domain.Identity, Row) error {
		return Deny
	})
}
