package policy

import (
	"fmt"
	"strings"
)

// Dialect decides how the current identity and the system flag are spelled
// when a predicate is rendered to SQL.
type Dialect struct {
	Current string
	System  string
}

var (
	// StorageDialect renders predicates for CREATE POLICY
	StorageDialect = Dialect{Current: "app_current_user_id()", System: "app_is_system()"}
	// QueryDialect renders predicates as query filters with one placeholder per identity reference
	QueryDialect = Dialect{Current: "?::uuid", System: "FALSE"}
)

// Row carries the authorization columns of a row and, for child tables, of
// its parent customer. A missing or empty value stands for NULL.
type Row struct {
	Columns map[string]string
	Parent  map[string]string
}

func (r Row) column(name string) string {
	return r.Columns[name]
}

// Predicate is a boolean condition over a row and the current identity,
// available both as a Go function and as SQL.
type Predicate struct {
	name   string
	render func(alias string, d Dialect) string
	eval   func(uid string, row Row) bool
}

// IsZero reports an unset predicate. Unset predicates deny.
func (p Predicate) IsZero() bool {
	return p.render == nil
}

func (p Predicate) String() string {
	if p.IsZero() {
		return "never"
	}
	return p.name
}

// Eval evaluates the predicate for uid against row
func (p Predicate) Eval(uid string, row Row) bool {
	if p.IsZero() {
		return false
	}
	return p.eval(uid, row)
}

// SQL renders the predicate with columns qualified by alias
func (p Predicate) SQL(alias string, d Dialect) string {
	if p.IsZero() {
		return "FALSE"
	}
	return p.render(alias, d)
}

func qualify(alias, column string) string {
	if alias == "" {
		return column
	}
	return alias + "." + column
}

// Authenticated holds for any signed-in identity
func Authenticated() Predicate {
	return Predicate{
		name: "authenticated",
		render: func(_ string, d Dialect) string {
			return d.Current + " IS NOT NULL"
		},
		eval: func(uid string, _ Row) bool {
			return uid != ""
		},
	}
}

// IsColumn holds when the given column equals the current identity
func IsColumn(column string) Predicate {
	return Predicate{
		name: column + " = me",
		render: func(alias string, d Dialect) string {
			return fmt.Sprintf("%s = %s", qualify(alias, column), d.Current)
		},
		eval: func(uid string, row Row) bool {
			return uid != "" && row.column(column) == uid
		},
	}
}

// Unassigned holds when assigned_to is NULL
func Unassigned() Predicate {
	return Predicate{
		name: "unassigned",
		render: func(alias string, _ Dialect) string {
			return qualify(alias, "assigned_to") + " IS NULL"
		},
		eval: func(_ string, row Row) bool {
			return row.column("assigned_to") == ""
		},
	}
}

// CustomerAccessible is the visibility rule children inherit from their
// customer: creator, assignee or nobody assigned.
func CustomerAccessible(uid string, customer map[string]string) bool {
	if uid == "" || customer == nil {
		return false
	}
	return customer["created_by"] == uid || customer["assigned_to"] == uid || customer["assigned_to"] == ""
}

// ParentCustomerAccessible holds when the row's parent customer is accessible
func ParentCustomerAccessible() Predicate {
	return Predicate{
		name: "parent customer accessible",
		render: func(alias string, d Dialect) string {
			return fmt.Sprintf(
				"EXISTS (SELECT 1 FROM customers pc WHERE pc.id = %s AND (pc.created_by = %s OR pc.assigned_to = %s OR pc.assigned_to IS NULL))",
				qualify(alias, "customer_id"), d.Current, d.Current,
			)
		},
		eval: func(uid string, row Row) bool {
			return CustomerAccessible(uid, row.Parent)
		},
	}
}

// System holds only inside storage routines that flag themselves as system
func System() Predicate {
	return Predicate{
		name: "system",
		render: func(_ string, d Dialect) string {
			return d.System
		},
		eval: func(string, Row) bool {
			return false
		},
	}
}

// Or holds when any of ps holds
func Or(ps ...Predicate) Predicate {
	return combine("OR", ps, func(uid string, row Row) bool {
		for _, p := range ps {
			if p.Eval(uid, row) {
				return true
			}
		}
		return false
	})
}

// And holds when all of ps hold
func And(ps ...Predicate) Predicate {
	return combine("AND", ps, func(uid string, row Row) bool {
		for _, p := range ps {
			if !p.Eval(uid, row) {
				return false
			}
		}
		return len(ps) > 0
	})
}

func combine(op string, ps []Predicate, eval func(string, Row) bool) Predicate {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return Predicate{
		name: "(" + strings.Join(names, " "+strings.ToLower(op)+" ") + ")",
		render: func(alias string, d Dialect) string {
			parts := make([]string, len(ps))
			for i, p := range ps {
				parts[i] = "(" + p.SQL(alias, d) + ")"
			}
			return strings.Join(parts, " "+op+" ")
		},
		eval: eval,
	}
}
