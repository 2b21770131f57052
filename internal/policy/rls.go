package policy

import (
	"fmt"
	"sort"

	"github.com/lib/pq"
)

// PolicyName is the name of the storage policy guarding op on table
func PolicyName(table string, op Operation) string {
	return fmt.Sprintf("crm_%s_%s", table, op)
}

// DDL renders the statements that install t as row security on its table.
// Statements are idempotent: existing policies of the same name are replaced.
func (t TablePolicy) DDL() []string {
	table := pq.QuoteIdentifier(t.Table)
	stmts := []string{
		fmt.Sprintf("ALTER TABLE %s ENABLE ROW LEVEL SECURITY", table),
		fmt.Sprintf("ALTER TABLE %s FORCE ROW LEVEL SECURITY", table),
	}

	add := func(op Operation, clause string) {
		name := pq.QuoteIdentifier(PolicyName(t.Table, op))
		stmts = append(stmts,
			fmt.Sprintf("DROP POLICY IF EXISTS %s ON %s", name, table),
			fmt.Sprintf("CREATE POLICY %s ON %s FOR %s %s", name, table, sqlCommand(op), clause),
		)
	}

	if !t.Select.IsZero() {
		add(OpSelect, fmt.Sprintf("USING (%s)", t.Select.SQL(t.Table, StorageDialect)))
	}
	if !t.Insert.IsZero() {
		add(OpInsert, fmt.Sprintf("WITH CHECK (%s)", t.Insert.SQL(t.Table, StorageDialect)))
	}
	if !t.Update.IsZero() {
		add(OpUpdate, fmt.Sprintf("USING (%s) WITH CHECK (%s)",
			t.Update.SQL(t.Table, StorageDialect),
			t.Predicate(OpUpdateCheck).SQL(t.Table, StorageDialect)))
	}
	if !t.Delete.IsZero() {
		add(OpDelete, fmt.Sprintf("USING (%s)", t.Delete.SQL(t.Table, StorageDialect)))
	}
	return stmts
}

func sqlCommand(op Operation) string {
	switch op {
	case OpSelect:
		return "SELECT"
	case OpInsert:
		return "INSERT"
	case OpUpdate, OpUpdateCheck:
		return "UPDATE"
	case OpDelete:
		return "DELETE"
	}
	return "ALL"
}

// DropLegacyDDL renders DROP statements for every legacy permissive policy
func DropLegacyDDL() []string {
	tables := make([]string, 0, len(LegacyPolicyNames))
	for table := range LegacyPolicyNames {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	var stmts []string
	for _, table := range tables {
		for _, name := range LegacyPolicyNames[table] {
			stmts = append(stmts, fmt.Sprintf("DROP POLICY IF EXISTS %s ON %s", pq.QuoteIdentifier(name), pq.QuoteIdentifier(table)))
		}
	}
	return stmts
}

// RowSecurityDDL renders the full current rule set for every table in tables
func RowSecurityDDL(tables []TablePolicy) []string {
	var stmts []string
	for _, t := range tables {
		stmts = append(stmts, t.DDL()...)
	}
	return stmts
}
