package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/relasjon/crm/internal/database/schema"
	"github.com/relasjon/crm/internal/policy"
)

// SchemaStatements returns every statement needed to bring an empty
// database to the current schema, row security included.
func SchemaStatements() []string {
	var stmts []string
	stmts = append(stmts, schema.TableDefinitions...)
	stmts = append(stmts, schema.IndexDefinitions...)
	stmts = append(stmts, schema.FunctionDefinitions...)
	stmts = append(stmts, schema.TriggerDefinitions...)
	stmts = append(stmts, schema.ViewDefinitions...)
	stmts = append(stmts, policy.RowSecurityDDL(policy.Generation2())...)
	return stmts
}

// InitializeDatabase creates the schema inside one transaction. Every
// statement is idempotent so it is safe on an existing database.
func InitializeDatabase(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, query := range SchemaStatements() {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// CleanDatabase drops every CRM table. Used by integration tests only.
func CleanDatabase(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "DROP VIEW IF EXISTS customers_with_stats"); err != nil {
		return fmt.Errorf("failed to drop view: %w", err)
	}
	for i := len(schema.TableNames) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", schema.TableNames[i])
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", schema.TableNames[i], err)
		}
	}
	return nil
}
