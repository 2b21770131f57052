package migrations

import (
	"context"
	"fmt"

	"github.com/relasjon/crm/config"
	"github.com/relasjon/crm/internal/database/schema"
	"github.com/relasjon/crm/internal/policy"
)

// V2Migration replaces the permissive first-generation row policies with
// the ownership rules, and installs the triggers, helper functions and the
// stats view that came with them.
type V2Migration struct{}

func (m *V2Migration) GetMajorVersion() float64 {
	return 2.0
}

func (m *V2Migration) Description() string {
	return "replace permissive row policies with ownership policies"
}

func (m *V2Migration) ShouldRestartServer() bool {
	return false
}

// Statements lists the DDL in execution order
func (m *V2Migration) Statements() []string {
	var stmts []string
	stmts = append(stmts, policy.DropLegacyDDL()...)
	stmts = append(stmts, schema.TableDefinitions...)
	// the owner skips row security until RowSecurityDDL forces it again
	stmts = append(stmts, `ALTER TABLE contacts NO FORCE ROW LEVEL SECURITY`, demoteDuplicatePrimaries)
	stmts = append(stmts, schema.IndexDefinitions...)
	stmts = append(stmts, schema.FunctionDefinitions...)
	stmts = append(stmts, schema.TriggerDefinitions...)
	stmts = append(stmts, schema.ViewDefinitions...)
	stmts = append(stmts, policy.RowSecurityDDL(policy.Generation2())...)
	return stmts
}

// demoteDuplicatePrimaries keeps the most recently updated primary contact
// per customer so the partial unique index can be built
const demoteDuplicatePrimaries = `UPDATE contacts SET is_primary = FALSE
	WHERE is_primary AND id NOT IN (
		SELECT DISTINCT ON (customer_id) id FROM contacts
		WHERE is_primary
		ORDER BY customer_id, updated_at DESC
	)`

func (m *V2Migration) Update(ctx context.Context, cfg *config.Config, db DBExecutor) error {
	for i, stmt := range m.Statements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply statement %d: %w", i, err)
		}
	}
	return nil
}

func init() {
	Register(&V2Migration{})
}
