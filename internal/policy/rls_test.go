package policy

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relasjon/crm/internal/domain"
)

func TestTablePolicy_DDL(t *testing.T) {
	customers := Default().Table(TableCustomers)
	stmts := customers.DDL()

	require.Len(t, stmts, 2+4*2)
	assert.Equal(t, `ALTER TABLE "customers" ENABLE ROW LEVEL SECURITY`, stmts[0])
	assert.Equal(t, `ALTER TABLE "customers" FORCE ROW LEVEL SECURITY`, stmts[1])
	assert.Equal(t, `DROP POLICY IF EXISTS "crm_customers_select" ON "customers"`, stmts[2])
	assert.Equal(t, `CREATE POLICY "crm_customers_select" ON "customers" FOR SELECT USING (app_current_user_id() IS NOT NULL)`, stmts[3])
	assert.Equal(t, `CREATE POLICY "crm_customers_insert" ON "customers" FOR INSERT WITH CHECK (customers.created_by = app_current_user_id())`, stmts[5])
	assert.Equal(t,
		`CREATE POLICY "crm_customers_update" ON "customers" FOR UPDATE USING ((customers.created_by = app_current_user_id()) OR (customers.assigned_to = app_current_user_id())) WITH CHECK (app_current_user_id() IS NOT NULL)`,
		stmts[7])
}

func TestTablePolicy_DDL_SkipsUnsetOperations(t *testing.T) {
	stmts := Default().Table(TableProfiles).DDL()
	joined := strings.Join(stmts, "\n")
	assert.NotContains(t, joined, "FOR DELETE")
	assert.Contains(t, joined, `FOR INSERT WITH CHECK ((profiles.id = app_current_user_id()) OR (app_is_system()))`)
}

func TestDropLegacyDDL(t *testing.T) {
	stmts := DropLegacyDDL()
	assert.Len(t, stmts, 12)
	assert.Equal(t, `DROP POLICY IF EXISTS "Authenticated users can view contacts" ON "contacts"`, stmts[0])
	for _, stmt := range stmts {
		assert.True(t, strings.HasPrefix(stmt, "DROP POLICY IF EXISTS"))
	}
}

func TestRowSecurityDDL_CoversEveryTable(t *testing.T) {
	joined := strings.Join(RowSecurityDDL(Generation2()), "\n")
	for _, table := range []string{TableCustomers, TableContacts, TableDeals, TableCommunications, TableProfiles, TableIdentities} {
		assert.Contains(t, joined, `ALTER TABLE "`+table+`" FORCE ROW LEVEL SECURITY`)
	}
	assert.NotContains(t, joined, "?")
}

func TestEngine_Scope(t *testing.T) {
	identity := &domain.Identity{ID: creator}

	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("k.id").From("contacts k").
		Where(Default().Scope(identity, TableContacts, "k")).
		ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT k.id FROM contacts k WHERE (EXISTS (SELECT 1 FROM customers pc WHERE pc.id = k.customer_id AND (pc.created_by = $1::uuid OR pc.assigned_to = $2::uuid OR pc.assigned_to IS NULL)))",
		query)
	assert.Equal(t, []interface{}{creator, creator}, args)

	_, args, err = Default().Scope(nil, TableCustomers, "c").ToSql()
	require.NoError(t, err)
	assert.Empty(t, args)
}
