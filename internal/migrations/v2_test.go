package migrations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relasjon/crm/config"
)

func TestV2Migration_Metadata(t *testing.T) {
	m := &V2Migration{}
	assert.Equal(t, 2.0, m.GetMajorVersion())
	assert.False(t, m.ShouldRestartServer())

	registered, ok := DefaultRegistry.GetMigration(2)
	require.True(t, ok)
	assert.IsType(t, &V2Migration{}, registered)
}

func TestV2Migration_StatementOrder(t *testing.T) {
	stmts := (&V2Migration{}).Statements()

	lastLegacyDrop, firstCreatePolicy, dedupe, uniqueIndex := -1, -1, -1, -1
	for i, stmt := range stmts {
		switch {
		case strings.Contains(stmt, "Authenticated users can"):
			lastLegacyDrop = i
			assert.True(t, strings.HasPrefix(stmt, "DROP POLICY IF EXISTS"))
		case firstCreatePolicy == -1 && strings.HasPrefix(stmt, "CREATE POLICY"):
			firstCreatePolicy = i
		case strings.HasPrefix(stmt, "UPDATE contacts SET is_primary = FALSE"):
			dedupe = i
		case strings.Contains(stmt, "contacts_one_primary"):
			uniqueIndex = i
		}
	}
	require.NotEqual(t, -1, lastLegacyDrop)
	assert.Less(t, lastLegacyDrop, firstCreatePolicy)
	assert.Less(t, dedupe, uniqueIndex)
	assert.True(t, strings.HasPrefix(stmts[len(stmts)-1], "CREATE POLICY"))
}

func TestV2Migration_Update(t *testing.T) {
	m := &V2Migration{}

	t.Run("executes every statement", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for range m.Statements() {
			mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(0, 0))
		}
		require.NoError(t, m.Update(context.Background(), &config.Config{}, db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DROP POLICY").WillReturnError(errors.New("must be owner of table contacts"))
		err = m.Update(context.Background(), &config.Config{}, db)
		assert.ErrorContains(t, err, "failed to apply statement 0")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
