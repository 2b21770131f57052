package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relasjon/crm/internal/database/schema"
)

func TestSchemaStatements(t *testing.T) {
	stmts := SchemaStatements()
	require.Greater(t, len(stmts), len(schema.TableDefinitions))

	joined := strings.Join(stmts, "\n")
	assert.Contains(t, joined, "contacts_one_primary")
	assert.Contains(t, joined, "security_invoker = true")
	assert.Contains(t, joined, `ALTER TABLE "deals" FORCE ROW LEVEL SECURITY`)
	assert.NotContains(t, joined, "Authenticated users can")

	// tables exist before anything refers to them
	firstPolicy := -1
	lastTable := -1
	for i, stmt := range stmts {
		if strings.HasPrefix(stmt, "CREATE TABLE") {
			lastTable = i
		}
		if firstPolicy == -1 && strings.HasPrefix(stmt, "CREATE POLICY") {
			firstPolicy = i
		}
	}
	assert.Less(t, lastTable, firstPolicy)
}

func TestInitializeDatabase(t *testing.T) {
	t.Run("applies every statement in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		for range SchemaStatements() {
			mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectCommit()

		require.NoError(t, InitializeDatabase(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS settings").WillReturnError(errors.New("permission denied"))
		mock.ExpectRollback()

		err = InitializeDatabase(context.Background(), db)
		assert.ErrorContains(t, err, "failed to apply schema statement")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCleanDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DROP VIEW IF EXISTS customers_with_stats").WillReturnResult(sqlmock.NewResult(0, 0))
	for i := len(schema.TableNames) - 1; i >= 0; i-- {
		mock.ExpectExec("DROP TABLE IF EXISTS " + schema.TableNames[i]).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, CleanDatabase(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
