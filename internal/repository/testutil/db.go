package testutil

import (
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// SetupMockDB creates a mock database connection for testing
func SetupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// ExpectIdentity expects the transaction prologue that installs uid for row security
func ExpectIdentity(mock sqlmock.Sqlmock, uid string) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT set_config('app.current_user_id', $1, true)")).
		WithArgs(uid).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

// ExpectAdvisoryLock expects the per-customer contact lock
func ExpectAdvisoryLock(mock sqlmock.Sqlmock, customerID string) {
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs(customerID).
		WillReturnResult(sqlmock.NewResult(0, 0))
}
