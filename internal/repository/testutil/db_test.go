package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const uid = "11111111-1111-1111-1111-111111111111"

func TestSetupMockDB_CleanupCloses(t *testing.T) {
	db, mock, cleanup := SetupMockDB(t)
	require.NotNil(t, mock)
	require.NoError(t, db.Ping())

	cleanup()
	assert.Error(t, db.Ping())
}

func TestExpectIdentity(t *testing.T) {
	db, mock, cleanup := SetupMockDB(t)
	defer cleanup()

	ExpectIdentity(mock, uid)
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	_, err = tx.Exec("SELECT set_config('app.current_user_id', $1, true)", uid)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpectAdvisoryLock(t *testing.T) {
	db, mock, cleanup := SetupMockDB(t)
	defer cleanup()

	customerID := "22222222-2222-2222-2222-222222222222"
	ExpectIdentity(mock, uid)
	ExpectAdvisoryLock(mock, customerID)
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	_, err = tx.Exec("SELECT set_config('app.current_user_id', $1, true)", uid)
	require.NoError(t, err)
	_, err = tx.Exec("SELECT pg_advisory_xact_lock(hashtext($1))", customerID)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}
