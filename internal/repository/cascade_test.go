package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/internal/repository/testutil"
)

// Deleting a customer removes its children through ON DELETE CASCADE; the
// repositories must then report each child as not found.
func TestCustomerDelete_ChildrenAreNotFoundAfterwards(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	customers := NewCustomerRepository(db, nil)
	contacts := NewContactRepository(db, nil)
	deals := NewDealRepository(db, nil)
	logs := NewCommunicationRepository(db, nil)
	ctx := context.Background()

	testutil.ExpectIdentity(mock, userA)
	mock.ExpectQuery(readQuery("customers c")).WillReturnRows(customerRows(userA, nil))
	mock.ExpectQuery(lockQuery("customers c")).WillReturnRows(customerRows(userA, nil))
	mock.ExpectExec(`DELETE FROM customers WHERE id = \$1`).
		WithArgs(customerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, customers.Delete(ctx, identityA, customerID, nil))

	empty := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}) }

	testutil.ExpectIdentity(mock, userA)
	mock.ExpectQuery(`SELECT (.+) FROM contacts k (.+)`).WillReturnRows(empty())
	mock.ExpectRollback()
	_, err := contacts.GetByID(ctx, identityA, contactID)
	assert.True(t, domain.IsCode(err, domain.ErrCodeNotFound), "contact: %v", err)

	testutil.ExpectIdentity(mock, userA)
	mock.ExpectQuery(`SELECT (.+) FROM deals d (.+)`).WillReturnRows(empty())
	mock.ExpectRollback()
	_, err = deals.GetByID(ctx, identityA, dealID)
	assert.True(t, domain.IsCode(err, domain.ErrCodeNotFound), "deal: %v", err)

	testutil.ExpectIdentity(mock, userA)
	mock.ExpectQuery(`SELECT (.+) FROM communication_logs l (.+)`).WillReturnRows(empty())
	mock.ExpectRollback()
	_, err = logs.GetByID(ctx, identityA, communicationID)
	assert.True(t, domain.IsCode(err, domain.ErrCodeNotFound), "communication: %v", err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
