package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/internal/repository/testutil"
)

const contactID = "cccccccc-cccc-cccc-cccc-cccccccccccc"

func contactRows(isPrimary bool, customerCreatedBy string, customerAssignedTo interface{}) *sqlmock.Rows {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "customer_id", "full_name", "email", "phone", "job_title", "department",
		"linkedin_url", "is_decision_maker", "is_primary", "notes",
		"created_by", "updated_by", "created_at", "updated_at",
		"created_by", "assigned_to",
	}).AddRow(
		contactID, customerID, "Kari Nordmann", "kari@example.com", nil, "CTO", nil,
		nil, true, isPrimary, nil,
		customerCreatedBy, nil, now, now,
		customerCreatedBy, customerAssignedTo,
	)
}

func ownershipRows(createdBy string, assignedTo interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"created_by", "assigned_to"}).AddRow(createdBy, assignedTo)
}

func TestContactRepository_Create(t *testing.T) {
	t.Run("a primary contact demotes the previous one under the customer lock", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewContactRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		testutil.ExpectAdvisoryLock(mock, customerID)
		mock.ExpectQuery(`SELECT c.created_by, c.assigned_to FROM customers c WHERE c.id = \$1`).
			WillReturnRows(ownershipRows(userA, nil))
		mock.ExpectExec(`UPDATE contacts SET is_primary = \$1, updated_by = \$2 WHERE \(customer_id = \$3 AND is_primary\)`).
			WithArgs(false, userA, customerID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO contacts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		c := &domain.Contact{CustomerID: customerID, FullName: "Kari Nordmann", IsPrimary: true, CreatedBy: userA}
		err := repo.Create(context.Background(), identityA, c)

		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, userA, c.Customer.CreatedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non primary contacts skip the lock", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewContactRepository(db, nil)

		testutil.ExpectIdentity(mock, userB)
		mock.ExpectQuery("SELECT c.created_by, c.assigned_to FROM customers c").
			WillReturnRows(ownershipRows(userA, nil))
		mock.ExpectExec("INSERT INTO contacts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		c := &domain.Contact{CustomerID: customerID, FullName: "Ola Nordmann", CreatedBy: userB}
		require.NoError(t, repo.Create(context.Background(), identityB, c))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("customers assigned to someone else are off limits", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewContactRepository(db, nil)

		testutil.ExpectIdentity(mock, userB)
		mock.ExpectQuery("SELECT c.created_by, c.assigned_to FROM customers c").
			WillReturnRows(ownershipRows(userA, userC))
		mock.ExpectRollback()

		c := &domain.Contact{CustomerID: customerID, FullName: "Ola Nordmann", CreatedBy: userB}
		err := repo.Create(context.Background(), identityB, c)

		assert.True(t, domain.IsCode(err, domain.ErrCodeForbidden))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown customers are not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewContactRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery("SELECT c.created_by, c.assigned_to FROM customers c").
			WillReturnRows(sqlmock.NewRows([]string{"created_by", "assigned_to"}))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), identityA, &domain.Contact{CustomerID: customerID, FullName: "X", CreatedBy: userA})

		require.Error(t, err)
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domain.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "customer", appErr.Entity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContactRepository_Update(t *testing.T) {
	t.Run("promoting to primary locks the customer before the row", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewContactRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery(`SELECT k.customer_id FROM contacts k WHERE k.id = \$1 AND \(EXISTS`).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id"}).AddRow(customerID))
		testutil.ExpectAdvisoryLock(mock, customerID)
		mock.ExpectQuery(`SELECT (.+) FROM contacts k JOIN customers cu ON cu.id = k.customer_id WHERE (.+) FOR UPDATE OF k`).
			WillReturnRows(contactRows(false, userA, nil))
		mock.ExpectExec(`UPDATE contacts SET is_primary = \$1, updated_by = \$2 WHERE \(customer_id = \$3 AND is_primary AND id <> \$4\)`).
			WithArgs(false, userA, customerID, contactID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE contacts SET department").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		c, err := repo.Update(context.Background(), identityA, contactID, func(c *domain.Contact) error {
			c.IsPrimary = true
			return nil
		})

		require.NoError(t, err)
		assert.True(t, c.IsPrimary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("customer_id cannot be moved by fn", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewContactRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery("SELECT k.customer_id FROM contacts k").
			WillReturnRows(sqlmock.NewRows([]string{"customer_id"}).AddRow(customerID))
		testutil.ExpectAdvisoryLock(mock, customerID)
		mock.ExpectQuery("SELECT (.+) FROM contacts k (.+) FOR UPDATE OF k").
			WillReturnRows(contactRows(true, userA, nil))
		mock.ExpectExec("UPDATE contacts SET department").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		c, err := repo.Update(context.Background(), identityA, contactID, func(c *domain.Contact) error {
			c.CustomerID = "dddddddd-dddd-dddd-dddd-dddddddddddd"
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, customerID, c.CustomerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invisible contacts are not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewContactRepository(db, nil)

		testutil.ExpectIdentity(mock, userB)
		mock.ExpectQuery("SELECT k.customer_id FROM contacts k").
			WillReturnRows(sqlmock.NewRows([]string{"customer_id"}))
		mock.ExpectRollback()

		_, err := repo.Update(context.Background(), identityB, contactID, func(*domain.Contact) error { return nil })

		assert.True(t, domain.IsCode(err, domain.ErrCodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContactRepository_ListForCustomer(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewContactRepository(db, nil)

	testutil.ExpectIdentity(mock, userA)
	mock.ExpectQuery(`SELECT (.+) FROM contacts k (.+) ORDER BY k.is_primary DESC, k.full_name LIMIT 50`).
		WillReturnRows(contactRows(true, userA, nil))
	mock.ExpectCommit()

	contacts, err := repo.ListForCustomer(context.Background(), identityA, customerID, 50)

	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.True(t, contacts[0].IsPrimary)
	require.NotNil(t, contacts[0].Email)
	assert.Equal(t, "kari@example.com", *contacts[0].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Delete(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewContactRepository(db, nil)

	testutil.ExpectIdentity(mock, userB)
	mock.ExpectQuery("SELECT (.+) FROM contacts k (.+) FOR UPDATE OF k").
		WillReturnRows(contactRows(false, userA, nil))
	mock.ExpectExec(`DELETE FROM contacts WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// unassigned customers are shared, so any user may delete their contacts
	err := repo.Delete(context.Background(), identityB, contactID, nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
