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

const communicationID = "ffffffff-ffff-ffff-ffff-ffffffffffff"

var communicationRowColumns = []string{
	"id", "customer_id", "contact_id", "type", "communication_date", "subject",
	"description", "logged_by", "created_at", "updated_at",
	"created_by", "assigned_to",
}

func communicationRows(loggedBy string) *sqlmock.Rows {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return sqlmock.NewRows(communicationRowColumns).AddRow(
		communicationID, customerID, nil, "phone", at, "Follow-up call",
		nil, loggedBy, at, at,
		userA, nil,
	)
}

func TestCommunicationRepository_Create(t *testing.T) {
	newLog := func() *domain.CommunicationLog {
		return &domain.CommunicationLog{
			CustomerID:        customerID,
			Type:              domain.CommunicationPhone,
			CommunicationDate: time.Now().Add(-time.Hour),
			Subject:           "Follow-up call",
			LoggedBy:          userB,
		}
	}

	t.Run("anyone may log against a customer assigned to someone else", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewCommunicationRepository(db, nil)

		testutil.ExpectIdentity(mock, userB)
		mock.ExpectQuery("SELECT c.created_by, c.assigned_to FROM customers c").
			WillReturnRows(ownershipRows(userA, userC))
		mock.ExpectExec("INSERT INTO communication_logs").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		l := newLog()
		require.NoError(t, repo.Create(context.Background(), identityB, l))
		assert.NotEmpty(t, l.ID)
		require.NotNil(t, l.Customer.AssignedTo)
		assert.Equal(t, userC, *l.Customer.AssignedTo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("the customer must exist", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewCommunicationRepository(db, nil)

		testutil.ExpectIdentity(mock, userB)
		mock.ExpectQuery("SELECT c.created_by, c.assigned_to FROM customers c").
			WillReturnRows(sqlmock.NewRows([]string{"created_by", "assigned_to"}))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), identityB, newLog())
		assert.True(t, domain.IsCode(err, domain.ErrCodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommunicationRepository_Update(t *testing.T) {
	t.Run("only the logger may edit", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewCommunicationRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery(readQuery("communication_logs l")).
			WillReturnRows(communicationRows(userB))
		mock.ExpectRollback()

		_, err := repo.Update(context.Background(), identityA, communicationID, func(*domain.CommunicationLog) error { return nil })

		assert.True(t, domain.IsCode(err, domain.ErrCodeForbidden))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("logger keeps ownership even if fn changes it", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewCommunicationRepository(db, nil)

		testutil.ExpectIdentity(mock, userB)
		mock.ExpectQuery(readQuery("communication_logs l")).
			WillReturnRows(communicationRows(userB))
		mock.ExpectQuery(lockQuery("communication_logs l")).
			WillReturnRows(communicationRows(userB))
		mock.ExpectExec("UPDATE communication_logs SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		l, err := repo.Update(context.Background(), identityB, communicationID, func(l *domain.CommunicationLog) error {
			l.Subject = "Call about renewal"
			l.LoggedBy = userA
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, "Call about renewal", l.Subject)
		assert.Equal(t, userB, l.LoggedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommunicationRepository_ListRecent(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewCommunicationRepository(db, nil)

	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	cols := append(append([]string{}, communicationRowColumns...), "name", "full_name")

	testutil.ExpectIdentity(mock, userA)
	mock.ExpectQuery(`SELECT (.+) FROM communication_logs l JOIN customers cu (.+) LEFT JOIN contacts k ON k.id = l.contact_id (.+) LIMIT 5`).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			communicationID, customerID, contactID, "meeting", at, "Kickoff",
			nil, userA, at, at, userA, nil, "Acme AS", "Kari Nordmann",
		))
	mock.ExpectCommit()

	recent, err := repo.ListRecent(context.Background(), identityA, 5)

	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Acme AS", recent[0].CustomerName)
	require.NotNil(t, recent[0].ContactName)
	assert.Equal(t, "Kari Nordmann", *recent[0].ContactName)
	assert.Equal(t, domain.CommunicationMeeting, recent[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
