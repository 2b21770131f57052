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

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%acme%", containsPattern("acme"))
	assert.Equal(t, `%50\% off\_now%`, containsPattern("50% off_now"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}

func TestSearchRepository(t *testing.T) {
	resultColumns := []string{"id", "title", "subtitle", "customer_id"}

	t.Run("customers", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewSearchRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery(`SELECT c.id, c.name, c.industry, c.id FROM customers c WHERE (.+) ILIKE (.+) LIMIT 10`).
			WithArgs(userA, "%acme%", "%acme%", "%acme%").
			WillReturnRows(sqlmock.NewRows(resultColumns).AddRow(customerID, "Acme AS", "Software", customerID))
		mock.ExpectCommit()

		results, err := repo.SearchCustomers(context.Background(), identityA, "acme", 10)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, domain.SearchKindCustomer, results[0].Type)
		assert.Equal(t, "Acme AS", results[0].Title)
		assert.Equal(t, customerID, results[0].CustomerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("contacts are scoped through their customer", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewSearchRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery(`FROM contacts k WHERE \(EXISTS \(SELECT 1 FROM customers pc (.+)\)\) AND (.+) LIMIT 10`).
			WillReturnRows(sqlmock.NewRows(resultColumns))
		mock.ExpectCommit()

		results, err := repo.SearchContacts(context.Background(), identityA, "kari", 0)

		require.NoError(t, err)
		assert.Empty(t, results)
		assert.NotNil(t, results)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deals and communications", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewSearchRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery("FROM deals d").
			WillReturnRows(sqlmock.NewRows(resultColumns).AddRow(dealID, "Licence renewal", "proposal", customerID))
		mock.ExpectCommit()
		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery("FROM communication_logs l").
			WillReturnRows(sqlmock.NewRows(resultColumns).AddRow(communicationID, "Kickoff", "meeting", customerID))
		mock.ExpectCommit()

		deals, err := repo.SearchDeals(context.Background(), identityA, "licence", 10)
		require.NoError(t, err)
		require.Len(t, deals, 1)
		require.NotNil(t, deals[0].Subtitle)
		assert.Equal(t, "proposal", *deals[0].Subtitle)

		logs, err := repo.SearchCommunications(context.Background(), identityA, "kick", 10)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, domain.SearchKindCommunication, logs[0].Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
