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

func TestDashboardRepository(t *testing.T) {
	t.Run("customers by status", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewDashboardRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery(`SELECT c.status, COUNT\(\*\) FROM customers c WHERE (.+) GROUP BY c.status`).
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
				AddRow("active", 3).
				AddRow("potential", 5))
		mock.ExpectCommit()

		counts, err := repo.CountCustomersByStatus(context.Background(), identityA)

		require.NoError(t, err)
		assert.Equal(t, 3, counts[domain.CustomerStatusActive])
		assert.Equal(t, 5, counts[domain.CustomerStatusPotential])
		assert.Zero(t, counts[domain.CustomerStatusLost])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open pipeline", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewDashboardRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(d.value\), 0\), (.+) FROM deals d WHERE (.+) AND d.stage IN \(\$\d+,\$\d+,\$\d+,\$\d+\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count", "value", "weighted"}).AddRow(2, 300000.0, 90000.0))
		mock.ExpectCommit()

		totals, err := repo.OpenPipeline(context.Background(), identityA)

		require.NoError(t, err)
		assert.Equal(t, domain.PipelineTotals{Count: 2, Value: 300000, WeightedValue: 90000}, totals)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("won deals count from the first of the month", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewDashboardRepository(db, nil)
		since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM deals d WHERE (.+) AND d.stage = \$\d+ AND d.actual_close_date >= \$\d+`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
		mock.ExpectCommit()

		n, err := repo.CountDealsWonSince(context.Background(), identityA, since)

		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("customers to contact", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewDashboardRepository(db, nil)
		from := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery(`FROM customers c WHERE (.+) AND c.next_contact_date >= \$2 AND c.next_contact_date <= \$3`).
			WithArgs(userA, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectCommit()

		n, err := repo.CountCustomersToContact(context.Background(), identityA, from, from.AddDate(0, 0, 7))

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without identity nothing is queried", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewDashboardRepository(db, nil)

		_, err := repo.CountCustomers(context.Background(), nil)

		assert.True(t, domain.IsCode(err, domain.ErrCodeUnauthorized))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
