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

func profileRows(id, displayName string) *sqlmock.Rows {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "email", "display_name", "avatar_url", "role", "last_login_at", "created_at", "updated_at",
	}).AddRow(id, "a@example.com", displayName, nil, "user", nil, now, now)
}

func TestProfileRepository_Ensure(t *testing.T) {
	t.Run("insert is idempotent and returns the stored row", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewProfileRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectExec(`INSERT INTO profiles (.+) ON CONFLICT \(id\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT (.+) FROM profiles p WHERE p.id = ").
			WillReturnRows(profileRows(userA, "Existing Name"))
		mock.ExpectCommit()

		p, err := repo.Ensure(context.Background(), identityA, domain.NewProfileFor(identityA))

		require.NoError(t, err)
		assert.Equal(t, "Existing Name", p.DisplayName)
		assert.Equal(t, domain.RoleUser, p.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cannot create a profile for another identity", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewProfileRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectRollback()

		_, err := repo.Ensure(context.Background(), identityA, domain.NewProfileFor(identityB))

		assert.True(t, domain.IsCode(err, domain.ErrCodeForbidden))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileRepository_Update(t *testing.T) {
	t.Run("own profile", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewProfileRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery(readQuery("profiles p")).
			WillReturnRows(profileRows(userA, "Old"))
		mock.ExpectQuery(lockQuery("profiles p")).
			WillReturnRows(profileRows(userA, "Old"))
		mock.ExpectExec(`UPDATE profiles SET display_name = \$1, avatar_url = \$2 WHERE id = \$3`).
			WithArgs("New", nil, userA).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		p, err := repo.Update(context.Background(), identityA, userA, func(p *domain.Profile) error {
			p.DisplayName = "New"
			p.Role = domain.RoleAdmin
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, "New", p.DisplayName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("someone else's profile", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()
		repo := NewProfileRepository(db, nil)

		testutil.ExpectIdentity(mock, userA)
		mock.ExpectQuery(readQuery("profiles p")).
			WillReturnRows(profileRows(userB, "Bob"))
		mock.ExpectRollback()

		_, err := repo.Update(context.Background(), identityA, userB, func(*domain.Profile) error { return nil })

		assert.True(t, domain.IsCode(err, domain.ErrCodeForbidden))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileRepository_TouchLastLogin(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewProfileRepository(db, nil)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	testutil.ExpectIdentity(mock, userA)
	mock.ExpectExec(`UPDATE profiles SET last_login_at = \$1 WHERE id = \$2`).
		WithArgs(at, userA).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.TouchLastLogin(context.Background(), identityA, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_RegisterIdentity(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewProfileRepository(db, nil)

	identity := &domain.Identity{ID: userA, Email: "a@example.com", Metadata: map[string]interface{}{"full_name": "Anne"}}

	testutil.ExpectIdentity(mock, userA)
	mock.ExpectExec(`INSERT INTO identities \(id,email,raw_user_meta_data,created_at\) VALUES (.+) ON CONFLICT \(id\) DO NOTHING`).
		WithArgs(userA, "a@example.com", `{"full_name":"Anne"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RegisterIdentity(context.Background(), identity))
	assert.NoError(t, mock.ExpectationsWereMet())
}
