package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/internal/domain/mocks"
)

func setupContactService(t *testing.T) (*ContactService, *mocks.MockContactRepository, *recordingInvalidator) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockContactRepository(ctrl)
	deps, inv, _ := testDeps(t)
	return NewContactService(repo, deps), repo, inv
}

func TestContactService_Create(t *testing.T) {
	t.Run("invalidates the parent customer", func(t *testing.T) {
		svc, repo, inv := setupContactService(t)
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *domain.Identity, c *domain.Contact) error {
				assert.Equal(t, customerID, c.CustomerID)
				assert.Equal(t, userA, c.CreatedBy)
				assert.True(t, c.IsPrimary)
				c.ID = contactID
				return nil
			})

		res := svc.Create(asUser(userA), &domain.CreateContactRequest{
			CustomerID: customerID,
			FullName:   "Kari Nordmann",
			Email:      strPtr("kari@example.com"),
			IsPrimary:  true,
		})

		require.True(t, res.Success, res.Error)
		assert.Equal(t, contactID, res.Data.ID)
		assert.Equal(t, []string{
			domain.CustomerContactsPath(customerID), domain.CustomerPath(customerID),
			domain.PathCustomers, domain.PathDashboard,
		}, inv.Paths())
	})

	t.Run("parent not accessible", func(t *testing.T) {
		svc, repo, inv := setupContactService(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.NewForbiddenError("contact"))

		res := svc.Create(asUser(userB), &domain.CreateContactRequest{CustomerID: customerID, FullName: "Ola"})

		assert.Equal(t, domain.ErrCodeForbidden, res.Code)
		assert.Empty(t, inv.Paths())
	})

	t.Run("missing customer id", func(t *testing.T) {
		svc, _, _ := setupContactService(t)
		res := svc.Create(asUser(userA), &domain.CreateContactRequest{FullName: "Ola"})
		assert.Equal(t, domain.ErrCodeValidation, res.Code)
		assert.Equal(t, "customer_id", res.Field)
	})
}

func TestContactService_SetPrimary(t *testing.T) {
	svc, repo, inv := setupContactService(t)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), contactID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Identity, id string, fn func(*domain.Contact) error) (*domain.Contact, error) {
			c := &domain.Contact{ID: id, CustomerID: customerID, FullName: "Kari"}
			require.NoError(t, fn(c))
			assert.True(t, c.IsPrimary)
			return c, nil
		})

	res := svc.SetPrimary(asUser(userA), contactID)

	require.True(t, res.Success, res.Error)
	assert.Contains(t, inv.Paths(), domain.CustomerContactsPath(customerID))
}

func TestContactService_Update(t *testing.T) {
	svc, repo, _ := setupContactService(t)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), contactID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Identity, id string, fn func(*domain.Contact) error) (*domain.Contact, error) {
			c := &domain.Contact{ID: id, CustomerID: customerID, FullName: "Kari"}
			if err := fn(c); err != nil {
				return nil, err
			}
			return c, nil
		})

	res := svc.Update(asUser(userA), contactID, &domain.ContactPatch{Email: domain.Some("not-an-email")})

	assert.Equal(t, domain.ErrCodeValidation, res.Code)
	assert.Equal(t, "email", res.Field)
}

func TestContactService_UpdateRejectsClearedNameFirst(t *testing.T) {
	svc, _, _ := setupContactService(t)

	res := svc.Update(asUser(userB), contactID, &domain.ContactPatch{FullName: domain.Null[string]()})

	assert.Equal(t, domain.ErrCodeValidation, res.Code)
	assert.Equal(t, "full_name", res.Field)
}

func TestContactService_Delete(t *testing.T) {
	svc, repo, inv := setupContactService(t)
	repo.EXPECT().
		Delete(gomock.Any(), gomock.Any(), contactID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.Identity, id string, fn func(*domain.Contact) error) error {
			return fn(&domain.Contact{ID: id, CustomerID: customerID})
		})

	res := svc.Delete(asUser(userA), contactID)

	require.True(t, res.Success)
	assert.Contains(t, inv.Paths(), domain.CustomerPath(customerID))
}

func TestContactService_ListForCustomer(t *testing.T) {
	svc, repo, _ := setupContactService(t)
	repo.EXPECT().
		ListForCustomer(gomock.Any(), gomock.Any(), customerID, ListLimit).
		Return([]*domain.Contact{{ID: contactID, IsPrimary: true}}, nil)

	res := svc.ListForCustomer(asUser(userB), customerID)

	require.True(t, res.Success)
	assert.Len(t, res.Data, 1)

	bad := svc.GetByID(asUser(userB), "x")
	assert.Equal(t, domain.ErrCodeNotFound, bad.Code)
}
