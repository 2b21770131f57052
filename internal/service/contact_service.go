package service

import (
	"context"

	"github.com/relasjon/crm/internal/domain"
)

type ContactService struct {
	base
	repo domain.ContactRepository
}

func NewContactService(repo domain.ContactRepository, deps Deps) *ContactService {
	return &ContactService{base: newBase("ContactService", deps), repo: repo}
}

func (s *ContactService) changed(ctx context.Context, customerID string) {
	s.invalidate(ctx,
		domain.CustomerContactsPath(customerID), domain.CustomerPath(customerID),
		domain.PathCustomers, domain.PathDashboard,
	)
}

// Create adds a contact to a customer the caller can work with. A primary
// contact replaces the customer's previous primary.
func (s *ContactService) Create(ctx context.Context, req *domain.CreateContactRequest) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Create", "contact", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		c, err := req.Validate(identity.ID)
		if err != nil {
			return domain.EntityRef{}, err
		}
		if err := s.repo.Create(ctx, identity, c); err != nil {
			return domain.EntityRef{}, err
		}
		s.changed(ctx, c.CustomerID)
		return domain.EntityRef{ID: c.ID}, nil
	})
}

func (s *ContactService) Update(ctx context.Context, id string, patch *domain.ContactPatch) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Update", "contact", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		if err := requireID(id, "contact"); err != nil {
			return domain.EntityRef{}, err
		}
		if err := patch.Validate(); err != nil {
			return domain.EntityRef{}, err
		}
		c, err := s.repo.Update(ctx, identity, id, patch.Apply)
		if err != nil {
			return domain.EntityRef{}, err
		}
		s.changed(ctx, c.CustomerID)
		return domain.EntityRef{ID: c.ID}, nil
	})
}

// SetPrimary makes the contact its customer's only primary contact
func (s *ContactService) SetPrimary(ctx context.Context, id string) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "SetPrimary", "contact", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		if err := requireID(id, "contact"); err != nil {
			return domain.EntityRef{}, err
		}
		c, err := s.repo.Update(ctx, identity, id, func(c *domain.Contact) error {
			c.IsPrimary = true
			return nil
		})
		if err != nil {
			return domain.EntityRef{}, err
		}
		s.changed(ctx, c.CustomerID)
		return domain.EntityRef{ID: c.ID}, nil
	})
}

func (s *ContactService) Delete(ctx context.Context, id string) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Delete", "contact", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		if err := requireID(id, "contact"); err != nil {
			return domain.EntityRef{}, err
		}
		var customerID string
		err := s.repo.Delete(ctx, identity, id, func(c *domain.Contact) error {
			customerID = c.CustomerID
			return nil
		})
		if err != nil {
			return domain.EntityRef{}, err
		}
		s.changed(ctx, customerID)
		return domain.EntityRef{ID: id}, nil
	})
}

func (s *ContactService) GetByID(ctx context.Context, id string) domain.Result[*domain.Contact] {
	return run(ctx, &s.base, "GetByID", "contact", func(ctx context.Context, identity *domain.Identity) (*domain.Contact, error) {
		if err := requireID(id, "contact"); err != nil {
			return nil, err
		}
		return s.repo.GetByID(ctx, identity, id)
	})
}

func (s *ContactService) ListForCustomer(ctx context.Context, customerID string) domain.Result[[]*domain.Contact] {
	return run(ctx, &s.base, "ListForCustomer", "contact", func(ctx context.Context, identity *domain.Identity) ([]*domain.Contact, error) {
		if err := requireID(customerID, "customer"); err != nil {
			return nil, err
		}
		return s.repo.ListForCustomer(ctx, identity, customerID, ListLimit)
	})
}
