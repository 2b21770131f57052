package service

import (
	"context"

	"github.com/relasjon/crm/internal/domain"
)

type CustomerService struct {
	base
	repo domain.CustomerRepository
}

func NewCustomerService(repo domain.CustomerRepository, deps Deps) *CustomerService {
	return &CustomerService{base: newBase("CustomerService", deps), repo: repo}
}

func (s *CustomerService) Create(ctx context.Context, req *domain.CreateCustomerRequest) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Create", "customer", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		c, err := req.Validate(identity.ID)
		if err != nil {
			return domain.EntityRef{}, err
		}
		if err := s.repo.Create(ctx, identity, c); err != nil {
			return domain.EntityRef{}, err
		}
		s.invalidate(ctx, domain.PathCustomers, domain.PathDashboard)
		return domain.EntityRef{ID: c.ID}, nil
	})
}

// Update applies patch to the customer. Only its creator or assignee may do so.
func (s *CustomerService) Update(ctx context.Context, id string, patch *domain.CustomerPatch) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Update", "customer", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		if err := requireID(id, "customer"); err != nil {
			return domain.EntityRef{}, err
		}
		if err := patch.Validate(); err != nil {
			return domain.EntityRef{}, err
		}
		c, err := s.repo.Update(ctx, identity, id, patch.Apply)
		if err != nil {
			return domain.EntityRef{}, err
		}
		s.invalidate(ctx, domain.CustomerPath(c.ID), domain.PathCustomers, domain.PathDashboard)
		return domain.EntityRef{ID: c.ID}, nil
	})
}

// Delete removes the customer. Contacts, deals and communication logs go with it.
func (s *CustomerService) Delete(ctx context.Context, id string) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Delete", "customer", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		if err := requireID(id, "customer"); err != nil {
			return domain.EntityRef{}, err
		}
		if err := s.repo.Delete(ctx, identity, id, nil); err != nil {
			return domain.EntityRef{}, err
		}
		s.invalidate(ctx,
			domain.CustomerPath(id), domain.PathCustomers, domain.PathDeals,
			domain.PathCommunications, domain.PathDashboard,
		)
		return domain.EntityRef{ID: id}, nil
	})
}

func (s *CustomerService) GetByID(ctx context.Context, id string) domain.Result[*domain.Customer] {
	return run(ctx, &s.base, "GetByID", "customer", func(ctx context.Context, identity *domain.Identity) (*domain.Customer, error) {
		if err := requireID(id, "customer"); err != nil {
			return nil, err
		}
		return s.repo.GetByID(ctx, identity, id)
	})
}

func (s *CustomerService) GetWithStats(ctx context.Context, id string) domain.Result[*domain.CustomerWithStats] {
	return run(ctx, &s.base, "GetWithStats", "customer", func(ctx context.Context, identity *domain.Identity) (*domain.CustomerWithStats, error) {
		if err := requireID(id, "customer"); err != nil {
			return nil, err
		}
		return s.repo.GetWithStats(ctx, identity, id)
	})
}

func (s *CustomerService) List(ctx context.Context, params domain.ListCustomersParams) domain.Result[*domain.Page[domain.CustomerWithStats]] {
	return run(ctx, &s.base, "List", "customer", func(ctx context.Context, identity *domain.Identity) (*domain.Page[domain.CustomerWithStats], error) {
		if err := params.Normalize(); err != nil {
			return nil, err
		}
		return s.repo.List(ctx, identity, params)
	})
}
