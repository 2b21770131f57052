package service

import (
	"context"

	"github.com/relasjon/crm/internal/domain"
)

type DealService struct {
	base
	repo     domain.DealRepository
	contacts domain.ContactRepository
}

func NewDealService(repo domain.DealRepository, contacts domain.ContactRepository, deps Deps) *DealService {
	return &DealService{base: newBase("DealService", deps), repo: repo, contacts: contacts}
}

func (s *DealService) changed(ctx context.Context, customerID string) {
	s.invalidate(ctx,
		domain.CustomerDealsPath(customerID), domain.CustomerPath(customerID),
		domain.PathDeals, domain.PathCustomers, domain.PathDashboard,
	)
}

func (s *DealService) Create(ctx context.Context, req *domain.CreateDealRequest) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Create", "deal", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		d, err := req.Validate(identity.ID, domain.DateOf(s.now()))
		if err != nil {
			return domain.EntityRef{}, err
		}
		if err := checkContact(ctx, s.contacts, identity, d.CustomerID, d.ContactID); err != nil {
			return domain.EntityRef{}, err
		}
		if err := s.repo.Create(ctx, identity, d); err != nil {
			return domain.EntityRef{}, err
		}
		s.changed(ctx, d.CustomerID)
		return domain.EntityRef{ID: d.ID}, nil
	})
}

// Update applies patch. Moving the deal into won or lost stamps today's close date.
func (s *DealService) Update(ctx context.Context, id string, patch *domain.DealPatch) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Update", "deal", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		if err := requireID(id, "deal"); err != nil {
			return domain.EntityRef{}, err
		}
		if err := patch.Validate(); err != nil {
			return domain.EntityRef{}, err
		}
		if patch.ContactChanged() {
			current, err := s.repo.GetByID(ctx, identity, id)
			if err != nil {
				return domain.EntityRef{}, err
			}
			if err := checkContact(ctx, s.contacts, identity, current.CustomerID, patch.ContactID.Ptr()); err != nil {
				return domain.EntityRef{}, err
			}
		}
		today := domain.DateOf(s.now())
		d, err := s.repo.Update(ctx, identity, id, func(d *domain.Deal) error {
			return patch.Apply(d, today)
		})
		if err != nil {
			return domain.EntityRef{}, err
		}
		s.changed(ctx, d.CustomerID)
		return domain.EntityRef{ID: d.ID}, nil
	})
}

func (s *DealService) Delete(ctx context.Context, id string) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Delete", "deal", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		if err := requireID(id, "deal"); err != nil {
			return domain.EntityRef{}, err
		}
		var customerID string
		err := s.repo.Delete(ctx, identity, id, func(d *domain.Deal) error {
			customerID = d.CustomerID
			return nil
		})
		if err != nil {
			return domain.EntityRef{}, err
		}
		s.changed(ctx, customerID)
		return domain.EntityRef{ID: id}, nil
	})
}

func (s *DealService) GetByID(ctx context.Context, id string) domain.Result[*domain.Deal] {
	return run(ctx, &s.base, "GetByID", "deal", func(ctx context.Context, identity *domain.Identity) (*domain.Deal, error) {
		if err := requireID(id, "deal"); err != nil {
			return nil, err
		}
		return s.repo.GetByID(ctx, identity, id)
	})
}

func (s *DealService) ListForCustomer(ctx context.Context, customerID string) domain.Result[[]*domain.Deal] {
	return run(ctx, &s.base, "ListForCustomer", "deal", func(ctx context.Context, identity *domain.Identity) ([]*domain.Deal, error) {
		if err := requireID(customerID, "customer"); err != nil {
			return nil, err
		}
		return s.repo.ListForCustomer(ctx, identity, customerID, ListLimit)
	})
}

// ListByStage feeds the pipeline board
func (s *DealService) ListByStage(ctx context.Context, stage domain.DealStage) domain.Result[[]*domain.Deal] {
	return run(ctx, &s.base, "ListByStage", "deal", func(ctx context.Context, identity *domain.Identity) ([]*domain.Deal, error) {
		if !stage.Valid() {
			return nil, domain.NewValidationError("stage", "invalid stage")
		}
		return s.repo.ListByStage(ctx, identity, stage, ListLimit)
	})
}
