package service

import (
	"context"

	"github.com/relasjon/crm/internal/domain"
)

type CommunicationService struct {
	base
	repo     domain.CommunicationRepository
	contacts domain.ContactRepository
}

func NewCommunicationService(repo domain.CommunicationRepository, contacts domain.ContactRepository, deps Deps) *CommunicationService {
	return &CommunicationService{base: newBase("CommunicationService", deps), repo: repo, contacts: contacts}
}

func (s *CommunicationService) changed(ctx context.Context, customerID string) {
	s.invalidate(ctx,
		domain.CustomerCommunicationsPath(customerID), domain.CustomerPath(customerID),
		domain.PathCommunications, domain.PathCustomers, domain.PathDashboard,
	)
}

// Create logs an interaction. The caller is always recorded as the logger.
func (s *CommunicationService) Create(ctx context.Context, req *domain.CreateCommunicationRequest) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Create", "communication", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		l, err := req.Validate(identity.ID, s.now())
		if err != nil {
			return domain.EntityRef{}, err
		}
		if err := checkContact(ctx, s.contacts, identity, l.CustomerID, l.ContactID); err != nil {
			return domain.EntityRef{}, err
		}
		if err := s.repo.Create(ctx, identity, l); err != nil {
			return domain.EntityRef{}, err
		}
		s.changed(ctx, l.CustomerID)
		return domain.EntityRef{ID: l.ID}, nil
	})
}

func (s *CommunicationService) Update(ctx context.Context, id string, patch *domain.CommunicationPatch) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Update", "communication", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		if err := requireID(id, "communication"); err != nil {
			return domain.EntityRef{}, err
		}
		now := s.now()
		if err := patch.Validate(now); err != nil {
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
		l, err := s.repo.Update(ctx, identity, id, func(l *domain.CommunicationLog) error {
			return patch.Apply(l, now)
		})
		if err != nil {
			return domain.EntityRef{}, err
		}
		s.changed(ctx, l.CustomerID)
		return domain.EntityRef{ID: l.ID}, nil
	})
}

func (s *CommunicationService) Delete(ctx context.Context, id string) domain.Result[domain.EntityRef] {
	return run(ctx, &s.base, "Delete", "communication", func(ctx context.Context, identity *domain.Identity) (domain.EntityRef, error) {
		if err := requireID(id, "communication"); err != nil {
			return domain.EntityRef{}, err
		}
		var customerID string
		err := s.repo.Delete(ctx, identity, id, func(l *domain.CommunicationLog) error {
			customerID = l.CustomerID
			return nil
		})
		if err != nil {
			return domain.EntityRef{}, err
		}
		s.changed(ctx, customerID)
		return domain.EntityRef{ID: id}, nil
	})
}

func (s *CommunicationService) GetByID(ctx context.Context, id string) domain.Result[*domain.CommunicationLog] {
	return run(ctx, &s.base, "GetByID", "communication", func(ctx context.Context, identity *domain.Identity) (*domain.CommunicationLog, error) {
		if err := requireID(id, "communication"); err != nil {
			return nil, err
		}
		return s.repo.GetByID(ctx, identity, id)
	})
}

func (s *CommunicationService) ListForCustomer(ctx context.Context, customerID string) domain.Result[[]*domain.CommunicationLog] {
	return run(ctx, &s.base, "ListForCustomer", "communication", func(ctx context.Context, identity *domain.Identity) ([]*domain.CommunicationLog, error) {
		if err := requireID(customerID, "customer"); err != nil {
			return nil, err
		}
		return s.repo.ListForCustomer(ctx, identity, customerID, ListLimit)
	})
}

func (s *CommunicationService) ListRecent(ctx context.Context, limit int) domain.Result[[]*domain.RecentCommunication] {
	return run(ctx, &s.base, "ListRecent", "communication", func(ctx context.Context, identity *domain.Identity) ([]*domain.RecentCommunication, error) {
		return s.repo.ListRecent(ctx, identity, clamp(limit, DefaultRecentLimit, MaxRecentLimit))
	})
}
