package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/relasjon/crm/internal/domain"
)

// lastLoginTimeout bounds the background last-login write
const lastLoginTimeout = 5 * time.Second

type ProfileService struct {
	base
	repo domain.ProfileRepository
	wg   sync.WaitGroup
}

func NewProfileService(repo domain.ProfileRepository, deps Deps) *ProfileService {
	return &ProfileService{base: newBase("ProfileService", deps), repo: repo}
}

// EnsureProfile returns the identity's profile, creating it from the identity
// when the storage trigger did not.
func (s *ProfileService) EnsureProfile(ctx context.Context, identity *domain.Identity) domain.Result[*domain.Profile] {
	return run(ctx, &s.base, "EnsureProfile", "profile", func(ctx context.Context, caller *domain.Identity) (*domain.Profile, error) {
		if identity == nil || identity.ID != caller.ID {
			return nil, domain.NewForbiddenError("profile")
		}
		return s.repo.Ensure(ctx, caller, domain.NewProfileFor(caller))
	})
}

// GetCurrentProfile returns the caller's profile and stamps the login time in
// the background. A failed stamp is only logged.
func (s *ProfileService) GetCurrentProfile(ctx context.Context) domain.Result[*domain.Profile] {
	return run(ctx, &s.base, "GetCurrentProfile", "profile", func(ctx context.Context, identity *domain.Identity) (*domain.Profile, error) {
		p, err := s.repo.Ensure(ctx, identity, domain.NewProfileFor(identity))
		if err != nil {
			return nil, err
		}
		s.TouchLastLogin(ctx, identity)
		return p, nil
	})
}

// TouchLastLogin records the login time without blocking the caller
func (s *ProfileService) TouchLastLogin(ctx context.Context, identity *domain.Identity) {
	at := s.now()
	bg := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(bg, lastLoginTimeout)
		defer cancel()
		if err := s.repo.TouchLastLogin(ctx, identity, at); err != nil {
			s.logger.WithField("user_id", identity.ID).Warn(fmt.Sprintf("Failed to update last login: %v", err))
		}
	}()
}

// Wait blocks until background last-login writes have finished
func (s *ProfileService) Wait() {
	s.wg.Wait()
}

func (s *ProfileService) ListProfiles(ctx context.Context) domain.Result[[]*domain.Profile] {
	return run(ctx, &s.base, "ListProfiles", "profile", func(ctx context.Context, identity *domain.Identity) ([]*domain.Profile, error) {
		return s.repo.List(ctx, identity, ProfileListLimit)
	})
}

func (s *ProfileService) UpdateOwnProfile(ctx context.Context, req *domain.UpdateProfileRequest) domain.Result[*domain.Profile] {
	return run(ctx, &s.base, "UpdateOwnProfile", "profile", func(ctx context.Context, identity *domain.Identity) (*domain.Profile, error) {
		p, err := s.repo.Update(ctx, identity, identity.ID, req.Apply)
		if err != nil {
			return nil, err
		}
		s.invalidate(ctx, domain.PathProfiles)
		return p, nil
	})
}

// RegisterIdentity mirrors a new identity and makes sure it has a profile.
// The mirror insert normally creates the profile through a trigger; Ensure
// covers the case where the trigger failed.
func (s *ProfileService) RegisterIdentity(ctx context.Context, req *domain.RegisterIdentityRequest) domain.Result[*domain.Profile] {
	return run(ctx, &s.base, "RegisterIdentity", "profile", func(ctx context.Context, caller *domain.Identity) (*domain.Profile, error) {
		identity, err := req.Validate()
		if err != nil {
			return nil, err
		}
		if identity.ID != caller.ID {
			return nil, domain.NewForbiddenError("profile")
		}
		if err := s.repo.RegisterIdentity(ctx, identity); err != nil {
			s.logger.WithField("user_id", identity.ID).Warn(fmt.Sprintf("Failed to register identity, falling back to profile creation: %v", err))
		}
		p, err := s.repo.Ensure(ctx, identity, domain.NewProfileFor(identity))
		if err != nil {
			return nil, err
		}
		s.invalidate(ctx, domain.PathProfiles)
		return p, nil
	})
}
