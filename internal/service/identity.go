package service

import (
	"context"

	"github.com/relasjon/crm/internal/domain"
)

// ContextIdentityProvider reads the identity the auth middleware attached to
// the request context.
type ContextIdentityProvider struct{}

func (ContextIdentityProvider) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	identity, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return nil, domain.NewUnauthorizedError()
	}
	return identity, nil
}
