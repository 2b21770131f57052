package domain

import (
	"context"
	"strings"
)

//go:generate mockgen -destination mocks/mock_identity_provider.go -package mocks github.com/relasjon/crm/internal/domain IdentityProvider

// Identity is the authenticated caller as asserted by the external identity provider
type Identity struct {
	ID       string                 `json:"id"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// IdentityProvider resolves the caller of the current request.
// It returns an ErrCodeUnauthorized *AppError when there is no session.
type IdentityProvider interface {
	CurrentIdentity(ctx context.Context) (*Identity, error)
}

type contextKey string

const identityKey contextKey = "identity"

// ContextWithIdentity attaches a verified identity to ctx
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity placed by the auth middleware
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	if !ok || identity == nil || identity.ID == "" {
		return nil, false
	}
	return identity, true
}

// DefaultDisplayName is used when neither metadata nor email yield a name
const DefaultDisplayName = "User"

// DisplayName derives a profile name the same way the storage trigger does:
// registration metadata first, then the email address, then a constant.
func (i *Identity) DisplayName() string {
	for _, key := range []string{"full_name", "name"} {
		if v, ok := i.Metadata[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if strings.TrimSpace(i.Email) != "" {
		return strings.TrimSpace(i.Email)
	}
	return DefaultDisplayName
}
