package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/golang-jwt/jwt/v5"

	"github.com/relasjon/crm/internal/domain"
)

// IdentityClaims are the claims asserted by the identity provider
type IdentityClaims struct {
	Email    string                 `json:"email,omitempty"`
	Metadata map[string]interface{} `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

// AuthConfig verifies HS256 bearer tokens
type AuthConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
}

func NewAuthMiddleware(secret []byte, issuer, audience string) *AuthConfig {
	return &AuthConfig{Secret: secret, Issuer: issuer, Audience: audience}
}

// Authenticate places the verified identity in the request context.
// Requests without a token pass through anonymously and are rejected by
// the services; a token that fails verification is rejected here.
func (ac *AuthConfig) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeUnauthorized(w, "Invalid authorization header format")
			return
		}

		identity, err := ac.Verify(parts[1])
		if err != nil {
			writeUnauthorized(w, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(domain.ContextWithIdentity(r.Context(), identity)))
	})
}

// Verify parses token and returns the identity in its subject
func (ac *AuthConfig) Verify(token string) (*domain.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if ac.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(ac.Issuer))
	}
	if ac.Audience != "" {
		opts = append(opts, jwt.WithAudience(ac.Audience))
	}

	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return ac.Secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	if !govalidator.IsUUID(claims.Subject) {
		return nil, errors.New("token subject is not a user id")
	}
	return &domain.Identity{ID: claims.Subject, Email: claims.Email, Metadata: claims.Metadata}, nil
}

// Sign issues a token for identity. Used by local tooling and tests.
func (ac *AuthConfig) Sign(identity *domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &IdentityClaims{
		Email:    identity.Email,
		Metadata: identity.Metadata,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    ac.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if ac.Audience != "" {
		claims.Audience = jwt.ClaimStrings{ac.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ac.Secret)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"code":"UNAUTHORIZED","error":"` + message + `"}`))
}
