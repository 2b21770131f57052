package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relasjon/crm/internal/domain"
)

const testUser = "11111111-1111-1111-1111-111111111111"

var testSecret = []byte("test-jwt-secret-key-for-testing-32bytes")

func identityEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := domain.IdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(identity.ID + "|" + identity.Email))
	})
}

func TestAuthenticate(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, "crm-auth", "authenticated")
	handler := auth.Authenticate(identityEcho(t))

	t.Run("no token passes through anonymously", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/customers.list", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.Sign(&domain.Identity{ID: testUser, Email: "anne@example.com"}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/customers.list", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testUser+"|anne@example.com", w.Body.String())
	})

	t.Run("invalid authorization header format", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthMiddleware([]byte("another-secret-another-secret-32"), "crm-auth", "authenticated")
		token, err := other.Sign(&domain.Identity{ID: testUser}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non uuid subject is unauthorized", func(t *testing.T) {
		token, err := auth.Sign(&domain.Identity{ID: "admin"}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.Sign(&domain.Identity{ID: testUser}, -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestVerify(t *testing.T) {
	auth := NewAuthMiddleware(testSecret, "crm-auth", "authenticated")

	t.Run("wrong audience", func(t *testing.T) {
		other := NewAuthMiddleware(testSecret, "crm-auth", "service_role")
		token, err := other.Sign(&domain.Identity{ID: testUser}, time.Hour)
		require.NoError(t, err)

		_, err = auth.Verify(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewAuthMiddleware(testSecret, "someone-else", "authenticated")
		token, err := other.Sign(&domain.Identity{ID: testUser}, time.Hour)
		require.NoError(t, err)

		_, err = auth.Verify(token)
		assert.Error(t, err)
	})

	t.Run("algorithm other than HS256", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   testUser,
			Issuer:    "crm-auth",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
		require.NoError(t, err)

		_, err = auth.Verify(token)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := auth.Sign(&domain.Identity{}, time.Hour)
		require.NoError(t, err)

		_, err = auth.Verify(token)
		assert.Error(t, err)
	})

	t.Run("subject that is not a user id", func(t *testing.T) {
		for _, sub := range []string{"service-account", "' OR 1=1 --", "11111111111111111111111111111111"} {
			token, err := auth.Sign(&domain.Identity{ID: sub}, time.Hour)
			require.NoError(t, err)

			_, err = auth.Verify(token)
			assert.Error(t, err, sub)
		}
	})

	t.Run("metadata survives", func(t *testing.T) {
		token, err := auth.Sign(&domain.Identity{ID: testUser, Metadata: map[string]interface{}{"full_name": "Anne"}}, time.Hour)
		require.NoError(t, err)

		identity, err := auth.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "Anne", identity.DisplayName())
	})
}
