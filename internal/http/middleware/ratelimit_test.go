package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/relasjon/crm/pkg/ratelimiter"
)

func TestRateLimit(t *testing.T) {
	limiter := ratelimiter.New(2, time.Minute)
	defer limiter.Stop()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	handler := RateLimit(limiter, "/api/auth.signup")(next)

	signup := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth.signup", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, signup("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusCreated, signup("10.0.0.1:5001").Code)

	rec := signup("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusCreated, signup("10.0.0.2:5000").Code)

	t.Run("other paths are not limited", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/customers.list", nil)
			req.RemoteAddr = "10.0.0.1:5000"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusCreated, rec.Code)
		}
	})
}

func TestClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:443"
	assert.Equal(t, "192.0.2.7", clientAddr(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientAddr(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "garbage"
	assert.Equal(t, "garbage", clientAddr(req))
}
