package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opencensus.io/trace"
)

func TestTracingMiddleware(t *testing.T) {
	var sawSpan bool
	handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawSpan = trace.FromContext(r.Context()) != nil
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest("POST", "/api/customers.create", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.True(t, sawSpan)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRPCName(t *testing.T) {
	assert.Equal(t, "customers.list", rpcName("/api/customers.list"))
	assert.Equal(t, "/healthz", rpcName("/healthz"))
}

func TestStatusRecorder(t *testing.T) {
	_, span := trace.StartSpan(context.Background(), "test-span")
	defer span.End()

	recorder := httptest.NewRecorder()
	w := &statusRecorder{ResponseWriter: recorder, span: span}
	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("missing"))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, w.statusCode)
	assert.Equal(t, "missing", recorder.Body.String())
}
