package middleware

import (
	"net/http"
	"strings"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// rpcName turns "/api/customers.list" into "customers.list"
func rpcName(path string) string {
	return strings.TrimPrefix(path, "/api/")
}

// TracingMiddleware opens an OpenCensus span per RPC call and records the
// response status on it
func TracingMiddleware(next http.Handler) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if span := trace.FromContext(r.Context()); span != nil {
			span.AddAttributes(
				trace.StringAttribute("rpc.method", rpcName(r.URL.Path)),
				trace.StringAttribute("http.user_agent", r.UserAgent()),
			)
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
			}
			w = &statusRecorder{ResponseWriter: w, span: span}
		}
		next.ServeHTTP(w, r)
	})

	return &ochttp.Handler{
		Handler: inner,
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + rpcName(r.URL.Path)
		},
		IsPublicEndpoint: true,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	span       *trace.Span
	statusCode int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.statusCode = code
	s.span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
	if code >= 500 {
		s.span.SetStatus(trace.Status{Code: trace.StatusCodeInternal, Message: http.StatusText(code)})
	}
	s.ResponseWriter.WriteHeader(code)
}
