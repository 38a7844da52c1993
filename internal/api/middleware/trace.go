// Package middleware contains the HTTP middleware applied by the router:
// trace IDs, authentication, tenant authorization, metrics, and rate
// limiting.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cityinfohq/cityinfo-api/internal/api/shared"
	"github.com/cityinfohq/cityinfo-api/internal/platform/logger"
)

// TraceID attaches a trace ID to each request's context and stores a
// request-scoped logger carrying it, so every log line for the request can
// be correlated.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		log := logger.FromContext(ctx).With(
			slog.String("trace_id", shared.GetTraceID(ctx)))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
