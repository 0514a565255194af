package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// CorrelationIDKey is the context key for the request correlation ID
const CorrelationIDKey contextKey = "correlation_id"

// CorrelationID extracts the X-Correlation-ID header or generates a fresh
// one, echoing it back on the response and storing it in the context.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get("X-Correlation-ID")
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		w.Header().Set("X-Correlation-ID", correlationID)

		ctx := context.WithValue(r.Context(), CorrelationIDKey, correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCorrelationID extracts the correlation ID from a context
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}
