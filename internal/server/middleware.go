package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

type contextKeyRequestID struct{}

// RequestID returns the request ID stored by the request ID middleware.
func RequestID(ctx context.Context) string {
	id, ok := ctx.Value(contextKeyRequestID{}).(string)
	if !ok {
		return ""
	}
	return id
}

// requestID keeps a caller's UUID request ID or assigns a new one, and echoes
// it on the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyRequestID{}, id)))
	})
}

func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			logger.DebugContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", RequestID(r.Context()),
			)
		})
	}
}
