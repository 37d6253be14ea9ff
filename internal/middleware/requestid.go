package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/templui/userbase/internal/ctxkeys"
)

const RequestIDHeader = "X-Request-ID"

// RequestID adds a request id to the context and the response headers.
// An incoming X-Request-ID is reused.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := ctxkeys.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
