// internal/httpapi/identity.go
package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HolderIDHeader carries the authenticated holder id. Authentication itself
// happens upstream (gateway); this service only trusts the id it is handed.
const HolderIDHeader = "X-Holder-ID"

type contextKey int

const holderIDKey contextKey = iota

// Identity extracts the holder id header, when present, into the request
// context. A malformed id is rejected; an absent one is passed through so
// that public endpoints stay reachable.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HolderIDHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(w, http.StatusUnauthorized, "invalid holder id")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), holderIDKey, id)))
	})
}

// HolderID returns the authenticated holder id from the request context.
func HolderID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(holderIDKey).(uuid.UUID)
	return id, ok
}
