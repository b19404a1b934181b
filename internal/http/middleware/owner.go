package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
)

// OwnerHeader carries the id of the account whose pages a request works on
const OwnerHeader = "X-Owner-ID"

type contextKey string

const ownerIDKey contextKey = "owner_id"

// RequireOwner rejects requests without a usable owner id and stores it in
// the request context
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := strings.TrimSpace(r.Header.Get(OwnerHeader))
		if ownerID == "" {
			writeUnauthorized(w, OwnerHeader+" header is required")
			return
		}
		if !govalidator.IsPrintableASCII(ownerID) || len(ownerID) > 255 {
			writeUnauthorized(w, "Invalid "+OwnerHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithOwnerID(r.Context(), ownerID)))
	})
}

// WithOwnerID returns a copy of ctx carrying ownerID
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

// OwnerIDFromContext returns the owner id set by RequireOwner
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerIDKey).(string)
	return ownerID, ok && ownerID != ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
