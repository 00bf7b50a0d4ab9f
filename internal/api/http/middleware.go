package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/security"

	"github.com/gorilla/mux"
)

type contextKey string

const callerKey contextKey = "caller_user_id"

// Authenticate validates the bearer token and stores the caller's user ID
// in the request context. Role checks happen upstream of this service; the
// workflows only re-validate organizational ownership.
func Authenticate(tokens security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, domain.E(domain.KindInvalid, "missing bearer token"))
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				writeError(w, domain.E(domain.KindInvalid, "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func callerID(r *http.Request) int32 {
	id, _ := r.Context().Value(callerKey).(int32)
	return id
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, domain.Ef(domain.KindInvalid, "invalid %s", name)
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
