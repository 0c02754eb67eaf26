package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/duoplan/duoplan/internal/auth"
	"github.com/duoplan/duoplan/internal/model"
)

// SessionCookie carries the opaque session token.
const SessionCookie = "duoplan_session"

// RequireAuth resolves the session cookie into an identity on the request
// context. While no password is set the app is open and requests run as
// user1, matching the open-login behavior.
func RequireAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			enabled, err := svc.Enabled()
			if err != nil {
				writeAuthError(w, http.StatusInternalServerError, "auth check failed")
				return
			}
			if !enabled {
				ctx := auth.WithAuth(r.Context(), auth.AuthContext{UserID: model.User1})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token := ""
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				token = cookie.Value
			}
			userID, ok, err := svc.Verify(token)
			if err != nil {
				writeAuthError(w, http.StatusInternalServerError, "auth check failed")
				return
			}
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := auth.WithAuth(r.Context(), auth.AuthContext{UserID: userID, Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// RealIP extracts the client's real IP address, preferring X-Forwarded-For
// and falling back to RemoteAddr.
func RealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First IP in the chain is the original client
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
