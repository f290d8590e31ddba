package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RajSapale04/Meditrack/internal/auth"
	"github.com/RajSapale04/Meditrack/internal/store"
)

// RequireAuth verifies the session cookie and attaches the resolved user to
// the request context. Each failure mode gets its own 401 message so the
// client can distinguish a missing cookie from a stale one.
func RequireAuth(tokens *auth.Tokens, users *store.UserStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w, "Access denied. No token provided.")
				return
			}

			userID, err := tokens.Verify(cookie.Value)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					unauthorized(w, "Token expired.")
					return
				}
				unauthorized(w, "Invalid token.")
				return
			}

			user, err := users.GetByID(userID)
			if err != nil {
				logger.Error("resolve session user", "error", err)
				writeMessage(w, http.StatusInternalServerError, "Server error.")
				return
			}
			if user == nil {
				// Token outlived the account.
				unauthorized(w, "Invalid token.")
				return
			}

			ctx := auth.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeMessage(w, http.StatusUnauthorized, msg)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
