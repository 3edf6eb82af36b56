package web

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"foundling/internal/auth"
	"foundling/internal/store"
)

type webContextKey string

const webClaimsKey webContextKey = "webclaims"

// CookieAuthMiddleware validates the session cookie, checks revocation, and
// adds the claims to the request context. Every owner-scoped page sits behind
// this guard; without a session the user lands back on the login page.
func CookieAuthMiddleware(secret string, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := sessionClaims(r, secret, db)
			if claims == nil {
				clearSessionCookie(w)
				setFlash(w, "error", "You must log in first.")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), webClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionClaims returns the claims for a valid, unrevoked session cookie, or
// nil. Public pages use it to render the navigation for logged-in users.
func sessionClaims(r *http.Request, secret string, db *sql.DB) *auth.Claims {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := auth.ValidateToken(secret, cookie.Value)
	if err != nil {
		return nil
	}

	if claims.ID != "" {
		revoked, err := store.IsTokenRevoked(r.Context(), db, claims.ID)
		if err != nil {
			slog.Error("failed to check token revocation", "error", err)
			return nil
		}
		if revoked {
			return nil
		}
	}

	return claims
}

// GetWebClaims retrieves the session claims from the request context.
func GetWebClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(webClaimsKey).(*auth.Claims)
	return claims
}
