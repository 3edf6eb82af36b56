package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"foundling/internal/auth"
	"foundling/internal/service"
	"foundling/internal/store"
)

const sessionCookie = "session"

// IndexPage handles GET /. It shows the combined login/register forms, with
// the logged-in navigation when a session exists.
func (s *Server) IndexPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "index.html", &PageData{
		Title: "Lost & Found",
		User:  sessionClaims(r, s.AuthSecret, s.DB),
		Flash: popFlash(w, r),
	})
}

// IndexSubmit handles POST /. The form's action field selects login or
// register; every outcome becomes a flash notice and a redirect.
func (s *Server) IndexSubmit(w http.ResponseWriter, r *http.Request) {
	switch r.FormValue("action") {
	case "login":
		s.login(w, r)
	case "register":
		s.register(w, r)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		setFlash(w, "error", "Username and password required.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	user, err := service.Login(r.Context(), s.DB, username, password)
	if err != nil {
		slog.Warn("login failed", "username", username, "remote", r.RemoteAddr)
		setFlash(w, "error", "Invalid username or password.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token, err := auth.GenerateToken(s.AuthSecret, user.ID, user.Username)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		setFlash(w, "error", "Login failed, please try again.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Overwrites any prior session cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.SessionExpiry.Seconds()),
	})

	slog.Info("user logged in", "user", user.Username)
	setFlash(w, "success", fmt.Sprintf("Welcome, %s!", user.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := service.Register(r.Context(), s.DB, username, email, password)
	switch {
	case err == nil:
		slog.Info("user registered", "user", user.Username)
		setFlash(w, "success", "Registration successful! Please login.")
	default:
		// Validation and duplicate-username failures both surface as a
		// notice on the login page; nothing is persisted.
		setFlash(w, "error", err.Error())
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout. The session's JTI is revoked server-side and
// the cookie cleared; it is safe to call with no active session.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if claims := sessionClaims(r, s.AuthSecret, s.DB); claims != nil && claims.ID != "" {
		if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
			slog.Error("failed to revoke token", "error", err)
		}
		slog.Info("user logged out", "user", claims.Username)
	}

	clearSessionCookie(w)
	setFlash(w, "success", "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// clearSessionCookie clears the session cookie with consistent attributes.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
