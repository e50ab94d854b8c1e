package web

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/milasset/internal/auth"
	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/session"
)

const cookieName = "token"

// CookieAuthMiddleware restores the session from the token cookie and adds
// it to the context. Anyone without a live session is sent to /login.
func CookieAuthMiddleware(secret string, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessionFromCookie(r, secret, db)
			if err != nil {
				slog.Error("failed to restore session", "error", err)
			}
			if sess == nil || !sess.IsAuthenticated() {
				clearAuthCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}

// sessionFromCookie returns nil when there is no usable token.
func sessionFromCookie(r *http.Request, secret string, db *sql.DB) (*session.Session, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	claims, err := auth.ValidateToken(secret, cookie.Value)
	if err != nil {
		return nil, nil
	}
	return session.Restore(r.Context(), db, claims)
}

// RequireView sends users whose role may not open the named view to
// /unauthorized.
func RequireView(name string) func(http.Handler) http.Handler {
	v, ok := model.LookupView(name)
	if !ok {
		panic("web: unknown view " + name)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			if !sess.HasPermission(v.Roles) {
				slog.Warn("access denied", "user", sess.CurrentUser().Email, "role", sess.Role(), "path", r.URL.Path)
				http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func setAuthCookie(w http.ResponseWriter, token string, claims *auth.Claims) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		Expires:  claims.ExpiresAt.Time,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// pageData fills the per-request fields every page needs.
func pageData(r *http.Request, title, active string) PageData {
	sess := session.FromContext(r.Context())
	return PageData{
		Title:  title,
		Active: active,
		User:   sess.CurrentUser(),
		Nav:    model.VisibleViews(sess.Role()),
	}
}
