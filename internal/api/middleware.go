package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/erazemk/milasset/internal/auth"
	"github.com/erazemk/milasset/internal/metrics"
	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/session"
)

// AuthMiddleware restores the session from the bearer token and stores it
// in the request context. Revoked tokens and departed users get a 401.
func AuthMiddleware(secret string, db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				jsonError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}

			claims, err := auth.ValidateToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				jsonError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			sess, err := session.Restore(r.Context(), db, claims)
			if err != nil {
				slog.Error("restoring session", "error", err)
				jsonError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if !sess.IsAuthenticated() {
				jsonError(w, http.StatusUnauthorized, "session ended")
				return
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}

// RequireRoles returns middleware that admits only sessions whose role is
// one of allowed.
func RequireRoles(allowed ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			if !sess.IsAuthenticated() {
				jsonError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if !sess.HasPermission(allowed) {
				user := sess.CurrentUser()
				slog.Warn("access denied", "user", user.Email, "role", user.Role, "path", r.URL.Path)
				jsonError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs and counts HTTP requests.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		metrics.ObserveRequest(r.Method, rec.status)
		slog.Info("request",
			"method", r.Method,
			"uri", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
