// Package session tracks who is using the dashboard.
//
// A Session is either unauthenticated (the zero value) or holds exactly one
// user. Handlers receive it through the request context after the auth
// middleware restores it from a token.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/milasset/internal/auth"
	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/store"
)

// ErrInvalidCredentials is returned for any failed login. It does not say
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Session holds the current user, if any.
type Session struct {
	user   *model.User
	claims *auth.Claims
}

// Authenticate looks up email in the user directory and checks password.
// An empty password never matches. Accounts without a stored hash accept
// any other password.
func Authenticate(ctx context.Context, db *sql.DB, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := store.GetUserByEmail(ctx, db, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if user.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	}
	return user, nil
}

// Login authenticates and, on success, makes the user current. A failed
// login leaves the session unauthenticated.
func (s *Session) Login(ctx context.Context, db *sql.DB, email, password string) (bool, error) {
	s.Logout()

	user, err := Authenticate(ctx, db, email, password)
	if errors.Is(err, ErrInvalidCredentials) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	s.user = user
	return true, nil
}

// Logout clears the current user.
func (s *Session) Logout() {
	s.user = nil
	s.claims = nil
}

// CurrentUser returns the current user, or nil when unauthenticated.
func (s *Session) CurrentUser() *model.User {
	if s == nil {
		return nil
	}
	return s.user
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// Role returns the current user's role, or "" when unauthenticated.
func (s *Session) Role() model.Role {
	if u := s.CurrentUser(); u != nil {
		return u.Role
	}
	return ""
}

// HasPermission reports whether the current user's role is in allowed.
func (s *Session) HasPermission(allowed []model.Role) bool {
	return model.HasPermission(s.Role(), allowed)
}

// Claims returns the token the session was restored from, if any.
func (s *Session) Claims() *auth.Claims {
	if s == nil {
		return nil
	}
	return s.claims
}

// Restore rebuilds a session from validated token claims. Revoked tokens and
// users that have left the directory yield an unauthenticated session.
func Restore(ctx context.Context, db *sql.DB, claims *auth.Claims) (*Session, error) {
	s := &Session{}

	revoked, err := store.IsTokenRevoked(ctx, db, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return s, nil
	}

	user, err := store.GetUser(ctx, db, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return s, nil
	}

	// The directory is authoritative for the role.
	s.user = user
	s.claims = claims
	return s, nil
}

// Issue signs a token for the current user, valid for the configured
// session lifetime.
func (s *Session) Issue(ctx context.Context, db *sql.DB, secret string) (string, *auth.Claims, error) {
	if !s.IsAuthenticated() {
		return "", nil, fmt.Errorf("issuing token: not authenticated")
	}

	ttl, err := store.GetSessionTTL(ctx, db)
	if err != nil {
		return "", nil, err
	}

	token, claims, err := auth.GenerateToken(secret, s.user, ttl)
	if err != nil {
		return "", nil, err
	}
	s.claims = claims
	return token, claims, nil
}

// Revoke logs out and invalidates the token the session came from.
func (s *Session) Revoke(ctx context.Context, db *sql.DB) error {
	claims := s.Claims()
	s.Logout()
	if claims == nil {
		return nil
	}
	return store.RevokeToken(ctx, db, claims.ID, claims.ExpiresAt.Time)
}

type contextKey struct{}

// NewContext returns a context carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx. A context without one
// yields an unauthenticated session.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}
