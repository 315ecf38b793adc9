package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/models"
)

// authCookieName is the session cookie, namespaced by application name so
// multiple deployments can share a host.
func (s *Server) authCookieName() string {
	return s.cfg.Auth.AppName + "_Auth"
}

// extractToken pulls the session token from the auth cookie, the token query
// parameter or a bearer header, in that order. File downloads opened in a
// new tab rely on the query fallback.
func (s *Server) extractToken(r *http.Request) string {
	if c, err := r.Cookie(s.authCookieName()); err == nil && c.Value != "" {
		return c.Value
	}
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// requireAuth verifies the JWT, loads the account and checks the token still
// exists server side. A deleted token row ends the session immediately even
// though the JWT itself has not expired.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.extractToken(r)
		if token == "" {
			respondError(w, r, apperr.Unauthorized("Authentication required"))
			return
		}

		claims, err := s.auth.Verify(token)
		if err != nil {
			respondError(w, r, apperr.Unauthorized("Invalid or expired session"))
			return
		}

		ctx := r.Context()
		user, err := s.svc.Repos().Users.GetByID(ctx, claims.UserID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if user == nil || user.Status != models.StatusActive {
			respondError(w, r, apperr.Unauthorized("Account is not active"))
			return
		}

		row, err := s.svc.Repos().Tokens.Get(ctx, token, user.ID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if row == nil {
			respondError(w, r, apperr.Unauthorized("Session has been revoked"))
			return
		}

		ctx = context.WithValue(ctx, userCtxKey, user)
		ctx = context.WithValue(ctx, tokenCtxKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
