package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crimebase/crimebase/internal/service"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	result, err := s.svc.Login(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.authCookieName(),
		Value:    result.Token,
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.Auth.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respond(w, http.StatusOK, "Login Successful", result)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if err := s.svc.Logout(r.Context(), tokenFrom(r.Context()), user.ID); err != nil {
		respondError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.authCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respond(w, http.StatusOK, "Logout Successful", nil)
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.svc.ForgotPassword(r.Context(), in.Email); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Password reset mail sent", nil)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var in service.ResetPasswordInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.svc.ResetPassword(r.Context(), chi.URLParam(r, "key"), in); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Password Reset Successful", nil)
}
