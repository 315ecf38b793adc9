package web

import (
	"net/http"

	"github.com/crimebase/crimebase/internal/service"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, "Profile Fetched", userFrom(r.Context()))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in service.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	user, err := s.svc.UpdateProfile(r.Context(), userFrom(r.Context()).ID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Profile Updated", user)
}

func (s *Server) handleUpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in service.PasswordInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	user, err := s.svc.UpdateUserPassword(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "User Updated", user)
}
