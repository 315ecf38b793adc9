package web

import (
	"net/http"

	"github.com/crimebase/crimebase/internal/service"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	users, meta, err := s.svc.ListUsers(r.Context(), page, limit, r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Users Fetched", listResponse("users", users, meta))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	user, err := s.svc.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "User Fetched", user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in service.UserInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	user, err := s.svc.CreateUser(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "User Created", user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in service.UserInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	user, err := s.svc.UpdateUser(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "User Updated", user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	user, err := s.svc.DeleteUser(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "User Removed", user)
}

func (s *Server) handleExportUsers(w http.ResponseWriter, r *http.Request) {
	buf, err := s.svc.ExportUsers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, buf, "users.xlsx", xlsxContentType)
}

func (s *Server) handleImportUsers(w http.ResponseWriter, r *http.Request) {
	file, err := s.importFile(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer file.Close()
	result, err := s.svc.ImportUsers(r.Context(), file)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Users Imported", result)
}
