package web

import (
	"net/http"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/repository"
	"github.com/crimebase/crimebase/internal/service"
)

// linkRequest is the create/update body. The crime side travels in the body
// on create; updates keep the stored crime.
type linkRequest struct {
	service.LinkInput
	CrimeID uint `json:"crimeId"`
}

func linkFilter(r *http.Request) repository.LinkFilter {
	return repository.LinkFilter{
		CrimeID:    uintQuery(r, "crimeId"),
		CriminalID: uintQuery(r, "criminalId"),
	}
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	links, meta, err := s.svc.ListLinks(r.Context(), page, limit, r.URL.Query().Get("search"), linkFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Crimes By Criminals Fetched", listResponse("crimesByCriminals", links, meta))
}

func (s *Server) handleGetLink(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	link, err := s.svc.GetLink(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Crime By Criminal Fetched", link)
}

func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.CrimeID == 0 {
		respondError(w, r, apperr.InvalidRequest("Crime Id must be a number"))
		return
	}
	link, err := s.svc.CreateLink(r.Context(), req.CrimeID, req.LinkInput)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Crime By Criminal Created", link)
}

func (s *Server) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req linkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	link, err := s.svc.UpdateLink(r.Context(), id, req.LinkInput)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Crime By Criminal Updated", link)
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	link, err := s.svc.DeleteLink(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Crime By Criminal Removed", link)
}

func (s *Server) handleExportLinks(w http.ResponseWriter, r *http.Request) {
	buf, err := s.svc.ExportLinks(r.Context(), r.URL.Query().Get("search"), linkFilter(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, buf, "crimes_by_criminals.xlsx", xlsxContentType)
}

func (s *Server) handleImportLinks(w http.ResponseWriter, r *http.Request) {
	crimeID := uintQuery(r, "crimeId")
	if crimeID == 0 {
		respondError(w, r, apperr.InvalidRequest("Crime Id must be a number"))
		return
	}
	file, err := s.importFile(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer file.Close()
	result, err := s.svc.ImportLinks(r.Context(), file, crimeID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Crimes By Criminals Imported", result)
}
