package web

import (
	"net/http"

	"github.com/crimebase/crimebase/internal/service"
)

func (s *Server) handleListCrimes(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	crimes, meta, err := s.svc.ListCrimes(r.Context(), page, limit, r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Crimes Fetched", listResponse("crimes", crimes, meta))
}

func (s *Server) handleGetCrime(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	crime, err := s.svc.GetCrime(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Crime Fetched", crime)
}

func (s *Server) handleCreateCrime(w http.ResponseWriter, r *http.Request) {
	var in service.CrimeInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	crime, err := s.svc.CreateCrime(r.Context(), in, currentUserID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Crime Created", crime)
}

func (s *Server) handleUpdateCrime(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in service.CrimeInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	crime, err := s.svc.UpdateCrime(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Crime Updated", crime)
}

func (s *Server) handleDeleteCrime(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	crime, err := s.svc.DeleteCrime(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Crime Removed", crime)
}

func (s *Server) handleExportCrimes(w http.ResponseWriter, r *http.Request) {
	buf, err := s.svc.ExportCrimes(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, buf, "crimes.xlsx", xlsxContentType)
}

func (s *Server) handleImportCrimes(w http.ResponseWriter, r *http.Request) {
	file, err := s.importFile(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer file.Close()
	result, err := s.svc.ImportCrimes(r.Context(), file, currentUserID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Crimes Imported", result)
}
