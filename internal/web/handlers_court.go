package web

import (
	"net/http"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/service"
)

func (s *Server) handleListCourts(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	courts, meta, err := s.svc.ListCourts(r.Context(), page, limit, r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Courts Fetched", listResponse("courts", courts, meta))
}

func (s *Server) handleGetCourt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	court, err := s.svc.GetCourt(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Court Fetched", court)
}

func (s *Server) handleCreateCourt(w http.ResponseWriter, r *http.Request) {
	var in service.CourtInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	court, err := s.svc.CreateCourt(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Court Created", court)
}

func (s *Server) handleUpdateCourt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in service.CourtInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	court, err := s.svc.UpdateCourt(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Court Updated", court)
}

func (s *Server) handleDeleteCourt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	court, err := s.svc.DeleteCourt(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Court Removed", court)
}

func (s *Server) handleExportCourts(w http.ResponseWriter, r *http.Request) {
	buf, err := s.svc.ExportCourts(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, buf, "courts.xlsx", xlsxContentType)
}

func (s *Server) handleImportCourts(w http.ResponseWriter, r *http.Request) {
	file, err := s.importFile(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer file.Close()
	result, err := s.svc.ImportCourts(r.Context(), file)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Courts Imported", result)
}

// hearingRequest is the create body; the court travels alongside the
// hearing fields.
type hearingRequest struct {
	service.HearingInput
	CourtID uint `json:"courtId"`
}

func (s *Server) handleListHearings(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	hearings, meta, err := s.svc.ListHearings(r.Context(), page, limit, r.URL.Query().Get("search"), uintQuery(r, "courtId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Hearings Fetched", listResponse("hearings", hearings, meta))
}

func (s *Server) handleGetHearing(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	hearing, err := s.svc.GetHearing(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Hearing Fetched", hearing)
}

func (s *Server) handleCreateHearing(w http.ResponseWriter, r *http.Request) {
	var req hearingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.CourtID == 0 {
		respondError(w, r, apperr.InvalidRequest("Court Id must be a number"))
		return
	}
	hearing, err := s.svc.CreateHearing(r.Context(), req.CourtID, req.HearingInput)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Hearing Created", hearing)
}

func (s *Server) handleUpdateHearing(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req hearingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	hearing, err := s.svc.UpdateHearing(r.Context(), id, req.HearingInput)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Hearing Updated", hearing)
}

func (s *Server) handleDeleteHearing(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	hearing, err := s.svc.DeleteHearing(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Hearing Removed", hearing)
}

func (s *Server) handleExportHearings(w http.ResponseWriter, r *http.Request) {
	buf, err := s.svc.ExportHearings(r.Context(), r.URL.Query().Get("search"), uintQuery(r, "courtId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, buf, "hearings.xlsx", xlsxContentType)
}

func (s *Server) handleImportHearings(w http.ResponseWriter, r *http.Request) {
	courtID := uintQuery(r, "courtId")
	if courtID == 0 {
		respondError(w, r, apperr.InvalidRequest("Court Id must be a number"))
		return
	}
	file, err := s.importFile(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer file.Close()
	result, err := s.svc.ImportHearings(r.Context(), file, courtID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Hearings Imported", result)
}
