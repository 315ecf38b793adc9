package web

import (
	"net/http"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/service"
)

func (s *Server) handleListJails(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	jails, meta, err := s.svc.ListJails(r.Context(), page, limit, r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Jails Fetched", listResponse("jails", jails, meta))
}

func (s *Server) handleGetJail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	jail, err := s.svc.GetJail(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Jail Fetched", jail)
}

func (s *Server) handleCreateJail(w http.ResponseWriter, r *http.Request) {
	var in service.JailInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	jail, err := s.svc.CreateJail(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Jail Created", jail)
}

func (s *Server) handleUpdateJail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var in service.JailInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	jail, err := s.svc.UpdateJail(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Jail Updated", jail)
}

func (s *Server) handleDeleteJail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	jail, err := s.svc.DeleteJail(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Jail Removed", jail)
}

func (s *Server) handleExportJails(w http.ResponseWriter, r *http.Request) {
	buf, err := s.svc.ExportJails(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, buf, "jails.xlsx", xlsxContentType)
}

func (s *Server) handleImportJails(w http.ResponseWriter, r *http.Request) {
	file, err := s.importFile(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer file.Close()
	result, err := s.svc.ImportJails(r.Context(), file)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Jails Imported", result)
}

// visitorRequest is the create body; the jail travels alongside the visit
// fields.
type visitorRequest struct {
	service.VisitorInput
	JailID uint `json:"jailId"`
}

func (s *Server) handleListVisitors(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	visitors, meta, err := s.svc.ListVisitors(r.Context(), page, limit, r.URL.Query().Get("search"), uintQuery(r, "jailId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Visitors Fetched", listResponse("visitors", visitors, meta))
}

func (s *Server) handleGetVisitor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	visitor, err := s.svc.GetVisitor(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Visitor Fetched", visitor)
}

func (s *Server) handleCreateVisitor(w http.ResponseWriter, r *http.Request) {
	var req visitorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.JailID == 0 {
		respondError(w, r, apperr.InvalidRequest("Jail Id must be a number"))
		return
	}
	visitor, err := s.svc.CreateVisitor(r.Context(), req.JailID, req.VisitorInput)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Visitor Created", visitor)
}

func (s *Server) handleUpdateVisitor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req visitorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	visitor, err := s.svc.UpdateVisitor(r.Context(), id, req.VisitorInput)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Visitor Updated", visitor)
}

func (s *Server) handleDeleteVisitor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	visitor, err := s.svc.DeleteVisitor(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Visitor Removed", visitor)
}

func (s *Server) handleExportVisitors(w http.ResponseWriter, r *http.Request) {
	buf, err := s.svc.ExportVisitors(r.Context(), r.URL.Query().Get("search"), uintQuery(r, "jailId"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, buf, "visitors.xlsx", xlsxContentType)
}

func (s *Server) handleImportVisitors(w http.ResponseWriter, r *http.Request) {
	jailID := uintQuery(r, "jailId")
	if jailID == 0 {
		respondError(w, r, apperr.InvalidRequest("Jail Id must be a number"))
		return
	}
	file, err := s.importFile(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer file.Close()
	result, err := s.svc.ImportVisitors(r.Context(), file, jailID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Visitors Imported", result)
}
