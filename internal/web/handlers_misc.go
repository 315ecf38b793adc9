package web

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/pdf"
	"github.com/crimebase/crimebase/internal/service"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := s.svc.Dashboard(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Dashboard Fetched", counts)
}

func (s *Server) handleCreateInstallation(w http.ResponseWriter, r *http.Request) {
	var in service.InstallationInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}
	ins, err := s.svc.CreateInstallation(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Installation Activated", ins)
}

func (s *Server) handleListInstallations(w http.ResponseWriter, r *http.Request) {
	installations, err := s.svc.ListInstallations(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Installations Fetched", installations)
}

func (s *Server) handleDeleteInstallation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.svc.DeleteInstallation(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Installation Deleted", nil)
}

// handleFailedReport streams a generated failure report and deletes it once
// sent; reports are single-download artifacts.
func (s *Server) handleFailedReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	file, err := s.failed.Open(name)
	if err != nil {
		respondError(w, r, apperr.NotFound("Report not found"))
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, fileModTime(file), file)

	file.Close()
	_ = s.failed.Remove(name)
}

// handleImage serves a stored photo by its generated name.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	file, err := s.svc.Photos().Open(name)
	if err != nil {
		respondError(w, r, apperr.NotFound("Image not found"))
		return
	}
	defer file.Close()
	http.ServeContent(w, r, name, fileModTime(file), file)
}

// handleLogo streams the configured application logo.
func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	file, err := os.Open(s.cfg.Uploads.LogoPath)
	if err != nil {
		respondError(w, r, apperr.NotFound("File not found"))
		return
	}
	defer file.Close()
	w.Header().Set("Content-Disposition", `attachment; filename="logo.png"`)
	http.ServeContent(w, r, "logo.png", fileModTime(file), file)
}

func fileModTime(f *os.File) time.Time {
	info, err := f.Stat()
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (s *Server) handleCriminalPdf(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	criminal, err := s.svc.GetCriminal(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	buf, err := pdf.Criminal(criminal)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, buf, "Criminal.pdf", "application/pdf")
}

func (s *Server) handleCrimePdf(w http.ResponseWriter, r *http.Request) {
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
	buf, err := pdf.Crime(crime)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, buf, "Crime.pdf", "application/pdf")
}
