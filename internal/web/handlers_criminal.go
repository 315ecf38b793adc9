package web

import (
	"net/http"
	"strings"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/service"
)

// formStr reads an optional multipart form field, nil when empty.
func formStr(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil
	}
	return &v
}

// criminalForm maps the multipart create/update form onto the input DTO.
// Criminal writes are multipart rather than JSON because they carry photos.
func (s *Server) criminalForm(r *http.Request) (service.CriminalInput, error) {
	if err := r.ParseMultipartForm(s.cfg.Uploads.MaxFileSize); err != nil {
		return service.CriminalInput{}, apperr.InvalidRequest("Invalid multipart request")
	}
	return service.CriminalInput{
		Name:                     strings.TrimSpace(r.FormValue("name")),
		Sex:                      strings.TrimSpace(r.FormValue("sex")),
		Dob:                      strings.TrimSpace(r.FormValue("dob")),
		PermanentAddress:         formStr(r, "permanent_address"),
		PresentAddress:           formStr(r, "present_address"),
		Phone:                    formStr(r, "phone"),
		AadharNo:                 formStr(r, "aadhar_no"),
		FatherName:               formStr(r, "father_name"),
		MotherName:               formStr(r, "mother_name"),
		SpouseName:               formStr(r, "spouse_name"),
		Religion:                 formStr(r, "religion"),
		Caste:                    formStr(r, "caste"),
		FpbSlNo:                  formStr(r, "fpb_sl_no"),
		FpbClassnNo:              formStr(r, "fpb_classn_no"),
		Occupation:               formStr(r, "occupation"),
		EducationalQualification: formStr(r, "educational_qualification"),
		NativePs:                 formStr(r, "native_ps"),
		NativeDistrict:           formStr(r, "native_district"),
		Voice:                    formStr(r, "voice"),
		Build:                    formStr(r, "build"),
		Complexion:               formStr(r, "complexion"),
		Teeth:                    formStr(r, "teeth"),
		Hair:                     formStr(r, "hair"),
		Eyes:                     formStr(r, "eyes"),
		Habits:                   formStr(r, "habbits"),
		BurnMarks:                formStr(r, "burnMarks"),
		Tattoo:                   formStr(r, "tattoo"),
		Mole:                     formStr(r, "mole"),
		Scar:                     formStr(r, "scar"),
		Leucoderma:               formStr(r, "leucoderma"),
		FaceHead:                 formStr(r, "faceHead"),
		OtherPartsBody:           formStr(r, "otherPartsBody"),
		DressUsed:                formStr(r, "dressUsed"),
		Beard:                    formStr(r, "beard"),
		Face:                     formStr(r, "face"),
		Moustache:                formStr(r, "moustache"),
		Nose:                     formStr(r, "nose"),
	}, nil
}

func (s *Server) handleListCriminals(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	criminals, meta, err := s.svc.ListCriminals(r.Context(), page, limit, r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Criminals Fetched", listResponse("criminals", criminals, meta))
}

func (s *Server) handleGetCriminal(w http.ResponseWriter, r *http.Request) {
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
	respond(w, http.StatusOK, "Criminal Fetched", criminal)
}

func (s *Server) handleCreateCriminal(w http.ResponseWriter, r *http.Request) {
	in, err := s.criminalForm(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	criminal, err := s.svc.CreateCriminal(r.Context(), in,
		formFile(r, "photo"), formFile(r, "aadhar_photo"), currentUserID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Criminal Created", criminal)
}

func (s *Server) handleUpdateCriminal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	in, err := s.criminalForm(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	criminal, err := s.svc.UpdateCriminal(r.Context(), id, in,
		formFile(r, "photo"), formFile(r, "aadhar_photo"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Criminal Updated", criminal)
}

func (s *Server) handleDeleteCriminal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	criminal, err := s.svc.DeleteCriminal(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Criminal Removed", criminal)
}

func (s *Server) handleExportCriminals(w http.ResponseWriter, r *http.Request) {
	buf, err := s.svc.ExportCriminals(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondFile(w, buf, "criminals.xlsx", xlsxContentType)
}

func (s *Server) handleImportCriminals(w http.ResponseWriter, r *http.Request) {
	file, err := s.importFile(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer file.Close()
	result, err := s.svc.ImportCriminals(r.Context(), file, currentUserID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Criminals Imported", result)
}
