package web

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crimebase/crimebase/internal/apperr"
)

// listResponse pairs one page of rows with pagination metadata under the
// keys existing clients read.
func listResponse(key string, rows any, meta any) map[string]any {
	return map[string]any{key: rows, "meta": meta}
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.InvalidRequest("Invalid request body")
	}
	return nil
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.InvalidRequest("Id must be a positive number")
	}
	return uint(id), nil
}

// pageParams reads page and limit query parameters, zero when absent. The
// pagination package applies the defaults.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// uintQuery reads an optional numeric query parameter, zero when absent or
// malformed.
func uintQuery(r *http.Request, key string) uint {
	n, err := strconv.ParseUint(r.URL.Query().Get(key), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// importFile opens the uploaded workbook from a multipart import request.
func (s *Server) importFile(r *http.Request) (multipart.File, error) {
	if err := r.ParseMultipartForm(s.cfg.Uploads.MaxFileSize); err != nil {
		return nil, apperr.InvalidRequest("Invalid multipart request")
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, apperr.InvalidRequest("Missing file upload")
	}
	return file, nil
}

// formFile returns the named upload, or nil when the field is absent.
func formFile(r *http.Request, name string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[name]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// currentUserID returns the authenticated account id, zero when the request
// is unauthenticated.
func currentUserID(r *http.Request) uint {
	if user := userFrom(r.Context()); user != nil {
		return user.ID
	}
	return 0
}
