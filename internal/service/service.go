// Package service orchestrates validation, persistence and file handling for
// every entity. Validation is two-phase: pure shape checks first, then
// referential checks against the repositories, and only then persistence.
package service

import (
	"strconv"
	"strings"

	"github.com/crimebase/crimebase/internal/auth"
	"github.com/crimebase/crimebase/internal/config"
	"github.com/crimebase/crimebase/internal/mailer"
	"github.com/crimebase/crimebase/internal/repository"
	"github.com/crimebase/crimebase/internal/storage"
)

// Service exposes all entity operations to the web layer.
type Service struct {
	repos  *repository.Repos
	photos *storage.Store
	tokens *auth.Manager
	mail   *mailer.Mailer
	cfg    *config.Config
}

// New builds the service over its collaborators.
func New(repos *repository.Repos, photos *storage.Store, tokens *auth.Manager, mail *mailer.Mailer, cfg *config.Config) *Service {
	return &Service{repos: repos, photos: photos, tokens: tokens, mail: mail, cfg: cfg}
}

// Repos exposes the repository bundle for the web middleware's token checks.
func (s *Service) Repos() *repository.Repos {
	return s.repos
}

// Photos exposes the photo store for the file-serving routes.
func (s *Service) Photos() *storage.Store {
	return s.photos
}

// ImportResult reports a bulk import: how many rows persisted, how many
// failed, and the generated failed-report filename (nil when every row
// succeeded).
type ImportResult struct {
	SuccessCount int     `json:"successCount"`
	ErrorCount   int     `json:"errorCount"`
	FileName     *string `json:"fileName"`
}

// optStr returns a pointer to the trimmed value, or nil when empty. Empty
// optional cells and form fields become NULL columns rather than "".
func optStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// strVal dereferences an optional string for spreadsheet cells.
func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// parseID parses a numeric foreign-key cell. Anything that does not parse as
// a positive integer yields nil, which downstream required-field validation
// turns into a field error.
func parseID(s string) *uint {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}
