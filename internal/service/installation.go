package service

import (
	"context"
	"net"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/validate"
)

// InstallationInput carries an activation request.
type InstallationInput struct {
	IPv4 string `json:"IPv4"`
}

// CreateInstallation activates an installation for an IPv4 address. An
// address can only be activated once.
func (s *Service) CreateInstallation(ctx context.Context, in InstallationInput) (*models.Installation, error) {
	c := validate.New()
	c.Require("IPv4", in.IPv4, "IPv4")
	if in.IPv4 != "" {
		ip := net.ParseIP(in.IPv4)
		if ip == nil || ip.To4() == nil {
			c.Fail("IPv4", "IPv4 must be a valid IPv4 address")
		}
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	existing, err := s.repos.Installations.GetByIPv4(ctx, in.IPv4)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		fe := apperr.FieldErrors{}
		fe.Add("IPv4", "Installation already activated for this address")
		return nil, apperr.Validation(fe)
	}

	ins := &models.Installation{IPv4: in.IPv4}
	if err := s.repos.Installations.Create(ctx, ins); err != nil {
		return nil, err
	}
	return ins, nil
}

// ListInstallations returns every activated installation.
func (s *Service) ListInstallations(ctx context.Context) ([]models.Installation, error) {
	return s.repos.Installations.GetAll(ctx)
}

// DeleteInstallation deactivates an installation.
func (s *Service) DeleteInstallation(ctx context.Context, id uint) error {
	return s.repos.Installations.Remove(ctx, id)
}
