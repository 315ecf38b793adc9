package service

import (
	"context"

	"github.com/crimebase/crimebase/internal/auth"
	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/validate"
)

// ProfileInput carries the self-service fields of the signed-in account.
// Role and status are not editable here.
type ProfileInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PasswordInput carries an administrative password change for an account.
type PasswordInput struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpdateProfile updates the name and email of the signed-in account, rechecking
// email uniqueness against every other account.
func (s *Service) UpdateProfile(ctx context.Context, id uint, in ProfileInput) (*models.User, error) {
	existing, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	c := validate.New()
	c.Require("name", in.Name, "Name")
	c.Require("email", in.Email, "Email")
	c.Email("email", in.Email)
	c.MinLen("email", in.Email, 3)
	if err := c.Err(); err != nil {
		return nil, err
	}
	if err := s.checkEmailUnique(ctx, in.Email, id); err != nil {
		return nil, err
	}
	existing.Name = in.Name
	existing.Email = in.Email
	if err := s.repos.Users.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return s.repos.Users.GetByID(ctx, id)
}

// UpdateUserPassword replaces an account's password without touching its other
// fields. Any pending reset key is cleared with the old hash.
func (s *Service) UpdateUserPassword(ctx context.Context, id uint, in PasswordInput) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	c := validate.New()
	c.Require("password", in.Password, "Password")
	c.MinLen("password", in.Password, 3)
	if in.ConfirmPassword != in.Password {
		c.Fail("confirm_password", "Passwords don't match")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Users.UpdatePassword(ctx, id, hash); err != nil {
		return nil, err
	}
	return user, nil
}
