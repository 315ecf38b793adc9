package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/auth"
	"github.com/crimebase/crimebase/internal/excel"
	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/pagination"
	"github.com/crimebase/crimebase/internal/validate"
)

// UserInput carries the writable fields of an operator account. Password is
// required on create; an empty password on update keeps the stored hash.
type UserInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
	Status          string `json:"status"`
}

var userExportCols = []excel.Column{
	{Key: "id", Header: "ID"},
	{Key: "name", Header: "Name"},
	{Key: "email", Header: "Email"},
	{Key: "role", Header: "Role"},
	{Key: "status", Header: "Status"},
	{Key: "createdAt", Header: "Created At"},
}

var userFailedCols = []excel.Column{
	{Key: "name", Header: "Name"},
	{Key: "email", Header: "Email"},
	{Key: "role", Header: "Role"},
	{Key: "password", Header: "Password"},
	{Key: "confirm_password", Header: "Confirm Password"},
	{Key: "error", Header: "Error"},
}

func userShape(in UserInput, requirePassword bool) error {
	c := validate.New()
	c.Require("name", in.Name, "Name")
	c.Require("email", in.Email, "Email")
	c.Email("email", in.Email)
	c.MinLen("email", in.Email, 3)
	if requirePassword || in.Password != "" {
		c.MinLen("password", in.Password, 3)
		if in.ConfirmPassword != in.Password {
			c.Fail("confirm_password", "Passwords don't match")
		}
	}
	c.Enum("role", in.Role, []string{models.RoleUser, models.RoleAdmin}, true)
	c.Enum("status", in.Status, []string{models.StatusActive, models.StatusBlocked}, true)
	return c.Err()
}

func (s *Service) checkEmailUnique(ctx context.Context, email string, excludeID uint) error {
	existing, err := s.repos.Users.GetByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		fe := apperr.FieldErrors{}
		fe.Add("email", "Email is already taken")
		return apperr.Validation(fe)
	}
	return nil
}

func (s *Service) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	if err := userShape(in, true); err != nil {
		return nil, err
	}
	if err := s.checkEmailUnique(ctx, in.Email, 0); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     in.Role,
		Status:   in.Status,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	body := fmt.Sprintf(`<strong>Hi,</strong>
<h3>Welcome to %s</h3>
<p>Your account has been created successfully.</p>
<p><b>Email</b>: %s</p>
<p>Click the link below to login to your account.</p>
<a href=%q target="_blank">Login</a>`,
		s.cfg.Auth.AppName, user.Email, s.cfg.Server.MainURL+"/login")
	if err := s.mail.Send(ctx, user.Email, "Welcome to "+s.cfg.Auth.AppName, body); err != nil {
		slog.ErrorContext(ctx, "welcome mail delivery failed",
			slog.String("email", user.Email),
			slog.String("error", err.Error()))
	}
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	existing, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("User not found")
	}
	if err := userShape(in, false); err != nil {
		return nil, err
	}
	if err := s.checkEmailUnique(ctx, in.Email, id); err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: existing.Password,
		Role:     existing.Role,
		Status:   existing.Status,
		Key:      existing.Key,
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.Status != "" {
		user.Status = in.Status
	}
	if err := s.repos.Users.Update(ctx, id, user); err != nil {
		return nil, err
	}
	return s.repos.Users.GetByID(ctx, id)
}

func (s *Service) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, page, limit int, search string) ([]models.User, pagination.Meta, error) {
	users, err := s.repos.Users.Paginate(ctx, pagination.ParamsFor(page, limit), search)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	total, err := s.repos.Users.Count(ctx, search)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, pagination.MetaFor(total, page, limit), nil
}

// DeleteUser removes the account and revokes every session it holds.
func (s *Service) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Users.Remove(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repos.Tokens.DeleteForUser(ctx, id); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) ExportUsers(ctx context.Context, search string) (*bytes.Buffer, error) {
	users, err := s.repos.Users.GetAll(ctx, search)
	if err != nil {
		return nil, err
	}
	rows := make([]excel.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, excel.Row{
			"id":        u.ID,
			"name":      u.Name,
			"email":     u.Email,
			"role":      u.Role,
			"status":    u.Status,
			"createdAt": u.CreatedAt,
		})
	}
	return excel.Build("Users", userExportCols, rows)
}

// ImportUsers bulk-creates accounts from an uploaded workbook. Passwords are
// hashed per row; failure reports echo the raw cells.
func (s *Service) ImportUsers(ctx context.Context, r io.Reader) (*ImportResult, error) {
	return runImport(ctx, r, s.cfg.Uploads.FailedDir, importSpec[UserInput]{
		failedSheet: "Failed Users Import",
		failedCols:  userFailedCols,
		mapRow: func(row []string) UserInput {
			return UserInput{
				Name:            excel.Cell(row, 0),
				Email:           excel.Cell(row, 1),
				Password:        excel.Cell(row, 2),
				ConfirmPassword: excel.Cell(row, 3),
				Role:            excel.Cell(row, 4),
			}
		},
		validate: func(ctx context.Context, in UserInput) error {
			if err := userShape(in, true); err != nil {
				return err
			}
			return s.checkEmailUnique(ctx, in.Email, 0)
		},
		insert: func(ctx context.Context, in UserInput) error {
			hash, err := auth.HashPassword(in.Password)
			if err != nil {
				return err
			}
			role := in.Role
			if role == "" {
				role = models.RoleUser
			}
			return s.repos.Users.Create(ctx, &models.User{
				Name:     in.Name,
				Email:    in.Email,
				Password: hash,
				Role:     role,
				Status:   models.StatusActive,
			})
		},
		failedRow: func(in UserInput, errMsg string) excel.Row {
			return excel.Row{
				"name":             in.Name,
				"email":            in.Email,
				"role":             in.Role,
				"password":         in.Password,
				"confirm_password": in.ConfirmPassword,
				"error":            errMsg,
			}
		},
	})
}
