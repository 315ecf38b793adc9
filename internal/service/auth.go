package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/auth"
	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/validate"
)

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the issued session.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login verifies the credentials, signs a JWT and records it in the token
// table. A JWT without a matching row is rejected by the middleware, so a
// session dies the moment its row is deleted.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	c := validate.New()
	c.Require("email", in.Email, "Email")
	c.Email("email", in.Email)
	c.Require("password", in.Password, "Password")
	if err := c.Err(); err != nil {
		return nil, err
	}

	user, err := s.repos.Users.GetByEmail(ctx, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.Password, in.Password) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if user.Status != models.StatusActive {
		return nil, apperr.Unauthorized("Account is blocked")
	}

	token, err := s.tokens.Sign(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Tokens.Insert(ctx, token, user.ID); err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// Logout deletes the session's token row. The JWT itself may still be
// unexpired but is no longer accepted.
func (s *Service) Logout(ctx context.Context, token string, userID uint) error {
	return s.repos.Tokens.Delete(ctx, token, userID)
}

// ForgotPassword stores a fresh reset key on the account and mails a reset
// link. An unknown email yields a validation error.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	c := validate.New()
	c.Require("email", email, "Email")
	c.Email("email", email)
	if err := c.Err(); err != nil {
		return err
	}

	user, err := s.repos.Users.GetByEmail(ctx, email, 0)
	if err != nil {
		return err
	}
	if user == nil {
		fe := apperr.FieldErrors{}
		fe.Add("email", "Email doesn't exist")
		return apperr.Validation(fe)
	}

	key := uuid.NewString()
	if err := s.repos.Users.SetResetKey(ctx, user.ID, key); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.cfg.Server.MainURL, key)
	body := fmt.Sprintf(`<strong>Hi %s,</strong>
<p>A password reset was requested for your %s account.</p>
<p>Click the link below to choose a new password.</p>
<a href=%q target="_blank">Reset Password</a>`,
		user.Name, s.cfg.Auth.AppName, resetURL)
	if err := s.mail.Send(ctx, user.Email, "Reset your password", body); err != nil {
		slog.ErrorContext(ctx, "reset mail delivery failed",
			slog.String("email", user.Email),
			slog.String("error", err.Error()))
	}
	return nil
}

// ResetPasswordInput carries the reset form.
type ResetPasswordInput struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword consumes a reset key: the password is replaced, the key is
// cleared and every existing session for the account is revoked.
func (s *Service) ResetPassword(ctx context.Context, key string, in ResetPasswordInput) error {
	c := validate.New()
	c.Require("password", in.Password, "Password")
	c.MinLen("password", in.Password, 3)
	if in.ConfirmPassword != in.Password {
		c.Fail("confirm_password", "Passwords don't match")
	}
	if err := c.Err(); err != nil {
		return err
	}

	user, err := s.repos.Users.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("Invalid reset key")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	if err := s.repos.Users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	return s.repos.Tokens.DeleteForUser(ctx, user.ID)
}
