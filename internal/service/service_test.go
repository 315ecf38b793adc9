package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/crimebase/crimebase/internal/apperr"
	"github.com/crimebase/crimebase/internal/auth"
	"github.com/crimebase/crimebase/internal/config"
	"github.com/crimebase/crimebase/internal/database"
	"github.com/crimebase/crimebase/internal/mailer"
	"github.com/crimebase/crimebase/internal/models"
	"github.com/crimebase/crimebase/internal/repository"
	"github.com/crimebase/crimebase/internal/storage"
)

// newTestService wires a Service over an in-memory database, throwaway
// upload directories and outbound mail disabled.
func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// every pool connection to :memory: is a separate database, so
	// concurrent tests must share the one that was migrated
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	photos, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("photo store: %v", err)
	}

	cfg := &config.Config{}
	cfg.Auth.AppName = "crimebase"
	cfg.Server.MainURL = "http://localhost:8080"
	cfg.Uploads.FailedDir = t.TempDir()

	tokens := auth.NewManager("test-secret", cfg.Auth.AppName, time.Hour)
	mail := mailer.New(&cfg.Mail)
	return New(repository.New(db), photos, tokens, mail, cfg)
}

func fieldError(t *testing.T, err error, field string) string {
	t.Helper()
	ve, ok := apperr.AsValidation(err)
	if !ok {
		t.Fatalf("error = %v (%T), want validation error", err, err)
	}
	msg, ok := ve.Fields[field]
	if !ok {
		t.Fatalf("no error for field %q, got %v", field, ve.Fields)
	}
	return msg
}

func fieldErrorOK(err error, field string) (string, bool) {
	ve, ok := apperr.AsValidation(err)
	if !ok {
		return "", false
	}
	msg, ok := ve.Fields[field]
	return msg, ok
}

func mustCreateUser(t *testing.T, s *Service, email string) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), UserInput{
		Name:            "Admin",
		Email:           email,
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return user
}

func mustCreateCriminal(t *testing.T, s *Service, name string) *models.Criminal {
	t.Helper()
	criminal, err := s.CreateCriminal(context.Background(), CriminalInput{
		Name: name,
		Sex:  models.SexMale,
	}, nil, nil, 0)
	if err != nil {
		t.Fatalf("CreateCriminal() error = %v", err)
	}
	return criminal
}

func mustCreateCrime(t *testing.T, s *Service, typeOfCrime string) *models.Crime {
	t.Helper()
	crime, err := s.CreateCrime(context.Background(), CrimeInput{
		TypeOfCrime:  typeOfCrime,
		SectionOfLaw: "IPC 379",
	}, 0)
	if err != nil {
		t.Fatalf("CreateCrime() error = %v", err)
	}
	return crime
}

func TestCreateUser_Defaults(t *testing.T) {
	s := newTestService(t)
	user := mustCreateUser(t, s, "admin@example.com")

	if user.Role != models.RoleUser {
		t.Errorf("Role = %q, want default %q", user.Role, models.RoleUser)
	}
	if user.Status != models.StatusActive {
		t.Errorf("Status = %q, want default %q", user.Status, models.StatusActive)
	}
	if user.Password == "secret" {
		t.Error("password stored in plaintext")
	}
}

func TestCreateUser_Validation(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreateUser(context.Background(), UserInput{
		Email:           "not-an-email",
		Password:        "secret",
		ConfirmPassword: "different",
	})
	if err == nil {
		t.Fatal("CreateUser accepted an invalid input")
	}
	ve, ok := apperr.AsValidation(err)
	if !ok {
		t.Fatalf("error = %T, want validation error", err)
	}
	for _, field := range []string{"name", "email", "confirm_password"} {
		if _, present := ve.Fields[field]; !present {
			t.Errorf("missing field error for %q: %v", field, ve.Fields)
		}
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestService(t)
	mustCreateUser(t, s, "admin@example.com")

	_, err := s.CreateUser(context.Background(), UserInput{
		Name:            "Other",
		Email:           "admin@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	if got := fieldError(t, err, "email"); got != "Email is already taken" {
		t.Errorf("email error = %q", got)
	}
}

func TestCreateUser_ConcurrentDuplicateEmail(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	// two racing submissions of the same email: whichever slips past the
	// uniqueness read still hits the unique index on insert
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := s.CreateUser(ctx, UserInput{
				Name:            "Asha",
				Email:           "asha@example.com",
				Password:        "secret",
				ConfirmPassword: "secret",
			})
			errs <- err
		}()
	}
	failures := 0
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Fatalf("failures = %d, want exactly one of two submissions rejected", failures)
	}

	total, err := s.repos.Users.Count(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if total != 1 {
		t.Errorf("stored accounts = %d, want 1", total)
	}
}

func TestUpdateUser_EmptyPasswordKeepsHash(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, s, "admin@example.com")
	oldHash := user.Password

	updated, err := s.UpdateUser(ctx, user.ID, UserInput{
		Name:  "Renamed",
		Email: "admin@example.com",
	})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("Name = %q", updated.Name)
	}
	if updated.Password != oldHash {
		t.Error("empty password input replaced the stored hash")
	}
}

func TestLoginLogout(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, s, "admin@example.com")

	res, err := s.Login(ctx, LoginInput{Email: "admin@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token == "" {
		t.Fatal("Login returned an empty token")
	}
	if res.User.ID != user.ID {
		t.Errorf("User.ID = %d, want %d", res.User.ID, user.ID)
	}

	// the session is backed by a token row
	row, err := s.repos.Tokens.Get(ctx, res.Token, user.ID)
	if err != nil {
		t.Fatalf("Tokens.Get() error = %v", err)
	}
	if row == nil {
		t.Fatal("login did not record a token row")
	}

	if err := s.Logout(ctx, res.Token, user.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	row, err = s.repos.Tokens.Get(ctx, res.Token, user.ID)
	if err != nil {
		t.Fatalf("Tokens.Get() error = %v", err)
	}
	if row != nil {
		t.Error("token row survived logout")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestService(t)
	mustCreateUser(t, s, "admin@example.com")

	_, err := s.Login(context.Background(), LoginInput{Email: "admin@example.com", Password: "wrong"})
	var ue *apperr.UnauthorizedError
	if err == nil {
		t.Fatal("Login accepted a wrong password")
	}
	if !errors.As(err, &ue) {
		t.Errorf("error = %T, want unauthorized", err)
	}
}

func TestLogin_BlockedAccount(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, s, "admin@example.com")

	if _, err := s.UpdateUser(ctx, user.ID, UserInput{
		Name: user.Name, Email: user.Email, Status: models.StatusBlocked,
	}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	_, err := s.Login(ctx, LoginInput{Email: "admin@example.com", Password: "secret"})
	var ue *apperr.UnauthorizedError
	if err == nil || !errors.As(err, &ue) {
		t.Fatalf("blocked login error = %v, want unauthorized", err)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	user := mustCreateUser(t, s, "admin@example.com")

	// hold an active session that the reset must revoke
	session, err := s.Login(ctx, LoginInput{Email: "admin@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := s.ForgotPassword(ctx, "admin@example.com"); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	stored, err := s.repos.Users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.Key == nil || *stored.Key == "" {
		t.Fatal("ForgotPassword did not store a reset key")
	}

	err = s.ResetPassword(ctx, *stored.Key, ResetPasswordInput{
		Password: "newpass", ConfirmPassword: "newpass",
	})
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	// old session revoked, old password dead, new password live
	row, err := s.repos.Tokens.Get(ctx, session.Token, user.ID)
	if err != nil {
		t.Fatalf("Tokens.Get() error = %v", err)
	}
	if row != nil {
		t.Error("session survived password reset")
	}
	if _, err := s.Login(ctx, LoginInput{Email: "admin@example.com", Password: "secret"}); err == nil {
		t.Error("old password still accepted")
	}
	if _, err := s.Login(ctx, LoginInput{Email: "admin@example.com", Password: "newpass"}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}

	// the key is single-use
	if err := s.ResetPassword(ctx, *stored.Key, ResetPasswordInput{
		Password: "another", ConfirmPassword: "another",
	}); err == nil {
		t.Error("reset key was accepted twice")
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	s := newTestService(t)
	err := s.ForgotPassword(context.Background(), "nobody@example.com")
	if got := fieldError(t, err, "email"); got != "Email doesn't exist" {
		t.Errorf("email error = %q", got)
	}
}

func TestCreateInstallation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	ins, err := s.CreateInstallation(ctx, InstallationInput{IPv4: "10.0.0.5"})
	if err != nil {
		t.Fatalf("CreateInstallation() error = %v", err)
	}
	if ins.IPv4 != "10.0.0.5" {
		t.Errorf("IPv4 = %q", ins.IPv4)
	}

	if _, err := s.CreateInstallation(ctx, InstallationInput{IPv4: "10.0.0.5"}); err == nil {
		t.Error("duplicate IPv4 accepted")
	}
	if _, err := s.CreateInstallation(ctx, InstallationInput{IPv4: "not-an-ip"}); err == nil {
		t.Error("malformed IPv4 accepted")
	}
	if _, err := s.CreateInstallation(ctx, InstallationInput{IPv4: "2001:db8::1"}); err == nil {
		t.Error("IPv6 address accepted")
	}
}

func TestDashboard(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	mustCreateCriminal(t, s, "Rajan")
	mustCreateCriminal(t, s, "Leela")
	mustCreateCrime(t, s, "Theft")

	counts, err := s.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if counts.Criminals != 2 {
		t.Errorf("Criminals = %d, want 2", counts.Criminals)
	}
	if counts.Crimes != 1 {
		t.Errorf("Crimes = %d, want 1", counts.Crimes)
	}
	if counts.Courts != 0 || counts.Jails != 0 {
		t.Errorf("Courts/Jails = %d/%d, want 0/0", counts.Courts, counts.Jails)
	}
}
