package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestFieldErrors_AddKeepsFirst(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("name", "Name is required")
	fe.Add("name", "second message")

	if fe["name"] != "Name is required" {
		t.Errorf("Add overwrote first message: %q", fe["name"])
	}
}

func TestFieldErrors_Merge(t *testing.T) {
	fe := FieldErrors{"name": "Name is required"}
	fe.Merge(FieldErrors{"name": "other", "email": "Email must be a valid email"})

	if fe["name"] != "Name is required" {
		t.Errorf("Merge overwrote existing field: %q", fe["name"])
	}
	if fe["email"] != "Email must be a valid email" {
		t.Errorf("Merge dropped new field: %q", fe["email"])
	}
}

func TestValidation_NilOnEmpty(t *testing.T) {
	if err := Validation(FieldErrors{}); err != nil {
		t.Errorf("Validation(empty) = %v, want nil", err)
	}
	if err := Validation(nil); err != nil {
		t.Errorf("Validation(nil) = %v, want nil", err)
	}
}

func TestValidationError_MessageDeterministic(t *testing.T) {
	err := Validation(FieldErrors{
		"b": "second",
		"a": "first",
	})
	want := "a: first; b: second"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAsValidation(t *testing.T) {
	err := Validation(FieldErrors{"name": "Name is required"})
	wrapped := fmt.Errorf("create criminal: %w", err)

	ve, ok := AsValidation(wrapped)
	if !ok {
		t.Fatal("AsValidation failed on wrapped error")
	}
	if ve.Fields["name"] != "Name is required" {
		t.Errorf("unwrapped fields = %v", ve.Fields)
	}

	if _, ok := AsValidation(errors.New("plain")); ok {
		t.Error("AsValidation matched a plain error")
	}
}

func TestErrorDefaults(t *testing.T) {
	if got := (&NotFoundError{}).Error(); got != "Not Found" {
		t.Errorf("NotFoundError default = %q", got)
	}
	if got := (&UnauthorizedError{}).Error(); got != "Unauthorized" {
		t.Errorf("UnauthorizedError default = %q", got)
	}
	if got := NotFound("Criminal not found").Error(); got != "Criminal not found" {
		t.Errorf("NotFound message = %q", got)
	}
}
