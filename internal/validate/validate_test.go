package validate

import (
	"testing"
	"time"

	"github.com/crimebase/crimebase/internal/apperr"
)

func TestRequire(t *testing.T) {
	c := New()
	c.Require("name", "Rajan", "Name")
	c.Require("sex", "   ", "Sex")

	errs := c.Errors()
	if _, ok := errs["name"]; ok {
		t.Errorf("name should have passed, got %q", errs["name"])
	}
	if errs["sex"] != "Sex is required" {
		t.Errorf("sex error = %q, want %q", errs["sex"], "Sex is required")
	}
}

func TestEnum(t *testing.T) {
	allowed := []string{"Male", "Female", "Others"}

	c := New()
	c.Enum("sex", "Female", allowed, false)
	if len(c.Errors()) != 0 {
		t.Errorf("valid enum value rejected: %v", c.Errors())
	}

	c = New()
	c.Enum("sex", "female", allowed, false)
	if _, ok := c.Errors()["sex"]; !ok {
		t.Error("enum match should be case sensitive")
	}

	c = New()
	c.Enum("role", "", []string{"user", "admin"}, true)
	if len(c.Errors()) != 0 {
		t.Errorf("empty optional enum should pass, got %v", c.Errors())
	}

	c = New()
	c.Enum("role", "", []string{"user", "admin"}, false)
	if _, ok := c.Errors()["role"]; !ok {
		t.Error("empty required enum should fail")
	}
}

func TestEmail(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"admin@example.com", true},
		{"", true},
		{"not-an-email", false},
		{"a@b", true},
		{"@example.com", false},
	}
	for _, tc := range cases {
		c := New()
		c.Email("email", tc.value)
		if got := len(c.Errors()) == 0; got != tc.ok {
			t.Errorf("Email(%q) pass = %v, want %v", tc.value, got, tc.ok)
		}
	}
}

func TestDigits(t *testing.T) {
	phone := "9845012345"
	c := New()
	c.Digits("phone", &phone)
	if len(c.Errors()) != 0 {
		t.Errorf("digit value rejected: %v", c.Errors())
	}

	bad := "98-450"
	c = New()
	c.Digits("phone", &bad)
	if _, ok := c.Errors()["phone"]; !ok {
		t.Error("non-digit value should fail")
	}

	c = New()
	c.Digits("phone", nil)
	if len(c.Errors()) != 0 {
		t.Errorf("nil value should pass, got %v", c.Errors())
	}
}

func TestMaxLen(t *testing.T) {
	long := make([]byte, 257)
	for i := range long {
		long[i] = 'a'
	}
	v := string(long)

	c := New()
	c.MaxLen("caste", &v, 256)
	if _, ok := c.Errors()["caste"]; !ok {
		t.Error("overlong value should fail")
	}

	short := "ok"
	c = New()
	c.MaxLen("caste", &short, 256)
	if len(c.Errors()) != 0 {
		t.Errorf("short value rejected: %v", c.Errors())
	}
}

func TestMinLen(t *testing.T) {
	c := New()
	c.MinLen("password", "ab", 3)
	if _, ok := c.Errors()["password"]; !ok {
		t.Error("short password should fail")
	}

	c = New()
	c.MinLen("password", "abc", 3)
	if len(c.Errors()) != 0 {
		t.Errorf("3-char password rejected: %v", c.Errors())
	}
}

func TestDate(t *testing.T) {
	c := New()
	got := c.Date("dob", "1990-05-17")
	if got == nil {
		t.Fatal("ISO date returned nil")
	}
	if got.Year() != 1990 || got.Month() != time.May || got.Day() != 17 {
		t.Errorf("parsed %v, want 1990-05-17", got)
	}

	if c.Date("dob", "") != nil {
		t.Error("empty date should return nil without error")
	}
	if len(c.Errors()) != 0 {
		t.Errorf("unexpected errors: %v", c.Errors())
	}

	c = New()
	if c.Date("dob", "yesterday") != nil {
		t.Error("unparsable date should return nil")
	}
	if _, ok := c.Errors()["dob"]; !ok {
		t.Error("unparsable date should record a field error")
	}
}

func TestParseDate_Layouts(t *testing.T) {
	for _, value := range []string{
		"2023-01-15",
		"2023-01-15 10:30:00",
		"15/01/2023",
		"2023-01-15T10:30:00Z",
	} {
		if _, err := ParseDate(value); err != nil {
			t.Errorf("ParseDate(%q) error = %v", value, err)
		}
	}
	if _, err := ParseDate("Jan 15"); err == nil {
		t.Error("ParseDate should reject unknown layouts")
	}
}

func TestErr(t *testing.T) {
	c := New()
	if c.Err() != nil {
		t.Error("Err() should be nil when validation passed")
	}

	c.Fail("name", "Name is required")
	err := c.Err()
	if err == nil {
		t.Fatal("Err() should wrap accumulated errors")
	}
	ve, ok := apperr.AsValidation(err)
	if !ok {
		t.Fatalf("Err() = %T, want *apperr.ValidationError", err)
	}
	if ve.Fields["name"] != "Name is required" {
		t.Errorf("field error = %q, want %q", ve.Fields["name"], "Name is required")
	}
}
