// Package validate implements the pure shape-validation phase. A Checker
// accumulates per-field errors; referential checks (foreign keys,
// uniqueness) are a separate service-level phase so that validation here
// never touches the store.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/crimebase/crimebase/internal/apperr"
)

var digitsRe = regexp.MustCompile(`^\d+$`)

// Date layouts accepted for spreadsheet and form input, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
}

// Checker accumulates field errors across a sequence of shape checks.
// The zero value is not usable; call New.
type Checker struct {
	errs apperr.FieldErrors
}

// New returns an empty Checker.
func New() *Checker {
	return &Checker{errs: apperr.FieldErrors{}}
}

// Fail records an error for a field directly.
func (c *Checker) Fail(field, message string) {
	c.errs.Add(field, message)
}

// Require fails when value is empty after trimming.
func (c *Checker) Require(field, value, label string) {
	if strings.TrimSpace(value) == "" {
		c.errs.Add(field, label+" is required")
	}
}

// Enum fails when value is not one of allowed. Empty values pass when
// optional is true.
func (c *Checker) Enum(field, value string, allowed []string, optional bool) {
	if value == "" && optional {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.errs.Add(field, fmt.Sprintf("%s must be one of [%s]", field, strings.Join(allowed, ", ")))
}

// MaxLen fails when a non-nil value exceeds max characters.
func (c *Checker) MaxLen(field string, value *string, max int) {
	if value != nil && len(*value) > max {
		c.errs.Add(field, fmt.Sprintf("%s must be less than %d characters", field, max))
	}
}

// Email fails when a non-empty value is not a parseable address.
func (c *Checker) Email(field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		c.errs.Add(field, "Email must be a valid email")
	}
}

// MinLen fails when value is shorter than min characters.
func (c *Checker) MinLen(field, value string, min int) {
	if len(value) < min {
		c.errs.Add(field, fmt.Sprintf("%s must be at least %d characters", field, min))
	}
}

// Digits fails when a non-nil, non-empty value contains anything besides
// decimal digits.
func (c *Checker) Digits(field string, value *string) {
	if value != nil && *value != "" && !digitsRe.MatchString(*value) {
		c.errs.Add(field, field+" must contain digits only")
	}
}

// Date parses an optional date string. Unparsable input is recorded as a
// field error and nil is returned; empty input returns nil without error.
func (c *Checker) Date(field, value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t, err := ParseDate(value)
	if err != nil {
		c.errs.Add(field, field+" must be a valid date")
		return nil
	}
	return &t
}

// Errors returns the accumulated field errors. The map is empty when every
// check passed.
func (c *Checker) Errors() apperr.FieldErrors {
	return c.errs
}

// Err wraps the accumulated errors into an apperr.ValidationError, or nil
// when validation passed.
func (c *Checker) Err() error {
	return apperr.Validation(c.errs)
}

// ParseDate parses a date string against the accepted layouts.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
