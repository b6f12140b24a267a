package form

import (
	"regexp"
	"strings"
	"time"
)

// emailPattern is a shape check only: something, an @, something, a dot,
// something. Real deliverability is the backend's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minAge = 0
	maxAge = 130
)

// ValidationError reports the first rule a FieldSet failed. The reason is
// written for end users and never contains field contents.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate applies the intake rules in order and returns the first failure
// as *ValidationError, or nil when the fields are submittable. It is a pure
// function of its inputs: no clock access, no network, no side effects.
func Validate(fields FieldSet, now time.Time) error {
	if strings.TrimSpace(fields.FirstName) == "" {
		return &ValidationError{Reason: "First name is required"}
	}
	if strings.TrimSpace(fields.LastName) == "" {
		return &ValidationError{Reason: "Last name is required"}
	}

	dob := strings.TrimSpace(fields.DateOfBirth)
	if dob == "" {
		return &ValidationError{Reason: "Date of birth is required"}
	}
	parsed, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return &ValidationError{Reason: "Date of birth must be a valid date (YYYY-MM-DD)"}
	}
	if parsed.After(now) {
		return &ValidationError{Reason: "Date of birth cannot be in the future"}
	}
	age, _ := Age(dob, now)
	if age < minAge || age > maxAge {
		return &ValidationError{Reason: "Date of birth is out of range"}
	}

	if !emailPattern.MatchString(strings.TrimSpace(fields.Email)) {
		return &ValidationError{Reason: "A valid email address is required"}
	}

	return nil
}
