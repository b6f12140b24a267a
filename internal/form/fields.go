package form

import (
	"sync"
	"time"
)

// Field names the editable inputs of the quick-add form.
type Field string

const (
	FieldFirstName   Field = "first_name"
	FieldLastName    Field = "last_name"
	FieldDateOfBirth Field = "date_of_birth"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldSSN         Field = "ssn"
	FieldInsuranceID Field = "insurance_id"
)

// FieldSet holds the current form input values. The zero value is fully
// initialized: every field present as an empty string, so every input stays
// controlled from the first render.
//
// SSN and InsuranceID are collected but never transmitted or logged; see
// BuildPayload.
type FieldSet struct {
	FirstName   string
	LastName    string
	DateOfBirth string // Format: YYYY-MM-DD
	Email       string
	Phone       string
	SSN         string
	InsuranceID string
}

// Age returns the whole-year difference between the date of birth and now.
// It is derived on demand and never stored, so it can never drift from
// DateOfBirth. The second return is false when DateOfBirth does not parse.
func Age(dateOfBirth string, now time.Time) (int, bool) {
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return 0, false
	}
	years := now.Year() - dob.Year()
	// Birthday not reached yet this year.
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years, true
}

// Form owns the FieldSet and is the single source of truth for rendering.
// Updates are read-modify-write against the current value under a lock, so
// two rapid edits can never lose each other.
type Form struct {
	mu         sync.Mutex
	fields     FieldSet
	controller *Controller
}

// NewForm creates a form bound to a submission controller. Editing any
// field acknowledges a previously surfaced failure on the controller, so a
// stale error message does not linger after the user starts correcting it.
// The controller may be nil for a detached form.
func NewForm(controller *Controller) *Form {
	return &Form{controller: controller}
}

// Update sets a single field to the given value.
func (f *Form) Update(field Field, value string) {
	f.mu.Lock()
	switch field {
	case FieldFirstName:
		f.fields.FirstName = value
	case FieldLastName:
		f.fields.LastName = value
	case FieldDateOfBirth:
		f.fields.DateOfBirth = value
	case FieldEmail:
		f.fields.Email = value
	case FieldPhone:
		f.fields.Phone = value
	case FieldSSN:
		f.fields.SSN = value
	case FieldInsuranceID:
		f.fields.InsuranceID = value
	default:
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	if f.controller != nil {
		f.controller.Acknowledge()
	}
}

// Fields returns a copy of the current field values.
func (f *Form) Fields() FieldSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Age returns the derived age for the current date of birth.
func (f *Form) Age() (int, bool) {
	return Age(f.Fields().DateOfBirth, time.Now())
}
