package backend

import "fmt"

// CreatePatientRequest is the allowlisted payload sent to the patient
// creation endpoint. It deliberately carries no age (the server derives it)
// and no SSN or insurance ID (never transmitted in the default intake mode).
type CreatePatientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // Format: YYYY-MM-DD
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// CreatedPatient is the record returned by the backend on success. The only
// field the intake flow depends on is ID; everything else is passed through
// to the created-callback as-is.
type CreatedPatient struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// RequestError reports a non-2xx response from the backend. Message holds
// the best available human-readable text: the response body when the server
// sent one, otherwise a generic status line.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("patient creation failed (status %d): %s", e.StatusCode, e.Message)
}
