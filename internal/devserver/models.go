package devserver

import "time"

// CreatePatientRequest mirrors the intake payload contract. Unknown fields
// are rejected at decode time so an overposting client fails loudly during
// development instead of silently persisting extra data.
type CreatePatientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // Format: YYYY-MM-DD
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Patient is the stored record returned to clients. The top-level id is the
// field the intake controller navigates on.
type Patient struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
