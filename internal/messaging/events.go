package messaging

import "time"

// Event routing keys as constants
const (
	EventPatientCreated = "patient.created"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// PatientCreatedEvent announces a patient created through the quick-add
// intake flow. It carries only the transmitted payload fields plus the new
// identifier; SSN and insurance ID are never collected into events.
type PatientCreatedEvent struct {
	BaseEvent
	Data PatientCreatedData `json:"data"`
}

type PatientCreatedData struct {
	PatientID   string    `json:"patient_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
