package form

import (
	"strings"

	"github.com/WailSalutem-Health-Care/patient-intake/internal/backend"
)

// BuildPayload copies the transmittable fields into the creation request,
// field by field. The allowlist is the struct literal below: age is derived
// server-side, and SSN / insurance ID never cross this boundary in the
// default intake mode. Never replace this with a wholesale copy of FieldSet.
func BuildPayload(fields FieldSet) backend.CreatePatientRequest {
	return backend.CreatePatientRequest{
		FirstName:   strings.TrimSpace(fields.FirstName),
		LastName:    strings.TrimSpace(fields.LastName),
		DateOfBirth: strings.TrimSpace(fields.DateOfBirth),
		Email:       strings.TrimSpace(fields.Email),
		PhoneNumber: strings.TrimSpace(fields.Phone),
	}
}
