package devserver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is an in-memory patient store. It exists so the intake client
// can be exercised end to end without infrastructure; it is not a storage
// design.
type Repository struct {
	mu       sync.RWMutex
	patients map[string]Patient
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{patients: make(map[string]Patient)}
}

// CreatePatient stores a new patient and returns it with a generated id.
func (r *Repository) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	patient := Patient{
		ID:          uuid.NewString(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		CreatedAt:   time.Now().UTC(),
	}

	r.mu.Lock()
	r.patients[patient.ID] = patient
	r.mu.Unlock()

	return &patient, nil
}

// GetPatient returns the patient with the given id.
func (r *Repository) GetPatient(ctx context.Context, id string) (*Patient, error) {
	r.mu.RLock()
	patient, ok := r.patients[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("patient not found: %s", id)
	}
	return &patient, nil
}
