package devserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/WailSalutem-Health-Care/patient-intake/internal/messaging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Handler serves the patient endpoints the intake client depends on.
type Handler struct {
	repo      *Repository
	publisher messaging.EventPublisher
	logger    *slog.Logger
}

// NewHandler creates a devserver handler. publisher may be nil; logger may
// be nil and falls back to slog.Default().
func NewHandler(repo *Repository, publisher messaging.EventPublisher, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req CreatePatientRequest
	if err := decoder.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if req.FirstName == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "First name is required")
		return
	}

	if req.LastName == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Last name is required")
		return
	}

	patient, err := h.repo.CreatePatient(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}

	h.logger.Info("devserver created patient", slog.String("patient_id", patient.ID))
	h.publishCreated(r.Context(), patient)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(patient)
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	patient, err := h.repo.GetPatient(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(patient)
}

// publishCreated announces the new patient on the event bus. Publishing is
// best-effort: a bus failure never fails the create.
func (h *Handler) publishCreated(ctx context.Context, patient *Patient) {
	if h.publisher == nil {
		return
	}

	event := messaging.PatientCreatedEvent{
		BaseEvent: messaging.BaseEvent{
			EventType:   messaging.EventPatientCreated,
			EventID:     uuid.NewString(),
			Timestamp:   time.Now().UTC(),
			ServiceName: "patient-intake-devserver",
		},
		Data: messaging.PatientCreatedData{
			PatientID:   patient.ID,
			FirstName:   patient.FirstName,
			LastName:    patient.LastName,
			Email:       patient.Email,
			PhoneNumber: patient.PhoneNumber,
			DateOfBirth: patient.DateOfBirth,
			CreatedAt:   patient.CreatedAt,
		},
	}

	if err := h.publisher.Publish(ctx, messaging.EventPatientCreated, event); err != nil {
		h.logger.Error("failed to publish patient.created event", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
