package form

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/WailSalutem-Health-Care/patient-intake/internal/backend"
	"github.com/WailSalutem-Health-Care/patient-intake/internal/telemetry"
)

// State is the submission lifecycle of the quick-add form. A form instance
// owns exactly one state value; transitions happen only inside Submit,
// Acknowledge and Reset.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Backend is the patient creation collaborator.
type Backend interface {
	CreatePatient(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error)
}

// Navigator is the router collaborator. The controller hands it the path of
// the created patient after a successful submission.
type Navigator interface {
	NavigateTo(path string)
}

// Controller runs the submission state machine: at most one in-flight
// creation request, synchronous validation before any network activity, and
// no effects of any kind after Close.
type Controller struct {
	mu       sync.Mutex
	state    State
	errMsg   string
	closed   bool
	cancel   context.CancelFunc
	inflight sync.WaitGroup

	backend   Backend
	navigator Navigator
	onCreated func(*backend.CreatedPatient)
	metrics   *telemetry.Metrics
	logger    *slog.Logger
}

// NewController wires the controller to its collaborators. onCreated and
// metrics may be nil; backend and navigator must not be.
func NewController(be Backend, navigator Navigator, onCreated func(*backend.CreatedPatient), metrics *telemetry.Metrics, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		state:     StateIdle,
		backend:   be,
		navigator: navigator,
		onCreated: onCreated,
		metrics:   metrics,
		logger:    logger,
	}
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ErrorMessage returns the surfaced error, empty unless state is failed.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Submit runs one submission intent. While a request is in flight the call
// is a no-op, so a repeated Enter or double click can never produce a second
// request. Validation completes synchronously before any network call; on a
// validation failure the backend is never contacted.
func (c *Controller) Submit(ctx context.Context, fields FieldSet) {
	c.mu.Lock()
	if c.closed || c.state == StateSubmitting {
		c.mu.Unlock()
		return
	}

	c.state = StateValidating
	c.errMsg = ""

	if err := Validate(fields, time.Now()); err != nil {
		c.state = StateFailed
		c.errMsg = err.Error()
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.RecordSubmit(ctx, telemetry.OutcomeValidationFailed, 0)
		}
		c.logger.Info("patient intake rejected by validation")
		return
	}

	payload := BuildPayload(fields)

	c.state = StateSubmitting
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.inflight.Add(1)
	c.mu.Unlock()

	go func() {
		defer cancel()
		c.send(reqCtx, payload)
	}()
}

// send issues the creation request and applies its outcome, unless the
// controller was closed while the request was outstanding.
func (c *Controller) send(ctx context.Context, payload backend.CreatePatientRequest) {
	defer c.inflight.Done()

	start := time.Now()
	created, err := c.backend.CreatePatient(ctx, payload)
	durationMs := float64(time.Since(start).Milliseconds())

	c.mu.Lock()
	if c.closed {
		// Torn down while the request was in flight: discard the result
		// silently, whatever it was.
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.RecordSubmit(context.Background(), telemetry.OutcomeDiscarded, durationMs)
		}
		return
	}

	if err != nil {
		c.state = StateFailed
		c.errMsg = failureMessage(err)
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.RecordSubmit(ctx, telemetry.OutcomeFailed, durationMs)
		}
		c.logger.Error("patient intake submission failed", slog.Any("error", err))
		return
	}

	c.state = StateSucceeded
	onCreated := c.onCreated
	navigator := c.navigator
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RecordSubmit(ctx, telemetry.OutcomeSucceeded, durationMs)
	}
	c.logger.Info("patient created", slog.String("patient_id", created.ID))

	// Callback first, navigation second.
	if onCreated != nil {
		onCreated(created)
	}
	navigator.NavigateTo("/patients/" + created.ID)
}

// failureMessage maps a backend error to user-facing text. Server-provided
// text is preferred; transport failures get a generic line since their
// errors describe sockets, not anything the user can act on.
func failureMessage(err error) string {
	var reqErr *backend.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return "Unable to reach the patient service. Please try again."
}

// Acknowledge clears a surfaced failure, returning the state machine to
// idle. Called when the user edits any field after a failed submit.
func (c *Controller) Acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateFailed {
		c.state = StateIdle
		c.errMsg = ""
	}
}

// Reset returns a terminal state to idle so the form can be reused.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSucceeded || c.state == StateFailed {
		c.state = StateIdle
		c.errMsg = ""
	}
}

// Close tears the controller down. The in-flight request, if any, is
// cancelled, and a result that still arrives is discarded without touching
// state or invoking collaborators.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
}

// Wait blocks until no request is in flight. Used by callers that need the
// terminal state before rendering a final outcome, and by tests.
func (c *Controller) Wait() {
	c.inflight.Wait()
}
