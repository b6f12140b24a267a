package form

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/WailSalutem-Health-Care/patient-intake/internal/backend"
)

// mockBackend implements Backend for testing
type mockBackend struct {
	createPatientFunc func(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error)
	calls             atomic.Int32
}

func (m *mockBackend) CreatePatient(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error) {
	m.calls.Add(1)
	if m.createPatientFunc != nil {
		return m.createPatientFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

// mockNavigator implements Navigator for testing
type mockNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (m *mockNavigator) NavigateTo(path string) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()
}

func (m *mockNavigator) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

func submittableFields() FieldSet {
	return FieldSet{
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: "1980-01-01",
		Email:       "john@example.com",
	}
}

// TestSubmit_Success tests the full success path: succeeded state, callback
// with the created record, then navigation to /patients/{id}
func TestSubmit_Success(t *testing.T) {
	var order []string
	var orderMu sync.Mutex

	be := &mockBackend{
		createPatientFunc: func(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error) {
			return &backend.CreatedPatient{ID: "abc", FirstName: req.FirstName, LastName: req.LastName}, nil
		},
	}
	nav := &recordingNavigator{order: &order, orderMu: &orderMu}

	var got *backend.CreatedPatient
	onCreated := func(created *backend.CreatedPatient) {
		orderMu.Lock()
		order = append(order, "callback")
		orderMu.Unlock()
		got = created
	}

	controller := NewController(be, nav, onCreated, nil, nil)
	controller.Submit(t.Context(), submittableFields())
	controller.Wait()

	if controller.State() != StateSucceeded {
		t.Fatalf("Expected succeeded state, got %s", controller.State())
	}
	if got == nil || got.ID != "abc" {
		t.Errorf("Expected callback with created record, got %+v", got)
	}
	if len(nav.paths) != 1 || nav.paths[0] != "/patients/abc" {
		t.Errorf("Expected single navigation to /patients/abc, got %v", nav.paths)
	}

	orderMu.Lock()
	defer orderMu.Unlock()
	if len(order) != 2 || order[0] != "callback" || order[1] != "navigate" {
		t.Errorf("Expected callback before navigation, got %v", order)
	}
}

// recordingNavigator appends to a shared order slice to verify effect order
type recordingNavigator struct {
	order   *[]string
	orderMu *sync.Mutex
	paths   []string
}

func (n *recordingNavigator) NavigateTo(path string) {
	n.orderMu.Lock()
	*n.order = append(*n.order, "navigate")
	n.orderMu.Unlock()
	n.paths = append(n.paths, path)
}

// TestSubmit_NilCallbackTolerated tests that success works without a
// created-callback
func TestSubmit_NilCallbackTolerated(t *testing.T) {
	be := &mockBackend{
		createPatientFunc: func(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error) {
			return &backend.CreatedPatient{ID: "123"}, nil
		},
	}
	nav := &mockNavigator{}

	controller := NewController(be, nav, nil, nil, nil)
	controller.Submit(t.Context(), submittableFields())
	controller.Wait()

	if controller.State() != StateSucceeded {
		t.Fatalf("Expected succeeded state, got %s", controller.State())
	}
	if paths := nav.Paths(); len(paths) != 1 || paths[0] != "/patients/123" {
		t.Errorf("Expected navigation to /patients/123, got %v", paths)
	}
}

// TestSubmit_MissingEmail_NoRequest tests that invalid input fails
// synchronously and never contacts the backend
func TestSubmit_MissingEmail_NoRequest(t *testing.T) {
	be := &mockBackend{}
	nav := &mockNavigator{}
	controller := NewController(be, nav, nil, nil, nil)

	fields := FieldSet{FirstName: "A", LastName: "B", DateOfBirth: "2000-01-01", Email: ""}
	controller.Submit(t.Context(), fields)
	controller.Wait()

	if controller.State() != StateFailed {
		t.Fatalf("Expected failed state, got %s", controller.State())
	}
	if controller.ErrorMessage() != "A valid email address is required" {
		t.Errorf("Expected validation message, got %q", controller.ErrorMessage())
	}
	if be.calls.Load() != 0 {
		t.Errorf("Expected no backend calls, got %d", be.calls.Load())
	}
	if len(nav.Paths()) != 0 {
		t.Error("Expected no navigation on validation failure")
	}
}

// TestSubmit_FutureDateOfBirth_NoRequest tests the future-DOB scenario
func TestSubmit_FutureDateOfBirth_NoRequest(t *testing.T) {
	be := &mockBackend{}
	controller := NewController(be, &mockNavigator{}, nil, nil, nil)

	fields := submittableFields()
	fields.DateOfBirth = "2999-01-01"
	controller.Submit(t.Context(), fields)

	if controller.State() != StateFailed {
		t.Fatalf("Expected failed state, got %s", controller.State())
	}
	if be.calls.Load() != 0 {
		t.Errorf("Expected no backend calls, got %d", be.calls.Load())
	}
}

// TestSubmit_Backend500 tests that a server error surfaces its body text
// and triggers no navigation
func TestSubmit_Backend500(t *testing.T) {
	be := &mockBackend{
		createPatientFunc: func(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error) {
			return nil, &backend.RequestError{StatusCode: 500, Message: "DB error"}
		},
	}
	nav := &mockNavigator{}
	controller := NewController(be, nav, nil, nil, nil)

	controller.Submit(t.Context(), submittableFields())
	controller.Wait()

	if controller.State() != StateFailed {
		t.Fatalf("Expected failed state, got %s", controller.State())
	}
	if !strings.Contains(controller.ErrorMessage(), "DB error") {
		t.Errorf("Expected message containing server text, got %q", controller.ErrorMessage())
	}
	if len(nav.Paths()) != 0 {
		t.Error("Expected no navigation on failure")
	}
}

// TestSubmit_TransportError tests that a network failure is captured as a
// failed state with a generic message
func TestSubmit_TransportError(t *testing.T) {
	be := &mockBackend{
		createPatientFunc: func(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error) {
			return nil, errors.New("dial tcp 127.0.0.1:8080: connect: connection refused")
		},
	}
	controller := NewController(be, &mockNavigator{}, nil, nil, nil)

	controller.Submit(t.Context(), submittableFields())
	controller.Wait()

	if controller.State() != StateFailed {
		t.Fatalf("Expected failed state, got %s", controller.State())
	}
	if controller.ErrorMessage() == "" {
		t.Error("Expected a best-effort error message")
	}
}

// TestSubmit_DoubleSubmit_OneRequest tests idempotence under a rapid second
// submit intent while the first request is in flight
func TestSubmit_DoubleSubmit_OneRequest(t *testing.T) {
	release := make(chan struct{})
	be := &mockBackend{
		createPatientFunc: func(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error) {
			<-release
			return &backend.CreatedPatient{ID: "once"}, nil
		},
	}
	nav := &mockNavigator{}
	controller := NewController(be, nav, nil, nil, nil)

	controller.Submit(t.Context(), submittableFields())
	if controller.State() != StateSubmitting {
		t.Fatalf("Expected submitting state, got %s", controller.State())
	}

	// Second Enter press while the request is outstanding.
	controller.Submit(t.Context(), submittableFields())

	close(release)
	controller.Wait()

	if be.calls.Load() != 1 {
		t.Errorf("Expected exactly one backend call, got %d", be.calls.Load())
	}
	if len(nav.Paths()) != 1 {
		t.Errorf("Expected exactly one navigation, got %v", nav.Paths())
	}
}

// TestSubmit_RetryAfterFailure tests that a failed submission can be
// resubmitted
func TestSubmit_RetryAfterFailure(t *testing.T) {
	attempt := 0
	be := &mockBackend{
		createPatientFunc: func(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error) {
			attempt++
			if attempt == 1 {
				return nil, &backend.RequestError{StatusCode: 503, Message: "try later"}
			}
			return &backend.CreatedPatient{ID: "second"}, nil
		},
	}
	controller := NewController(be, &mockNavigator{}, nil, nil, nil)

	controller.Submit(t.Context(), submittableFields())
	controller.Wait()
	if controller.State() != StateFailed {
		t.Fatalf("Expected failed state after first attempt, got %s", controller.State())
	}

	controller.Submit(t.Context(), submittableFields())
	controller.Wait()
	if controller.State() != StateSucceeded {
		t.Errorf("Expected succeeded state after retry, got %s", controller.State())
	}
}

// TestClose_DiscardsPendingResult tests that a result arriving after
// teardown applies no state transition and no effects
func TestClose_DiscardsPendingResult(t *testing.T) {
	release := make(chan struct{})
	be := &mockBackend{
		createPatientFunc: func(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error) {
			<-release
			return &backend.CreatedPatient{ID: "too-late"}, nil
		},
	}
	nav := &mockNavigator{}
	callbackCalled := false

	controller := NewController(be, nav, func(*backend.CreatedPatient) { callbackCalled = true }, nil, nil)
	controller.Submit(t.Context(), submittableFields())

	controller.Close()
	close(release)
	controller.Wait()

	if controller.State() == StateSucceeded || controller.State() == StateFailed {
		t.Errorf("Expected no terminal transition after teardown, got %s", controller.State())
	}
	if callbackCalled {
		t.Error("Expected no callback after teardown")
	}
	if len(nav.Paths()) != 0 {
		t.Errorf("Expected no navigation after teardown, got %v", nav.Paths())
	}
}

// TestClose_CancelsInFlightRequest tests that teardown cancels the request
// context so the transport can give up
func TestClose_CancelsInFlightRequest(t *testing.T) {
	be := &mockBackend{
		createPatientFunc: func(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	controller := NewController(be, &mockNavigator{}, nil, nil, nil)

	controller.Submit(context.Background(), submittableFields())
	controller.Close()
	controller.Wait()

	if controller.State() == StateFailed {
		t.Error("Expected cancellation result to be discarded, not surfaced as failure")
	}
	if controller.ErrorMessage() != "" {
		t.Errorf("Expected no surfaced error after teardown, got %q", controller.ErrorMessage())
	}
}

// TestSubmit_AfterClose_NoOp tests that a closed controller ignores submit
// intents entirely
func TestSubmit_AfterClose_NoOp(t *testing.T) {
	be := &mockBackend{}
	controller := NewController(be, &mockNavigator{}, nil, nil, nil)

	controller.Close()
	controller.Submit(t.Context(), submittableFields())
	controller.Wait()

	if be.calls.Load() != 0 {
		t.Errorf("Expected no backend calls after close, got %d", be.calls.Load())
	}
	if controller.State() != StateIdle {
		t.Errorf("Expected idle state, got %s", controller.State())
	}
}

// TestReset_ReturnsTerminalStateToIdle tests external reset after success
func TestReset_ReturnsTerminalStateToIdle(t *testing.T) {
	be := &mockBackend{
		createPatientFunc: func(ctx context.Context, req backend.CreatePatientRequest) (*backend.CreatedPatient, error) {
			return &backend.CreatedPatient{ID: "r"}, nil
		},
	}
	controller := NewController(be, &mockNavigator{}, nil, nil, nil)

	controller.Submit(t.Context(), submittableFields())
	controller.Wait()
	if controller.State() != StateSucceeded {
		t.Fatalf("Expected succeeded state, got %s", controller.State())
	}

	controller.Reset()
	if controller.State() != StateIdle {
		t.Errorf("Expected idle state after reset, got %s", controller.State())
	}
}
