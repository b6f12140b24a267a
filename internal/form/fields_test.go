package form

import (
	"sync"
	"testing"
	"time"
)

// TestAge_WholeYearDifference tests derived age around the birthday boundary
func TestAge_WholeYearDifference(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name string
		dob  string
		want int
	}{
		{name: "Birthday earlier this year", dob: "2000-01-01", want: 26},
		{name: "Birthday today", dob: "2000-06-15", want: 26},
		{name: "Birthday later this year", dob: "2000-12-31", want: 25},
		{name: "Born this year", dob: "2026-01-01", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Age(tc.dob, now)
			if !ok {
				t.Fatalf("Expected age for %q, got not-ok", tc.dob)
			}
			if got != tc.want {
				t.Errorf("Expected age %d, got %d", tc.want, got)
			}
		})
	}
}

// TestAge_Unparseable tests that a bad date yields not-ok rather than zero
func TestAge_Unparseable(t *testing.T) {
	if _, ok := Age("not-a-date", time.Now()); ok {
		t.Error("Expected not-ok for unparseable date of birth")
	}
}

// TestFormUpdate_SetsFields tests basic field updates
func TestFormUpdate_SetsFields(t *testing.T) {
	f := NewForm(nil)

	f.Update(FieldFirstName, "Jane")
	f.Update(FieldLastName, "Smith")
	f.Update(FieldDateOfBirth, "1990-05-05")
	f.Update(FieldEmail, "jane@example.com")
	f.Update(FieldPhone, "555-0100")
	f.Update(FieldSSN, "123-45-6789")
	f.Update(FieldInsuranceID, "INS-9")

	fields := f.Fields()
	if fields.FirstName != "Jane" || fields.LastName != "Smith" {
		t.Errorf("Expected name fields to be set, got %q %q", fields.FirstName, fields.LastName)
	}
	if fields.DateOfBirth != "1990-05-05" || fields.Email != "jane@example.com" {
		t.Errorf("Expected dob/email to be set, got %q %q", fields.DateOfBirth, fields.Email)
	}
	if fields.SSN != "123-45-6789" || fields.InsuranceID != "INS-9" {
		t.Error("Expected sensitive fields to be held in the form state")
	}
}

// TestFormUpdate_UnknownFieldIgnored tests that an unknown field is a no-op
func TestFormUpdate_UnknownFieldIgnored(t *testing.T) {
	f := NewForm(nil)
	f.Update(FieldFirstName, "Jane")

	f.Update(Field("age"), "99")

	if f.Fields() != (FieldSet{FirstName: "Jane"}) {
		t.Error("Expected unknown field update to change nothing")
	}
}

// TestFormUpdate_NoLostUpdates tests read-modify-write under rapid edits
func TestFormUpdate_NoLostUpdates(t *testing.T) {
	f := NewForm(nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			f.Update(FieldFirstName, "Jane")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			f.Update(FieldLastName, "Smith")
		}
	}()
	wg.Wait()

	fields := f.Fields()
	if fields.FirstName != "Jane" || fields.LastName != "Smith" {
		t.Errorf("Expected both fields to survive concurrent edits, got %q %q", fields.FirstName, fields.LastName)
	}
}

// TestFormAge_RecomputedOnEveryRead tests that age never goes stale after
// two rapid date-of-birth edits
func TestFormAge_RecomputedOnEveryRead(t *testing.T) {
	f := NewForm(nil)

	f.Update(FieldDateOfBirth, "2000-01-01")
	f.Update(FieldDateOfBirth, "1990-01-01")

	now := time.Now()
	want, _ := Age("1990-01-01", now)
	got, ok := f.Age()
	if !ok {
		t.Fatal("Expected derived age, got not-ok")
	}
	if got != want {
		t.Errorf("Expected age %d from latest date of birth, got %d", want, got)
	}
}

// TestFormUpdate_ClearsSurfacedFailure tests that editing a field
// acknowledges a failed submission on the attached controller
func TestFormUpdate_ClearsSurfacedFailure(t *testing.T) {
	controller := NewController(&mockBackend{}, &mockNavigator{}, nil, nil, nil)
	f := NewForm(controller)

	// Empty fields fail validation synchronously.
	controller.Submit(t.Context(), f.Fields())
	if controller.State() != StateFailed {
		t.Fatalf("Expected failed state, got %s", controller.State())
	}

	f.Update(FieldFirstName, "J")

	if controller.State() != StateIdle {
		t.Errorf("Expected idle state after edit, got %s", controller.State())
	}
	if controller.ErrorMessage() != "" {
		t.Errorf("Expected cleared error message, got %q", controller.ErrorMessage())
	}
}
