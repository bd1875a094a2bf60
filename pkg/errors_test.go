package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("STEP_CONFLICT", "Step already answered", http.StatusConflict)
		if e.Error() != "STEP_CONFLICT: Step already answered" {
			t.Fatalf("unexpected message: %s", e.Error())
		}
		if e.Unwrap() != nil {
			t.Fatalf("expected nil cause")
		}
		body := e.ToHTTPError()
		if body.Code != "STEP_CONFLICT" || body.Details != nil {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := errors.New("db down")
		e := NewDomainError("PERSISTENCE_ERROR", "Storage unavailable", cause, http.StatusServiceUnavailable)
		if !errors.Is(e, cause) {
			t.Fatalf("expected wrapped cause")
		}
		if e.Error() != "PERSISTENCE_ERROR: Storage unavailable: db down" {
			t.Fatalf("unexpected message: %s", e.Error())
		}
	})

	t.Run("details copy", func(t *testing.T) {
		base := NewDomainErrorSimple("VALIDATION_ERROR", "Invalid details", http.StatusUnprocessableEntity)
		withDetails := base.WithDetails([]string{"price"})
		if base.Details != nil {
			t.Fatalf("base error must not be mutated")
		}
		fields, ok := withDetails.ToHTTPError().Details.([]string)
		if !ok || len(fields) != 1 || fields[0] != "price" {
			t.Fatalf("unexpected details: %+v", withDetails.Details)
		}
	})
}
