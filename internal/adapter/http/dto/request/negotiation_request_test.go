package request

import (
	"errors"
	"testing"

	"waste_negotiation/internal/domain/entities"
)

func TestStepResponseRequest_ResolveResponseType(t *testing.T) {
	r := StepResponseRequest{ResponseType: " Counter "}
	rt, err := r.ResolveResponseType()
	if err != nil || rt != entities.ResponseCounter {
		t.Fatalf("expected counter, got %q err=%v", rt, err)
	}

	for _, v := range []string{"", "initial", "approve"} {
		_, err := StepResponseRequest{ResponseType: v}.ResolveResponseType()
		if !errors.Is(err, ErrInvalidResponseType) {
			t.Fatalf("%q: expected ErrInvalidResponseType, got %v", v, err)
		}
	}
}
