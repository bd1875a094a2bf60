package engine

import (
	"errors"
	"fmt"

	"waste_negotiation/internal/domain/entities"
)

// ErrStaleStep is returned when the response targets a step that is not the
// current pending step (or the negotiation has no pending step at all).
var ErrStaleStep = errors.New("step is not the current pending step")

// ErrIllegalTransition matches every *IllegalTransitionError through errors.Is.
var ErrIllegalTransition = errors.New("illegal transition")

type IllegalTransitionError struct {
	StepType     entities.StepType
	ResponseType entities.ResponseType
	Reason       string
}

func (e *IllegalTransitionError) Error() string {
	msg := fmt.Sprintf("response %q is not allowed on %s step", e.ResponseType, e.StepType)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *IllegalTransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

func illegal(stepType entities.StepType, responseType entities.ResponseType, reason string) error {
	return &IllegalTransitionError{StepType: stepType, ResponseType: responseType, Reason: reason}
}
