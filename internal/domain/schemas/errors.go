package schemas

import (
	"errors"
	"fmt"
	"strings"

	"waste_negotiation/internal/domain/entities"
)

// ErrValidation matches every *ValidationError through errors.Is.
var ErrValidation = errors.New("invalid step details")

// ValidationError lists the missing or invalid fields of a step payload.
// Fields are dotted paths relative to the payload root, e.g.
// "serviceScope.wasteTypes" or "answers[1].answer".
type ValidationError struct {
	StepType entities.StepType
	Fields   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s details: missing or invalid fields: %s", e.StepType, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(stepType entities.StepType, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{StepType: stepType, Fields: fields}
}
