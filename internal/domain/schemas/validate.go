package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"waste_negotiation/internal/domain/entities"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

// newValidator reports fields by their JSON names. Besides the built-in tags
// it knows notblank, distinct (no duplicates ignoring case and surrounding
// space) and months (a whole number of months, at least one).
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "distinct", distinctFold)
	mustRegister(v, "months", wholeMonths)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func distinctFold(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	seen := make(map[string]struct{}, field.Len())
	for i := 0; i < field.Len(); i++ {
		key := strings.ToLower(strings.TrimSpace(field.Index(i).String()))
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}

func wholeMonths(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Float64 {
		return false
	}
	n := field.Float()
	return n >= 1 && n == math.Trunc(n) && !math.IsInf(n, 0)
}

// checkStruct runs the validate tags of payload and converts failures into a
// *ValidationError whose fields are paths below the payload root.
func checkStruct(stepType entities.StepType, payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fieldPath(fe.Namespace()))
	}
	return newValidationError(stepType, fields)
}

// fieldPath drops the struct name validator puts in front of every namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// Validate checks the details of a responseType response to a stepType step
// against the payload schema the pair implies. Validation never mutates its
// input.
//
// It answers yes or no. Callers that go on to read the payload use the
// Decode functions directly.
func Validate(stepType entities.StepType, responseType entities.ResponseType, details json.RawMessage) error {
	switch responseType {
	case entities.ResponseInitial, entities.ResponseCounter:
		_, err := DecodeOffer(stepType, details)
		return err
	case entities.ResponseClarification:
		if stepType == entities.StepTypeClarification {
			_, err := DecodeAnswers(details)
			return err
		}
		_, err := DecodeQuestions(details)
		return err
	case entities.ResponseAccept:
		if stepType == entities.StepTypeContractReview {
			_, err := DecodeReview(details)
			return err
		}
		return ValidateDecision(stepType, details)
	case entities.ResponseReject, entities.ResponseCancel:
		return ValidateDecision(stepType, details)
	case entities.ResponseSignature:
		_, err := DecodeSignature(details)
		return err
	case entities.ResponsePayment:
		_, err := DecodePayment(details)
		return err
	default:
		return fmt.Errorf("unknown response type %q", responseType)
	}
}
