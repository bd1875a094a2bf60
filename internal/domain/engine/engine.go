package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"waste_negotiation/internal/domain/entities"
	"waste_negotiation/internal/domain/schemas"

	"github.com/google/uuid"
)

// Response is a responder's answer to the current step.
type Response struct {
	StepID  string
	Type    entities.ResponseType
	Details json.RawMessage
}

// Result is the outcome of a legal transition. Next is nil and ContractStatus
// set when the negotiation reached a terminal state.
type Result struct {
	Completed      entities.NegotiationStep
	Next           *entities.NegotiationStep
	ContractStatus *entities.ContractStatus
}

// Engine computes negotiation transitions. It performs no I/O: time and id
// generation are injected so identical inputs give identical results.
type Engine struct {
	now   func() time.Time
	newID func() string
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open builds the two steps a negotiation starts with: the business's initial
// offer (already completed) and the agency's first counter_offer (pending).
func (e *Engine) Open(contractID string, offer json.RawMessage) (entities.NegotiationStep, entities.NegotiationStep, error) {
	if err := schemas.Validate(entities.StepTypeInitialOffer, entities.ResponseInitial, offer); err != nil {
		return entities.NegotiationStep{}, entities.NegotiationStep{}, err
	}
	details, err := schemas.Canonical(offer)
	if err != nil {
		return entities.NegotiationStep{}, entities.NegotiationStep{}, err
	}

	now := e.now()
	initial := entities.NegotiationStep{
		ID:            e.newID(),
		ContractID:    contractID,
		StepNumber:    1,
		StepType:      entities.StepTypeInitialOffer,
		Status:        entities.StepStatusCompleted,
		ResponderRole: entities.PartyRoleBusiness,
		Round:         1,
		ResponseType:  entities.ResponseInitial,
		Details:       details,
		CreatedAt:     now,
		CompletedAt:   &now,
	}
	pending := entities.NegotiationStep{
		ID:            e.newID(),
		ContractID:    contractID,
		StepNumber:    2,
		StepType:      entities.StepTypeCounterOffer,
		Status:        entities.StepStatusPending,
		ResponderRole: entities.PartyRoleAgency,
		Round:         1,
		Details:       json.RawMessage("{}"),
		CreatedAt:     now,
	}
	return initial, pending, nil
}

// Transition applies resp to the current step of history.
//
// Checks run in order: the step must be current (ErrStaleStep), the response
// must be legal for its type (*IllegalTransitionError), and the details must
// match the schema the response implies (*schemas.ValidationError).
func (e *Engine) Transition(history []entities.NegotiationStep, resp Response) (Result, error) {
	current := CurrentStep(history)
	if current == nil {
		return Result{}, fmt.Errorf("%w: negotiation has no pending step", ErrStaleStep)
	}
	if current.ID != resp.StepID {
		return Result{}, fmt.Errorf("%w: current step is %s", ErrStaleStep, current.ID)
	}

	switch current.StepType {
	case entities.StepTypeInitialOffer:
		return Result{}, illegal(current.StepType, resp.Type, "initial offer is completed at creation")
	case entities.StepTypeCounterOffer:
		return e.onCounterOffer(history, *current, resp)
	case entities.StepTypeClarification:
		return e.onClarification(history, *current, resp)
	case entities.StepTypeContractReview:
		return e.onContractReview(history, *current, resp)
	case entities.StepTypeSignature:
		return e.onSignature(history, *current, resp)
	case entities.StepTypePayment:
		return e.onPayment(*current, resp)
	default:
		return Result{}, illegal(current.StepType, resp.Type, "unknown step type")
	}
}

func (e *Engine) onCounterOffer(history []entities.NegotiationStep, current entities.NegotiationStep, resp Response) (Result, error) {
	other := current.ResponderRole.Other()

	switch resp.Type {
	case entities.ResponseAccept:
		if err := schemas.Validate(current.StepType, resp.Type, resp.Details); err != nil {
			return Result{}, err
		}
		accepted := PreviousOffer(history)
		if accepted == nil {
			return Result{}, illegal(current.StepType, resp.Type, "there is no offer to accept")
		}
		completed := e.complete(current, resp.Type, accepted)
		next := e.newStep(history, current.ContractID, entities.StepTypeContractReview, other, 0, nil)
		return Result{Completed: completed, Next: &next}, nil

	case entities.ResponseCounter:
		if err := schemas.Validate(current.StepType, resp.Type, resp.Details); err != nil {
			return Result{}, err
		}
		details, err := schemas.Canonical(resp.Details)
		if err != nil {
			return Result{}, err
		}
		completed := e.complete(current, resp.Type, details)
		next := e.newStep(history, current.ContractID, entities.StepTypeCounterOffer, other, current.Round+1, nil)
		return Result{Completed: completed, Next: &next}, nil

	case entities.ResponseClarification:
		if err := schemas.Validate(current.StepType, resp.Type, resp.Details); err != nil {
			return Result{}, err
		}
		details, err := schemas.Canonical(resp.Details)
		if err != nil {
			return Result{}, err
		}
		completed := e.complete(current, resp.Type, details)
		next := e.newStep(history, current.ContractID, entities.StepTypeClarification, other, 0, details)
		return Result{Completed: completed, Next: &next}, nil

	case entities.ResponseReject:
		return e.terminate(current, resp, entities.ContractStatusCancelled)

	default:
		return Result{}, illegal(current.StepType, resp.Type, "")
	}
}

func (e *Engine) onClarification(history []entities.NegotiationStep, current entities.NegotiationStep, resp Response) (Result, error) {
	if resp.Type != entities.ResponseClarification {
		return Result{}, illegal(current.StepType, resp.Type, "")
	}
	questions, err := schemas.DecodeQuestions(current.Details)
	if err != nil {
		return Result{}, illegal(current.StepType, resp.Type, "no questions were raised")
	}
	if _, err := schemas.MatchAnswers(questions, resp.Details); err != nil {
		return Result{}, err
	}
	details, err := schemas.Canonical(resp.Details)
	if err != nil {
		return Result{}, err
	}

	asker := current.ResponderRole.Other()
	round := latestRound(history)
	for i := len(history) - 1; i >= 0; i-- {
		s := history[i]
		if s.StepType == entities.StepTypeCounterOffer && s.ResponseType == entities.ResponseClarification {
			asker = s.ResponderRole
			round = s.Round
			break
		}
	}

	completed := e.complete(current, resp.Type, details)
	next := e.newStep(history, current.ContractID, entities.StepTypeCounterOffer, asker, round, details)
	return Result{Completed: completed, Next: &next}, nil
}

func (e *Engine) onContractReview(history []entities.NegotiationStep, current entities.NegotiationStep, resp Response) (Result, error) {
	switch resp.Type {
	case entities.ResponseAccept:
		review, err := schemas.DecodeReview(resp.Details)
		if err != nil {
			return Result{}, err
		}
		if !*review.Reviewed {
			return Result{}, &schemas.ValidationError{StepType: current.StepType, Fields: []string{"reviewed"}}
		}
		details, err := schemas.Canonical(resp.Details)
		if err != nil {
			return Result{}, err
		}
		completed := e.complete(current, resp.Type, details)
		next := e.newStep(history, current.ContractID, entities.StepTypeSignature, current.ResponderRole.Other(), 0, nil)
		return Result{Completed: completed, Next: &next}, nil

	case entities.ResponseReject:
		return e.terminate(current, resp, entities.ContractStatusCancelled)

	default:
		return Result{}, illegal(current.StepType, resp.Type, "")
	}
}

func (e *Engine) onSignature(history []entities.NegotiationStep, current entities.NegotiationStep, resp Response) (Result, error) {
	if resp.Type != entities.ResponseSignature {
		return Result{}, illegal(current.StepType, resp.Type, "")
	}
	if err := schemas.Validate(current.StepType, resp.Type, resp.Details); err != nil {
		return Result{}, err
	}
	details, err := schemas.Canonical(resp.Details)
	if err != nil {
		return Result{}, err
	}
	completed := e.complete(current, resp.Type, details)

	signed := signedRoles(history)
	signed[current.ResponderRole] = true
	var next entities.NegotiationStep
	if signed[entities.PartyRoleBusiness] && signed[entities.PartyRoleAgency] {
		next = e.newStep(history, current.ContractID, entities.StepTypePayment, entities.PartyRoleBusiness, 0, nil)
	} else {
		next = e.newStep(history, current.ContractID, entities.StepTypeSignature, current.ResponderRole.Other(), 0, nil)
	}
	return Result{Completed: completed, Next: &next}, nil
}

func (e *Engine) onPayment(current entities.NegotiationStep, resp Response) (Result, error) {
	switch resp.Type {
	case entities.ResponsePayment:
		payment, err := schemas.DecodePayment(resp.Details)
		if err != nil {
			return Result{}, err
		}
		status := entities.ContractStatusCancelled
		if payment.PaymentStatus == schemas.PaymentStatusPaid {
			status = entities.ContractStatusActive
		}
		return e.terminate(current, resp, status)

	case entities.ResponseCancel:
		return e.terminate(current, resp, entities.ContractStatusCancelled)

	default:
		return Result{}, illegal(current.StepType, resp.Type, "")
	}
}

// terminate completes current without a successor and moves the contract to
// status. Payloads of decision responses are validated here.
func (e *Engine) terminate(current entities.NegotiationStep, resp Response, status entities.ContractStatus) (Result, error) {
	if resp.Type != entities.ResponsePayment {
		if err := schemas.Validate(current.StepType, resp.Type, resp.Details); err != nil {
			return Result{}, err
		}
	}
	if !entities.ContractStatusNegotiating.CanTransitionTo(status) {
		return Result{}, illegal(current.StepType, resp.Type, fmt.Sprintf("contract cannot move to %s", status))
	}
	details, err := schemas.Canonical(resp.Details)
	if err != nil {
		return Result{}, err
	}
	completed := e.complete(current, resp.Type, details)
	return Result{Completed: completed, ContractStatus: &status}, nil
}

func (e *Engine) complete(current entities.NegotiationStep, responseType entities.ResponseType, details json.RawMessage) entities.NegotiationStep {
	now := e.now()
	current.Status = entities.StepStatusCompleted
	current.ResponseType = responseType
	current.Details = details
	current.CompletedAt = &now
	return current
}

func (e *Engine) newStep(history []entities.NegotiationStep, contractID string, stepType entities.StepType, responder entities.PartyRole, round int, details json.RawMessage) entities.NegotiationStep {
	if details == nil {
		details = json.RawMessage("{}")
	}
	return entities.NegotiationStep{
		ID:            e.newID(),
		ContractID:    contractID,
		StepNumber:    nextStepNumber(history),
		StepType:      stepType,
		Status:        entities.StepStatusPending,
		ResponderRole: responder,
		Round:         round,
		Details:       details,
		CreatedAt:     e.now(),
	}
}
