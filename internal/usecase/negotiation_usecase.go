package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"waste_negotiation/internal/domain/engine"
	"waste_negotiation/internal/domain/entities"
	"waste_negotiation/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrNegotiationNotFound = errors.New("negotiation not found")
	ErrInvalidContractID   = errors.New("invalid contract_id")
	ErrInvalidStepID       = errors.New("invalid step_id")
	ErrInvalidParties      = errors.New("invalid business_id/agency_id")
	ErrConflict            = errors.New("step was already answered")
	ErrPersistence         = errors.New("negotiation storage failure")
)

// CreateNegotiationCommand opens a negotiation with the business's initial offer.
type CreateNegotiationCommand struct {
	BusinessID   string
	AgencyID     string
	Title        string
	Description  string
	InitialOffer json.RawMessage
}

// NegotiationState is everything a client needs to resume a negotiation.
type NegotiationState struct {
	Contract      entities.ContractNegotiation
	Steps         []entities.NegotiationStep
	CurrentStep   *entities.NegotiationStep
	PreviousOffer json.RawMessage
}

type AdvanceResult struct {
	Contract      entities.ContractNegotiation
	CompletedStep entities.NegotiationStep
	NextStep      *entities.NegotiationStep
}

// INegotiationUseCase is the negotiation controller exposed to the HTTP layer.
//
// Conflicts are never merged: a response against a step that is no longer
// current returns ErrConflict and the caller reloads.
type INegotiationUseCase interface {
	CreateNegotiation(ctx context.Context, cmd CreateNegotiationCommand) (NegotiationState, error)
	GetNegotiation(ctx context.Context, contractID string) (NegotiationState, error)
	GetCurrentStep(ctx context.Context, contractID string) (*entities.NegotiationStep, error)
	SubmitResponse(ctx context.Context, contractID, stepID string, responseType entities.ResponseType, details json.RawMessage) (AdvanceResult, error)
}

type NegotiationUseCase struct {
	repo      interfaces.IStepRepository
	engine    *engine.Engine
	listeners []interfaces.INegotiationListener
}

var _ INegotiationUseCase = (*NegotiationUseCase)(nil)

func NewNegotiationUseCase(repo interfaces.IStepRepository, eng *engine.Engine, listeners ...interfaces.INegotiationListener) *NegotiationUseCase {
	if eng == nil {
		eng = engine.New()
	}
	return &NegotiationUseCase{repo: repo, engine: eng, listeners: listeners}
}

func (u *NegotiationUseCase) CreateNegotiation(ctx context.Context, cmd CreateNegotiationCommand) (NegotiationState, error) {
	businessID := strings.TrimSpace(cmd.BusinessID)
	agencyID := strings.TrimSpace(cmd.AgencyID)
	if businessID == "" || agencyID == "" || businessID == agencyID {
		return NegotiationState{}, ErrInvalidParties
	}

	contractID := uuid.NewString()
	initial, pending, err := u.engine.Open(contractID, cmd.InitialOffer)
	if err != nil {
		log.Printf("[negotiation][usecase] create rejected business_id=%s agency_id=%s err=%v", businessID, agencyID, err)
		return NegotiationState{}, err
	}

	contract := entities.ContractNegotiation{
		ID:          contractID,
		BusinessID:  businessID,
		AgencyID:    agencyID,
		Title:       strings.TrimSpace(cmd.Title),
		Description: strings.TrimSpace(cmd.Description),
		Status:      entities.ContractStatusNegotiating,
		CreatedAt:   initial.CreatedAt,
		UpdatedAt:   initial.CreatedAt,
	}

	created, err := u.repo.CreateContract(ctx, contract, initial, pending)
	if err != nil {
		log.Printf("[negotiation][usecase] create persist failed contract_id=%s err=%v", contractID, err)
		return NegotiationState{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	log.Printf("[negotiation][usecase] create success contract_id=%s business_id=%s agency_id=%s", contractID, businessID, agencyID)

	u.notify(ctx, entities.NegotiationEvent{
		Kind:           entities.NegotiationEventCreated,
		ContractID:     contractID,
		StepID:         initial.ID,
		StepType:       initial.StepType,
		ResponseType:   initial.ResponseType,
		NextStepType:   pending.StepType,
		ContractStatus: created.Status,
		OccurredAt:     initial.CreatedAt,
	})

	steps := []entities.NegotiationStep{initial, pending}
	return NegotiationState{
		Contract:      created,
		Steps:         steps,
		CurrentStep:   engine.CurrentStep(steps),
		PreviousOffer: engine.PreviousOffer(steps),
	}, nil
}

func (u *NegotiationUseCase) GetNegotiation(ctx context.Context, contractID string) (NegotiationState, error) {
	contract, steps, err := u.load(ctx, contractID)
	if err != nil {
		return NegotiationState{}, err
	}
	return NegotiationState{
		Contract:      contract,
		Steps:         steps,
		CurrentStep:   engine.CurrentStep(steps),
		PreviousOffer: engine.PreviousOffer(steps),
	}, nil
}

// GetCurrentStep returns the pending step, or nil when the negotiation ended.
func (u *NegotiationUseCase) GetCurrentStep(ctx context.Context, contractID string) (*entities.NegotiationStep, error) {
	_, steps, err := u.load(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return engine.CurrentStep(steps), nil
}

func (u *NegotiationUseCase) SubmitResponse(ctx context.Context, contractID, stepID string, responseType entities.ResponseType, details json.RawMessage) (AdvanceResult, error) {
	stepID = strings.TrimSpace(stepID)
	if stepID == "" {
		return AdvanceResult{}, ErrInvalidStepID
	}
	log.Printf("[negotiation][usecase] submit start contract_id=%s step_id=%s response_type=%s", contractID, stepID, responseType)

	contract, steps, err := u.load(ctx, contractID)
	if err != nil {
		return AdvanceResult{}, err
	}

	res, err := u.engine.Transition(steps, engine.Response{StepID: stepID, Type: responseType, Details: details})
	if err != nil {
		if errors.Is(err, engine.ErrStaleStep) {
			log.Printf("[negotiation][usecase] submit stale contract_id=%s step_id=%s err=%v", contract.ID, stepID, err)
			u.notifyConflict(ctx, contract, stepID, responseType)
			return AdvanceResult{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		if errors.Is(err, engine.ErrIllegalTransition) {
			log.Printf("[negotiation][usecase] submit illegal transition contract_id=%s step_id=%s err=%v", contract.ID, stepID, err)
		}
		return AdvanceResult{}, err
	}

	if err := u.repo.AtomicAdvance(ctx, contract.ID, res.Completed, res.Next, res.ContractStatus); err != nil {
		if errors.Is(err, interfaces.ErrStepNotPending) {
			log.Printf("[negotiation][usecase] submit lost conditional write contract_id=%s step_id=%s", contract.ID, stepID)
			u.notifyConflict(ctx, contract, stepID, responseType)
			return AdvanceResult{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		log.Printf("[negotiation][usecase] submit persist failed contract_id=%s step_id=%s err=%v", contract.ID, stepID, err)
		return AdvanceResult{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if res.ContractStatus != nil {
		contract.Status = *res.ContractStatus
		contract.UpdatedAt = *res.Completed.CompletedAt
	}

	event := entities.NegotiationEvent{
		Kind:           entities.NegotiationEventAdvanced,
		ContractID:     contract.ID,
		StepID:         res.Completed.ID,
		StepType:       res.Completed.StepType,
		ResponseType:   responseType,
		ContractStatus: contract.Status,
		OccurredAt:     *res.Completed.CompletedAt,
	}
	if res.Next != nil {
		event.NextStepType = res.Next.StepType
	}
	u.notify(ctx, event)

	log.Printf("[negotiation][usecase] submit success contract_id=%s step=%d type=%s response_type=%s next=%s status=%s",
		contract.ID, res.Completed.StepNumber, res.Completed.StepType, responseType, event.NextStepType, contract.Status)
	return AdvanceResult{Contract: contract, CompletedStep: res.Completed, NextStep: res.Next}, nil
}

func (u *NegotiationUseCase) load(ctx context.Context, contractID string) (entities.ContractNegotiation, []entities.NegotiationStep, error) {
	contractID = strings.TrimSpace(contractID)
	if contractID == "" {
		return entities.ContractNegotiation{}, nil, ErrInvalidContractID
	}

	contract, err := u.repo.LoadContract(ctx, contractID)
	if err != nil {
		log.Printf("[negotiation][usecase] load contract failed contract_id=%s err=%v", contractID, err)
		return entities.ContractNegotiation{}, nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if contract.ID == "" {
		return entities.ContractNegotiation{}, nil, ErrNegotiationNotFound
	}

	steps, err := u.repo.LoadSteps(ctx, contractID)
	if err != nil {
		log.Printf("[negotiation][usecase] load steps failed contract_id=%s err=%v", contractID, err)
		return entities.ContractNegotiation{}, nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if len(steps) == 0 {
		return entities.ContractNegotiation{}, nil, ErrNegotiationNotFound
	}
	return contract, steps, nil
}

func (u *NegotiationUseCase) notifyConflict(ctx context.Context, contract entities.ContractNegotiation, stepID string, responseType entities.ResponseType) {
	u.notify(ctx, entities.NegotiationEvent{
		Kind:           entities.NegotiationEventConflict,
		ContractID:     contract.ID,
		StepID:         stepID,
		ResponseType:   responseType,
		ContractStatus: contract.Status,
	})
}

func (u *NegotiationUseCase) notify(ctx context.Context, event entities.NegotiationEvent) {
	for _, l := range u.listeners {
		if l != nil {
			l.OnNegotiationEvent(ctx, event)
		}
	}
}
