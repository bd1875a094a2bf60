package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"waste_negotiation/internal/domain/entities"
	"waste_negotiation/internal/usecase/interfaces"
)

// NegotiationMemoryRepository keeps negotiations in process memory. It is
// used for local runs (STORE_DRIVER=memory) and tests, and honours the same
// atomicity contract as the database-backed repositories.
type NegotiationMemoryRepository struct {
	mu        sync.Mutex
	contracts map[string]entities.ContractNegotiation
	steps     map[string][]entities.NegotiationStep
}

var _ interfaces.IStepRepository = (*NegotiationMemoryRepository)(nil)

func NewNegotiationMemoryRepository() *NegotiationMemoryRepository {
	return &NegotiationMemoryRepository{
		contracts: make(map[string]entities.ContractNegotiation),
		steps:     make(map[string][]entities.NegotiationStep),
	}
}

func (r *NegotiationMemoryRepository) LoadContract(_ context.Context, contractID string) (entities.ContractNegotiation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.contracts[contractID], nil
}

func (r *NegotiationMemoryRepository) LoadSteps(_ context.Context, contractID string) ([]entities.NegotiationStep, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.steps[contractID]
	out := make([]entities.NegotiationStep, len(stored))
	for i, s := range stored {
		out[i] = copyStep(s)
	}
	return out, nil
}

func (r *NegotiationMemoryRepository) CreateContract(_ context.Context, contract entities.ContractNegotiation, initialStep, firstPendingStep entities.NegotiationStep) (entities.ContractNegotiation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contracts[contract.ID]; ok {
		return entities.ContractNegotiation{}, fmt.Errorf("%w: %s", ErrContractExists, contract.ID)
	}
	r.contracts[contract.ID] = contract
	r.steps[contract.ID] = []entities.NegotiationStep{copyStep(initialStep), copyStep(firstPendingStep)}
	return contract, nil
}

func (r *NegotiationMemoryRepository) AtomicAdvance(_ context.Context, contractID string, completed entities.NegotiationStep, next *entities.NegotiationStep, newStatus *entities.ContractStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	contract, ok := r.contracts[contractID]
	if !ok || contract.Status != entities.ContractStatusNegotiating {
		return fmt.Errorf("%w: contract %s is not negotiating", interfaces.ErrStepNotPending, contractID)
	}

	steps := r.steps[contractID]
	idx := -1
	for i, s := range steps {
		if s.ID == completed.ID {
			idx = i
			break
		}
	}
	if idx < 0 || !steps[idx].IsPending() {
		return fmt.Errorf("%w: step %s", interfaces.ErrStepNotPending, completed.ID)
	}
	if next != nil {
		for _, s := range steps {
			if s.StepNumber == next.StepNumber {
				return fmt.Errorf("%w: step number %d is taken", interfaces.ErrStepNotPending, next.StepNumber)
			}
		}
	}

	updated := make([]entities.NegotiationStep, len(steps), len(steps)+1)
	copy(updated, steps)
	updated[idx] = copyStep(completed)
	if next != nil {
		updated = append(updated, copyStep(*next))
	}
	r.steps[contractID] = updated

	if newStatus != nil {
		contract.Status = *newStatus
		if completed.CompletedAt != nil {
			contract.UpdatedAt = *completed.CompletedAt
		}
		r.contracts[contractID] = contract
	}
	return nil
}

func copyStep(s entities.NegotiationStep) entities.NegotiationStep {
	s.Details = append(json.RawMessage(nil), s.Details...)
	if s.CompletedAt != nil {
		at := *s.CompletedAt
		s.CompletedAt = &at
	}
	return s
}
