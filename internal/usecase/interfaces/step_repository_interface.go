package interfaces

import (
	"context"
	"errors"

	"waste_negotiation/internal/domain/entities"
)

// ErrStepNotPending is returned by AtomicAdvance when the conditional write
// lost: the completing step is no longer pending (or the contract left the
// negotiating state). Nothing is written in that case.
var ErrStepNotPending = errors.New("step is no longer pending")

// IStepRepository abstracts persistence of negotiations and their steps.
//
// Implementations must guarantee:
//   - LoadSteps returns steps ordered by step_number
//   - LoadContract returns a zero ContractNegotiation (ID == "") when absent
//   - AtomicAdvance applies completion, the next step and the contract status
//     as one unit, conditioned on the completing step still being pending
//   - CreateContract writes the contract and its first two steps as one unit
type IStepRepository interface {
	LoadSteps(ctx context.Context, contractID string) ([]entities.NegotiationStep, error)
	LoadContract(ctx context.Context, contractID string) (entities.ContractNegotiation, error)
	AtomicAdvance(ctx context.Context, contractID string, completed entities.NegotiationStep, next *entities.NegotiationStep, newStatus *entities.ContractStatus) error
	CreateContract(ctx context.Context, contract entities.ContractNegotiation, initialStep, firstPendingStep entities.NegotiationStep) (entities.ContractNegotiation, error)
}
