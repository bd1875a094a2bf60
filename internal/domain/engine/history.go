package engine

import (
	"encoding/json"

	"waste_negotiation/internal/domain/entities"
)

// CurrentStep returns the last pending step of history, or nil when the
// negotiation is terminal. It is the only place "current step" is derived.
func CurrentStep(history []entities.NegotiationStep) *entities.NegotiationStep {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].IsPending() {
			s := history[i]
			return &s
		}
	}
	return nil
}

// PreviousOffer returns the payload of the most recent completed offer step,
// i.e. the terms currently on the table.
func PreviousOffer(history []entities.NegotiationStep) json.RawMessage {
	if s := previousOfferStep(history); s != nil {
		return s.Details
	}
	return nil
}

func previousOfferStep(history []entities.NegotiationStep) *entities.NegotiationStep {
	for i := len(history) - 1; i >= 0; i-- {
		s := history[i]
		if s.Status != entities.StepStatusCompleted || !s.StepType.IsOffer() {
			continue
		}
		if s.ResponseType == entities.ResponseInitial || s.ResponseType == entities.ResponseCounter {
			return &s
		}
	}
	return nil
}

// latestRound is the round of the last offer step in history.
func latestRound(history []entities.NegotiationStep) int {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].StepType.IsOffer() {
			return history[i].Round
		}
	}
	return 0
}

// signedRoles collects the roles that completed a signature step since the
// last contract review.
func signedRoles(history []entities.NegotiationStep) map[entities.PartyRole]bool {
	signed := make(map[entities.PartyRole]bool, 2)
	for i := len(history) - 1; i >= 0; i-- {
		s := history[i]
		if s.StepType == entities.StepTypeContractReview {
			break
		}
		if s.StepType == entities.StepTypeSignature && s.Status == entities.StepStatusCompleted {
			signed[s.ResponderRole] = true
		}
	}
	return signed
}

func nextStepNumber(history []entities.NegotiationStep) int {
	max := 0
	for _, s := range history {
		if s.StepNumber > max {
			max = s.StepNumber
		}
	}
	return max + 1
}
