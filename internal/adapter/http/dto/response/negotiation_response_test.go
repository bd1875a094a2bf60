package response

import (
	"encoding/json"
	"testing"
	"time"

	"waste_negotiation/internal/domain/entities"
	"waste_negotiation/internal/usecase"
)

func TestFromNegotiationState(t *testing.T) {
	now := time.Now().UTC()
	contract := entities.ContractNegotiation{ID: "c-1", BusinessID: "biz-1", AgencyID: "agc-1", Status: entities.ContractStatusNegotiating, CreatedAt: now, UpdatedAt: now}
	initial := entities.NegotiationStep{ID: "s-1", StepNumber: 1, StepType: entities.StepTypeInitialOffer, Status: entities.StepStatusCompleted, ResponderRole: entities.PartyRoleBusiness, ResponseType: entities.ResponseInitial, Details: json.RawMessage(`{"price":1}`), CreatedAt: now, CompletedAt: &now}
	pending := entities.NegotiationStep{ID: "s-2", StepNumber: 2, StepType: entities.StepTypeCounterOffer, Status: entities.StepStatusPending, ResponderRole: entities.PartyRoleAgency, Round: 1, CreatedAt: now}

	res := FromNegotiationState(usecase.NegotiationState{
		Contract:      contract,
		Steps:         []entities.NegotiationStep{initial, pending},
		CurrentStep:   &pending,
		PreviousOffer: initial.Details,
	})

	if res.Contract.ContractID != "c-1" || res.Contract.Status != "negotiating" {
		t.Fatalf("unexpected contract: %+v", res.Contract)
	}
	if len(res.Steps) != 2 || res.Steps[0].ResponderID != "biz-1" || res.Steps[1].ResponderID != "agc-1" {
		t.Fatalf("unexpected steps: %+v", res.Steps)
	}
	if res.CurrentStep == nil || res.CurrentStep.StepID != "s-2" || string(res.CurrentStep.Details) != "{}" {
		t.Fatalf("unexpected current step: %+v", res.CurrentStep)
	}
	if string(res.PreviousOffer) != `{"price":1}` {
		t.Fatalf("unexpected previous offer: %s", res.PreviousOffer)
	}
}

func TestFromAdvanceResult_Terminal(t *testing.T) {
	now := time.Now().UTC()
	res := FromAdvanceResult(usecase.AdvanceResult{
		Contract:      entities.ContractNegotiation{ID: "c-1", Status: entities.ContractStatusCancelled},
		CompletedStep: entities.NegotiationStep{ID: "s-2", Status: entities.StepStatusCompleted, ResponseType: entities.ResponseReject, CompletedAt: &now},
	})

	if res.ContractStatus != "cancelled" || res.NextStep != nil || res.CompletedStep.ResponseType != "reject" {
		t.Fatalf("unexpected advance response: %+v", res)
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	_ = json.Unmarshal(b, &decoded)
	if v, ok := decoded["next_step"]; !ok || v != nil {
		t.Fatalf("next_step must be present and null, got %v", decoded["next_step"])
	}
}

func TestFromCurrentStep_Nil(t *testing.T) {
	res := FromCurrentStep("c-1", nil)
	if res.ContractID != "c-1" || res.CurrentStep != nil {
		t.Fatalf("unexpected response: %+v", res)
	}
}
