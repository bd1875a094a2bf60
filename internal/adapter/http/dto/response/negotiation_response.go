package response

import (
	"encoding/json"
	"time"

	"waste_negotiation/internal/domain/entities"
	"waste_negotiation/internal/usecase"
)

type ContractResponse struct {
	ContractID  string    `json:"contract_id"`
	BusinessID  string    `json:"business_id"`
	AgencyID    string    `json:"agency_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type StepResponse struct {
	StepID        string          `json:"step_id"`
	StepNumber    int             `json:"step_number"`
	StepType      string          `json:"step_type"`
	Status        string          `json:"status"`
	ResponderRole string          `json:"responder_role"`
	ResponderID   string          `json:"responder_id,omitempty"`
	Round         int             `json:"round,omitempty"`
	ResponseType  string          `json:"response_type,omitempty"`
	Details       json.RawMessage `json:"details" swaggertype:"object"`
	CreatedAt     time.Time       `json:"created_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// NegotiationResponse is everything a client needs to render or resume a
// negotiation. CurrentStep is null once the contract reached a terminal status.
type NegotiationResponse struct {
	Contract      ContractResponse `json:"contract"`
	Steps         []StepResponse   `json:"steps"`
	CurrentStep   *StepResponse    `json:"current_step"`
	PreviousOffer json.RawMessage  `json:"previous_offer,omitempty" swaggertype:"object"`
}

type CurrentStepResponse struct {
	ContractID  string        `json:"contract_id"`
	CurrentStep *StepResponse `json:"current_step"`
}

type AdvanceResponse struct {
	ContractID     string        `json:"contract_id"`
	ContractStatus string        `json:"contract_status"`
	CompletedStep  StepResponse  `json:"completed_step"`
	NextStep       *StepResponse `json:"next_step"`
}

type PaymentResponse struct {
	ProviderPaymentID string `json:"provider_payment_id"`
	ProviderStatus    string `json:"provider_status"`
	AdvanceResponse
}

func FromContract(c entities.ContractNegotiation) ContractResponse {
	return ContractResponse{
		ContractID:  c.ID,
		BusinessID:  c.BusinessID,
		AgencyID:    c.AgencyID,
		Title:       c.Title,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromStep(s entities.NegotiationStep, c entities.ContractNegotiation) StepResponse {
	details := s.Details
	if len(details) == 0 {
		details = json.RawMessage("{}")
	}
	return StepResponse{
		StepID:        s.ID,
		StepNumber:    s.StepNumber,
		StepType:      string(s.StepType),
		Status:        string(s.Status),
		ResponderRole: string(s.ResponderRole),
		ResponderID:   c.PartyID(s.ResponderRole),
		Round:         s.Round,
		ResponseType:  string(s.ResponseType),
		Details:       details,
		CreatedAt:     s.CreatedAt,
		CompletedAt:   s.CompletedAt,
	}
}

func fromStepPtr(s *entities.NegotiationStep, c entities.ContractNegotiation) *StepResponse {
	if s == nil {
		return nil
	}
	res := FromStep(*s, c)
	return &res
}

func FromNegotiationState(state usecase.NegotiationState) NegotiationResponse {
	steps := make([]StepResponse, 0, len(state.Steps))
	for _, s := range state.Steps {
		steps = append(steps, FromStep(s, state.Contract))
	}
	return NegotiationResponse{
		Contract:      FromContract(state.Contract),
		Steps:         steps,
		CurrentStep:   fromStepPtr(state.CurrentStep, state.Contract),
		PreviousOffer: state.PreviousOffer,
	}
}

func FromCurrentStep(contractID string, s *entities.NegotiationStep) CurrentStepResponse {
	var current *StepResponse
	if s != nil {
		res := FromStep(*s, entities.ContractNegotiation{})
		current = &res
	}
	return CurrentStepResponse{ContractID: contractID, CurrentStep: current}
}

func FromAdvanceResult(res usecase.AdvanceResult) AdvanceResponse {
	return AdvanceResponse{
		ContractID:     res.Contract.ID,
		ContractStatus: string(res.Contract.Status),
		CompletedStep:  FromStep(res.CompletedStep, res.Contract),
		NextStep:       fromStepPtr(res.NextStep, res.Contract),
	}
}

func FromPaymentResult(res usecase.PaymentResult) PaymentResponse {
	return PaymentResponse{
		ProviderPaymentID: res.ProviderPaymentID,
		ProviderStatus:    res.ProviderStatus,
		AdvanceResponse:   FromAdvanceResult(res.Advance),
	}
}
