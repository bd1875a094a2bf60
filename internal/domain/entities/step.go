package entities

import (
	"encoding/json"
	"time"
)

// PartyRole identifies which counterparty is expected to act on a step.
type PartyRole string

const (
	PartyRoleBusiness PartyRole = "business"
	PartyRoleAgency   PartyRole = "agency"
)

func (r PartyRole) Other() PartyRole {
	if r == PartyRoleBusiness {
		return PartyRoleAgency
	}
	return PartyRoleBusiness
}

func (r PartyRole) Valid() bool {
	return r == PartyRoleBusiness || r == PartyRoleAgency
}

// StepType is the closed set of negotiation stages.
//
// Adding a value here requires a matching branch in the engine transition
// switch; engine tests iterate StepTypes() to catch a missing one.
type StepType string

const (
	StepTypeInitialOffer   StepType = "initial_offer"
	StepTypeCounterOffer   StepType = "counter_offer"
	StepTypeClarification  StepType = "clarification"
	StepTypeContractReview StepType = "contract_review"
	StepTypeSignature      StepType = "signature"
	StepTypePayment        StepType = "payment"
)

func StepTypes() []StepType {
	return []StepType{
		StepTypeInitialOffer,
		StepTypeCounterOffer,
		StepTypeClarification,
		StepTypeContractReview,
		StepTypeSignature,
		StepTypePayment,
	}
}

func (t StepType) Valid() bool {
	for _, v := range StepTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// IsOffer reports whether steps of this type carry an offer payload.
func (t StepType) IsOffer() bool {
	return t == StepTypeInitialOffer || t == StepTypeCounterOffer
}

type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusSuperseded StepStatus = "superseded"
)

// ResponseType is the action a responder takes on the current step.
type ResponseType string

const (
	// ResponseInitial marks the initial offer, completed at creation.
	ResponseInitial       ResponseType = "initial"
	ResponseAccept        ResponseType = "accept"
	ResponseCounter       ResponseType = "counter"
	ResponseClarification ResponseType = "clarification"
	ResponseReject        ResponseType = "reject"
	ResponseSignature     ResponseType = "signature"
	ResponsePayment       ResponseType = "payment"
	ResponseCancel        ResponseType = "cancel"
)

// NegotiationStep is one stage of a negotiation.
//
// Storage model (DynamoDB):
//   - PK: contract_id
//   - SK: step_number
//
// Details is kept as raw JSON: its shape depends on StepType and it is
// persisted byte for byte. Once Status is completed it never changes.
type NegotiationStep struct {
	ID            string          `json:"id"`
	ContractID    string          `json:"contract_id"`
	StepNumber    int             `json:"step_number"`
	StepType      StepType        `json:"step_type"`
	Status        StepStatus      `json:"status"`
	ResponderRole PartyRole       `json:"responder_role"`
	Round         int             `json:"round,omitempty"`
	ResponseType  ResponseType    `json:"response_type,omitempty"`
	Details       json.RawMessage `json:"details,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

func (s NegotiationStep) IsPending() bool {
	return s.Status == StepStatusPending
}
