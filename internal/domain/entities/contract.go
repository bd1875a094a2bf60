package entities

import "time"

// ContractStatus is the lifecycle of a negotiated service contract.
//
// Status only moves forward:
//   - negotiating -> active | cancelled
//   - negotiating -> completed -> active
//
// None of the terminal states is ever reversed.
type ContractStatus string

const (
	ContractStatusNegotiating ContractStatus = "negotiating"
	ContractStatusActive      ContractStatus = "active"
	ContractStatusCompleted   ContractStatus = "completed"
	ContractStatusCancelled   ContractStatus = "cancelled"
)

func (s ContractStatus) IsTerminal() bool {
	switch s {
	case ContractStatusActive, ContractStatusCompleted, ContractStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal forward move from s.
func (s ContractStatus) CanTransitionTo(next ContractStatus) bool {
	switch s {
	case ContractStatusNegotiating:
		return next == ContractStatusActive || next == ContractStatusCompleted || next == ContractStatusCancelled
	case ContractStatusCompleted:
		return next == ContractStatusActive
	}
	return false
}

// ContractNegotiation is a negotiation between a waste-generating business and
// a collection agency.
//
// Storage model (DynamoDB):
//   - PK: id
//
// The row is written once at creation; afterwards only Status/UpdatedAt change,
// and only at terminal transitions.
type ContractNegotiation struct {
	ID          string         `json:"id"`
	BusinessID  string         `json:"business_id"`
	AgencyID    string         `json:"agency_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      ContractStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PartyID returns the counterparty id acting under role.
func (c ContractNegotiation) PartyID(role PartyRole) string {
	if role == PartyRoleAgency {
		return c.AgencyID
	}
	return c.BusinessID
}
