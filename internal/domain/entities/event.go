package entities

import "time"

type NegotiationEventKind string

const (
	NegotiationEventCreated  NegotiationEventKind = "created"
	NegotiationEventAdvanced NegotiationEventKind = "advanced"
	NegotiationEventConflict NegotiationEventKind = "conflict"
)

// NegotiationEvent is published to listeners after the state of a negotiation
// changed (or a write lost a race) so other views can refresh.
type NegotiationEvent struct {
	Kind           NegotiationEventKind
	ContractID     string
	StepID         string
	StepType       StepType
	ResponseType   ResponseType
	NextStepType   StepType
	ContractStatus ContractStatus
	OccurredAt     time.Time
}
