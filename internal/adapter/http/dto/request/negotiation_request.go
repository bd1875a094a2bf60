package request

import (
	"encoding/json"
	"errors"
	"strings"

	"waste_negotiation/internal/domain/entities"
)

var (
	ErrInvalidResponseType = errors.New("invalid response_type")
)

// CreateNegotiationRequest opens a negotiation. initial_offer follows the
// offer schema (price, serviceScope, timeline, additionalTerms).
type CreateNegotiationRequest struct {
	BusinessID   string          `json:"business_id" binding:"required"`
	AgencyID     string          `json:"agency_id" binding:"required"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	InitialOffer json.RawMessage `json:"initial_offer" binding:"required" swaggertype:"object"`
}

// StepResponseRequest answers the current step of a negotiation.
type StepResponseRequest struct {
	ResponseType string          `json:"response_type" binding:"required"`
	Details      json.RawMessage `json:"details" swaggertype:"object"`
}

// ResolveResponseType accepts the responses a client may submit; "initial"
// is reserved for negotiation creation.
func (r StepResponseRequest) ResolveResponseType() (entities.ResponseType, error) {
	rt := entities.ResponseType(strings.ToLower(strings.TrimSpace(r.ResponseType)))
	switch rt {
	case entities.ResponseAccept,
		entities.ResponseCounter,
		entities.ResponseClarification,
		entities.ResponseReject,
		entities.ResponseSignature,
		entities.ResponsePayment,
		entities.ResponseCancel:
		return rt, nil
	}
	return "", ErrInvalidResponseType
}
