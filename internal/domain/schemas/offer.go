package schemas

import (
	"encoding/json"

	"waste_negotiation/internal/domain/entities"
)

// Offer is the payload of initial_offer and counter_offer steps.
//
// Pointer fields distinguish "absent" from a zero value so validation can
// report missing fields. Empty strings are accepted wherever a field is only
// required to be present.
type Offer struct {
	Price           *float64         `json:"price" validate:"required,gte=0"`
	ServiceScope    *ServiceScope    `json:"serviceScope" validate:"required"`
	Timeline        Timeline         `json:"timeline"`
	AdditionalTerms *AdditionalTerms `json:"additionalTerms" validate:"required"`
}

type ServiceScope struct {
	WasteTypes          []string `json:"wasteTypes" validate:"required,min=1,distinct,dive,notblank"`
	CollectionFrequency *string  `json:"collectionFrequency" validate:"required"`
	EstimatedVolume     *float64 `json:"estimatedVolume,omitempty" validate:"omitempty,gte=0"`
	AdditionalServices  []string `json:"additionalServices" validate:"required,distinct,dive,notblank"`
}

type Timeline struct {
	ContractDurationMonths *float64 `json:"contractDurationMonths" validate:"required,months"`
}

type AdditionalTerms struct {
	PaymentTerms        *string `json:"paymentTerms" validate:"required"`
	CancellationPolicy  *string `json:"cancellationPolicy" validate:"required"`
	SpecialRequirements *string `json:"specialRequirements,omitempty"`
}

// DecodeOffer parses and validates an offer payload.
func DecodeOffer(stepType entities.StepType, raw json.RawMessage) (Offer, error) {
	var o Offer
	if fields := decodeObject(raw, &o); fields != nil {
		return Offer{}, newValidationError(stepType, fields)
	}
	if err := checkStruct(stepType, &o); err != nil {
		return Offer{}, err
	}
	return o, nil
}
