package schemas

import (
	"encoding/json"

	"waste_negotiation/internal/domain/entities"
)

type Review struct {
	Reviewed *bool   `json:"reviewed" validate:"required"`
	Comments *string `json:"comments,omitempty"`
}

func DecodeReview(raw json.RawMessage) (Review, error) {
	var r Review
	if fields := decodeObject(raw, &r); fields != nil {
		return Review{}, newValidationError(entities.StepTypeContractReview, fields)
	}
	if err := checkStruct(entities.StepTypeContractReview, &r); err != nil {
		return Review{}, err
	}
	return r, nil
}

type Signature struct {
	SignatureBlob *string `json:"signatureBlob" validate:"required,notblank"`
	SignerName    *string `json:"signerName" validate:"required,notblank"`
	SignedAt      *string `json:"signedAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func DecodeSignature(raw json.RawMessage) (Signature, error) {
	var s Signature
	if fields := decodeObject(raw, &s); fields != nil {
		return Signature{}, newValidationError(entities.StepTypeSignature, fields)
	}
	if err := checkStruct(entities.StepTypeSignature, &s); err != nil {
		return Signature{}, err
	}
	return s, nil
}

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodPix          PaymentMethod = "pix"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodBoleto       PaymentMethod = "boleto"
	PaymentMethodWallet       PaymentMethod = "wallet"
	PaymentMethodCash         PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusFailed PaymentStatus = "failed"
)

type Payment struct {
	Method            PaymentMethod `json:"method" validate:"oneof=card pix bank_transfer boleto wallet cash"`
	ProviderReference *string       `json:"providerReference" validate:"required"`
	PaymentStatus     PaymentStatus `json:"paymentStatus" validate:"oneof=paid failed"`
}

func DecodePayment(raw json.RawMessage) (Payment, error) {
	var p Payment
	if fields := decodeObject(raw, &p); fields != nil {
		return Payment{}, newValidationError(entities.StepTypePayment, fields)
	}
	if err := checkStruct(entities.StepTypePayment, &p); err != nil {
		return Payment{}, err
	}
	return p, nil
}

// Decision is the optional payload of accept, reject and cancel responses
// that carry no schema of their own.
type Decision struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,notblank"`
}

func ValidateDecision(stepType entities.StepType, raw json.RawMessage) error {
	if IsEmpty(raw) {
		return nil
	}
	var d Decision
	if fields := decodeObject(raw, &d); fields != nil {
		return newValidationError(stepType, fields)
	}
	return checkStruct(stepType, &d)
}
