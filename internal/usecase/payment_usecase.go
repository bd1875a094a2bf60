package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"waste_negotiation/internal/domain/engine"
	"waste_negotiation/internal/domain/entities"
	"waste_negotiation/internal/domain/schemas"
	"waste_negotiation/internal/usecase/interfaces"
)

var (
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrStepNotPayable                 = errors.New("current step is not a payment step")
	ErrNoAcceptedOffer                = errors.New("negotiation has no accepted price")
	ErrPaymentNotSettled              = errors.New("payment is not settled yet")
	ErrPaymentInProgress              = errors.New("a payment for this step is already being processed")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

type PaymentResult struct {
	ProviderPaymentID string
	ProviderStatus    string
	Advance           AdvanceResult
}

// IPaymentUseCase settles the payment step of a negotiation.
//
// The amount charged is always the price of the accepted offer; a caller
// supplied transaction_amount is overwritten. The step id is the charge's
// idempotency key, so retrying a step never charges twice.
type IPaymentUseCase interface {
	PayStep(ctx context.Context, contractID, stepID string, mpPayload json.RawMessage) (PaymentResult, error)
}

type PaymentUseCase struct {
	negotiations INegotiationUseCase
	gateway      interfaces.IPaymentGateway

	mu       sync.Mutex
	inFlight map[string]struct{}
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(negotiations INegotiationUseCase, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{negotiations: negotiations, gateway: gateway, inFlight: make(map[string]struct{})}
}

func (u *PaymentUseCase) PayStep(ctx context.Context, contractID, stepID string, mpPayload json.RawMessage) (PaymentResult, error) {
	log.Printf("[payment][usecase] pay-step start contract_id=%q step_id=%q payload_len=%d", contractID, stepID, len(mpPayload))
	contractID = strings.TrimSpace(contractID)
	stepID = strings.TrimSpace(stepID)
	if contractID == "" {
		return PaymentResult{}, ErrInvalidContractID
	}
	if stepID == "" {
		return PaymentResult{}, ErrInvalidStepID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		log.Printf("[payment][usecase] invalid payload contract_id=%s", contractID)
		return PaymentResult{}, ErrInvalidMPPayload
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured contract_id=%s", contractID)
		return PaymentResult{}, errors.New("payment gateway not configured")
	}

	if !u.claim(stepID) {
		log.Printf("[payment][usecase] payment already in flight contract_id=%s step_id=%s", contractID, stepID)
		return PaymentResult{}, ErrPaymentInProgress
	}
	defer u.release(stepID)

	state, err := u.negotiations.GetNegotiation(ctx, contractID)
	if err != nil {
		return PaymentResult{}, err
	}
	current := state.CurrentStep
	if current == nil || current.ID != stepID {
		log.Printf("[payment][usecase] step is not current contract_id=%s step_id=%s", contractID, stepID)
		return PaymentResult{}, fmt.Errorf("%w: %w", ErrConflict, engine.ErrStaleStep)
	}
	if current.StepType != entities.StepTypePayment {
		return PaymentResult{}, ErrStepNotPayable
	}

	offer, err := schemas.DecodeOffer(entities.StepTypeCounterOffer, state.PreviousOffer)
	if err != nil || offer.Price == nil {
		log.Printf("[payment][usecase] accepted offer unreadable contract_id=%s err=%v", contractID, err)
		return PaymentResult{}, ErrNoAcceptedOffer
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		return PaymentResult{}, ErrInvalidMPPayload
	}
	if !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Printf("[payment][usecase] missing payment_method_id contract_id=%s", contractID)
		return PaymentResult{}, ErrInvalidMPPayload
	}
	ensurePayerDefaults(reqMap)
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = contractID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Waste collection contract %s", contractID)
	}
	reqMap["transaction_amount"] = *offer.Price
	payload, err := json.Marshal(reqMap)
	if err != nil {
		return PaymentResult{}, err
	}

	log.Printf("[payment][usecase] calling payment gateway contract_id=%s step_id=%s amount=%.2f", contractID, stepID, *offer.Price)
	providerPaymentID, providerStatus, _, err := u.gateway.CreatePayment(ctx, stepID, payload)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed contract_id=%s err=%v", contractID, err)
		return PaymentResult{}, mapGatewayError(err)
	}
	log.Printf("[payment][usecase] payment gateway success contract_id=%s provider_payment_id=%s provider_status=%s", contractID, providerPaymentID, providerStatus)

	status, settled := settlementStatus(providerStatus)
	if !settled {
		return PaymentResult{ProviderPaymentID: providerPaymentID, ProviderStatus: providerStatus},
			fmt.Errorf("%w: provider status %s", ErrPaymentNotSettled, providerStatus)
	}

	details, err := json.Marshal(schemas.Payment{
		Method:            paymentMethodOf(reqMap),
		ProviderReference: &providerPaymentID,
		PaymentStatus:     status,
	})
	if err != nil {
		return PaymentResult{}, err
	}

	advance, err := u.negotiations.SubmitResponse(ctx, contractID, stepID, entities.ResponsePayment, details)
	if err != nil {
		// The provider already charged; the reference is logged for reconciliation.
		log.Printf("[payment][usecase] submit after charge failed contract_id=%s provider_payment_id=%s err=%v", contractID, providerPaymentID, err)
		return PaymentResult{ProviderPaymentID: providerPaymentID, ProviderStatus: providerStatus}, err
	}
	log.Printf("[payment][usecase] pay-step success contract_id=%s payment_status=%s contract_status=%s", contractID, status, advance.Contract.Status)
	return PaymentResult{ProviderPaymentID: providerPaymentID, ProviderStatus: providerStatus, Advance: advance}, nil
}

// claim marks stepID as being charged by this process. Charges running in
// other processes are deduplicated by the provider through the idempotency key.
func (u *PaymentUseCase) claim(stepID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, busy := u.inFlight[stepID]; busy {
		return false
	}
	u.inFlight[stepID] = struct{}{}
	return true
}

func (u *PaymentUseCase) release(stepID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.inFlight, stepID)
}

func settlementStatus(providerStatus string) (schemas.PaymentStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "approved":
		return schemas.PaymentStatusPaid, true
	case "rejected", "cancelled", "refunded", "charged_back":
		return schemas.PaymentStatusFailed, true
	}
	return "", false
}

// paymentMethodOf maps Mercado Pago's payment_type_id/payment_method_id to
// the closed set of methods recorded on the step.
func paymentMethodOf(req map[string]any) schemas.PaymentMethod {
	methodID, _ := req["payment_method_id"].(string)
	typeID, _ := req["payment_type_id"].(string)
	methodID = strings.ToLower(strings.TrimSpace(methodID))

	if methodID == "pix" {
		return schemas.PaymentMethodPix
	}
	if strings.HasPrefix(methodID, "bol") {
		return schemas.PaymentMethodBoleto
	}
	switch strings.ToLower(strings.TrimSpace(typeID)) {
	case "bank_transfer":
		return schemas.PaymentMethodBankTransfer
	case "ticket":
		return schemas.PaymentMethodBoleto
	case "account_money", "digital_wallet":
		return schemas.PaymentMethodWallet
	case "atm":
		return schemas.PaymentMethodCash
	}
	return schemas.PaymentMethodCard
}

func mapGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func ensurePayerDefaults(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		payer = map[string]any{}
		m["payer"] = payer
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if _, hasID := payer["id"]; hasID || hasNonEmptyString(payer, "email") {
		return
	}
	if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
		payer["email"] = email
	} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
		payer["email"] = "test_user_br@testuser.com"
	}
}
