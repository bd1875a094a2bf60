package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	request "waste_negotiation/internal/adapter/http/dto/request"
	response "waste_negotiation/internal/adapter/http/dto/response"
	"waste_negotiation/internal/usecase"
	"waste_negotiation/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentHandler settles the payment step through the payment gateway.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// PayStep godoc
// @Summary      Pay the accepted offer
// @Description  Charges the accepted price through Mercado Pago and completes the payment step with the outcome.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        contract_id  path      string                      true  "Contract ID"
// @Param        step_id      path      string                      true  "Payment step ID"
// @Param        body         body      request.StepPaymentRequest  true  "Mercado Pago payload"
// @Success      200          {object}  response.PaymentResponse
// @Success      202          {object}  pkg.HTTPError  "Payment is still being processed"
// @Failure      400          {object}  pkg.HTTPError
// @Failure      401          {object}  pkg.HTTPError
// @Failure      404          {object}  pkg.HTTPError
// @Failure      409          {object}  pkg.HTTPError
// @Failure      503          {object}  pkg.HTTPError
// @Router       /negotiations/{contract_id}/steps/{step_id}/payments [post]
func (h *PaymentHandler) PayStep(c *gin.Context) {
	contractID := c.Param("contract_id")
	stepID := c.Param("step_id")
	log.Printf("[payment][handler] pay start contract_id=%s step_id=%s", contractID, stepID)

	mpPayload, err := readMPPayload(c)
	if err != nil {
		log.Printf("[payment][handler] invalid payload contract_id=%s err=%v", contractID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	res, err := h.usecase.PayStep(c.Request.Context(), contractID, stepID, mpPayload)
	if err != nil {
		log.Printf("[payment][handler] pay failed contract_id=%s step_id=%s err=%v", contractID, stepID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] pay success contract_id=%s provider_payment_id=%s contract_status=%s", contractID, res.ProviderPaymentID, res.Advance.Contract.Status)

	c.JSON(http.StatusOK, response.FromPaymentResult(res))
}

// readMPPayload accepts either {"mp_payload": {...}} or the Mercado Pago
// payload itself as the request body.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New("request body is empty")
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope request.StepPaymentRequest
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.MPPayload != nil {
		wrapped := strings.TrimSpace(string(envelope.MPPayload))
		if wrapped == "" || wrapped == "null" {
			return nil, errors.New("mp_payload cannot be empty")
		}
		return envelope.MPPayload, nil
	}

	return json.RawMessage(raw), nil
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrStepNotPayable):
		return pkg.NewDomainErrorSimple("STEP_NOT_PAYABLE", "Current step is not a payment step", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNoAcceptedOffer):
		return pkg.NewDomainErrorSimple("NO_ACCEPTED_OFFER", "Negotiation has no accepted price", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentInProgress):
		return pkg.NewDomainErrorSimple("PAYMENT_IN_PROGRESS", "A payment for this step is already being processed", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotSettled):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_SETTLED", "Payment is still being processed", http.StatusAccepted)
	default:
		return mapNegotiationError(err)
	}
}
