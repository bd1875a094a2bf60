package handlers

import (
	"errors"
	"log"
	"net/http"

	request "waste_negotiation/internal/adapter/http/dto/request"
	response "waste_negotiation/internal/adapter/http/dto/response"
	"waste_negotiation/internal/domain/engine"
	"waste_negotiation/internal/domain/schemas"
	"waste_negotiation/internal/usecase"
	"waste_negotiation/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidNegotiationPayload = pkg.NewDomainErrorSimple("INVALID_NEGOTIATION_INPUT", "Invalid negotiation payload", http.StatusBadRequest)
	errInvalidStepResponse       = pkg.NewDomainErrorSimple("INVALID_STEP_RESPONSE", "Invalid step response payload", http.StatusBadRequest)
)

// NegotiationHandler exposes the negotiation controller over HTTP.
type NegotiationHandler struct {
	usecase usecase.INegotiationUseCase
}

func NewNegotiationHandler(uc usecase.INegotiationUseCase) *NegotiationHandler {
	return &NegotiationHandler{usecase: uc}
}

// CreateNegotiation godoc
// @Summary      Open a negotiation
// @Description  Creates the contract with the business's initial offer and a pending counter_offer for the agency.
// @Tags         negotiations
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateNegotiationRequest  true  "Negotiation"
// @Success      201   {object}  response.NegotiationResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      422   {object}  pkg.HTTPError
// @Failure      503   {object}  pkg.HTTPError
// @Router       /negotiations [post]
func (h *NegotiationHandler) CreateNegotiation(c *gin.Context) {
	var payload request.CreateNegotiationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidNegotiationPayload.HTTPStatus, errInvalidNegotiationPayload.ToHTTPError())
		return
	}

	state, err := h.usecase.CreateNegotiation(c.Request.Context(), usecase.CreateNegotiationCommand{
		BusinessID:   payload.BusinessID,
		AgencyID:     payload.AgencyID,
		Title:        payload.Title,
		Description:  payload.Description,
		InitialOffer: payload.InitialOffer,
	})
	if err != nil {
		appErr := mapNegotiationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[negotiation][handler] created contract_id=%s", state.Contract.ID)

	c.JSON(http.StatusCreated, response.FromNegotiationState(state))
}

// GetNegotiation godoc
// @Summary  Load a negotiation with its full step history
// @Tags     negotiations
// @Produce  json
// @Param    contract_id  path      string  true  "Contract ID"
// @Success  200          {object}  response.NegotiationResponse
// @Failure  404          {object}  pkg.HTTPError
// @Failure  503          {object}  pkg.HTTPError
// @Router   /negotiations/{contract_id} [get]
func (h *NegotiationHandler) GetNegotiation(c *gin.Context) {
	state, err := h.usecase.GetNegotiation(c.Request.Context(), c.Param("contract_id"))
	if err != nil {
		appErr := mapNegotiationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromNegotiationState(state))
}

// GetCurrentStep godoc
// @Summary  Load the pending step of a negotiation
// @Tags     negotiations
// @Produce  json
// @Param    contract_id  path      string  true  "Contract ID"
// @Success  200          {object}  response.CurrentStepResponse
// @Failure  404          {object}  pkg.HTTPError
// @Failure  503          {object}  pkg.HTTPError
// @Router   /negotiations/{contract_id}/current-step [get]
func (h *NegotiationHandler) GetCurrentStep(c *gin.Context) {
	contractID := c.Param("contract_id")
	step, err := h.usecase.GetCurrentStep(c.Request.Context(), contractID)
	if err != nil {
		appErr := mapNegotiationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCurrentStep(contractID, step))
}

// SubmitResponse godoc
// @Summary      Answer the current step
// @Description  Completes the step and creates its successor atomically. A stale step_id returns 409 and the client should reload.
// @Tags         negotiations
// @Accept       json
// @Produce      json
// @Param        contract_id  path      string                        true  "Contract ID"
// @Param        step_id      path      string                        true  "Step ID"
// @Param        body         body      request.StepResponseRequest   true  "Response"
// @Success      200          {object}  response.AdvanceResponse
// @Failure      400          {object}  pkg.HTTPError
// @Failure      404          {object}  pkg.HTTPError
// @Failure      409          {object}  pkg.HTTPError
// @Failure      422          {object}  pkg.HTTPError
// @Failure      503          {object}  pkg.HTTPError
// @Router       /negotiations/{contract_id}/steps/{step_id}/responses [post]
func (h *NegotiationHandler) SubmitResponse(c *gin.Context) {
	contractID := c.Param("contract_id")
	stepID := c.Param("step_id")

	var payload request.StepResponseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidStepResponse.HTTPStatus, errInvalidStepResponse.ToHTTPError())
		return
	}
	responseType, err := payload.ResolveResponseType()
	if err != nil {
		c.JSON(errInvalidStepResponse.HTTPStatus, errInvalidStepResponse.WithDetails([]string{"response_type"}).ToHTTPError())
		return
	}

	res, err := h.usecase.SubmitResponse(c.Request.Context(), contractID, stepID, responseType, payload.Details)
	if err != nil {
		log.Printf("[negotiation][handler] submit failed contract_id=%s step_id=%s err=%v", contractID, stepID, err)
		appErr := mapNegotiationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromAdvanceResult(res))
}

func mapNegotiationError(err error) *pkg.AppError {
	var validationErr *schemas.ValidationError
	var illegalErr *engine.IllegalTransitionError

	switch {
	case errors.As(err, &validationErr):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", validationErr.Error(), http.StatusUnprocessableEntity).
			WithDetails(validationErr.Fields)
	case errors.As(err, &illegalErr):
		return pkg.NewDomainErrorSimple("ILLEGAL_TRANSITION", illegalErr.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainErrorSimple("STEP_CONFLICT", "Step was already answered; reload the negotiation", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidContractID), errors.Is(err, usecase.ErrInvalidStepID), errors.Is(err, usecase.ErrInvalidParties):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNegotiationNotFound):
		return pkg.NewDomainErrorSimple("NEGOTIATION_NOT_FOUND", "Negotiation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPersistence):
		return pkg.NewDomainError("PERSISTENCE_ERROR", "Negotiation storage unavailable, retry later", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
