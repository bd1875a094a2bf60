package routes

import (
	"waste_negotiation/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathNegotiations = "/negotiations"
)

// addNegotiationRoutes registers the negotiation endpoints. limit guards the
// writes only.
func addNegotiationRoutes(rg *gin.RouterGroup, negotiationHandler *handlers.NegotiationHandler, paymentHandler *handlers.PaymentHandler, limit gin.HandlerFunc) {
	negotiations := rg.Group(PathNegotiations)
	{
		negotiations.POST("", limit, negotiationHandler.CreateNegotiation)
		negotiations.GET("/:contract_id", negotiationHandler.GetNegotiation)
		negotiations.GET("/:contract_id/current-step", negotiationHandler.GetCurrentStep)
		negotiations.POST("/:contract_id/steps/:step_id/responses", limit, negotiationHandler.SubmitResponse)
		negotiations.POST("/:contract_id/steps/:step_id/payments", limit, paymentHandler.PayStep)
	}
}
