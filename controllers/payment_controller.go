package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/parcelly/dto"
	"github.com/princinho/parcelly/payment"
	"github.com/rs/zerolog"
)

type PaymentController struct {
	gateway payment.IntentCreator
}

func NewPaymentController(gateway payment.IntentCreator) *PaymentController {
	return &PaymentController{gateway: gateway}
}

// POST /create-payment-intent
func (pc *PaymentController) CreateIntent() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreatePaymentIntentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price", "details": err.Error()})
			return
		}
		if body.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price is required"})
			return
		}

		amount, err := payment.ToMinorUnits(*body.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		secret, err := pc.gateway.CreateIntent(ctx, amount)
		if err != nil {
			serverError(c, "failed to create payment intent", err)
			return
		}

		zerolog.Ctx(ctx).Info().Int64("amount", amount).Msg("payment intent created")
		c.JSON(http.StatusOK, dto.PaymentIntentResponse{ClientSecret: secret})
	}
}
