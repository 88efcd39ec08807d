package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/parcelly/dto"
	"github.com/princinho/parcelly/utils"
)

type TokenController struct {
	secret string
}

func NewTokenController(secret string) *TokenController {
	return &TokenController{secret: secret}
}

// POST /jwt
// Signs whatever claims the caller sends, valid for one hour.
func (tc *TokenController) Issue() gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body", "details": err.Error()})
			return
		}

		token, err := utils.SignToken(payload, tc.secret, utils.TokenTTL)
		if err != nil {
			serverError(c, "failed to sign token", err)
			return
		}
		c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
	}
}
