package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/parcelly/utils"
	"github.com/rs/zerolog"
)

// ClaimsKey holds the verified token claims in the gin context.
const ClaimsKey = "claims"

// AuthMiddleware verifies the bearer token in Authorization. The token is
// the second whitespace-separated field of the header.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := strings.Fields(c.GetHeader("Authorization"))
		if len(fields) < 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}

		claims, err := utils.ValidateToken(fields[1], secret)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
