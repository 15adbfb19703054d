package middleware

import (
	"fmt"
	"net/http"

	"challenge_league_api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns panics into a generic 500. The panic value is only echoed when exposeDetails is set.
func Recovery(exposeDetails bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Logger().Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered))

		message := "Internal Server Error"
		if exposeDetails {
			message = fmt.Sprintf("Internal Server Error: %v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
	})
}
