package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"challenge_league_api/pkg/auth"
	"challenge_league_api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// UserIDKey holds the authenticated user id in the gin context.
	UserIDKey = "auth_user_id"

	AdminKeyHeader = "X-Admin-Key"
)

type Authorization struct {
	tokens   *auth.TokenAuth
	required bool
	adminKey string
}

// NewAuthorization builds the bearer token check. When required is false requests without an
// Authorization header pass through; a header that is present must still be valid.
// An empty adminKey closes every AdminOnly route.
func NewAuthorization(tokens *auth.TokenAuth, required bool, adminKey string) *Authorization {
	return &Authorization{
		tokens:   tokens,
		required: required,
		adminKey: adminKey,
	}
}

func (a *Authorization) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		header := c.GetHeader("Authorization")
		if header == "" {
			if a.required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
				return
			}
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		userID, err := a.tokens.Parse(token)
		if err != nil {
			log.Info("rejected access token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired access token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// AdminOnly guards the batch routes run by the scheduler or an operator. The caller must send
// the configured key in the X-Admin-Key header.
func (a *Authorization) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		key := c.GetHeader(AdminKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if a.adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(a.adminKey)) != 1 {
			log.Info("unauthorized access attempt to admin endpoint", zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Next()
	}
}

// AuthenticatedUser returns the user id set by Authenticate, if any.
func AuthenticatedUser(c *gin.Context) (int64, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
