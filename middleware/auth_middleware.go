package middleware

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gatag/api/utils"
)

const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
)

// AuthRequired accepts a JWT from the jwt_token cookie or a Bearer
// Authorization header. Service callers may instead send the static X-API-KEY
// together with X-User-ID naming the user they act for. An empty apiKey
// disables the static key.
func AuthRequired(tokens *utils.TokenManager, apiKey string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader("X-API-KEY"); apiKey != "" && key != "" {
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API key"})
				return
			}
			userID, err := strconv.Atoi(c.GetHeader("X-User-ID"))
			if err != nil || userID <= 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: X-User-ID header required with API key"})
				return
			}
			c.Set(ContextUserID, userID)
			c.Next()
			return
		}

		var candidates []string
		if cookie, err := c.Cookie("jwt_token"); err == nil && cookie != "" {
			candidates = append(candidates, cookie)
		}
		if bearer := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "); bearer != "" {
			candidates = append(candidates, bearer)
		}
		if len(candidates) == 0 {
			logger.Debug("No JWT token found in cookie or header", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
			return
		}

		// A stale cookie must not shadow a valid Authorization header.
		var (
			claims *utils.Claims
			err    error
		)
		for _, tokenString := range candidates {
			if claims, err = tokens.Validate(tokenString); err == nil {
				break
			}
		}
		if err != nil {
			logger.Info("Rejected JWT token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}
