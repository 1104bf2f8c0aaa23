package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"steprush-backend/internal/services"
)

func AuthMiddleware(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Query("token")
			if tokenString == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
				c.Abort()
				return
			}
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("player_id", claims.PlayerID)

		c.Next()
	}
}

// RateLimitMiddleware throttles the mutating game endpoints. A nil
// limiter (no redis configured) disables throttling entirely.
func RateLimitMiddleware(limiter *services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		playerID := c.GetString("player_id")
		if playerID == "" {
			c.Next()
			return
		}

		path := c.Request.URL.Path

		var limit int
		switch {
		case strings.Contains(path, "/games/start"):
			limit = services.RateLimitStarts
		case strings.Contains(path, "/games/step"):
			limit = services.RateLimitSteps
		case strings.Contains(path, "/games/cashout"):
			limit = services.RateLimitCashouts
		default:
			c.Next()
			return
		}

		allowed, err := limiter.Allow(playerID, path, limit, time.Minute)
		if err != nil || !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": time.Minute.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
