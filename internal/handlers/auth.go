package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"steprush-backend/internal/models"
	"steprush-backend/internal/services"
)

type AuthHandler struct {
	jwtService *services.JWTService
}

func NewAuthHandler(jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{jwtService: jwtService}
}

// GuestLogin issues a token for an anonymous player. Each token carries a
// fresh player id with its own wallet and history.
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	playerID := models.GeneratePlayerID()

	token, err := h.jwtService.GenerateToken(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create session",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"player_id": playerID,
	})
}
