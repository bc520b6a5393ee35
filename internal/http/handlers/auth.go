package handlers

import (
	"net/http"
	"strings"

	"github.com/Medinhoo/liar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxNameLength = 32

type AuthRequest struct {
	Name string `json:"name"`
}

// Auth issues a guest session token. The player id minted here is the
// identity a websocket connection plays under.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player name is required"})
		return
	}
	// truncate on rune boundaries so multi-byte names stay valid UTF-8
	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength])
	}

	playerID := uuid.NewString()
	token, err := service.GenerateJWT(playerID, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"player_id": playerID,
		"name":      name,
	})
}
