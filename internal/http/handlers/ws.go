package handlers

import (
	"net/http"
	"os"

	"github.com/Medinhoo/liar/internal/logger"
	"github.com/Medinhoo/liar/internal/service"
	"github.com/Medinhoo/liar/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		playerID, name, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := ws.NewClient(playerID, name, conn, hub)
		if !hub.Register(client) {
			// one live connection per player identity
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","payload":{"code":"already_connected","message":"player already connected"}}`))
			_ = conn.Close()
			return
		}

		go client.Run()
	}
}
