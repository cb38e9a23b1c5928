package handler

import (
	"net/http"

	"unicare/backend/internal/hub"
	"unicare/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and attaches the caller to a room's
// live event stream. The token is taken from ?token= because browsers cannot
// set headers on websocket dials; room access is checked before upgrading.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		if bearer, ok := bearerToken(c); ok {
			tokenString = bearer
		}
	}
	actor, err := h.validateJWT(tokenString)
	if err != nil {
		abortWithError(c, err)
		return
	}

	roomID := c.Query("room_id")
	if _, err := h.Rooms.GetRoom(actor, roomID); err != nil {
		abortWithError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &hub.WebSocketClient{
		Hub:    h.Hub,
		UserID: actor.ID,
		Role:   actor.Role,
		RoomID: roomID,
		Conn:   conn,
		Send:   make(chan models.RoomEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
