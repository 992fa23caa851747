package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vnkhanh/skillplus-backend/utils"
)

// TokenVerifier decodes a session token.
type TokenVerifier interface {
	Verify(token string) (*utils.Session, error)
}

// NewUpgrader allows the configured browser origins. An empty list allows all.
func NewUpgrader(origins []string) websocket.Upgrader {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(allowed) == 0 || allowed[origin] || allowed["*"]
		},
	}
}

// HandleAdminWebSocket upgrades ADMIN sessions to a live-update stream. The
// token comes from the query string because browsers cannot set headers on
// WebSocket requests.
func HandleAdminWebSocket(h *Hub, tokens TokenVerifier, upgrader websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing token"})
			return
		}
		session, err := tokens.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}
		if !session.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn().Err(err).Msg("admin ws upgrade failed")
			return
		}

		userID := session.UserID.String()
		client := h.Register(conn, userID)
		h.log.Info().Str("user_id", userID).Msg("admin ws connected")

		client.Send <- []byte(`{"type":"connected"}`)
		h.readPump(conn)

		h.log.Info().Str("user_id", userID).Msg("admin ws disconnected")
	}
}
