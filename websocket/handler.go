package websocket

import (
	"log"
	"net/http"

	"techmastery/middlewares"
	"techmastery/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ProgressHandler upgrades a session-authenticated request to a websocket
// subscribed to progress events.
func ProgressHandler(store services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(middlewares.SessionCookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		userID, err := store.Get(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Failed to upgrade websocket: %v", err)
			return
		}

		client := &ProgressClient{Conn: conn, UserID: userID}
		RegisterProgressClient(client)

		// Reads only drain control frames; the hub owns all writes.
		go func() {
			defer UnregisterProgressClient(client)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
