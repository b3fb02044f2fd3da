package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"baselineexplorer/internal/catalog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades the request, registers the client with the current
// view and keeps it registered until it disconnects.
func WSHandler(hub *Hub, cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		if err := hub.JoinWS(ws, cat); err != nil {
			hub.logger.Printf("[ws] welcome failed: %v", err)
			_ = ws.Close()
			return
		}
		hub.logger.Println("[ws] client connected")

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
		hub.logger.Println("[ws] client disconnected")
	}
}
