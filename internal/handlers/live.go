package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/WispAyr/Hik-Camera-Server/internal/live"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveEventsHandler upgrades the connection and subscribes the client to the
// event broadcast feed. The read loop exists only to detect disconnects; the
// dashboard never sends messages.
func LiveEventsHandler(hub *live.Hub, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Errorf("Websocket upgrade failed: %v", err)
			return
		}

		hub.Register(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Unregister(conn)
				break
			}
		}
	}
}
