package websocket

import (
	"encoding/json"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer. onMessage receives every
// inbound frame (browser capability events for the session's state machine);
// initial is queued before registration so a reconnecting tab sees the
// current session state as its first frame.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID uuid.UUID, initial *Envelope, onMessage func(payload []byte)) {
	client := &Client{
		Hub:       hub,
		Conn:      c,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		OnMessage: onMessage,
	}
	if initial != nil {
		if data, err := json.Marshal(initial); err == nil {
			client.Send <- data
		}
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
