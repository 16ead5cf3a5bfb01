package parseserver

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
)

// upgrader upgrades an HTTP connection to a WebSocket, mirroring the
// teacher's permissive CheckOrigin (appropriate for the embedding/demo
// scope here — a production front end would restrict it).
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeStream handles one WebSocket connection that parses one document
// per text frame, writing a ParseResponse frame back for each — the
// streaming counterpart to ServeParse, and the reason
// github.com/gorilla/websocket stays wired in this repository (it was the
// teacher's only third-party dependency).
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		result, err := h.pool.Parse(ctx, string(msg))
		if err != nil {
			h.log.Error("stream parse canceled", "error", err)
			return
		}

		payload, err := json.Marshal(toResponse(result))
		if err != nil {
			h.log.Error("failed to marshal stream response", "error", err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.log.Error("failed to write stream response", "error", err)
			return
		}
	}
}
