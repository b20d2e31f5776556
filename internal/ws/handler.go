package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/strikerapp/striker-backend/internal/hub"
	"github.com/strikerapp/striker-backend/internal/wire"
)

const writeTimeout = 3 * time.Second

// Handler upgrades a connection and bridges it to the hub: a writer
// goroutine drains the hub-fed outbox while the reader loop forwards
// client messages. JOIN subscribes; everything else is dispatched.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // controller and overlay are served cross-origin in dev
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		out := make(chan wire.ServerMessage, 16)

		h.Inbox() <- hub.Connect{ClientID: clientID, Outbox: out}
		defer func() { h.Inbox() <- hub.Disconnect{ClientID: clientID} }()

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for msg := range out {
				payload, err := json.Marshal(msg)
				if err != nil {
					log.Error("marshal server message", zap.Error(err))
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm wire.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"ActionResult","result":{"type":"","ok":false,"error":"bad json"}}`))
				continue
			}

			if cm.Type == wire.TypeJoin {
				h.Inbox() <- hub.Subscribe{ClientID: clientID, MatchID: cm.MatchID}
				continue
			}
			h.Inbox() <- hub.FromClient{ClientID: clientID, Req: cm}
		}
	}
}
