package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coder/websocket"

	"github.com/mindweave/sevenmind/internal/observe"
)

// handleProgress handles GET /v1/conversations/{conversationID}/progress.
// It upgrades to a WebSocket and streams one JSON event per pipeline phase
// transition until the client disconnects.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("conversationID")
	log := observe.Logger(r.Context())

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Warn("websocket accept failed", "conversation_id", conversationID, "err", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	events, cancel := s.app.Progress().Subscribe(conversationID)
	defer cancel()

	// Reads are discarded; their only purpose is detecting disconnects and
	// answering control frames.
	ctx := conn.CloseRead(r.Context())

	log.Debug("progress stream opened", "conversation_id", conversationID)

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "client gone")
			return
		case ev, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				log.Error("failed to marshal progress event", "err", err)
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Debug("progress stream write failed",
						"conversation_id", conversationID, "err", err)
				}
				return
			}
		}
	}
}
