package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// wsMessage is one inbound frame on the chat stream.
type wsMessage struct {
	Message string `json:"message"`
}

// handleWS upgrades GET /ws?session_id=… to a WebSocket and serves chat turns
// until the client disconnects. Each inbound message produces exactly one
// outbound [chatResponse] frame. The connection counts toward the
// active-session gauge for its lifetime.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "session", sessionID, "err", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "server error")

	ctx := r.Context()
	s.metrics.SessionStarted(ctx)
	defer s.metrics.SessionEnded(ctx)

	slog.Info("chat session connected", "session", sessionID)
	defer slog.Info("chat session disconnected", "session", sessionID)

	for {
		var in wsMessage
		if err := wsjson.Read(ctx, conn, &in); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				errors.Is(err, context.Canceled) {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			slog.Debug("websocket read ended", "session", sessionID, "err", err)
			return
		}
		if in.Message == "" {
			continue
		}

		resp, score, err := s.responder.Respond(ctx, sessionID, "web", in.Message)
		if err != nil {
			slog.Error("chat turn failed", "session", sessionID, "err", err)
			_ = wsjson.Write(ctx, conn, map[string]string{"error": "failed to process message"})
			continue
		}

		out := chatResponse{
			Reply:     resp.Text,
			Category:  string(resp.Category),
			Sentiment: score,
			Emotion:   string(resp.Emotion),
			Stressor:  string(resp.Stressor),
		}
		if err := wsjson.Write(ctx, conn, out); err != nil {
			slog.Debug("websocket write ended", "session", sessionID, "err", err)
			return
		}
	}
}
