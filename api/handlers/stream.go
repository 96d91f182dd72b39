package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pairpad/pairpad-api/realtime"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// Subscriber abstracts the stream normalizer for testing
type Subscriber interface {
	Subscribe(ctx context.Context, sessionID, presented, name string, onUpdate func(realtime.Snapshot)) (func(), error)
}

// Stream exported for testing purposes
type Stream struct {
	Streamer Subscriber
}

// StreamHandler upgrades to a WebSocket and pushes normalized session
// snapshots to the client until it disconnects. Subscribing registers the
// client's presence; closing the connection tears it down (heartbeat stopped,
// participant record deleted best-effort).
func (h Stream) StreamHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["session_id"]
	presented := bearerToken(r)
	name := r.URL.Query().Get("name")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "sessionId", sessionID, "error", err)
		return
	}

	// snapshots arrive from the normalizer's pump goroutine; serialize writes
	var writeMu sync.Mutex
	onUpdate := func(snap realtime.Snapshot) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(snap); err != nil {
			zap.S().Debugw("websocket write failed", "sessionId", sessionID, "error", err)
		}
	}

	unsubscribe, err := h.Streamer.Subscribe(r.Context(), sessionID, presented, name, onUpdate)
	if err != nil {
		zap.S().Warnw("subscription failed", "sessionId", sessionID, "error", err)
		writeMu.Lock()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "subscription failed"))
		writeMu.Unlock()
		conn.Close()
		return
	}
	defer unsubscribe()

	// Keep connection alive; returns once the client goes away
	for {
		if _, _, err := conn.NextReader(); err != nil {
			conn.Close()
			break
		}
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
