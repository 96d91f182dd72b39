package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/pairpad/pairpad-api/api/handlers"
	"github.com/pairpad/pairpad-api/realtime"
)

type stubSubscriber struct {
	snapshots []realtime.Snapshot
	err       error

	mu           sync.Mutex
	gotSessionID string
	gotPresented string
	gotName      string
	unsubscribes atomic.Int64
}

func (s *stubSubscriber) Subscribe(_ context.Context, sessionID, presented, name string, onUpdate func(realtime.Snapshot)) (func(), error) {
	s.mu.Lock()
	s.gotSessionID = sessionID
	s.gotPresented = presented
	s.gotName = name
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, snap := range s.snapshots {
		onUpdate(snap)
	}
	return func() { s.unsubscribes.Add(1) }, nil
}

func (s *stubSubscriber) seen() (sessionID, presented, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gotSessionID, s.gotPresented, s.gotName
}

func newStreamServer(sub handlers.Subscriber) *httptest.Server {
	r := mux.NewRouter()
	r.Handle("/api/v1/session/{session_id}/stream",
		http.HandlerFunc(handlers.Stream{Streamer: sub}.StreamHandler)).Methods("GET")
	return httptest.NewServer(r)
}

func wsURL(ts *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func TestStreamHandlerPushesSnapshots(t *testing.T) {
	output := "done"
	sub := &stubSubscriber{snapshots: []realtime.Snapshot{
		{Files: map[string]string{"main.js": "console.log(1)"}, Output: &output},
	}}
	ts := newStreamServer(sub)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial(
		wsURL(ts, "/api/v1/session/abc-123/stream?name=Alice&token=tok123"), nil)
	assert.NoError(t, err)

	var snap realtime.Snapshot
	conn.SetReadDeadline(time.Now().Add(time.Second))
	assert.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, map[string]string{"main.js": "console.log(1)"}, snap.Files)
	if assert.NotNil(t, snap.Output) {
		assert.Equal(t, "done", *snap.Output)
	}

	sessionID, presented, name := sub.seen()
	assert.Equal(t, "abc-123", sessionID)
	assert.Equal(t, "tok123", presented)
	assert.Equal(t, "Alice", name)

	conn.Close()
	assert.Eventually(t, func() bool {
		return sub.unsubscribes.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStreamHandlerPrefersAuthorizationHeader(t *testing.T) {
	sub := &stubSubscriber{}
	ts := newStreamServer(sub)
	defer ts.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer header-token")
	conn, _, err := websocket.DefaultDialer.Dial(
		wsURL(ts, "/api/v1/session/abc-123/stream?token=query-token"), header)
	assert.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool {
		_, presented, _ := sub.seen()
		return presented == "header-token"
	}, time.Second, 10*time.Millisecond)
}

func TestStreamHandlerClosesOnSubscribeFailure(t *testing.T) {
	sub := &stubSubscriber{err: context.DeadlineExceeded}
	ts := newStreamServer(sub)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/api/v1/session/abc-123/stream"), nil)
	assert.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = conn.ReadMessage()
	if assert.Error(t, err) {
		assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation))
	}
}
