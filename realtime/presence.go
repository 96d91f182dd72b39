package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pairpad/pairpad-api/databases"
)

// DefaultHeartbeatInterval is how often a membership refreshes lastActive
const DefaultHeartbeatInterval = 20 * time.Second

const presenceWriteTimeout = 5 * time.Second

// PresenceTracker registers participant liveness for a session. Every write
// is best-effort: presence is a hint, not a correctness signal, so transient
// store failures are logged and swallowed.
type PresenceTracker struct {
	DB       databases.ParticipantDatabase
	Interval time.Duration
}

// Membership is one participant's live registration. Cancel is idempotent.
type Membership struct {
	SessionID string
	UID       string

	tracker *PresenceTracker
	stop    context.CancelFunc
	once    sync.Once
}

// Join writes the participant record and starts the heartbeat. It never
// fails: a store that is down simply means the participant is invisible
// until the next heartbeat lands.
func (t *PresenceTracker) Join(sessionID string, id Identity, name string) *Membership {
	if name == "" {
		name = guestName(id.UID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), presenceWriteTimeout)
	t.report("presence join", t.DB.Join(ctx, sessionID, id.UID, name), sessionID, id.UID)
	cancel()

	hbCtx, stop := context.WithCancel(context.Background())
	m := &Membership{SessionID: sessionID, UID: id.UID, tracker: t, stop: stop}
	go t.heartbeat(hbCtx, sessionID, id.UID)
	return m
}

func (t *PresenceTracker) heartbeat(ctx context.Context, sessionID, uid string) {
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			wctx, cancel := context.WithTimeout(context.Background(), presenceWriteTimeout)
			t.report("presence heartbeat", t.DB.Heartbeat(wctx, sessionID, uid), sessionID, uid)
			cancel()
		}
	}
}

func (t *PresenceTracker) report(op string, err error, sessionID, uid string) {
	switch Classify(err) {
	case Ok:
	case Transient:
		zap.S().Debugw(op+" skipped, store unreachable", "sessionId", sessionID, "uid", uid, "error", err)
	default:
		zap.S().Warnw(op+" failed", "sessionId", sessionID, "uid", uid, "error", err)
	}
}

// Cancel stops the heartbeat and best-effort deletes the participant record.
// Calling it more than once is safe and does not re-delete.
func (m *Membership) Cancel() {
	m.once.Do(func() {
		m.stop()
		ctx, cancel := context.WithTimeout(context.Background(), presenceWriteTimeout)
		defer cancel()
		m.tracker.report("presence leave", m.tracker.DB.Leave(ctx, m.SessionID, m.UID), m.SessionID, m.UID)
	})
}

func guestName(uid string) string {
	short := uid
	if len(short) > 5 {
		short = short[:5]
	}
	return fmt.Sprintf("Guest-%s", short)
}
