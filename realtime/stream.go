package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pairpad/pairpad-api/databases"
	"github.com/pairpad/pairpad-api/models"
)

// Snapshot is what subscribers receive for every change notification. A nil
// Files map serializes as null and means the snapshot reported no files
// field, not that the session has zero files; consumers keep their previous
// copy in that case. An emptied session arrives as an empty non-nil map.
type Snapshot struct {
	Files  map[string]string `json:"files"`
	Output *string           `json:"output,omitempty"`
}

// Streamer subscribes consumers to a session document's change
// notifications, repairing the legacy nested files shape on the fly and
// emitting normalized snapshots. Subscribing also registers presence for the
// caller; unsubscribing tears both down.
type Streamer struct {
	Sessions databases.SessionDatabase
	Presence *PresenceTracker
	Identity *IdentityProvider
}

type changeEvent struct {
	FullDocument models.Session `bson:"fullDocument"`
}

// Subscribe opens the change stream for sessionID and invokes onUpdate for
// every notification. presented is the caller's identity token (may be
// empty), name its display name. The returned function is an idempotent
// unsubscribe. onUpdate is called from a single goroutine, in server write
// order.
func (s *Streamer) Subscribe(ctx context.Context, sessionID, presented, name string, onUpdate func(Snapshot)) (func(), error) {
	// Best-effort: create the document if a read shows it absent. An error
	// here means offline, the stream below catches up once it recovers.
	ectx, ecancel := context.WithTimeout(ctx, 5*time.Second)
	if err := s.Sessions.EnsureExists(ectx, sessionID); err != nil {
		zap.S().Debugw("session existence check failed, continuing", "sessionId", sessionID, "error", err)
	}
	ecancel()

	id, err := s.Identity.EnsureIdentity(presented)
	if err != nil {
		return nil, err
	}
	membership := s.Presence.Join(sessionID, id, name)

	streamCtx, stop := context.WithCancel(context.Background())
	stream, err := s.Sessions.Watch(streamCtx, sessionID)
	if err != nil {
		stop()
		membership.Cancel()
		return nil, err
	}

	go s.pump(streamCtx, stream, sessionID, onUpdate)

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			stop()
			membership.Cancel()
		})
	}
	return unsubscribe, nil
}

func (s *Streamer) pump(ctx context.Context, stream databases.StreamHelper, sessionID string, onUpdate func(Snapshot)) {
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stream.Close(cctx); err != nil {
			zap.S().Debugw("change stream close", "sessionId", sessionID, "error", err)
		}
	}()

	// Single-slot in-flight repair token: at most one repair write may be
	// outstanding. Notifications arriving while it is set (including the
	// echo of the repair itself) pass through without a second write.
	var repairInFlight atomic.Bool

	// The change stream only carries writes made after it opened, so emit the
	// current document first; a subscriber to a quiet session renders
	// immediately instead of waiting for the next remote write.
	rctx, rcancel := context.WithTimeout(ctx, 5*time.Second)
	doc, err := s.Sessions.FindOne(rctx, sessionID)
	rcancel()
	if err != nil {
		zap.S().Debugw("initial session read failed", "sessionId", sessionID, "error", err)
	} else {
		onUpdate(s.normalize(*doc, sessionID, &repairInFlight))
	}

	for stream.Next(ctx) {
		var ev changeEvent
		if err := stream.Decode(&ev); err != nil {
			zap.S().Warnw("failed to decode change notification", "sessionId", sessionID, "error", err)
			continue
		}

		onUpdate(s.normalize(ev.FullDocument, sessionID, &repairInFlight))
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		zap.S().Warnw("change stream ended", "sessionId", sessionID, "error", err)
	}
}

// normalize flattens the document's files and, when the stored shape is
// malformed and no repair write is already in flight, kicks one off.
func (s *Streamer) normalize(doc models.Session, sessionID string, repairInFlight *atomic.Bool) Snapshot {
	snapshot := Snapshot{Output: &doc.Output}
	if doc.Files != nil {
		flat := Flatten(doc.Files)
		if NeedsRepair(doc.Files) && len(flat) > 0 && repairInFlight.CompareAndSwap(false, true) {
			go s.repair(sessionID, flat, repairInFlight)
		}
		snapshot.Files = flat
	}
	return snapshot
}

// repair lazily migrates a malformed nested files shape back to the flat
// mapping. Failure is fine, the next malformed snapshot tries again.
func (s *Streamer) repair(sessionID string, flat map[string]string, token *atomic.Bool) {
	defer token.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.Sessions.ReplaceFiles(ctx, sessionID, flat)
	switch Classify(err) {
	case Ok:
		zap.S().Infow("repaired nested files mapping", "sessionId", sessionID, "files", len(flat))
	case Transient:
		zap.S().Debugw("files repair skipped, store unreachable", "sessionId", sessionID, "error", err)
	default:
		zap.S().Warnw("files repair failed", "sessionId", sessionID, "error", err)
	}
}
