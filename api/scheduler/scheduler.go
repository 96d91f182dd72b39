package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pairpad/pairpad-api/databases"
)

// Scheduler handles periodic background jobs for the session service.
// Its one job today is sweeping orphaned presence records: the departure
// hook is best-effort, so a crashed client leaves its participant document
// behind and readers would otherwise see ghosts forever.
type Scheduler struct {
	cron    *cron.Cron
	PDB     databases.ParticipantDatabase
	MaxIdle time.Duration
}

// NewScheduler creates a new scheduler instance. A participant is considered
// stale when its lastActive is older than MaxIdle, six missed heartbeats by
// default.
func NewScheduler(pdb databases.ParticipantDatabase) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		PDB:     pdb,
		MaxIdle: 2 * time.Minute,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("@every 1m", s.SweepStaleParticipants)
	if err != nil {
		zap.S().Errorw("failed to register presence sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Presence sweep scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Presence sweep scheduler stopped")
}

// SweepStaleParticipants deletes presence records whose lastActive predates
// the staleness cutoff. The delete is idempotent, so a sweep racing a
// departing client is harmless.
func (s *Scheduler) SweepStaleParticipants() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-s.MaxIdle)
	removed, err := s.PDB.SweepStale(ctx, cutoff)
	if err != nil {
		zap.S().Errorw("failed to sweep stale participants", "error", err)
		return
	}
	if removed > 0 {
		zap.S().Infow("swept stale participants", "removed", removed, "cutoff", cutoff)
	}
}
