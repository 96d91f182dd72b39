package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pairpad/pairpad-api/api/scheduler"
	"github.com/pairpad/pairpad-api/databases/mocks"
)

func TestNewScheduler(t *testing.T) {
	s := scheduler.NewScheduler(&mocks.ParticipantDatabase{})

	assert.NotNil(t, s)
	assert.Equal(t, 2*time.Minute, s.MaxIdle)
}

func TestSweepStaleParticipants(t *testing.T) {
	pdb := &mocks.ParticipantDatabase{}

	var cutoff time.Time
	pdb.On("SweepStale", mock.Anything, mock.Anything).
		Return(int64(2), nil).Run(func(args mock.Arguments) {
		cutoff = args.Get(1).(time.Time)
	})

	s := scheduler.NewScheduler(pdb)
	s.SweepStaleParticipants()

	pdb.AssertCalled(t, "SweepStale", mock.Anything, mock.Anything)
	assert.WithinDuration(t, time.Now().UTC().Add(-s.MaxIdle), cutoff, 5*time.Second)
}

func TestSweepStaleParticipantsSwallowsStoreError(t *testing.T) {
	pdb := &mocks.ParticipantDatabase{}
	pdb.On("SweepStale", mock.Anything, mock.Anything).
		Return(int64(0), assert.AnError)

	s := scheduler.NewScheduler(pdb)

	assert.NotPanics(t, s.SweepStaleParticipants)
}

func TestStartAndStop(t *testing.T) {
	pdb := &mocks.ParticipantDatabase{}
	pdb.On("SweepStale", mock.Anything, mock.Anything).Return(int64(0), nil)

	s := scheduler.NewScheduler(pdb)

	assert.NotPanics(t, func() {
		s.Start()
		s.Stop()
	})
}
