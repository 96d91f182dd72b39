package realtime

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// WriteOutcome classifies a best-effort write so that each call site can
// decide how to handle it, instead of the component swallowing everything.
type WriteOutcome int

const (
	// Ok means the write landed
	Ok WriteOutcome = iota
	// Transient means the store was unreachable or slow; safe to ignore,
	// the next subscription event retries implicitly
	Transient
	// Fatal means the write was rejected and retrying will not help
	Fatal
)

func (o WriteOutcome) String() string {
	switch o {
	case Ok:
		return "ok"
	case Transient:
		return "transient"
	default:
		return "fatal"
	}
}

// Classify maps a store error onto the outcome taxonomy
func Classify(err error) WriteOutcome {
	if err == nil {
		return Ok
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Transient
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return Transient
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return Transient
	}
	return Fatal
}
