package models

import "time"

// Participant is the ephemeral presence record for one client in one session.
// Records are best-effort: a crashed client leaves an orphan behind, so
// lastActive is a liveness hint, not an authoritative signal.
type Participant struct {
	SessionID  string    `json:"sessionId" bson:"sessionId"`
	UID        string    `json:"uid" bson:"uid"`
	Name       string    `json:"name" bson:"name"`
	JoinedAt   time.Time `json:"joinedAt" bson:"joinedAt"`
	LastActive time.Time `json:"lastActive" bson:"lastActive"`
}
