package databases

// go generate: mockery --name ParticipantDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pairpad/pairpad-api/models"
)

const participantName = "participants"

// ParticipantDatabase contains the methods to use with the presence records.
// One record per (sessionID, uid) pair; joinedAt is written once, lastActive
// on every heartbeat.
type ParticipantDatabase interface {
	Join(ctx context.Context, sessionID, uid, name string) error
	Heartbeat(ctx context.Context, sessionID, uid string) error
	Leave(ctx context.Context, sessionID, uid string) error
	FindBySession(ctx context.Context, sessionID string) ([]models.Participant, error)
	SweepStale(ctx context.Context, olderThan time.Time) (int64, error)
}

type participantDatabase struct {
	db DatabaseHelper
}

// NewParticipantDatabase initializes a new instance of participant database with the provided db connection
func NewParticipantDatabase(db DatabaseHelper) ParticipantDatabase {
	return &participantDatabase{
		db: db,
	}
}

func (p *participantDatabase) Join(ctx context.Context, sessionID, uid, name string) error {
	now := time.Now().UTC()
	upsert := true
	_, err := p.db.Collection(participantName).UpdateOne(ctx,
		bson.M{"sessionId": sessionID, "uid": uid},
		bson.M{
			"$setOnInsert": bson.M{"joinedAt": now},
			"$set":         bson.M{"name": name, "lastActive": now},
		},
		&options.UpdateOptions{Upsert: &upsert},
	)
	return err
}

func (p *participantDatabase) Heartbeat(ctx context.Context, sessionID, uid string) error {
	_, err := p.db.Collection(participantName).UpdateOne(ctx,
		bson.M{"sessionId": sessionID, "uid": uid},
		bson.M{"$set": bson.M{"lastActive": time.Now().UTC()}},
	)
	return err
}

func (p *participantDatabase) Leave(ctx context.Context, sessionID, uid string) error {
	return p.db.Collection(participantName).DeleteOne(ctx,
		bson.M{"sessionId": sessionID, "uid": uid})
}

func (p *participantDatabase) FindBySession(ctx context.Context, sessionID string) ([]models.Participant, error) {
	var participants []models.Participant
	cr, err := p.db.Collection(participantName).Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}
	err = cr.Decode(&participants)
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// SweepStale removes records whose lastActive predates the cutoff. Orphans
// left behind by crashed clients are only a liveness hint, the sweep keeps
// the participant list honest.
func (p *participantDatabase) SweepStale(ctx context.Context, olderThan time.Time) (int64, error) {
	return p.db.Collection(participantName).DeleteMany(ctx,
		bson.M{"lastActive": bson.M{"$lt": olderThan}})
}
