package databases

// go generate: mockery --name SessionDatabase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pairpad/pairpad-api/models"
)

const sessionName = "sessions"

// SessionDatabase contains the methods to use with the session database.
//
// SetFile and ReplaceFiles use aggregation-pipeline updates ($setField with a
// $literal field name) so a filename containing dots is treated as one
// literal key segment and never as a nested path. This requires MongoDB 5.0+.
type SessionDatabase interface {
	Create(ctx context.Context) (string, error)
	EnsureExists(ctx context.Context, sessionID string) error
	FindOne(ctx context.Context, sessionID string) (*models.Session, error)
	SetFile(ctx context.Context, sessionID, filename, content string) error
	SetOutput(ctx context.Context, sessionID, output string) error
	ReplaceFiles(ctx context.Context, sessionID string, files map[string]string) error
	Watch(ctx context.Context, sessionID string) (StreamHelper, error)
}

type sessionDatabase struct {
	db DatabaseHelper
}

// NewSessionDatabase initializes a new instance of session database with the provided db connection
func NewSessionDatabase(db DatabaseHelper) SessionDatabase {
	return &sessionDatabase{
		db: db,
	}
}

// Create inserts a new session document with the default files and returns
// its identifier. The store being unreachable here is fatal to the caller,
// there is no fallback at creation time.
func (s *sessionDatabase) Create(ctx context.Context) (string, error) {
	id := uuid.New().String()
	doc := models.Session{
		ID:        id,
		CreatedAt: time.Now().UnixMilli(),
		Files: map[string]interface{}{
			"main.js":    fmt.Sprintf("// Start coding...\nconsole.log('Hello from session: %s')", id[:8]),
			"index.html": "<!doctype html>\n<html>\n  <head><title>Preview</title></head>\n  <body><h1>Hello</h1></body>\n</html>",
		},
		Output:       "",
		Participants: []string{},
	}
	_, err := s.db.Collection(sessionName).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	return id, nil
}

// EnsureExists creates a minimal session document if a read shows it absent.
// A read error other than "not found" is returned to the caller, who decides
// whether it is safe to ignore.
func (s *sessionDatabase) EnsureExists(ctx context.Context, sessionID string) error {
	session := &models.Session{}
	err := s.db.Collection(sessionName).FindOne(ctx, bson.M{"_id": sessionID}).Decode(&session)
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}
	doc := models.Session{
		ID:           sessionID,
		CreatedAt:    time.Now().UnixMilli(),
		Files:        map[string]interface{}{"main.js": "// Start coding..."},
		Output:       "",
		Participants: []string{},
	}
	_, err = s.db.Collection(sessionName).InsertOne(ctx, doc)
	return err
}

func (s *sessionDatabase) FindOne(ctx context.Context, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	err := s.db.Collection(sessionName).FindOne(ctx, bson.M{"_id": sessionID}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SetFile merges a single filename -> content entry into the files map.
// The $literal wrapper keeps dots in the filename from being read as a
// nested-path separator, and the single-field update means concurrent
// SetFile calls for different filenames never clobber each other. A
// session that does not exist returns mongo.ErrNoDocuments.
func (s *sessionDatabase) SetFile(ctx context.Context, sessionID, filename, content string) error {
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "files", Value: bson.D{
				{Key: "$setField", Value: bson.D{
					{Key: "field", Value: bson.D{{Key: "$literal", Value: filename}}},
					{Key: "input", Value: "$files"},
					{Key: "value", Value: content},
				}},
			}},
		}}},
	}
	res, err := s.db.Collection(sessionName).UpdateOne(ctx, bson.M{"_id": sessionID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetOutput overwrites the output field only. A session that does not exist
// returns mongo.ErrNoDocuments.
func (s *sessionDatabase) SetOutput(ctx context.Context, sessionID, output string) error {
	res, err := s.db.Collection(sessionName).UpdateOne(ctx, bson.M{"_id": sessionID},
		bson.M{"$set": bson.M{"output": output}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReplaceFiles writes a repaired flat files map back to the document. The
// flat map carries every leaf of the malformed shape, so replacing the field
// wholesale both installs the flat keys and drops the nested garbage.
func (s *sessionDatabase) ReplaceFiles(ctx context.Context, sessionID string, files map[string]string) error {
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "files", Value: bson.D{{Key: "$literal", Value: files}}},
		}}},
	}
	_, err := s.db.Collection(sessionName).UpdateOne(ctx, bson.M{"_id": sessionID}, update)
	return err
}

// Watch opens a change stream scoped to a single session document. Server
// writes are delivered in application order with the full document attached.
func (s *sessionDatabase) Watch(ctx context.Context, sessionID string) (StreamHelper, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"documentKey._id": sessionID}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	return s.db.Collection(sessionName).Watch(ctx, pipeline, opts)
}
