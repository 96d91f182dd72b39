package databases_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pairpad/pairpad-api/config"
	"github.com/pairpad/pairpad-api/databases"
	"github.com/pairpad/pairpad-api/databases/mocks"
	"github.com/pairpad/pairpad-api/models"
)

func TestNewSessionDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	sessionDB := databases.NewSessionDatabase(db)

	assert.NotEmpty(t, sessionDB)
}

func TestSessionDatabase_Create(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	var inserted interface{}
	collectionHelper.
		On("InsertOne", mock.Anything, mock.Anything).
		Return(nil, nil).Run(func(args mock.Arguments) {
		inserted = args.Get(1)
	})
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	id, err := sessionDba.Create(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	// the document is seeded with the default files
	doc := inserted.(models.Session)
	assert.Equal(t, id, doc.ID)
	assert.Contains(t, doc.Files, "main.js")
	assert.Contains(t, doc.Files, "index.html")
	assert.Equal(t, "", doc.Output)
	assert.NotNil(t, doc.Participants)
}

func TestSessionDatabase_CreateError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("InsertOne", mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	id, err := sessionDba.Create(context.Background())
	assert.Empty(t, id)
	assert.EqualError(t, err, "mocked-error")
}

func TestSessionDatabase_FindOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelperErr := &mocks.SingleResultHelper{}
	srHelperCorrect := &mocks.SingleResultHelper{}

	srHelperErr.
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Session)
		(*arg).ID = "mocked-session"
	})

	collectionHelper.
		On("FindOne", mock.Anything, bson.M{"_id": "bad"}).
		Return(srHelperErr)
	collectionHelper.
		On("FindOne", mock.Anything, bson.M{"_id": "good"}).
		Return(srHelperCorrect)
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	session, err := sessionDba.FindOne(context.Background(), "bad")
	assert.Empty(t, session)
	assert.EqualError(t, err, "mocked-error")

	session, err = sessionDba.FindOne(context.Background(), "good")
	assert.Equal(t, &models.Session{ID: "mocked-session"}, session)
	assert.NoError(t, err)
}

func TestSessionDatabase_EnsureExists(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srMissing := &mocks.SingleResultHelper{}
	srPresent := &mocks.SingleResultHelper{}

	srMissing.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	srPresent.On("Decode", mock.Anything).Return(nil)

	collectionHelper.
		On("FindOne", mock.Anything, bson.M{"_id": "missing"}).
		Return(srMissing)
	collectionHelper.
		On("FindOne", mock.Anything, bson.M{"_id": "present"}).
		Return(srPresent)
	collectionHelper.
		On("InsertOne", mock.Anything, mock.Anything).
		Return(nil, nil)
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	// absent document gets created
	assert.NoError(t, sessionDba.EnsureExists(context.Background(), "missing"))
	collectionHelper.AssertNumberOfCalls(t, "InsertOne", 1)

	// present document is left alone
	assert.NoError(t, sessionDba.EnsureExists(context.Background(), "present"))
	collectionHelper.AssertNumberOfCalls(t, "InsertOne", 1)
}

func TestSessionDatabase_EnsureExistsReadFailure(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srErr := &mocks.SingleResultHelper{}

	srErr.On("Decode", mock.Anything).Return(errors.New("server selection timeout"))

	collectionHelper.
		On("FindOne", mock.Anything, bson.M{"_id": "abc"}).
		Return(srErr)
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	// a non "not found" read error surfaces, no create is attempted
	err := sessionDba.EnsureExists(context.Background(), "abc")
	assert.EqualError(t, err, "server selection timeout")
	collectionHelper.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestSessionDatabase_SetFileKeepsDottedFilenameLiteral(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	var update interface{}
	collectionHelper.
		On("UpdateOne", mock.Anything, bson.M{"_id": "abc"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil).Run(func(args mock.Arguments) {
		update = args.Get(2)
	})
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	err := sessionDba.SetFile(context.Background(), "abc", "main.util.js", "content")
	assert.NoError(t, err)

	// the update is a pipeline that wraps the filename in $literal so the
	// dots never act as a nested-path separator
	rendered := fmt.Sprintf("%v", update)
	assert.Contains(t, rendered, "$setField")
	assert.Contains(t, rendered, "$literal")
	assert.Contains(t, rendered, "main.util.js")
}

func TestSessionDatabase_SetFileMissingSession(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("UpdateOne", mock.Anything, bson.M{"_id": "gone"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	// an update that matches nothing is a missing session, not a silent no-op
	err := sessionDba.SetFile(context.Background(), "gone", "main.js", "content")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestSessionDatabase_SetOutputMissingSession(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("UpdateOne", mock.Anything, bson.M{"_id": "gone"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	err := sessionDba.SetOutput(context.Background(), "gone", "output")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestSessionDatabase_SetOutput(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.
		On("UpdateOne", mock.Anything, bson.M{"_id": "abc"},
			bson.M{"$set": bson.M{"output": "ran fine"}}).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	err := sessionDba.SetOutput(context.Background(), "abc", "ran fine")
	assert.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}

func TestSessionDatabase_ReplaceFiles(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	var update interface{}
	collectionHelper.
		On("UpdateOne", mock.Anything, bson.M{"_id": "abc"}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil).Run(func(args mock.Arguments) {
		update = args.Get(2)
	})
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	err := sessionDba.ReplaceFiles(context.Background(), "abc",
		map[string]string{"a.b": "x", "c": "y"})
	assert.NoError(t, err)

	rendered := fmt.Sprintf("%v", update)
	assert.Contains(t, rendered, "$literal")
	assert.Contains(t, rendered, "a.b")
}

func TestSessionDatabase_Watch(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	streamHelper := &mocks.StreamHelper{}

	var pipeline interface{}
	collectionHelper.
		On("Watch", mock.Anything, mock.Anything, mock.Anything).
		Return(streamHelper, nil).Run(func(args mock.Arguments) {
		pipeline = args.Get(1)
	})
	dbHelper.On("Collection", "sessions").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	stream, err := sessionDba.Watch(context.Background(), "abc")
	assert.NoError(t, err)
	assert.Equal(t, streamHelper, stream)

	// the stream is scoped to this one document
	rendered := fmt.Sprintf("%v", pipeline)
	assert.Contains(t, rendered, "documentKey._id")
	assert.Contains(t, rendered, "abc")
}
