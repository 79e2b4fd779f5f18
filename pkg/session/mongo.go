package session

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/algoviz/algoviz/pkg/errors"
	"github.com/algoviz/algoviz/pkg/frame"
)

// MongoStore keeps sessions in a MongoDB collection, one document per
// session with the session ID as _id. Used in serve mode when uploads must
// survive restarts and be visible to every instance.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Put upserts the session document.
func (st *MongoStore) Put(ctx context.Context, s *frame.Session) error {
	if s.ID == "" {
		return errors.New(errors.ErrCodeInvalidSession, "session has no ID")
	}
	_, err := st.coll.ReplaceOne(ctx,
		bson.M{"_id": s.ID},
		s,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store session %s", s.ID)
	}
	return nil
}

// Get retrieves a session by ID.
func (st *MongoStore) Get(ctx context.Context, id string) (*frame.Session, error) {
	var s frame.Session
	err := st.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load session %s", id)
	}
	return &s, nil
}

// List returns summaries of all sessions, newest first. Frames are projected
// to a count server-side so listings stay cheap for large sessions.
func (st *MongoStore) List(ctx context.Context) ([]Summary, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$project", Value: bson.M{
			"name":        1,
			"module":      1,
			"created_at":  1,
			"frame_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$frames", bson.A{}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}

	cur, err := st.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list sessions")
	}
	defer cur.Close(ctx)

	var summaries []Summary
	if err := cur.All(ctx, &summaries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode session summaries")
	}
	return summaries, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (st *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := st.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete session %s", id)
	}
	return nil
}

// Close disconnects the client.
func (st *MongoStore) Close(ctx context.Context) error {
	if err := st.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
