package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionsCollection = "sessions"

// MongoSessionStore keeps sessions in a MongoDB collection so they survive a
// restart of the API process.
type MongoSessionStore struct {
	coll *mongo.Collection
}

func NewMongoSessionStore(db *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{coll: db.Collection(sessionsCollection)}
}

func NewMongoSessionStoreFromCollection(coll *mongo.Collection) *MongoSessionStore {
	return &MongoSessionStore{coll: coll}
}

// EnsureIndexes lets MongoDB expire sessions on its own once expiresAt passes.
func (m *MongoSessionStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("creating sessions ttl index: %w", err)
	}
	return nil
}

func (m *MongoSessionStore) Save(ctx context.Context, rec SessionRecord) error {
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (m *MongoSessionStore) Get(ctx context.Context, id string) (*SessionRecord, error) {
	var rec SessionRecord
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return &rec, nil
}

func (m *MongoSessionStore) Delete(ctx context.Context, id string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
