package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"desdemona/internal/domain/othello"
	errs "desdemona/internal/errors"
)

const decisionsCollection = "decisions"

type decisionDocument struct {
	Key       string           `bson:"_id"`
	Decision  othello.Decision `bson:"decision"`
	UpdatedAt time.Time        `bson:"updated_at"`
}

// MongoDecisionStore archives decisions without expiry, one document per key.
type MongoDecisionStore struct {
	collection *mongo.Collection
}

func NewMongoDecisionStore(db *mongo.Database) *MongoDecisionStore {
	return &MongoDecisionStore{
		collection: db.Collection(decisionsCollection),
	}
}

func (m *MongoDecisionStore) LoadDecision(ctx context.Context, key string) (othello.Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc decisionDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return othello.Decision{}, errs.ErrDecisionNotFound
	}
	if err != nil {
		return othello.Decision{}, fmt.Errorf("find decision %s: %w", key, err)
	}
	return doc.Decision, nil
}

func (m *MongoDecisionStore) SaveDecision(ctx context.Context, key string, decision othello.Decision) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"decision":   decision,
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return fmt.Errorf("upsert decision %s: %w", key, err)
	}
	return nil
}
