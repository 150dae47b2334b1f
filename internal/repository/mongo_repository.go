package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remindwell/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// cartDocument keeps the snapshot in its persisted JSON form so every backend
// shares one layout.
type cartDocument struct {
	SessionID string    `bson:"session_id"`
	Snapshot  string    `bson:"snapshot"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoRepository stores one document per session in the carts collection.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection("carts"),
	}
}

func (m *MongoRepository) GetCart(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	var doc cartDocument

	filter := bson.M{"session_id": sessionID}
	err := m.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	items, err := domain.DecodeSnapshot([]byte(doc.Snapshot))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}
	return items, nil
}

func (m *MongoRepository) SaveCart(ctx context.Context, sessionID string, items []domain.LineItem) error {
	data, err := domain.EncodeSnapshot(items)
	if err != nil {
		return err
	}

	now := time.Now()
	filter := bson.M{"session_id": sessionID}
	update := bson.M{
		"$set": bson.M{
			"snapshot":   string(data),
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (m *MongoRepository) DeleteCart(ctx context.Context, sessionID string) error {
	filter := bson.M{"session_id": sessionID}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
