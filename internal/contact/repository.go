package contact

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Save(ctx context.Context, msg Message) error
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		collection: db.Collection("contact_messages"),
	}
}

func (r *mongoRepository) Save(ctx context.Context, msg Message) error {
	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

type MemoryRepository struct {
	mu       sync.RWMutex
	messages []Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Save(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *MemoryRepository) Messages() []Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}
