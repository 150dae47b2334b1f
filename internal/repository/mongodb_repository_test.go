package repository

import (
	"context"
	"testing"

	"github.com/remindwell/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
)

func setupTestDB(t *testing.T) (*MongoRepository, func()) {
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(db)
	require.NoError(t, repo.CreateIndexes(ctx))

	cleanup := func() {
		_ = db.Client().Disconnect(ctx)
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func TestMongo_GetCart_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	items, err := repo.GetCart(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Nil(t, items)
}

func TestMongo_SaveAndReload(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c := domain.NewCart()
	c.Add(domain.Configuration{PillboxType: domain.Monthly, DoseSchedule: domain.ThreeTimes, LightOption: domain.WithLight})
	c.Add(domain.Configuration{PillboxType: domain.Weekly, DoseSchedule: domain.Morning, LightOption: domain.WithoutLight})
	c.SetQuantity(0, 1)

	require.NoError(t, repo.SaveCart(ctx, "session-1", c.Items()))

	items, err := repo.GetCart(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.Monthly, items[0].Configuration.PillboxType)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "47.99", items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "29.99", items[1].UnitPrice.StringFixed(2))
}

func TestMongo_SaveOverwritesWholeSnapshot(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	c := domain.NewCart()
	c.Add(domain.DefaultConfiguration())
	c.Add(domain.DefaultConfiguration())
	require.NoError(t, repo.SaveCart(ctx, "session-1", c.Items()))

	c.Remove(0)
	require.NoError(t, repo.SaveCart(ctx, "session-1", c.Items()))

	items, err := repo.GetCart(ctx, "session-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	count, err := repo.collection.CountDocuments(ctx, bson.M{"session_id": "session-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMongo_CorruptSnapshot(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repo.collection.InsertOne(ctx, bson.M{"session_id": "broken", "snapshot": "{oops"})
	require.NoError(t, err)

	_, err = repo.GetCart(ctx, "broken")
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)
}

func TestMongo_DeleteCart(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.SaveCart(ctx, "session-1", nil))
	require.NoError(t, repo.DeleteCart(ctx, "session-1"))

	_, err := repo.GetCart(ctx, "session-1")
	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.ErrorIs(t, repo.DeleteCart(ctx, "session-1"), ErrCartNotFound)
}
