package repository

import (
	"context"
	"testing"

	"github.com/remindwell/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_NotFound(t *testing.T) {
	repo := NewMemoryRepository()

	items, err := repo.GetCart(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Nil(t, items)

	assert.ErrorIs(t, repo.DeleteCart(context.Background(), "missing"), ErrCartNotFound)
}

func TestMemoryRepository_SaveOverwritesSnapshot(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	c := domain.NewCart()
	c.Add(domain.Configuration{PillboxType: domain.Weekly, DoseSchedule: domain.Morning, LightOption: domain.WithLight})
	require.NoError(t, repo.SaveCart(ctx, "s1", c.Items()))

	c.Add(domain.Configuration{PillboxType: domain.Monthly, DoseSchedule: domain.Night, LightOption: domain.WithoutLight})
	c.SetQuantity(1, 1)
	require.NoError(t, repo.SaveCart(ctx, "s1", c.Items()))

	items, err := repo.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.Monthly, items[1].Configuration.PillboxType)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, "39.99", items[1].UnitPrice.StringFixed(2))
}

func TestMemoryRepository_CorruptSnapshot(t *testing.T) {
	repo := NewMemoryRepository()
	repo.PutRaw("s1", []byte("not-json"))

	_, err := repo.GetCart(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.SaveCart(ctx, "s1", nil))

	require.NoError(t, repo.DeleteCart(ctx, "s1"))

	_, err := repo.GetCart(ctx, "s1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}
