package cache

import (
	"context"
	"errors"

	"github.com/remindwell/storefront/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, sessionID string) ([]domain.LineItem, error)
	Set(ctx context.Context, sessionID string, items []domain.LineItem) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// NoopCache always misses. Used when no Redis address is configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]domain.LineItem, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) Set(context.Context, string, []domain.LineItem) error { return nil }

func (NoopCache) Delete(context.Context, string) error { return nil }
