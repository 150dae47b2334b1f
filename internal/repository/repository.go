package repository

import (
	"context"
	"errors"

	"github.com/remindwell/storefront/internal/domain"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrSnapshotCorrupt = errors.New("cart snapshot is corrupt")
)

// CartRepository stores one cart snapshot per session. Saves overwrite the
// whole snapshot.
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) ([]domain.LineItem, error)
	SaveCart(ctx context.Context, sessionID string, items []domain.LineItem) error
	DeleteCart(ctx context.Context, sessionID string) error
}
