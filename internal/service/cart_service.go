package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/remindwell/storefront/internal/cache"
	"github.com/remindwell/storefront/internal/domain"
	"github.com/remindwell/storefront/internal/publisher"
	"github.com/remindwell/storefront/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// AddedFeedbackWindow is how long a cart reports JustAdded after an add.
	AddedFeedbackWindow = 2 * time.Second

	// SessionIdleTTL is how long per-session bookkeeping survives without use.
	SessionIdleTTL = 30 * time.Minute

	// CleanupInterval is how often idle session bookkeeping is dropped.
	CleanupInterval = time.Minute

	publishTimeout = 2 * time.Second
	outboxSize     = 256
)

// CartState is a session's cart as seen after a read or a mutation.
type CartState struct {
	Cart      *domain.Cart
	JustAdded bool
}

type sessionState struct {
	mu       sync.Mutex
	gen      uint64 // bumped by every write; guards cache fills
	addedAt  time.Time
	lastSeen time.Time
}

type CartService struct {
	repo   repository.CartRepository
	cache  cache.CartCache
	events publisher.Publisher
	logger *zap.Logger
	sfg    singleflight.Group // collapses concurrent loads of one session

	mu       sync.Mutex
	sessions map[string]*sessionState

	// outbox holds cart events until Run hands them to the publisher.
	outbox chan publisher.CartEvent

	now func() time.Time
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache, events publisher.Publisher, logger *zap.Logger) *CartService {
	return &CartService{
		repo:     repo,
		cache:    cache,
		events:   events,
		logger:   logger,
		sessions: make(map[string]*sessionState),
		outbox:   make(chan publisher.CartEvent, outboxSize),
		now:      time.Now,
	}
}

func (s *CartService) session(sessionID string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{}
		s.sessions[sessionID] = st
	}
	st.lastSeen = s.now()
	return st
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartState, error) {
	st := s.session(sessionID)
	st.mu.Lock()
	gen := st.gen
	st.mu.Unlock()

	// Loads started before the last write are not shared with later readers.
	key := sessionID + ":" + strconv.FormatUint(gen, 10)
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		items, err := s.cache.Get(ctx, sessionID)
		if err == nil {
			return items, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("cache get failed", zap.String("session_id", sessionID), zap.Error(err))
		}

		items, err = s.loadFromRepo(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		// Skip the fill when a write landed while we were loading.
		st.mu.Lock()
		if st.gen == gen {
			if errSet := s.cache.Set(ctx, sessionID, items); errSet != nil {
				s.logger.Warn("cache set failed", zap.String("session_id", sessionID), zap.Error(errSet))
			}
		}
		st.mu.Unlock()

		return items, nil
	})
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	justAdded := s.justAdded(st)
	st.mu.Unlock()

	return &CartState{
		Cart:      domain.RestoreCart(v.([]domain.LineItem)),
		JustAdded: justAdded,
	}, nil
}

func (s *CartService) AddItem(ctx context.Context, sessionID string, cfg domain.Configuration) (*CartState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, publisher.ActionItemAdded, func(c *domain.Cart, st *sessionState) bool {
		c.Add(cfg)
		st.addedAt = s.now()
		return true
	})
}

// ChangeQuantity moves the quantity of the entry at index by delta (+1 or -1).
// Out-of-range indexes and the quantity floor leave the cart untouched.
func (s *CartService) ChangeQuantity(ctx context.Context, sessionID string, index, delta int) (*CartState, error) {
	return s.mutate(ctx, sessionID, publisher.ActionQuantityChanged, func(c *domain.Cart, _ *sessionState) bool {
		return c.SetQuantity(index, delta)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, index int) (*CartState, error) {
	return s.mutate(ctx, sessionID, publisher.ActionItemRemoved, func(c *domain.Cart, _ *sessionState) bool {
		return c.Remove(index)
	})
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*CartState, error) {
	st := s.session(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	items, err := s.loadFromRepo(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	errDelete := s.repo.DeleteCart(ctx, sessionID)
	if errDelete != nil && !errors.Is(errDelete, repository.ErrCartNotFound) {
		s.logger.Error("repo delete cart failed", zap.String("session_id", sessionID), zap.Error(errDelete))
		return nil, errDelete
	}
	st.gen++
	st.addedAt = time.Time{}
	s.invalidateCache(sessionID)

	cart := domain.NewCart()
	if len(items) > 0 {
		s.enqueue(sessionID, publisher.ActionCartCleared, cart)
	}
	return &CartState{Cart: cart}, nil
}

// mutate runs apply against the stored cart under the session lock and
// persists the whole snapshot when apply reports a change.
func (s *CartService) mutate(ctx context.Context, sessionID string, action publisher.Action, apply func(*domain.Cart, *sessionState) bool) (*CartState, error) {
	st := s.session(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	items, err := s.loadFromRepo(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart := domain.RestoreCart(items)

	prevAddedAt := st.addedAt
	if !apply(cart, st) {
		return &CartState{Cart: cart, JustAdded: s.justAdded(st)}, nil
	}

	if errSave := s.repo.SaveCart(ctx, sessionID, cart.Items()); errSave != nil {
		st.addedAt = prevAddedAt
		s.logger.Error("repo save cart failed", zap.String("session_id", sessionID), zap.Error(errSave))
		return nil, errSave
	}
	st.gen++
	s.invalidateCache(sessionID)
	s.enqueue(sessionID, action, cart)

	return &CartState{Cart: cart, JustAdded: s.justAdded(st)}, nil
}

// loadFromRepo rehydrates a session's items. A missing or unreadable
// snapshot yields an empty cart.
func (s *CartService) loadFromRepo(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	items, err := s.repo.GetCart(ctx, sessionID)
	switch {
	case err == nil:
		return items, nil
	case errors.Is(err, repository.ErrCartNotFound):
		return []domain.LineItem{}, nil
	case errors.Is(err, repository.ErrSnapshotCorrupt):
		s.logger.Warn("discarding unreadable cart snapshot", zap.String("session_id", sessionID), zap.Error(err))
		return []domain.LineItem{}, nil
	default:
		return nil, err
	}
}

func (s *CartService) justAdded(st *sessionState) bool {
	if st.addedAt.IsZero() {
		return false
	}
	return s.now().Before(st.addedAt.Add(AddedFeedbackWindow))
}

func (s *CartService) invalidateCache(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// enqueue queues the event for Run without blocking. Events are dropped when
// the outbox is full.
func (s *CartService) enqueue(sessionID string, action publisher.Action, cart *domain.Cart) {
	event := publisher.CartEvent{
		SessionID:  sessionID,
		Action:     action,
		EntryCount: cart.EntryCount(),
		ItemCount:  cart.ItemCount(),
		Subtotal:   cart.Subtotal().StringFixed(2),
		OccurredAt: s.now().UTC(),
	}
	select {
	case s.outbox <- event:
	default:
		s.logger.Warn("cart event dropped, outbox full",
			zap.String("session_id", sessionID),
			zap.String("action", string(action)))
	}
}

func (s *CartService) publish(ctx context.Context, event publisher.CartEvent) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("cart event publish failed",
			zap.String("session_id", event.SessionID),
			zap.String("action", string(event.Action)),
			zap.Error(err))
	}
}

func (s *CartService) dispatchEvents(ctx context.Context) {
	for {
		select {
		case event := <-s.outbox:
			s.publish(ctx, event)
		case <-ctx.Done():
			s.flushOutbox(context.WithoutCancel(ctx))
			return
		}
	}
}

// flushOutbox publishes whatever is queued, giving up after publishTimeout.
func (s *CartService) flushOutbox(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	for {
		select {
		case event := <-s.outbox:
			s.publish(ctx, event)
		default:
			return
		}
	}
}

// Run publishes queued cart events and drops bookkeeping for sessions idle
// longer than SessionIdleTTL until ctx is done.
func (s *CartService) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.dispatchEvents(ctx)
	}()
	defer wg.Wait()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.evictIdle()
		case <-ctx.Done():
			return
		}
	}
}

func (s *CartService) evictIdle() int {
	cutoff := s.now().Add(-SessionIdleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, st := range s.sessions {
		if st.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Debug("evicted idle sessions", zap.Int("count", evicted))
	}
	return evicted
}
