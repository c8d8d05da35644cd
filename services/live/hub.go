package live

import (
	"context"
	"sync"
	"time"

	"realtalk/models"

	"go.uber.org/zap"
)

// SnapshotSource computes the public view from the store.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*models.PublicSnapshot, error)
}

// Watcher opens a change feed that signals whenever the underlying data may
// have changed. The channel closes when the feed stops.
type Watcher func(ctx context.Context) (<-chan struct{}, error)

// Hub keeps the latest public snapshot and pushes every new one to its
// subscribers. It reloads on any watcher signal and on a fixed interval, the
// latter so today's lead-time cutoff keeps moving with the clock.
type Hub struct {
	source   SnapshotSource
	watchers []Watcher
	logger   *zap.Logger

	Refresh time.Duration
	Backoff time.Duration

	mu      sync.RWMutex
	current *models.PublicSnapshot
	subs    map[chan models.PublicSnapshot]struct{}
}

func NewHub(source SnapshotSource, logger *zap.Logger, watchers ...Watcher) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		source:   source,
		watchers: watchers,
		logger:   logger,
		Refresh:  time.Minute,
		Backoff:  5 * time.Second,
		subs:     make(map[chan models.PublicSnapshot]struct{}),
	}
}

// Run blocks until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	trigger := make(chan struct{}, 1)
	for _, w := range h.watchers {
		go h.follow(ctx, w, trigger)
	}

	h.reload(ctx)

	ticker := time.NewTicker(h.Refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-trigger:
			h.reload(ctx)
		case <-ticker.C:
			h.reload(ctx)
		}
	}
}

// follow keeps one watcher open, reopening it after Backoff when it fails.
func (h *Hub) follow(ctx context.Context, w Watcher, trigger chan<- struct{}) {
	for ctx.Err() == nil {
		ch, err := w(ctx)
		if err != nil {
			h.logger.Warn("live watcher failed to open", zap.Error(err))
		} else {
			for range ch {
				select {
				case trigger <- struct{}{}:
				default:
				}
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(h.Backoff):
		}
	}
}

func (h *Hub) reload(ctx context.Context) {
	snap, err := h.source.Snapshot(ctx)
	if err != nil {
		h.logger.Warn("live snapshot reload failed", zap.Error(err))
		return
	}
	h.publish(*snap)
}

func (h *Hub) publish(snap models.PublicSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.current = &snap
	for ch := range h.subs {
		offer(ch, snap)
	}
}

// offer replaces any undelivered snapshot so a slow subscriber only ever
// sees the latest one.
func offer(ch chan models.PublicSnapshot, snap models.PublicSnapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

// Current returns the latest snapshot, or nil before the first load.
func (h *Hub) Current() *models.PublicSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return nil
	}
	snap := *h.current
	return &snap
}

// Subscribe returns a channel receiving every new snapshot, starting with the
// current one. Call the returned func to unsubscribe.
func (h *Hub) Subscribe() (<-chan models.PublicSnapshot, func()) {
	ch := make(chan models.PublicSnapshot, 1)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	if h.current != nil {
		ch <- *h.current
	}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
		})
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

// Subscribers reports how many subscribers are attached.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
