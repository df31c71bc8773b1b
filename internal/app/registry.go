package app

import (
	"context"
	"sync"
	"time"

	"virusgame/internal/domain"

	"github.com/google/uuid"
)

// Table is one registered game plus the lock that serializes access to it.
type Table struct {
	id       string
	mu       sync.RWMutex
	game     *domain.Game
	owners   map[string]string // player id -> runtime user id
	lastUsed time.Time
}

// ID returns the registry identifier of the table.
func (t *Table) ID() string { return t.id }

// Registry tracks live games by opaque id, bounded by count and idle time.
type Registry struct {
	mu       sync.Mutex
	tables   map[string]*Table
	maxGames int
	ttl      time.Duration
	now      func() time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates a registry keeping at most maxGames games, each expiring after ttl without access.
// Non-positive values disable the corresponding bound.
func NewRegistry(maxGames int, ttl time.Duration, opts ...RegistryOption) *Registry {
	r := &Registry{
		tables:   make(map[string]*Table),
		maxGames: maxGames,
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers game under id, generating one when id is empty. When the
// registry is full, expired games go first, then the least recently used one.
func (r *Registry) Create(id string, game *domain.Game) (*Table, error) {
	if id == "" {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if t, ok := r.tables[id]; ok && !r.expired(t, now) {
		return nil, domain.Violationf("game '%s' already exists", id)
	}
	delete(r.tables, id)

	if r.maxGames > 0 && len(r.tables) >= r.maxGames {
		r.sweepLocked(now)
	}
	for r.maxGames > 0 && len(r.tables) >= r.maxGames {
		r.evictOldestLocked()
	}

	t := &Table{id: id, game: game, owners: make(map[string]string), lastUsed: now}
	r.tables[id] = t
	return t, nil
}

// Lookup returns the table for id and refreshes its idle timer.
func (r *Registry) Lookup(id string) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	t, ok := r.tables[id]
	if !ok {
		return nil, domain.NotFoundf("game '%s' does not exist", id)
	}
	if r.expired(t, now) {
		delete(r.tables, id)
		return nil, domain.NotFoundf("game '%s' has expired", id)
	}
	t.lastUsed = now
	return t, nil
}

// Evict drops id from the registry, reporting whether it was tracked.
func (r *Registry) Evict(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tables[id]
	delete(r.tables, id)
	return ok
}

// Len returns the number of tracked games, expired ones included until swept.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tables)
}

// Sweep drops every expired game and returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked(r.now())
}

// Run sweeps expired games every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || r.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) expired(t *Table, now time.Time) bool {
	return r.ttl > 0 && now.Sub(t.lastUsed) > r.ttl
}

func (r *Registry) sweepLocked(now time.Time) int {
	n := 0
	for id, t := range r.tables {
		if r.expired(t, now) {
			delete(r.tables, id)
			n++
		}
	}
	return n
}

func (r *Registry) evictOldestLocked() {
	var oldest *Table
	for _, t := range r.tables {
		if oldest == nil || t.lastUsed.Before(oldest.lastUsed) {
			oldest = t
		}
	}
	if oldest != nil {
		delete(r.tables, oldest.id)
	}
}
