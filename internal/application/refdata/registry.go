package refdata

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type registryEntry struct {
	cache    *Cache
	lastUsed time.Time
}

// Registry binds one Cache to each session. Caches are created on first use
// and released on logout or after staying idle.
type Registry struct {
	opts     Options
	observer Observer
	logger   *zap.Logger

	mu     sync.Mutex
	caches map[string]*registryEntry
}

// NewRegistry creates an empty registry
func NewRegistry(opts Options, observer Observer, logger *zap.Logger) *Registry {
	if observer == nil {
		observer = NopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		opts:     opts.withDefaults(),
		observer: observer,
		logger:   logger,
		caches:   make(map[string]*registryEntry),
	}
}

// ForSession returns the cache of sessionID, creating it from src on first
// access
func (r *Registry) ForSession(sessionID string, src Source) *Cache {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.opts.Now()
	if e, ok := r.caches[sessionID]; ok {
		e.lastUsed = now
		return e.cache
	}
	c := NewCache(src, r.opts, r.observer)
	r.caches[sessionID] = &registryEntry{cache: c, lastUsed: now}
	r.observer.Sessions(len(r.caches))
	r.logger.Debug("Reference cache created", zap.String("session_id", sessionID))
	return c
}

// Lookup returns the cache of sessionID if one exists
func (r *Registry) Lookup(sessionID string) (*Cache, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.caches[sessionID]
	if !ok {
		return nil, false
	}
	return e.cache, true
}

// Drop closes and removes the cache of sessionID
func (r *Registry) Drop(sessionID string) bool {
	r.mu.Lock()
	e, ok := r.caches[sessionID]
	if ok {
		delete(r.caches, sessionID)
		r.observer.Sessions(len(r.caches))
	}
	r.mu.Unlock()

	if ok {
		e.cache.Close()
		r.logger.Debug("Reference cache dropped", zap.String("session_id", sessionID))
	}
	return ok
}

// Sweep closes caches unused for longer than maxIdle and returns how many
// were removed
func (r *Registry) Sweep(maxIdle time.Duration) int {
	now := r.opts.Now()
	var evicted []*Cache

	r.mu.Lock()
	for id, e := range r.caches {
		if now.Sub(e.lastUsed) > maxIdle {
			evicted = append(evicted, e.cache)
			delete(r.caches, id)
		}
	}
	if len(evicted) > 0 {
		r.observer.Sessions(len(r.caches))
	}
	r.mu.Unlock()

	for _, c := range evicted {
		c.Close()
	}
	return len(evicted)
}

// Len returns the number of live caches
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.caches)
}

// Run sweeps idle caches every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				r.logger.Info("Evicted idle reference caches",
					zap.Int("evicted", n),
					zap.Int("remaining", r.Len()))
			}
		}
	}
}

// Close closes every cache
func (r *Registry) Close() {
	r.mu.Lock()
	caches := r.caches
	r.caches = make(map[string]*registryEntry)
	r.observer.Sessions(0)
	r.mu.Unlock()

	for _, e := range caches {
		e.cache.Close()
	}
}
