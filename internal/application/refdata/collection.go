package refdata

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
)

// Default cache timings
const (
	DefaultStaleAfter   = 5 * time.Minute
	DefaultFetchTimeout = 30 * time.Second
)

// FetchFunc loads the full collection of one resource
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Options configures collection timings
type Options struct {
	// StaleAfter is how long a successful fetch stays fresh
	StaleAfter time.Duration
	// FetchTimeout bounds every fetch
	FetchTimeout time.Duration
	// Now is the clock; defaults to time.Now
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.StaleAfter <= 0 {
		o.StaleAfter = DefaultStaleAfter
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = DefaultFetchTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Status is the observable state of one collection
type Status struct {
	Resource      reference.Resource `json:"resource"`
	Count         int                `json:"count"`
	LastFetchedAt *time.Time         `json:"last_fetched_at,omitempty"`
	IsLoading     bool               `json:"is_loading"`
	LastError     string             `json:"last_error,omitempty"`
}

// Update is broadcast after a fetch result is applied
type Update struct {
	Resource reference.Resource `json:"resource"`
	Status   Status             `json:"status"`
	Err      error              `json:"-"`
}

// fetchCall is one issued fetch. supersededBy is set when a newer fetch of
// the same collection starts before this one finished.
type fetchCall struct {
	seq          uint64
	cancel       context.CancelFunc
	done         chan struct{}
	err          error
	supersededBy *fetchCall
}

// Collection is the cached copy of one reference resource. Reads never block
// on the network; fetches are sequenced so that only the newest issued
// request may replace the items.
type Collection[T any] struct {
	resource reference.Resource
	fetch    FetchFunc[T]
	opts     Options
	base     context.Context
	observer Observer
	onUpdate func(Update)

	mu            sync.Mutex
	items         []T
	lastFetchedAt time.Time
	lastError     string
	issued        uint64
	inflight      *fetchCall
	latest        *fetchCall
}

// NewCollection creates an empty collection. Fetches are cancelled when base
// is done.
func NewCollection[T any](base context.Context, resource reference.Resource, fetch FetchFunc[T], opts Options, observer Observer) *Collection[T] {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Collection[T]{
		resource: resource,
		fetch:    fetch,
		opts:     opts.withDefaults(),
		base:     base,
		observer: observer,
	}
}

// Resource returns the resource held by the collection
func (c *Collection[T]) Resource() reference.Resource {
	return c.resource
}

// Get returns the cached items immediately. When the collection is empty or
// stale and no fetch is running, a background fetch is started.
func (c *Collection[T]) Get(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	needsFetch := c.needsFetchLocked()
	if needsFetch && c.inflight == nil && c.base.Err() == nil {
		// Detached from the caller so the fetch outlives the request.
		c.startLocked(context.WithoutCancel(ctx))
	}
	c.observer.Read(c.resource, !needsFetch)
	return slices.Clone(c.items)
}

// Refresh fetches unconditionally, superseding any running fetch, and waits
// for the result. A caller whose fetch is superseded by a newer refresh
// receives the newer result.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if err := c.base.Err(); err != nil {
		c.mu.Unlock()
		return err
	}
	call := c.startLocked(ctx)
	c.mu.Unlock()

	for {
		select {
		case <-call.done:
		case <-ctx.Done():
			return ctx.Err()
		}
		c.mu.Lock()
		next := call.supersededBy
		c.mu.Unlock()
		if next == nil {
			return call.err
		}
		call = next
	}
}

// Status returns the collection state
func (c *Collection[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// Wait blocks until the most recently issued fetch has finished and its
// result has been broadcast, or ctx is done
func (c *Collection[T]) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		call := c.latest
		c.mu.Unlock()
		if call == nil {
			return nil
		}
		select {
		case <-call.done:
		case <-ctx.Done():
			return ctx.Err()
		}
		c.mu.Lock()
		settled := c.latest == call
		c.mu.Unlock()
		if settled {
			return nil
		}
	}
}

func (c *Collection[T]) needsFetchLocked() bool {
	if len(c.items) == 0 {
		return true
	}
	return c.opts.Now().Sub(c.lastFetchedAt) > c.opts.StaleAfter
}

func (c *Collection[T]) startLocked(parent context.Context) *fetchCall {
	c.issued++
	ctx, cancel := context.WithTimeout(parent, c.opts.FetchTimeout)
	stop := context.AfterFunc(c.base, cancel)
	call := &fetchCall{seq: c.issued, cancel: cancel, done: make(chan struct{})}

	if prev := c.inflight; prev != nil {
		prev.supersededBy = call
		prev.cancel()
	}
	c.inflight = call
	c.latest = call

	go c.run(ctx, call, stop)
	return call
}

func (c *Collection[T]) run(ctx context.Context, call *fetchCall, stop func() bool) {
	defer close(call.done)
	defer stop()
	defer call.cancel()

	started := c.opts.Now()
	items, err := c.fetch(ctx)
	call.err = err

	c.mu.Lock()
	if c.inflight == call {
		c.inflight = nil
	}
	if call.seq != c.issued {
		c.mu.Unlock()
		c.observer.Discarded(c.resource)
		return
	}
	if err != nil {
		c.lastError = errorText(err)
	} else {
		if items == nil {
			items = []T{}
		}
		c.items = items
		c.lastFetchedAt = c.opts.Now()
		c.lastError = ""
	}
	update := Update{Resource: c.resource, Status: c.statusLocked(), Err: err}
	notify := c.onUpdate
	c.mu.Unlock()

	c.observer.Fetched(c.resource, c.opts.Now().Sub(started), err)
	if notify != nil {
		notify(update)
	}
}

func (c *Collection[T]) statusLocked() Status {
	s := Status{
		Resource:  c.resource,
		Count:     len(c.items),
		IsLoading: c.inflight != nil,
		LastError: c.lastError,
	}
	if !c.lastFetchedAt.IsZero() {
		at := c.lastFetchedAt
		s.LastFetchedAt = &at
	}
	return s
}

// errorText renders a fetch failure for display
func errorText(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	case errors.Is(err, context.Canceled):
		return "Request was cancelled"
	}
	return err.Error()
}
