// Package refdata keeps per-session copies of the reference collections
// (item types, colours, parties, designs and transport options) and refreshes
// them from the backend in the background.
package refdata

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// Source loads reference collections from the backend
type Source interface {
	ItemTypes(ctx context.Context) ([]reference.ItemType, error)
	Colors(ctx context.Context) ([]reference.Color, error)
	Parties(ctx context.Context) ([]reference.Party, error)
	Designs(ctx context.Context) ([]reference.Design, error)
	Transports(ctx context.Context) ([]reference.TransportOption, error)
}

// ErrCacheClosed is returned by refreshes on a closed cache
var ErrCacheClosed = shared.NewDomainError("CACHE_CLOSED", "Reference cache is closed")

// Snapshot is the content of all five collections at one point
type Snapshot struct {
	ItemTypes  []reference.ItemType          `json:"item_types"`
	Colors     []reference.Color             `json:"colors"`
	Parties    []reference.Party             `json:"parties"`
	Designs    []reference.Design            `json:"designs"`
	Transports []reference.TransportOption   `json:"transport"`
	Statuses   map[reference.Resource]Status `json:"statuses"`
}

// collection is the type-erased view of a Collection used by Cache
type collection interface {
	Refresh(ctx context.Context) error
	Status() Status
	Wait(ctx context.Context) error
}

// Cache holds the five reference collections of one session
type Cache struct {
	itemTypes  *Collection[reference.ItemType]
	colors     *Collection[reference.Color]
	parties    *Collection[reference.Party]
	designs    *Collection[reference.Design]
	transports *Collection[reference.TransportOption]

	byResource map[reference.Resource]collection
	cancel     context.CancelFunc
	base       context.Context

	mu     sync.Mutex
	subs   map[int]func(Update)
	nextID int
}

// NewCache creates a cache reading from src. Nothing is fetched until the
// first read or refresh.
func NewCache(src Source, opts Options, observer Observer) *Cache {
	base, cancel := context.WithCancel(context.Background())
	c := &Cache{
		itemTypes:  NewCollection(base, reference.ResourceItemTypes, src.ItemTypes, opts, observer),
		colors:     NewCollection(base, reference.ResourceColors, src.Colors, opts, observer),
		parties:    NewCollection(base, reference.ResourceParties, src.Parties, opts, observer),
		designs:    NewCollection(base, reference.ResourceDesigns, src.Designs, opts, observer),
		transports: NewCollection(base, reference.ResourceTransports, src.Transports, opts, observer),
		cancel:     cancel,
		base:       base,
		subs:       make(map[int]func(Update)),
	}
	c.itemTypes.onUpdate = c.broadcast
	c.colors.onUpdate = c.broadcast
	c.parties.onUpdate = c.broadcast
	c.designs.onUpdate = c.broadcast
	c.transports.onUpdate = c.broadcast

	c.byResource = map[reference.Resource]collection{
		reference.ResourceItemTypes:  c.itemTypes,
		reference.ResourceColors:     c.colors,
		reference.ResourceParties:    c.parties,
		reference.ResourceDesigns:    c.designs,
		reference.ResourceTransports: c.transports,
	}
	return c
}

// ItemTypes returns the cached item types
func (c *Cache) ItemTypes(ctx context.Context) []reference.ItemType {
	return c.itemTypes.Get(ctx)
}

// Colors returns the cached colours
func (c *Cache) Colors(ctx context.Context) []reference.Color {
	return c.colors.Get(ctx)
}

// Parties returns the cached parties
func (c *Cache) Parties(ctx context.Context) []reference.Party {
	return c.parties.Get(ctx)
}

// Designs returns the cached designs
func (c *Cache) Designs(ctx context.Context) []reference.Design {
	return c.designs.Get(ctx)
}

// Transports returns the cached transport options
func (c *Cache) Transports(ctx context.Context) []reference.TransportOption {
	return c.transports.Get(ctx)
}

// Status returns the state of one resource
func (c *Cache) Status(resource reference.Resource) (Status, error) {
	coll, err := c.lookup(resource)
	if err != nil {
		return Status{}, err
	}
	return coll.Status(), nil
}

// Statuses returns the state of every resource
func (c *Cache) Statuses() map[reference.Resource]Status {
	out := make(map[reference.Resource]Status, len(c.byResource))
	for r, coll := range c.byResource {
		out[r] = coll.Status()
	}
	return out
}

// Snapshot reads all five collections. Like the single getters it starts
// background fetches for empty or stale resources.
func (c *Cache) Snapshot(ctx context.Context) Snapshot {
	s := Snapshot{
		ItemTypes:  c.ItemTypes(ctx),
		Colors:     c.Colors(ctx),
		Parties:    c.Parties(ctx),
		Designs:    c.Designs(ctx),
		Transports: c.Transports(ctx),
	}
	s.Statuses = c.Statuses()
	return s
}

// Refresh refetches one resource and waits for it
func (c *Cache) Refresh(ctx context.Context, resource reference.Resource) error {
	coll, err := c.lookup(resource)
	if err != nil {
		return err
	}
	if c.base.Err() != nil {
		return ErrCacheClosed
	}
	return coll.Refresh(ctx)
}

// RefreshAll refetches every resource concurrently. Each resource completes
// on its own; the result holds the error of every resource, nil on success.
func (c *Cache) RefreshAll(ctx context.Context) map[reference.Resource]error {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		results = make(map[reference.Resource]error, len(c.byResource))
	)
	for _, r := range reference.AllResources() {
		g.Go(func() error {
			err := c.Refresh(ctx, r)
			mu.Lock()
			results[r] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Wait blocks until no fetch of any resource is in flight
func (c *Cache) Wait(ctx context.Context) error {
	for _, r := range reference.AllResources() {
		if err := c.byResource[r].Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers fn for every applied fetch result. fn runs on the
// fetching goroutine. The returned func removes the subscription.
func (c *Cache) Subscribe(fn func(Update)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Close cancels in-flight fetches and stops further refreshes
func (c *Cache) Close() {
	c.cancel()
	c.mu.Lock()
	clear(c.subs)
	c.mu.Unlock()
}

func (c *Cache) broadcast(u Update) {
	c.mu.Lock()
	subs := make([]func(Update), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

func (c *Cache) lookup(resource reference.Resource) (collection, error) {
	coll, ok := c.byResource[resource]
	if !ok {
		return nil, shared.NewDomainError("UNKNOWN_RESOURCE", "Unknown reference resource: "+resource.String())
	}
	return coll, nil
}

// refreshTimeout bounds the detached refresh started after mutations
const refreshTimeout = 2 * DefaultFetchTimeout

// RefreshInBackground refetches resource without blocking the caller
func (c *Cache) RefreshInBackground(ctx context.Context, resource reference.Resource) <-chan error {
	done := make(chan error, 1)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
	go func() {
		defer cancel()
		done <- c.Refresh(ctx, resource)
	}()
	return done
}
