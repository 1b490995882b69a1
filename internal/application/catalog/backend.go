// Package catalog manages the party, design and transport masters through
// the backend and keeps the session reference caches in step with them.
package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/refdata"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/logger"
)

// Backend is the master-data part of the backend API for one session
type Backend interface {
	ItemTypes(ctx context.Context) ([]reference.ItemType, error)
	Colors(ctx context.Context) ([]reference.Color, error)

	Parties(ctx context.Context) ([]reference.Party, error)
	CreateParty(ctx context.Context, p reference.PartyPayload) (*reference.Party, error)
	UpdateParty(ctx context.Context, id shared.ID, p reference.PartyPayload) (*reference.Party, error)
	DeleteParty(ctx context.Context, id shared.ID) error

	Designs(ctx context.Context) ([]reference.Design, error)
	CreateDesign(ctx context.Context, p reference.DesignPayload) (*reference.Design, error)
	UpdateDesign(ctx context.Context, id shared.ID, p reference.DesignPayload) (*reference.Design, error)
	DeleteDesign(ctx context.Context, id shared.ID) error

	Transports(ctx context.Context) ([]reference.TransportOption, error)
	CreateTransport(ctx context.Context, p reference.TransportPayload) (*reference.TransportOption, error)
	UpdateTransport(ctx context.Context, id shared.ID, p reference.TransportPayload) (*reference.TransportOption, error)
	DeleteTransport(ctx context.Context, id shared.ID) error
}

// Connector returns the backend authenticated with a session token
type Connector func(token string) Backend

// CacheLookup finds the reference cache of a session
type CacheLookup interface {
	Lookup(sessionID string) (*refdata.Cache, bool)
}

// Refresher refreshes one resource of a session cache after a successful
// mutation. The refresh runs in the background; Wait drains it.
type Refresher struct {
	caches  CacheLookup
	logger  *zap.Logger
	pending sync.WaitGroup
}

// NewRefresher creates a refresher over the session caches
func NewRefresher(caches CacheLookup, logger *zap.Logger) *Refresher {
	return &Refresher{caches: caches, logger: logger}
}

// Refresh schedules a background refresh of resource in the session's cache.
// Sessions without a cache are skipped; their first read fetches anyway.
func (r *Refresher) Refresh(ctx context.Context, sess *identity.Session, resource reference.Resource) {
	if r == nil || r.caches == nil {
		return
	}
	cache, ok := r.caches.Lookup(sess.ID)
	if !ok {
		return
	}

	log := logger.Enrich(ctx, r.logger).With(zap.String("resource", resource.String()))
	done := cache.RefreshInBackground(ctx, resource)
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		if err := <-done; err != nil {
			log.Warn("Reference refresh after change failed", zap.Error(err))
			return
		}
		log.Debug("Reference refreshed after change")
	}()
}

// Wait blocks until every scheduled refresh has finished
func (r *Refresher) Wait() {
	r.pending.Wait()
}

// Drain waits for scheduled refreshes like Wait, but gives up when ctx is done
func (r *Refresher) Drain(ctx context.Context) error {
	if r == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		r.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
