package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/refdata"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// fakeBackend keeps masters in memory and counts list calls
type fakeBackend struct {
	mu         sync.Mutex
	parties    []reference.Party
	designs    []reference.Design
	transports []reference.TransportOption
	colors     []reference.Color
	listCalls  map[string]int
	failWrites error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		colors: []reference.Color{
			{ID: "c1", Name: "Red", Family: "Reds"},
			{ID: "c2", Name: "Navy", Family: "Blues"},
			{ID: "c3", Name: "Maroon", Family: "Reds"},
			{ID: "c4", Name: "Ivory"},
		},
		listCalls: map[string]int{},
	}
}

func (f *fakeBackend) calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls[name]
}

func (f *fakeBackend) count(name string) {
	f.mu.Lock()
	f.listCalls[name]++
	f.mu.Unlock()
}

func (f *fakeBackend) ItemTypes(context.Context) ([]reference.ItemType, error) {
	f.count("item_types")
	return []reference.ItemType{{ID: "t1", Name: "Kurta"}}, nil
}

func (f *fakeBackend) Colors(context.Context) ([]reference.Color, error) {
	f.count("colors")
	return f.colors, nil
}

func (f *fakeBackend) Parties(context.Context) ([]reference.Party, error) {
	f.count("parties")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]reference.Party(nil), f.parties...), nil
}

func (f *fakeBackend) CreateParty(_ context.Context, p reference.PartyPayload) (*reference.Party, error) {
	if f.failWrites != nil {
		return nil, f.failWrites
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.parties) + 1
	party := reference.Party{ID: shared.ID(fmt.Sprint(n)), PartyID: fmt.Sprintf("P-%03d", n), Name: p.Name}
	f.parties = append(f.parties, party)
	return &party, nil
}

func (f *fakeBackend) UpdateParty(_ context.Context, id shared.ID, p reference.PartyPayload) (*reference.Party, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.parties {
		if f.parties[i].ID == id {
			f.parties[i].Name = p.Name
			return &f.parties[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeBackend) DeleteParty(_ context.Context, id shared.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.parties {
		if f.parties[i].ID == id {
			f.parties = append(f.parties[:i], f.parties[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (f *fakeBackend) Designs(context.Context) ([]reference.Design, error) {
	f.count("designs")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]reference.Design(nil), f.designs...), nil
}

func (f *fakeBackend) CreateDesign(_ context.Context, p reference.DesignPayload) (*reference.Design, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := reference.Design{ID: shared.ID(fmt.Sprint(len(f.designs) + 1)), DesignNumber: p.DesignNumber, ItemTypeID: p.ItemTypeID}
	f.designs = append(f.designs, d)
	return &d, nil
}

func (f *fakeBackend) UpdateDesign(_ context.Context, id shared.ID, p reference.DesignPayload) (*reference.Design, error) {
	return &reference.Design{ID: id, DesignNumber: p.DesignNumber}, nil
}

func (f *fakeBackend) DeleteDesign(context.Context, shared.ID) error { return nil }

func (f *fakeBackend) Transports(context.Context) ([]reference.TransportOption, error) {
	f.count("transport")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]reference.TransportOption(nil), f.transports...), nil
}

func (f *fakeBackend) CreateTransport(_ context.Context, p reference.TransportPayload) (*reference.TransportOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := reference.TransportOption{ID: shared.ID(fmt.Sprint(len(f.transports) + 1)), Name: p.Name}
	f.transports = append(f.transports, t)
	return &t, nil
}

func (f *fakeBackend) UpdateTransport(_ context.Context, id shared.ID, p reference.TransportPayload) (*reference.TransportOption, error) {
	return &reference.TransportOption{ID: id, Name: p.Name}, nil
}

func (f *fakeBackend) DeleteTransport(context.Context, shared.ID) error { return nil }

type fixture struct {
	backend    *fakeBackend
	registry   *refdata.Registry
	refresher  *Refresher
	parties    *PartyService
	designs    *DesignService
	transports *TransportService
	session    *identity.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	backend := newFakeBackend()
	registry := refdata.NewRegistry(refdata.Options{}, nil, log)
	t.Cleanup(registry.Close)

	connect := func(token string) Backend {
		assert.Equal(t, "backend-token", token)
		return backend
	}
	refresher := NewRefresher(registry, log)
	sess, err := identity.NewSession(identity.User{ID: "u1", Name: "Asha"}, "backend-token", time.Now(), time.Hour)
	require.NoError(t, err)

	return &fixture{
		backend:    backend,
		registry:   registry,
		refresher:  refresher,
		parties:    NewPartyService(connect, refresher, log),
		designs:    NewDesignService(connect, refresher, log),
		transports: NewTransportService(connect, refresher, log),
		session:    sess,
	}
}

// ============================================
// Cache refresh after mutation
// ============================================

func TestPartyService_CreateRefreshesSessionCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cache := f.registry.ForSession(f.session.ID, f.backend)
	require.NoError(t, cache.Refresh(ctx, reference.ResourceParties))
	status, err := cache.Status(reference.ResourceParties)
	require.NoError(t, err)
	assert.Zero(t, status.Count)

	party, err := f.parties.Create(ctx, f.session, reference.PartyPayload{Name: "  Sharma Traders "})
	require.NoError(t, err)
	assert.Equal(t, "P-001", party.PartyID)

	f.refresher.Wait()
	parties := cache.Parties(ctx)
	require.Len(t, parties, 1)
	assert.Equal(t, "Sharma Traders", parties[0].Name)
	assert.Equal(t, 2, f.backend.calls("parties"))
}

func TestPartyService_FailedMutationSkipsRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.registry.ForSession(f.session.ID, f.backend)
	f.backend.failWrites = errors.New("duplicate party")

	_, err := f.parties.Create(ctx, f.session, reference.PartyPayload{Name: "Sharma"})
	require.Error(t, err)
	f.refresher.Wait()
	assert.Equal(t, 0, f.backend.calls("parties"))
}

func TestPartyService_InvalidPayload(t *testing.T) {
	f := newFixture(t)
	_, err := f.parties.Create(context.Background(), f.session, reference.PartyPayload{Name: " ", Pincode: "12"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PARTY", domainErr.Code)
}

func TestPartyService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	party, err := f.parties.Create(ctx, f.session, reference.PartyPayload{Name: "Sharma"})
	require.NoError(t, err)

	updated, err := f.parties.Update(ctx, f.session, party.ID, reference.PartyPayload{Name: "Sharma & Sons"})
	require.NoError(t, err)
	assert.Equal(t, "Sharma & Sons", updated.Name)

	require.NoError(t, f.parties.Delete(ctx, f.session, party.ID))
	assert.ErrorIs(t, f.parties.Delete(ctx, f.session, party.ID), shared.ErrNotFound)

	list, err := f.parties.List(ctx, f.session)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRefresher_NoCacheForSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.transports.Create(context.Background(), f.session, reference.TransportPayload{Name: "VRL"})
	require.NoError(t, err)
	f.refresher.Wait()
	assert.Equal(t, 0, f.backend.calls("transport"))
	assert.Equal(t, 0, f.registry.Len(), "mutations do not create caches")
}

func TestRefresher_Nil(t *testing.T) {
	var r *Refresher
	assert.NotPanics(t, func() {
		r.Refresh(context.Background(), &identity.Session{ID: "s"}, reference.ResourceParties)
	})
	assert.NoError(t, r.Drain(context.Background()))
}

// slowTransports holds transport list calls until released
type slowTransports struct {
	*fakeBackend
	release chan struct{}
}

func (s *slowTransports) Transports(ctx context.Context) ([]reference.TransportOption, error) {
	select {
	case <-s.release:
		return s.fakeBackend.Transports(ctx)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestRefresher_Drain(t *testing.T) {
	f := newFixture(t)
	src := &slowTransports{fakeBackend: f.backend, release: make(chan struct{})}
	cache := f.registry.ForSession(f.session.ID, src)

	_, err := f.transports.Create(context.Background(), f.session, reference.TransportPayload{Name: "VRL"})
	require.NoError(t, err)

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.refresher.Drain(short), context.DeadlineExceeded)

	close(src.release)
	require.NoError(t, f.refresher.Drain(context.Background()))
	assert.Len(t, cache.Transports(context.Background()), 1)
}

// ============================================
// Designs and transport
// ============================================

func TestDesignService_CreateRefreshesDesigns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cache := f.registry.ForSession(f.session.ID, f.backend)

	_, err := f.designs.Create(ctx, f.session, reference.DesignPayload{
		DesignNumber: "D-100",
		ItemTypeID:   "t1",
		ColorIDs:     []shared.ID{"c1", "c1", "c2"},
	})
	require.NoError(t, err)
	f.refresher.Wait()

	designs := cache.Designs(ctx)
	require.Len(t, designs, 1)
	assert.Equal(t, "D-100", designs[0].DesignNumber)
}

func TestDesignService_RequiresItemType(t *testing.T) {
	f := newFixture(t)
	_, err := f.designs.Create(context.Background(), f.session, reference.DesignPayload{DesignNumber: "D-1"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_DESIGN", domainErr.Code)
}

func TestDesignService_GroupedColors(t *testing.T) {
	f := newFixture(t)
	groups, err := f.designs.GroupedColors(context.Background(), f.session)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "Reds", groups[0].Family)
	assert.Len(t, groups[0].Colors, 2)
	assert.Equal(t, "Blues", groups[1].Family)
	assert.Equal(t, "Other", groups[2].Family)
}

func TestDesignService_ItemTypes(t *testing.T) {
	f := newFixture(t)
	types, err := f.designs.ItemTypes(context.Background(), f.session)
	require.NoError(t, err)
	assert.Equal(t, "Kurta", types[0].Name)
}

func TestTransportService_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cache := f.registry.ForSession(f.session.ID, f.backend)

	created, err := f.transports.Create(ctx, f.session, reference.TransportPayload{Name: " VRL Logistics "})
	require.NoError(t, err)
	assert.Equal(t, "VRL Logistics", created.Name)

	_, err = f.transports.Update(ctx, f.session, created.ID, reference.TransportPayload{Name: "VRL"})
	require.NoError(t, err)
	require.NoError(t, f.transports.Delete(ctx, f.session, created.ID))
	f.refresher.Wait()

	assert.Len(t, cache.Transports(ctx), 1)
	_, err = f.transports.Create(ctx, f.session, reference.TransportPayload{})
	assert.Error(t, err)
}
