package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/config"
)

func newSession(t *testing.T, now time.Time, ttl time.Duration) *identity.Session {
	t.Helper()
	s, err := identity.NewSession(identity.User{ID: "7", Name: "Asha", Phone: "9876543210"}, "backend-token", now, ttl)
	require.NoError(t, err)
	return s
}

// ============================================
// In-memory store
// ============================================

func TestInMemorySessionStore_SaveGetDelete(t *testing.T) {
	store := NewInMemorySessionStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	session := newSession(t, time.Now(), time.Hour)
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.User, got.User)
	assert.Equal(t, "backend-token", got.BackendToken)

	require.NoError(t, store.Delete(ctx, session.ID))
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, identity.ErrSessionNotFound)

	assert.NoError(t, store.Delete(ctx, "missing"))
}

func TestInMemorySessionStore_Expiry(t *testing.T) {
	store := NewInMemorySessionStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return start }
	session := newSession(t, start, time.Minute)
	require.NoError(t, store.Save(ctx, session))

	store.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err := store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, identity.ErrSessionNotFound)

	assert.Equal(t, 1, store.Size())
	store.cleanup()
	assert.Equal(t, 0, store.Size())
}

func TestInMemorySessionStore_ReturnsCopies(t *testing.T) {
	store := NewInMemorySessionStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	session := newSession(t, time.Now(), time.Hour)
	require.NoError(t, store.Save(ctx, session))
	session.User.Name = "changed"

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.User.Name)
}

func TestInMemorySessionStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemorySessionStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

// ============================================
// Factory
// ============================================

func TestSessionStoreFactory(t *testing.T) {
	ctx := context.Background()

	t.Run("redis disabled uses memory", func(t *testing.T) {
		f := NewSessionStoreFactory(config.RedisConfig{Enabled: false}, WithLogger(zaptest.NewLogger(t)))
		store, err := f.CreateStore(ctx)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemorySessionStore{}, store)
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		f := NewSessionStoreFactory(config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1})
		store, err := f.CreateStore(ctx)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemorySessionStore{}, store)
	})

	t.Run("fallback disabled fails", func(t *testing.T) {
		f := NewSessionStoreFactory(config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
			WithInMemoryFallback(false))
		_, err := f.CreateStore(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis required")
	})
}
