//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/cache"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/config"
)

func TestRedisSessionStore(t *testing.T) {
	host, port := startRedis(t)
	ctx := context.Background()

	store, err := cache.NewSessionStoreFactory(config.RedisConfig{
		Enabled: true,
		Host:    host,
		Port:    port,
	}, cache.WithInMemoryFallback(false)).CreateStore(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, isRedis := store.(*cache.RedisSessionStore)
	require.True(t, isRedis)

	sess, err := identity.NewSession(identity.User{ID: "u-1", Name: "Asha"}, "backend-token", time.Now(), time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.User, got.User)
	assert.Equal(t, "backend-token", got.BackendToken)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, identity.ErrSessionNotFound)

	expired, err := identity.NewSession(identity.User{ID: "u-1"}, "t", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	assert.ErrorIs(t, store.Save(ctx, expired), identity.ErrSessionNotFound)
}

func TestSessionStoreFactory_RedisRequired(t *testing.T) {
	_, err := cache.NewSessionStoreFactory(config.RedisConfig{
		Enabled: true,
		Host:    "127.0.0.1",
		Port:    1,
	}, cache.WithInMemoryFallback(false)).CreateStore(context.Background())
	assert.Error(t, err)
}
