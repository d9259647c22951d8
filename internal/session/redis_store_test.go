package session

import (
	"context"
	"testing"
	"time"

	"cenovnik/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *RedisStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	endpoint, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)

	store := NewRedisStore(endpoint, "", 0, logger.Discard())
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ping(ctx))
	return store
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store := startRedis(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.Save(ctx, "one", &Session{Username: "admin", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, "two", &Session{Username: "admin", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))

	// already expired sessions are never written
	require.NoError(t, store.Save(ctx, "stale", &Session{Username: "admin", ExpiresAt: now.Add(-time.Minute)}))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
	assert.Contains(t, loaded, "one")
	assert.Contains(t, loaded, "two")

	require.NoError(t, store.Delete(ctx, "one"))
	loaded, err = store.LoadAll(ctx)
	require.NoError(t, err)
	assert.NotContains(t, loaded, "one")
}

func TestRedisStore_BacksManager(t *testing.T) {
	store := startRedis(t)
	ctx := context.Background()

	mgr := NewManager(store, logger.Discard())
	id, err := mgr.Create(ctx, "admin")
	require.NoError(t, err)

	restarted := NewManager(store, logger.Discard())
	n, err := restarted.Load(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
	assert.True(t, restarted.Validate(ctx, id))
}
