package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cenovnik/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore simulates a durable store whose disk is gone.
type failingStore struct{}

func (failingStore) Save(context.Context, string, *Session) error { return errors.New("disk full") }
func (failingStore) Delete(context.Context, string) error         { return errors.New("disk full") }
func (failingStore) LoadAll(context.Context) (map[string]*Session, error) {
	return nil, errors.New("disk gone")
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewFileStore(dir, logger.Discard())
	require.NoError(t, err)
	return NewManager(store, logger.Discard(), opts...), dir
}

func TestManager_CreateWritesFile(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	mgr, dir := newTestManager(t, WithClock(clock.Now))
	ctx := context.Background()

	id, err := mgr.Create(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, id, 64)

	_, err = os.Stat(filepath.Join(dir, id+".json"))
	require.NoError(t, err)

	s, err := mgr.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "admin", s.Username)
	assert.Equal(t, clock.Now(), s.CreatedAt)
	assert.Equal(t, clock.Now().Add(24*time.Hour), s.ExpiresAt)
}

func TestManager_IDsAreUnique(t *testing.T) {
	mgr, _ := newTestManager(t)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := mgr.Create(context.Background(), "admin")
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestManager_ValidateUnknownOrEmpty(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.False(t, mgr.Validate(context.Background(), ""))
	assert.False(t, mgr.Validate(context.Background(), "deadbeef"))
}

func TestManager_ExpiryBoundary(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	mgr, dir := newTestManager(t, WithClock(clock.Now), WithTTL(time.Hour))
	ctx := context.Background()

	id, err := mgr.Create(ctx, "admin")
	require.NoError(t, err)

	clock.Advance(time.Hour - time.Nanosecond)
	assert.True(t, mgr.Validate(ctx, id), "valid just before expiry")

	clock.Advance(time.Nanosecond)
	assert.False(t, mgr.Validate(ctx, id), "invalid at the expiry instant")

	// expired sessions are dropped from memory and disk
	assert.Equal(t, 0, mgr.Count())
	_, err = os.Stat(filepath.Join(dir, id+".json"))
	assert.True(t, os.IsNotExist(err))
}

func TestManager_GetExpiredReturnsSentinel(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	mgr, _ := newTestManager(t, WithClock(clock.Now))
	ctx := context.Background()

	id, err := mgr.Create(ctx, "admin")
	require.NoError(t, err)
	clock.Advance(25 * time.Hour)

	_, err = mgr.Get(ctx, id)
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = mgr.Get(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Destroy(t *testing.T) {
	mgr, dir := newTestManager(t)
	ctx := context.Background()

	id, err := mgr.Create(ctx, "admin")
	require.NoError(t, err)

	assert.True(t, mgr.Destroy(ctx, id))
	assert.False(t, mgr.Destroy(ctx, id))
	assert.False(t, mgr.Validate(ctx, id))

	_, err = os.Stat(filepath.Join(dir, id+".json"))
	assert.True(t, os.IsNotExist(err))
}

func TestManager_LoadSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, logger.Discard())
	require.NoError(t, err)
	ctx := context.Background()

	first := NewManager(store, logger.Discard())
	id, err := first.Create(ctx, "admin")
	require.NoError(t, err)

	second := NewManager(store, logger.Discard())
	n, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, second.Validate(ctx, id))
}

func TestManager_PersistenceFailuresAreSwallowed(t *testing.T) {
	mgr := NewManager(failingStore{}, logger.Discard())
	ctx := context.Background()

	id, err := mgr.Create(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, mgr.Validate(ctx, id))
	assert.True(t, mgr.Destroy(ctx, id))

	_, err = mgr.Load(ctx)
	assert.Error(t, err)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := mgr.Create(ctx, "admin")
			if err != nil {
				t.Error(err)
				return
			}
			mgr.Validate(ctx, id)
			mgr.Destroy(ctx, id)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, mgr.Count())
}
