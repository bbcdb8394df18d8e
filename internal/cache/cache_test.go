package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lib-x/scel"
	"github.com/lib-x/scel/internal/testutil"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	sets    int
	failGet error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.failGet != nil {
		return nil, m.failGet
	}
	b, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return b, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = value
	return nil
}

func writeScel(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cached.scel")
	data := testutil.MakeScel(&testutil.File{Name: name, WordCount: 7})
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestInfoCache_Accessor(t *testing.T) {
	store := newMemStore()
	c := NewInfoCache(store, 0)
	path := writeScel(t, "缓存")

	first, err := c.Accessor(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "缓存", first.Info.Name)
	assert.Equal(t, uint32(7), first.Info.WordCount)
	assert.Equal(t, 1, store.sets)

	second, err := c.Accessor(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.sets, "second lookup should be served from the store")
	assert.Equal(t, 2, store.gets)
}

func TestInfoCache_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.failGet = errors.New("connection refused")
	c := NewInfoCache(store, time.Minute)

	sa, err := c.Accessor(context.Background(), writeScel(t, "降级"))
	require.NoError(t, err)
	assert.Equal(t, "降级", sa.Info.Name)
}

func TestInfoCache_CorruptEntry(t *testing.T) {
	for name, entry := range map[string]string{
		"bad json":     "{not json",
		"missing info": "{}",
	} {
		t.Run(name, func(t *testing.T) {
			store := newMemStore()
			c := NewInfoCache(store, time.Minute)
			path := writeScel(t, "损坏")

			_, err := c.Accessor(context.Background(), path)
			require.NoError(t, err)
			for k := range store.data {
				store.data[k] = []byte(entry)
			}

			sa, err := c.Accessor(context.Background(), path)
			require.NoError(t, err)
			require.NotNil(t, sa.Info)
			assert.Equal(t, "损坏", sa.Info.Name)
			assert.Equal(t, 2, store.sets, "discarded entry should be rewritten")
			for _, v := range store.data {
				assert.NotEqual(t, entry, string(v))
			}
		})
	}
}

func TestInfoCache_Errors(t *testing.T) {
	c := NewInfoCache(newMemStore(), 0)

	_, err := c.Accessor(context.Background(), filepath.Join(t.TempDir(), "missing.scel"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "short.scel")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o600))
	_, err = c.Accessor(context.Background(), path)
	assert.ErrorIs(t, err, scel.ErrFormatMismatch)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("SCEL_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping test because SCEL_TEST_REDIS_ADDR is not set")
	}

	ctx := context.Background()
	store, err := NewRedisStore(ctx, addr)
	require.NoError(t, err)
	defer store.Close()

	key := keyPrefix + "test:" + t.Name()
	_, err = store.Get(ctx, key+":absent")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set(ctx, key, []byte("value"), time.Minute))
	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}
