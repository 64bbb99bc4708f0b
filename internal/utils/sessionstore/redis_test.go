package sessionstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ fiber.Storage = (*RedisStorage)(nil)

type fakeRedis struct {
	data   map[string]string
	ttl    map[string]time.Duration
	closed bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd {
	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return redis.NewScanCmdResult(keys, 0, nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisStorage_RoundTrip(t *testing.T) {
	client := newFakeRedis()
	store := newRedisStorage(client, "")

	val, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set("abc", []byte("payload"), time.Hour))
	assert.Equal(t, "payload", client.data[defaultPrefix+"abc"])
	assert.Equal(t, time.Hour, client.ttl[defaultPrefix+"abc"])

	val, err = store.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), val)

	require.NoError(t, store.Delete("abc"))
	val, err = store.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_ResetKeepsForeignKeys(t *testing.T) {
	client := newFakeRedis()
	client.data["other:key"] = "keep"
	store := newRedisStorage(client, "s:")

	require.NoError(t, store.Set("a", []byte("1"), 0))
	require.NoError(t, store.Set("b", []byte("2"), 0))
	require.NoError(t, store.Reset())

	assert.Equal(t, map[string]string{"other:key": "keep"}, client.data)

	require.NoError(t, store.Close())
	assert.True(t, client.closed)
}

func TestRedisStorage_IgnoresEmptyInput(t *testing.T) {
	client := newFakeRedis()
	store := newRedisStorage(client, "")

	require.NoError(t, store.Set("", []byte("x"), 0))
	require.NoError(t, store.Set("k", nil, 0))
	assert.Empty(t, client.data)
}
