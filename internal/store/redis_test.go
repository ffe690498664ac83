package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisKV) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisKV(client, "")
}

func TestRedisKV(t *testing.T) {
	_, kv := newTestRedis(t)
	kvContract(t, kv)
}

func TestRedisKV_Prefix(t *testing.T) {
	mr, kv := newTestRedis(t)
	require.NoError(t, kv.Set(context.Background(), "ambient.enabled", []byte("true")))

	got, err := mr.Get("nudge:ambient.enabled")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	kv, err := OpenRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set(context.Background(), "k", []byte("v")))
	assert.True(t, mr.Exists("nudge:k"))
}

func TestOpenRedis_BadURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestRedisKV_ServerDown(t *testing.T) {
	mr, kv := newTestRedis(t)
	mr.Close()

	_, _, err := kv.Get(context.Background(), "k")
	assert.Error(t, err)
}
