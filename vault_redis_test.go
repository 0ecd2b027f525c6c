package storefront

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisStub is a map-backed RedisClient for tests.
type redisStub struct {
	values map[string]string
	err    error
}

func newRedisStub() *redisStub {
	return &redisStub{values: make(map[string]string)}
}

func (s *redisStub) Get(_ context.Context, key string) *redis.StringCmd {
	if s.err != nil {
		return redis.NewStringResult("", s.err)
	}
	value, ok := s.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (s *redisStub) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if s.err != nil {
		return redis.NewStatusResult("", s.err)
	}
	s.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (s *redisStub) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if s.err != nil {
		return redis.NewIntResult(0, s.err)
	}
	var removed int64
	for _, key := range keys {
		if _, ok := s.values[key]; ok {
			delete(s.values, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestRedisVaultRoundTrip(t *testing.T) {
	ctx := context.Background()
	stub := newRedisStub()
	v := newRedisVault(stub, "shopapp", "auth_token")

	if _, ok, err := v.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty vault, got ok=%v err=%v", ok, err)
	}
	if err := v.Store(ctx, "tok-redis"); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if _, ok := stub.values["shopapp:auth_token"]; !ok {
		t.Fatalf("expected prefixed key, have %v", stub.values)
	}
	token, ok, err := v.Load(ctx)
	if err != nil || !ok || token != "tok-redis" {
		t.Fatalf("unexpected load: ok=%v token=%q err=%v", ok, token, err)
	}
	if err := v.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok, _ := v.Load(ctx); ok {
		t.Fatalf("expected cleared vault")
	}
}

func TestRedisVaultBackendFailure(t *testing.T) {
	ctx := context.Background()
	stub := newRedisStub()
	stub.err = errors.New("connection reset")
	v := newRedisVault(stub, "", "")

	if _, _, err := v.Load(ctx); err == nil {
		t.Fatalf("expected load failure")
	}
	if err := v.Store(ctx, "tok"); err == nil {
		t.Fatalf("expected store failure")
	}
}

func TestRedisVaultNilClient(t *testing.T) {
	ctx := context.Background()
	v := newRedisVault(nil, "", "")
	if _, _, err := v.Load(ctx); err == nil {
		t.Fatalf("expected error without a client")
	}
	if err := v.Store(ctx, "tok"); err == nil {
		t.Fatalf("expected error without a client")
	}
	if err := v.Clear(ctx); err == nil {
		t.Fatalf("expected error without a client")
	}
}
