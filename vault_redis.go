package storefront

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient captures the subset of redis.Client used by the vault.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisVault struct {
	client RedisClient
	prefix string
	key    string
}

func newRedisVault(client RedisClient, prefix, key string) Vault {
	if prefix == "" {
		prefix = defaultVaultPrefix
	}
	if key == "" {
		key = defaultVaultKey
	}
	return &redisVault{client: client, prefix: prefix, key: key}
}

func (v *redisVault) Driver() VaultDriver { return VaultRedis }

func (v *redisVault) Load(ctx context.Context) (string, bool, error) {
	if v.client == nil {
		return "", false, errors.New("redis vault client unavailable")
	}
	token, err := v.client.Get(ctx, v.vaultKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return token, token != "", nil
}

func (v *redisVault) Store(ctx context.Context, token string) error {
	if v.client == nil {
		return errors.New("redis vault client unavailable")
	}
	return v.client.Set(ctx, v.vaultKey(), token, 0).Err()
}

func (v *redisVault) Clear(ctx context.Context) error {
	if v.client == nil {
		return errors.New("redis vault client unavailable")
	}
	return v.client.Del(ctx, v.vaultKey()).Err()
}

func (v *redisVault) vaultKey() string {
	return v.prefix + ":" + v.key
}
