package storefront

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// memoryVault keeps the token in process memory only. Useful for tests and
// for embedders that manage persistence themselves.
type memoryVault struct {
	cache *gocache.Cache
	key   string
}

func newMemoryVault(key string) Vault {
	if key == "" {
		key = defaultVaultKey
	}
	return &memoryVault{
		cache: gocache.New(gocache.NoExpiration, 0),
		key:   key,
	}
}

func (v *memoryVault) Driver() VaultDriver { return VaultMemory }

func (v *memoryVault) Load(_ context.Context) (string, bool, error) {
	item, ok := v.cache.Get(v.key)
	if !ok {
		return "", false, nil
	}
	token, ok := item.(string)
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (v *memoryVault) Store(_ context.Context, token string) error {
	v.cache.Set(v.key, token, gocache.NoExpiration)
	return nil
}

func (v *memoryVault) Clear(_ context.Context) error {
	v.cache.Delete(v.key)
	return nil
}
