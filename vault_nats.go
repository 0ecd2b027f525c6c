package storefront

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"
)

// NATSKeyValue captures the subset of nats.KeyValue used by the vault.
type NATSKeyValue interface {
	Get(key string) (nats.KeyValueEntry, error)
	Put(key string, value []byte) (uint64, error)
	Purge(key string, opts ...nats.DeleteOpt) error
}

type natsVault struct {
	kv     NATSKeyValue
	prefix string
	key    string
}

func newNATSVault(kv NATSKeyValue, prefix, key string) Vault {
	if prefix == "" {
		prefix = defaultVaultPrefix
	}
	if key == "" {
		key = defaultVaultKey
	}
	return &natsVault{kv: kv, prefix: prefix, key: key}
}

func (v *natsVault) Driver() VaultDriver { return VaultNATS }

func (v *natsVault) Load(_ context.Context) (string, bool, error) {
	if v.kv == nil {
		return "", false, errors.New("nats vault key-value unavailable")
	}
	entry, err := v.kv.Get(v.vaultKey())
	if isNATSMiss(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if entry.Operation() == nats.KeyValueDelete || entry.Operation() == nats.KeyValuePurge {
		return "", false, nil
	}
	token := string(entry.Value())
	return token, token != "", nil
}

func (v *natsVault) Store(_ context.Context, token string) error {
	if v.kv == nil {
		return errors.New("nats vault key-value unavailable")
	}
	_, err := v.kv.Put(v.vaultKey(), []byte(token))
	return err
}

func (v *natsVault) Clear(_ context.Context) error {
	if v.kv == nil {
		return errors.New("nats vault key-value unavailable")
	}
	err := v.kv.Purge(v.vaultKey())
	if isNATSMiss(err) {
		return nil
	}
	return err
}

func (v *natsVault) vaultKey() string {
	return v.prefix + "." + v.key
}

func isNATSMiss(err error) bool {
	return errors.Is(err, nats.ErrKeyNotFound) || errors.Is(err, nats.ErrKeyDeleted)
}
