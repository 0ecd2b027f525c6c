package storefront

import (
	"context"
	"testing"
)

func TestNewVaultSelectsDriver(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		cfg  VaultConfig
		want VaultDriver
	}{
		{VaultConfig{Driver: VaultNull}, VaultNull},
		{VaultConfig{Driver: VaultMemory}, VaultMemory},
		{VaultConfig{Driver: VaultRedis}, VaultRedis},
		{VaultConfig{Driver: VaultNATS}, VaultNATS},
		{VaultConfig{Driver: VaultFile, FilePath: t.TempDir() + "/credentials"}, VaultFile},
	}
	for _, tc := range cases {
		if got := NewVault(ctx, tc.cfg).Driver(); got != tc.want {
			t.Fatalf("driver %q: got %q", tc.want, got)
		}
	}
}

func TestNewVaultPreservesConstructionFailure(t *testing.T) {
	ctx := context.Background()
	// Missing DSN is a construction error, not a panic.
	v := NewVault(ctx, VaultConfig{Driver: VaultSQL})
	if v.Driver() != VaultSQL {
		t.Fatalf("expected driver identity preserved, got %q", v.Driver())
	}
	if _, _, err := v.Load(ctx); err == nil {
		t.Fatalf("expected construction error surfaced on load")
	}
	if err := v.Store(ctx, "tok"); err == nil {
		t.Fatalf("expected construction error surfaced on store")
	}
	if err := v.Clear(ctx); err == nil {
		t.Fatalf("expected construction error surfaced on clear")
	}
}

func TestNewVaultWithOptions(t *testing.T) {
	ctx := context.Background()
	v := NewVaultWith(ctx, VaultRedis,
		WithVaultRedisClient(newRedisStub()),
		WithVaultPrefix("shopapp"),
		WithVaultKey("session"),
	)
	if v.Driver() != VaultRedis {
		t.Fatalf("unexpected driver %q", v.Driver())
	}
	if err := v.Store(ctx, "tok"); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	token, ok, err := v.Load(ctx)
	if err != nil || !ok || token != "tok" {
		t.Fatalf("unexpected load: ok=%v token=%q err=%v", ok, token, err)
	}
}

func TestSQLVaultRejectsBadTableName(t *testing.T) {
	_, err := newSQLVault(VaultConfig{
		Driver:        VaultSQL,
		SQLDriverName: "sqlite",
		SQLDSN:        "file:" + t.TempDir() + "/vault.db",
		SQLTable:      "creds; DROP TABLE users",
		Key:           "auth_token",
	})
	if err == nil {
		t.Fatalf("expected table name rejection")
	}
}
