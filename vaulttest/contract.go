package vaulttest

import (
	"context"
	"testing"

	"github.com/honeykokia/storefront"
)

// Options configures shared vault contract checks.
type Options struct {
	// NullSemantics enables relaxed expectations for the null vault, which
	// accepts writes but never persists them.
	NullSemantics bool
}

// RunVaultContract runs a backend-agnostic credential vault suite.
func RunVaultContract(t *testing.T, vault storefront.Vault, opts Options) {
	t.Helper()
	ctx := context.Background()

	// An empty vault reports absence, not failure.
	if _, ok, err := vault.Load(ctx); err != nil {
		t.Fatalf("load on empty vault failed: %v", err)
	} else if ok {
		t.Fatalf("expected empty vault to report no credential")
	}

	if err := vault.Store(ctx, "token-one"); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	token, ok, err := vault.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if opts.NullSemantics {
		if ok {
			t.Fatalf("expected null vault to persist nothing")
		}
		return
	}
	if !ok || token != "token-one" {
		t.Fatalf("unexpected load result: ok=%v token=%q", ok, token)
	}

	// Store overwrites in place.
	if err := vault.Store(ctx, "token-two"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	token, ok, err = vault.Load(ctx)
	if err != nil || !ok || token != "token-two" {
		t.Fatalf("unexpected overwrite result: ok=%v token=%q err=%v", ok, token, err)
	}

	// Clear is idempotent.
	if err := vault.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := vault.Clear(ctx); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
	if _, ok, err := vault.Load(ctx); err != nil || ok {
		t.Fatalf("expected cleared vault to be empty: ok=%v err=%v", ok, err)
	}
}
