package storefront

import "context"

// nullVault never persists anything. Restoring from it always finds no
// credential, which is the demo-mode behavior.
type nullVault struct{}

func newNullVault() Vault { return &nullVault{} }

func (v *nullVault) Driver() VaultDriver { return VaultNull }

func (v *nullVault) Load(context.Context) (string, bool, error) { return "", false, nil }

func (v *nullVault) Store(context.Context, string) error { return nil }

func (v *nullVault) Clear(context.Context) error { return nil }
