package storefront

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

var (
	createTempFile = os.CreateTemp
	renameFile     = os.Rename
)

// fileVault keeps the token in a single 0600 file, the durable-storage
// analog of the browser's localStorage key. Writes go through a temp file
// and rename so a crash never leaves a torn credential.
type fileVault struct {
	path string
}

func newFileVault(path string) Vault {
	if path == "" {
		path = defaultVaultFilePath()
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o700)
	return &fileVault{path: path}
}

func (v *fileVault) Driver() VaultDriver { return VaultFile }

func (v *fileVault) Load(_ context.Context) (string, bool, error) {
	data, err := os.ReadFile(v.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	if len(data) == 0 {
		return "", false, nil
	}
	return string(data), true, nil
}

func (v *fileVault) Store(_ context.Context, token string) error {
	tmp, err := createTempFile(filepath.Dir(v.path), "credential-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return renameFile(tmpPath, v.path)
}

func (v *fileVault) Clear(_ context.Context) error {
	if err := os.Remove(v.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
