//go:build !darwin || !cgo

package keystore

import (
	"fmt"
	"log/slog"
	"runtime"
)

const keychainAvailable = false

// KeychainStore is only available on macOS builds with cgo enabled.
type KeychainStore struct{}

// NewKeychainStore always fails on this platform
func NewKeychainStore(logger *slog.Logger) (*KeychainStore, error) {
	return nil, fmt.Errorf("keychain backend on %s: %w", runtime.GOOS, ErrNotAvailable)
}

func (s *KeychainStore) Get(q Query) ([]byte, error) { return nil, ErrNotAvailable }

func (s *KeychainStore) Add(item Item) error { return ErrNotAvailable }

func (s *KeychainStore) Delete(q Query) error { return ErrNotAvailable }
