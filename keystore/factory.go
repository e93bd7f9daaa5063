package keystore

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// Backend names accepted by New
const (
	BackendAuto          = "auto"
	BackendKeychain      = "keychain"
	BackendSystem        = "system"
	BackendEncryptedFile = "encrypted-file"
	BackendFile          = "file"
)

var (
	// ErrInvalidOptions is returned when a backend is missing required options
	ErrInvalidOptions = errors.New("invalid keystore options")

	// ErrUnknownBackend is returned for an unsupported backend name
	ErrUnknownBackend = errors.New("unknown keystore backend")
)

// Options configures a backend
type Options struct {
	Backend        string
	Path           string // file path for file, directory for encrypted-file
	Password       string // encrypted-file only
	DefaultAccount string // system only, used for unfiltered queries
}

// Backends lists every backend name accepted by New
func Backends() []string {
	return []string{BackendAuto, BackendKeychain, BackendSystem, BackendEncryptedFile, BackendFile}
}

// New creates a Store for the named backend:
//   - auto -> keychain on macOS with cgo, system otherwise
//   - keychain -> KeychainStore
//   - system -> SystemStore
//   - encrypted-file -> EncryptedFileStore (requires path and password)
//   - file -> FileStore (requires path)
func New(opts Options, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	backend := opts.Backend
	if backend == BackendAuto || backend == "" {
		backend = BackendSystem
		if keychainAvailable {
			backend = BackendKeychain
		}
	}

	var (
		store Store
		err   error
	)
	switch backend {
	case BackendKeychain:
		store, err = NewKeychainStore(logger)

	case BackendSystem:
		store, err = NewSystemStore(opts.DefaultAccount, logger)

	case BackendEncryptedFile:
		store, err = NewEncryptedFileStore(opts.Path, opts.Password, logger)

	case BackendFile:
		store, err = NewFileStore(opts.Path, logger)

	default:
		return nil, fmt.Errorf("%w: %q (supported on %s: %v)", ErrUnknownBackend, opts.Backend, runtime.GOOS, Backends())
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Credential store opened", "backend", backend)
	return store, nil
}
