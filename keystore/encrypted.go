package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"github.com/99designs/keyring"
)

// EncryptedFileStore implements Store with one JOSE-encrypted file per entry,
// laid out as <dir>/<service>/<account>. It is meant for hosts without a
// keychain or Secret Service daemon.
type EncryptedFileStore struct {
	dir      string
	password string
	logger   *slog.Logger

	mu    sync.Mutex
	rings map[string]keyring.Keyring
}

// NewEncryptedFileStore creates an encrypted file store rooted at dir
func NewEncryptedFileStore(dir, password string, logger *slog.Logger) (*EncryptedFileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: encrypted file store requires a directory", ErrInvalidOptions)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: encrypted file store requires a password", ErrInvalidOptions)
	}
	return &EncryptedFileStore{
		dir:      dir,
		password: password,
		logger:   logger,
		rings:    make(map[string]keyring.Keyring),
	}, nil
}

func (s *EncryptedFileStore) ring(service string) (keyring.Keyring, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ring, ok := s.rings[service]; ok {
		return ring, nil
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:      service,
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          filepath.Join(s.dir, service),
		FilePasswordFunc: keyring.FixedStringPrompt(s.password),
	})
	if err != nil {
		return nil, &StatusError{Status: StatusNotAvailable, Err: err}
	}
	s.rings[service] = ring
	return ring, nil
}

// Get returns the entry for the account, or for an unfiltered query the first
// key in listing order
func (s *EncryptedFileStore) Get(q Query) ([]byte, error) {
	ring, err := s.ring(q.Service)
	if err != nil {
		return nil, err
	}

	key := q.Account
	if key == "" {
		keys, err := ring.Keys()
		if err != nil {
			return nil, encryptedError(err)
		}
		if len(keys) == 0 {
			return nil, ErrNotFound
		}
		sort.Strings(keys)
		key = keys[0]
	}

	item, err := ring.Get(key)
	if err != nil {
		return nil, encryptedError(err)
	}
	return item.Data, nil
}

// Add encrypts and writes a new entry
func (s *EncryptedFileStore) Add(item Item) error {
	ring, err := s.ring(item.Service)
	if err != nil {
		return err
	}
	if _, err := ring.Get(item.Account); err == nil {
		return ErrDuplicateItem
	}

	err = ring.Set(keyring.Item{
		Key:   item.Account,
		Data:  item.Data,
		Label: item.Service,
	})
	if err != nil {
		return encryptedError(err)
	}

	s.logger.Debug("Stored encrypted entry", "service", item.Service, "account", item.Account)
	return nil
}

// Delete removes the entry, or every entry of the service for an unfiltered query
func (s *EncryptedFileStore) Delete(q Query) error {
	ring, err := s.ring(q.Service)
	if err != nil {
		return err
	}

	keys := []string{q.Account}
	if q.Account == "" {
		if keys, err = ring.Keys(); err != nil {
			return encryptedError(err)
		}
	}

	for _, key := range keys {
		if err := ring.Remove(key); err != nil && !isMissing(err) {
			return encryptedError(err)
		}
	}
	return nil
}

func isMissing(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, fs.ErrNotExist)
}

func encryptedError(err error) error {
	if isMissing(err) {
		return &StatusError{Status: StatusItemNotFound, Err: err}
	}
	return &StatusError{Status: StatusIO, Err: err}
}
