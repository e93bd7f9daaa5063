//go:build darwin && cgo

package keystore

import (
	"errors"
	"log/slog"

	"github.com/keybase/go-keychain"
)

const keychainAvailable = true

// KeychainStore implements Store on top of macOS generic password items.
type KeychainStore struct {
	logger *slog.Logger
}

// NewKeychainStore creates a store backed by the login keychain
func NewKeychainStore(logger *slog.Logger) (*KeychainStore, error) {
	return &KeychainStore{logger: logger}, nil
}

func keychainItem(service, account string) keychain.Item {
	item := keychain.NewItem()
	item.SetSecClass(keychain.SecClassGenericPassword)
	item.SetService(service)
	if account != "" {
		item.SetAccount(account)
	}
	return item
}

// Get queries for the single most recent match and returns its data
func (s *KeychainStore) Get(q Query) ([]byte, error) {
	query := keychainItem(q.Service, q.Account)
	query.SetMatchLimit(keychain.MatchLimitOne)
	query.SetReturnData(true)

	results, err := keychain.QueryItem(query)
	if err != nil {
		return nil, keychainError(err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	s.logger.Debug("Keychain item found", "service", q.Service, "account", q.Account)
	return results[0].Data, nil
}

// Add inserts a new generic password item
func (s *KeychainStore) Add(item Item) error {
	entry := keychainItem(item.Service, item.Account)
	entry.SetData(item.Data)
	entry.SetSynchronizable(keychain.SynchronizableNo)
	entry.SetAccessible(keychainAccessible(item.Accessibility))

	if err := keychain.AddItem(entry); err != nil {
		return keychainError(err)
	}
	return nil
}

// Delete removes all items matching the query
func (s *KeychainStore) Delete(q Query) error {
	err := keychain.DeleteItem(keychainItem(q.Service, q.Account))
	if err == nil || errors.Is(err, keychain.ErrorItemNotFound) {
		return nil
	}
	return keychainError(err)
}

func keychainAccessible(a Accessibility) keychain.Accessible {
	if a == AccessibleWhenUnlocked {
		return keychain.AccessibleWhenUnlocked
	}
	return keychain.AccessibleAfterFirstUnlock
}

// keychainError carries the OSStatus of a Security framework failure through unchanged.
func keychainError(err error) error {
	var kerr keychain.Error
	if errors.As(err, &kerr) {
		return &StatusError{Status: Status(kerr), Err: err}
	}
	return &StatusError{Status: StatusIO, Err: err}
}
