package keystore

import (
	"errors"
	"fmt"
	"log/slog"
	"os/user"
	"runtime"

	"github.com/zalando/go-keyring"
)

// SystemStore implements Store using the platform keyring:
//   - macOS: Keychain Access
//   - Windows: Credential Manager
//   - Linux: Secret Service (GNOME Keyring, KWallet)
//
// The platform keyring cannot look an entry up without an account, so
// unfiltered queries use defaultAccount. Accessibility is left to the platform.
type SystemStore struct {
	defaultAccount string
	logger         *slog.Logger
}

// NewSystemStore creates a platform keyring store. An empty defaultAccount
// falls back to the current OS user name.
func NewSystemStore(defaultAccount string, logger *slog.Logger) (*SystemStore, error) {
	if defaultAccount == "" {
		u, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("failed to determine current user: %w", err)
		}
		defaultAccount = u.Username
	}
	return &SystemStore{defaultAccount: defaultAccount, logger: logger}, nil
}

func (s *SystemStore) account(account string) string {
	if account == "" {
		return s.defaultAccount
	}
	return account
}

// Get retrieves an entry from the platform keyring
func (s *SystemStore) Get(q Query) ([]byte, error) {
	secret, err := keyring.Get(q.Service, s.account(q.Account))
	if err != nil {
		return nil, systemError(err)
	}
	return []byte(secret), nil
}

// Add stores a new entry. The platform keyring replaces silently, so an
// existing entry is detected first.
func (s *SystemStore) Add(item Item) error {
	account := s.account(item.Account)
	if _, err := keyring.Get(item.Service, account); err == nil {
		return ErrDuplicateItem
	}
	if err := keyring.Set(item.Service, account, string(item.Data)); err != nil {
		return systemError(err)
	}
	s.logger.Debug("Stored entry in system keyring",
		"os", runtime.GOOS, "service", item.Service, "account", account)
	return nil
}

// Delete removes the entry. An empty account removes every entry of the service.
func (s *SystemStore) Delete(q Query) error {
	var err error
	if q.Account == "" {
		err = keyring.DeleteAll(q.Service)
	} else {
		err = keyring.Delete(q.Service, q.Account)
	}
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return systemError(err)
}

func systemError(err error) error {
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return &StatusError{Status: StatusItemNotFound, Err: err}
	case errors.Is(err, keyring.ErrSetDataTooBig):
		return &StatusError{Status: StatusAllocate, Err: err}
	default:
		return &StatusError{Status: StatusIO, Err: fmt.Errorf("%s keyring: %w", runtime.GOOS, err)}
	}
}
