// Package keystore provides access to secure credential stores addressed by
// a service name and an account name.
//
// Backends:
//   - keychain (macOS, cgo): Security framework generic passwords
//   - system: the platform keyring (Keychain, Secret Service, Credential Manager)
//   - encrypted-file: JOSE-encrypted files, one per entry
//   - file: a single owner-only YAML file
package keystore

// Accessibility controls when the bytes of an entry may be read relative to
// the device unlock state.
type Accessibility int

const (
	// AccessibleAfterFirstUnlock entries are readable once the device has been
	// unlocked after boot and stay readable until the next restart.
	AccessibleAfterFirstUnlock Accessibility = iota
	// AccessibleWhenUnlocked entries are readable only while the device is unlocked.
	AccessibleWhenUnlocked
)

func (a Accessibility) String() string {
	switch a {
	case AccessibleAfterFirstUnlock:
		return "after-first-unlock"
	case AccessibleWhenUnlocked:
		return "when-unlocked"
	default:
		return "unknown"
	}
}

// Query selects entries. An empty Account matches every account under Service.
type Query struct {
	Service string
	Account string
}

// Item is an entry to be written.
type Item struct {
	Service       string
	Account       string
	Data          []byte
	Accessibility Accessibility
}

// Store defines the operations every credential store backend provides.
// All errors are *StatusError values.
type Store interface {
	// Get returns the data of the single most recently written entry matching
	// q, or ErrNotFound.
	Get(q Query) ([]byte, error)

	// Add writes a new entry. It does not replace an existing one; callers
	// delete first. Returns ErrDuplicateItem when the key is already taken.
	Add(item Item) error

	// Delete removes every entry matching q. Deleting a missing entry is not
	// an error.
	Delete(q Query) error
}
