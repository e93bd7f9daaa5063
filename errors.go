package tokencache

import (
	"fmt"

	"github.com/mazurov/claude-token-cache/keystore"
)

// Kind classifies a resolution failure
type Kind int

const (
	// KindItemNotFound means the store has no matching entry
	KindItemNotFound Kind = iota + 1
	// KindUnexpectedData means the entry is not valid UTF-8 text
	KindUnexpectedData
	// KindUnhandledStore means the store returned an unexpected status
	KindUnhandledStore
	// KindJSONParsing means the upstream entry is not a JSON object
	KindJSONParsing
	// KindTokenNotFound means the upstream record has no access token
	KindTokenNotFound
)

func (k Kind) String() string {
	switch k {
	case KindItemNotFound:
		return "item not found"
	case KindUnexpectedData:
		return "unexpected data"
	case KindUnhandledStore:
		return "unhandled store error"
	case KindJSONParsing:
		return "JSON parsing error"
	case KindTokenNotFound:
		return "token not found"
	default:
		return "unknown"
	}
}

// Error is returned by every Resolver operation. Status is set only for
// KindUnhandledStore.
type Error struct {
	Kind   Kind
	Status keystore.Status
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Kind == KindUnhandledStore {
		msg = fmt.Sprintf("%s (status %d)", msg, int32(e.Status))
	}
	if e.Err != nil {
		return fmt.Sprintf("tokencache: %s: %v", msg, e.Err)
	}
	return "tokencache: " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind alone, so errors.Is(err, ErrUnhandledStore) holds for
// any status.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrItemNotFound   = &Error{Kind: KindItemNotFound}
	ErrUnexpectedData = &Error{Kind: KindUnexpectedData}
	ErrUnhandledStore = &Error{Kind: KindUnhandledStore}
	ErrJSONParsing    = &Error{Kind: KindJSONParsing}
	ErrTokenNotFound  = &Error{Kind: KindTokenNotFound}
)

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func unhandledStoreError(err error) *Error {
	return &Error{Kind: KindUnhandledStore, Status: keystore.StatusOf(err), Err: err}
}
