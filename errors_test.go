package tokencache

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mazurov/claude-token-cache/keystore"
)

func TestError_IsMatchesKindOnly(t *testing.T) {
	err := unhandledStoreError(&keystore.StatusError{Status: keystore.StatusAuthFailed})

	assert.ErrorIs(t, err, ErrUnhandledStore)
	assert.NotErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, fmt.Errorf("resolve: %w", err), ErrUnhandledStore)
	assert.Equal(t, keystore.StatusAuthFailed, err.Status)
}

func TestError_UnwrapsStoreError(t *testing.T) {
	err := newError(KindItemNotFound, keystore.ErrNotFound)

	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, err, keystore.ErrNotFound)
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "sentinel",
			err:      ErrTokenNotFound,
			expected: "tokencache: token not found",
		},
		{
			name:     "with status",
			err:      &Error{Kind: KindUnhandledStore, Status: keystore.StatusInteractionNotAllowed},
			expected: "tokencache: unhandled store error (status -25308)",
		},
		{
			name:     "with cause",
			err:      newError(KindJSONParsing, errors.New("unexpected tail")),
			expected: "tokencache: JSON parsing error: unexpected tail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
