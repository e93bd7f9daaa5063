package keystore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Status
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: StatusSuccess,
		},
		{
			name:     "not found sentinel",
			err:      ErrNotFound,
			expected: StatusItemNotFound,
		},
		{
			name:     "wrapped status error",
			err:      fmt.Errorf("lookup: %w", &StatusError{Status: StatusAuthFailed}),
			expected: StatusAuthFailed,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: StatusIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusOf(tt.err))
		})
	}
}

func TestStatusError_Is(t *testing.T) {
	cause := errors.New("secret not found")
	err := &StatusError{Status: StatusItemNotFound, Err: cause}

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrDuplicateItem)
}

func TestNewStatusError(t *testing.T) {
	assert.NoError(t, NewStatusError(StatusSuccess, errors.New("ignored")))

	err := NewStatusError(StatusDiskFull, nil)
	assert.Equal(t, StatusDiskFull, StatusOf(err))
	assert.Equal(t, "keystore: disk full (-34)", err.Error())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "item not found", StatusItemNotFound.String())
	assert.Equal(t, "status -12345", Status(-12345).String())
}
