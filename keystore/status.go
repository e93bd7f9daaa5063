package keystore

import (
	"errors"
	"fmt"
)

// Status is a credential store result code. Values follow the Apple Security
// framework OSStatus codes so the keychain backend can pass them through unchanged.
type Status int32

const (
	StatusSuccess               Status = 0
	StatusUnimplemented         Status = -4
	StatusDiskFull              Status = -34
	StatusIO                    Status = -36
	StatusParam                 Status = -50
	StatusAllocate              Status = -108
	StatusNotAvailable          Status = -25291
	StatusAuthFailed            Status = -25293
	StatusDuplicateItem         Status = -25299
	StatusItemNotFound          Status = -25300
	StatusInteractionNotAllowed Status = -25308
	StatusDecode                Status = -26275
)

var statusText = map[Status]string{
	StatusSuccess:               "success",
	StatusUnimplemented:         "function or operation not implemented",
	StatusDiskFull:              "disk full",
	StatusIO:                    "I/O error",
	StatusParam:                 "invalid parameter",
	StatusAllocate:              "failed to allocate memory",
	StatusNotAvailable:          "no credential store is available",
	StatusAuthFailed:            "authorization failed",
	StatusDuplicateItem:         "item already exists",
	StatusItemNotFound:          "item not found",
	StatusInteractionNotAllowed: "user interaction is not allowed",
	StatusDecode:                "unable to decode the provided data",
}

func (s Status) String() string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return fmt.Sprintf("status %d", int32(s))
}

// StatusError is the error returned by every Store implementation.
type StatusError struct {
	Status Status
	Err    error // underlying backend error, may be nil
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("keystore: %s (%d): %v", e.Status, int32(e.Status), e.Err)
	}
	return fmt.Sprintf("keystore: %s (%d)", e.Status, int32(e.Status))
}

func (e *StatusError) Unwrap() error { return e.Err }

// Is matches another *StatusError carrying the same status.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	return ok && t.Status == e.Status
}

var (
	// ErrNotFound is returned when no entry matches a query
	ErrNotFound = &StatusError{Status: StatusItemNotFound}

	// ErrDuplicateItem is returned by Add when the key is already taken
	ErrDuplicateItem = &StatusError{Status: StatusDuplicateItem}

	// ErrNotAvailable is returned when a backend cannot run on this platform
	ErrNotAvailable = &StatusError{Status: StatusNotAvailable}
)

// NewStatusError wraps err with status. A StatusSuccess status yields nil.
func NewStatusError(status Status, err error) error {
	if status == StatusSuccess {
		return nil
	}
	return &StatusError{Status: status, Err: err}
}

// StatusOf returns the status carried by err. A nil error is StatusSuccess and
// an error without a status is reported as StatusIO.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return StatusIO
}
