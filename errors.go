package uuid

import "errors"

var (
	// ErrInvalidFormat indicates that the input did not conform to any
	// accepted UUID string grammar. All text parse failures (wrong length,
	// bad hex digit, misplaced hyphen, bad prefix) collapse into this one error.
	ErrInvalidFormat = errors.New("uuid: invalid UUID format")

	// ErrInvalidLength indicates that the UUID byte slice has incorrect length
	ErrInvalidLength = errors.New("uuid: invalid UUID length (expected 16 bytes)")
)
