package database

import "errors"

// Error kinds surfaced by the repositories. Every repository call either
// succeeds or returns an error matching exactly one of these via errors.Is;
// callers branch on the kind, not on the message.
var (
	// ErrConnection means the engine is unavailable or the handle has been
	// invalidated (closed, or replaced by Reconnect while a call was in
	// flight).
	ErrConnection = errors.New("database connection unavailable")

	// ErrNotFound means the target of an update or status change does not
	// exist. Plain reads represent absence as a nil result instead.
	ErrNotFound = errors.New("record not found")

	// ErrValidation means the engine or the caller produced data the
	// repository cannot accept, e.g. an insert that did not yield an
	// integer key.
	ErrValidation = errors.New("validation failed")

	// ErrTxAborted means a step inside a multi-step transaction failed and
	// the engine rolled back every write of that transaction.
	ErrTxAborted = errors.New("transaction aborted")
)

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConnection reports whether err is a connection error.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsTxAborted reports whether err is an aborted-transaction error.
func IsTxAborted(err error) bool {
	return errors.Is(err, ErrTxAborted)
}
