package errors

import (
	"errors"
	"fmt"
)

// Error kinds for governance operations. Services wrap these with context via
// fmt.Errorf("...: %w", kind) so callers can classify with errors.Is while the
// message stays actionable.
var (
	// ErrValidation marks malformed or disallowed input (missing moderation
	// reason, self-report attempt).
	ErrValidation = errors.New("validation failed")

	// ErrStateConflict marks an operation that is invalid for the entity's
	// current state (double-approve, already-admin).
	ErrStateConflict = errors.New("state conflict")

	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate marks an attempt to create something that already exists
	// (second pending application, duplicate unresolved report).
	ErrDuplicate = errors.New("duplicate")

	// ErrTransactionFailed marks a store-level failure inside a multi-step
	// write. The transaction is rolled back; callers see a generic message.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// StateConflictf wraps ErrStateConflict with a formatted message.
func StateConflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrStateConflict)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Duplicatef wraps ErrDuplicate with a formatted message.
func Duplicatef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrDuplicate)...)
}

// TransactionFailed wraps a store error so it surfaces as a generic failure
// while keeping the cause in the chain for server-side logging.
func TransactionFailed(err error) error {
	return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
}
