package multisig

import (
	"github.com/iov-one/quorum/errors"
)

// Errors registered by the coordinator. Unauthorized and NotFound use the
// generic kinds from the errors package.
var (
	// ErrDuplicateApproval is returned when an owner approves the same
	// proposal twice.
	ErrDuplicateApproval = errors.Register(1030, "duplicate approval")

	// ErrAlreadyExecuted is returned for any approval or execution
	// attempt on a proposal that was already executed.
	ErrAlreadyExecuted = errors.Register(1031, "already executed")

	// ErrInsufficientApprovals is returned when execution is requested
	// before the threshold is reached.
	ErrInsufficientApprovals = errors.Register(1032, "insufficient approvals")

	// ErrExecutorFailure is the kind of every error returned by an
	// Executor. The original error is available through ExecutorError.
	ErrExecutorFailure = errors.Register(1033, "executor failure")

	// ErrConstruction is returned when a registry cannot be created.
	ErrConstruction = errors.Register(1034, "invalid configuration")
)

// ExecutorError wraps an error returned by the executor. It is of the
// ErrExecutorFailure kind while Unwrap returns the executor's error
// unchanged, so it can be inspected with errors.As from the standard library.
type ExecutorError struct {
	ID  uint64
	Err error
}

func (e *ExecutorError) Error() string {
	return ErrExecutorFailure.Error() + ": " + e.Err.Error()
}

// Cause implements the causer interface so that the error code and
// ErrExecutorFailure.Is resolve to the executor failure kind.
func (e *ExecutorError) Cause() error {
	return ErrExecutorFailure
}

// Unwrap returns the error produced by the executor.
func (e *ExecutorError) Unwrap() error {
	return e.Err
}
