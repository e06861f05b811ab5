package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrZeroAmount         = errors.New("ledger: amount must be positive")
	ErrInsufficientStake  = errors.New("ledger: insufficient staked balance")
	ErrInsufficientPool   = errors.New("ledger: insufficient reward pool")
	ErrAlreadyInitialized = errors.New("ledger: already initialized")
	ErrNotInitialized     = errors.New("ledger: not initialized")
	ErrPaused             = errors.New("ledger: paused")
	ErrNotPaused          = errors.New("ledger: not paused")
	ErrNoRewards          = errors.New("ledger: no rewards")
	ErrMissingAccount     = errors.New("ledger: account is required")
	ErrNotOwner           = errors.New("ledger: caller is not the owner")
	ErrReentrantCall      = errors.New("ledger: reentrant call")
	ErrTransferFailed     = errors.New("ledger: transfer failed")
	ErrInsufficientFunds  = errors.New("ledger: insufficient funds")
)

// PreconditionError reports an operation rejected before any mutation.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition failed: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// TransferError reports a failed call to the value transfer collaborator.
// The enclosing operation is rolled back.
type TransferError struct {
	Op        string
	Direction string
	Account   string
	Err       error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: transfer %s %s failed: %v", e.Op, e.Direction, e.Account, e.Err)
}

func (e *TransferError) Unwrap() []error { return []error{ErrTransferFailed, e.Err} }

// AuthorizationError reports a non-owner calling an owner-only operation.
type AuthorizationError struct {
	Op     string
	Caller string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s is not authorized", e.Op, e.Caller)
}

func (e *AuthorizationError) Unwrap() error { return ErrNotOwner }

func precondition(op string, err error) error {
	return &PreconditionError{Op: op, Err: err}
}

// IsPreconditionError reports whether err is, or wraps, a PreconditionError.
func IsPreconditionError(err error) bool {
	var target *PreconditionError
	return errors.As(err, &target)
}

// IsTransferError reports whether err is, or wraps, a TransferError.
func IsTransferError(err error) bool {
	var target *TransferError
	return errors.As(err, &target)
}

// IsAuthorizationError reports whether err is, or wraps, an AuthorizationError.
func IsAuthorizationError(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}
