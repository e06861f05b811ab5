package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/types"
)

// mapLedgerError converts an error returned by the ledger into the service
// error carrying its HTTP status.
func mapLedgerError(err error) *types.Error {
	if err == nil {
		return nil
	}

	switch {
	case ledger.IsAuthorizationError(err):
		return types.NewForbiddenError(err)
	case errors.Is(err, ledger.ErrZeroAmount), errors.Is(err, ledger.ErrMissingAccount):
		return types.NewValidationFailedError(err)
	case ledger.IsPreconditionError(err):
		return types.NewPreconditionFailedError(err)
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return types.NewError(http.StatusUnprocessableEntity, types.TransferFailed, err)
	case ledger.IsTransferError(err):
		return types.NewTransferFailedError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return types.NewError(http.StatusRequestTimeout, types.RequestTimeout, err)
	default:
		return types.NewInternalServiceError(err)
	}
}
