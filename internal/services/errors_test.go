package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/types"
)

func TestMapLedgerError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		errorCode  types.ErrorCode
	}{
		{
			name:       "authorization",
			err:        &ledger.AuthorizationError{Op: ledger.OpPause, Caller: "x"},
			statusCode: http.StatusForbidden,
			errorCode:  types.Forbidden,
		},
		{
			name:       "zero amount",
			err:        &ledger.PreconditionError{Op: ledger.OpStake, Err: ledger.ErrZeroAmount},
			statusCode: http.StatusBadRequest,
			errorCode:  types.ValidationError,
		},
		{
			name:       "paused",
			err:        &ledger.PreconditionError{Op: ledger.OpStake, Err: ledger.ErrPaused},
			statusCode: http.StatusPreconditionFailed,
			errorCode:  types.PreconditionFailed,
		},
		{
			name: "insufficient funds",
			err: &ledger.TransferError{
				Op: ledger.OpStake, Direction: "from", Account: "x",
				Err: fmt.Errorf("%w: x has 0", ledger.ErrInsufficientFunds),
			},
			statusCode: http.StatusUnprocessableEntity,
			errorCode:  types.TransferFailed,
		},
		{
			name:       "transfer",
			err:        &ledger.TransferError{Op: ledger.OpClaimRewards, Direction: "to", Account: "x", Err: errors.New("rpc down")},
			statusCode: http.StatusBadGateway,
			errorCode:  types.TransferFailed,
		},
		{
			name:       "timeout",
			err:        fmt.Errorf("stake: failed to load ledger state: %w", context.DeadlineExceeded),
			statusCode: http.StatusRequestTimeout,
			errorCode:  types.RequestTimeout,
		},
		{
			name:       "reentrant call",
			err:        ledger.ErrReentrantCall,
			statusCode: http.StatusInternalServerError,
			errorCode:  types.InternalServiceError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapLedgerError(tt.err)
			assert.Equal(t, tt.statusCode, err.StatusCode)
			assert.Equal(t, tt.errorCode, err.ErrorCode)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.Nil(t, mapLedgerError(nil))
}
