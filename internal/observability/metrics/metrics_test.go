package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLedgerTotals(t *testing.T) {
	huge, err := sdkmath.ParseUint("84096000000000000000")
	require.NoError(t, err)

	RecordLedgerTotals(sdkmath.NewUint(1500), huge, 42)

	assert.Equal(t, float64(1500), testutil.ToFloat64(totalStakedGauge))
	assert.InEpsilon(t, 8.4096e19, testutil.ToFloat64(availableRewardsGauge), 1e-9)
	assert.Equal(t, float64(42), testutil.ToFloat64(currentBlockGauge))
}

func TestAddFeesCollected(t *testing.T) {
	before := testutil.ToFloat64(feesCollectedCounter)
	AddFeesCollected(sdkmath.NewUint(30))
	AddFeesCollected(sdkmath.Uint{})
	assert.Equal(t, before+30, testutil.ToFloat64(feesCollectedCounter))
}

func TestRecordPollerDuration(t *testing.T) {
	boom := errors.New("boom")
	f := RecordPollerDuration("outbox", func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, f(context.Background()), boom)

	count := testutil.CollectAndCount(pollerDurationHistogram, "poller_duration_seconds")
	assert.Equal(t, 1, count)
}

func TestRecordLedgerOperation(t *testing.T) {
	RecordLedgerOperation(time.Millisecond, "stake", false)
	RecordLedgerOperation(time.Millisecond, "stake", true)
	assert.Equal(t, 2, testutil.CollectAndCount(ledgerOperationDuration))
}
