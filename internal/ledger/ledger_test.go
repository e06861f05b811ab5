package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/types"
)

const (
	owner    = "owner"
	treasury = "treasury"
	alice    = "alice"
	bob      = "bob"
)

var defaultPool = sdkmath.NewUint(1_000_000_000_000)

type recorder struct {
	mu     sync.Mutex
	events []ledger.Event
}

func (r *recorder) Emit(ev ledger.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) Events() []ledger.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ledger.Event, len(r.events))
	copy(out, r.events)
	return out
}

type testLedger struct {
	*ledger.Ledger
	backend  *ledger.MemoryBackend
	clock    *ledger.ManualClock
	recorder *recorder
}

func newTestLedger(t *testing.T, mutate ...func(*ledger.Params)) *testLedger {
	t.Helper()

	params := ledger.DefaultParams(owner, treasury, defaultPool)
	for _, m := range mutate {
		m(&params)
	}

	backend := ledger.NewMemoryBackend()
	clock := ledger.NewManualClock(1)
	rec := &recorder{}

	l, err := ledger.New(backend, clock, params, ledger.WithEmitter(rec))
	require.NoError(t, err)

	return &testLedger{Ledger: l, backend: backend, clock: clock, recorder: rec}
}

// newInitializedLedger returns a ledger whose pool is funded by the owner.
func newInitializedLedger(t *testing.T, mutate ...func(*ledger.Params)) *testLedger {
	t.Helper()

	tl := newTestLedger(t, mutate...)
	tl.backend.Credit(owner, tl.Params().RewardPoolAmount)
	require.NoError(t, tl.Init(context.Background(), owner))
	return tl
}

// fund credits amount to account on the token book.
func (tl *testLedger) fund(t *testing.T, account string, amount uint64) {
	t.Helper()
	tl.backend.Credit(account, sdkmath.NewUint(amount))
}

func (tl *testLedger) status(t *testing.T) *ledger.GlobalState {
	t.Helper()
	status, err := tl.Status(context.Background())
	require.NoError(t, err)
	return status.State
}

func (tl *testLedger) holder(t *testing.T, account string) *ledger.StakeHolder {
	t.Helper()
	h, err := tl.StakeHolderOf(context.Background(), account)
	require.NoError(t, err)
	return h
}

// eventsSince returns the committed events recorded after the first n.
func (tl *testLedger) eventsSince(n int) []ledger.Event {
	events := tl.recorder.Events()
	if n > len(events) {
		return nil
	}
	return events[n:]
}

// assertConserved checks that principal sums to totalStaked and that the
// custody account holds exactly the principal plus the reward pool.
func (tl *testLedger) assertConserved(t *testing.T) {
	t.Helper()

	state := tl.status(t)
	sum := sdkmath.ZeroUint()
	for _, account := range tl.backend.StakeHolders() {
		sum = sum.Add(tl.holder(t, account).StakedTokens)
	}
	assert.True(t, sum.Equal(state.TotalStaked), "sum of stakes %s != total staked %s", sum, state.TotalStaked)

	custody := tl.backend.Balance(tl.backend.CustodyAccount())
	expected := state.TotalStaked.Add(state.AvailableRewards)
	assert.True(t, custody.Equal(expected), "custody %s != staked+pool %s", custody, expected)
}

func TestNewValidatesParams(t *testing.T) {
	backend := ledger.NewMemoryBackend()
	clock := ledger.NewManualClock(1)

	_, err := ledger.New(nil, clock, ledger.DefaultParams(owner, treasury, defaultPool))
	require.Error(t, err)

	_, err = ledger.New(backend, nil, ledger.DefaultParams(owner, treasury, defaultPool))
	require.Error(t, err)

	params := ledger.DefaultParams(owner, treasury, defaultPool)
	params.PoolExhaustion = "drain"
	_, err = ledger.New(backend, clock, params)
	require.ErrorContains(t, err, "pool exhaustion")

	params = ledger.DefaultParams(owner, treasury, defaultPool)
	params.FeeRateBps = ledger.BasisPoints + 1
	_, err = ledger.New(backend, clock, params)
	require.Error(t, err)

	_, err = ledger.New(backend, clock, ledger.DefaultParams(owner, treasury, sdkmath.ZeroUint()))
	require.Error(t, err)
}

func TestTransferFailureRollsBackOperation(t *testing.T) {
	ctx := context.Background()
	tl := newInitializedLedger(t)
	require.NoError(t, tl.SwitchFees(ctx, owner, true, true, true))
	tl.fund(t, alice, 1000)

	before := tl.status(t)
	seen := len(tl.recorder.Events())
	stored := len(tl.backend.Events())

	boom := errors.New("recipient rejected transfer")
	tl.backend.SetTransferHook(func(_ context.Context, _, to string, _ sdkmath.Uint) error {
		if to == treasury {
			return boom
		}
		return nil
	})

	err := tl.Stake(ctx, alice, sdkmath.NewUint(1000))
	require.Error(t, err)
	assert.True(t, ledger.IsTransferError(err))
	assert.ErrorIs(t, err, ledger.ErrTransferFailed)
	assert.ErrorIs(t, err, boom)

	// the deposit pulled before the failing fee transfer is undone as well
	assert.Equal(t, sdkmath.NewUint(1000), tl.backend.Balance(alice))
	assert.True(t, tl.backend.Balance(treasury).IsZero())
	assert.False(t, tl.holder(t, alice).HasStake())
	assert.Equal(t, before, tl.status(t))
	assert.Empty(t, tl.eventsSince(seen))
	assert.Len(t, tl.backend.Events(), stored)

	tl.backend.SetTransferHook(nil)
	require.NoError(t, tl.Stake(ctx, alice, sdkmath.NewUint(1000)))
	assert.Equal(t, sdkmath.NewUint(970), tl.holder(t, alice).StakedTokens)
	tl.assertConserved(t)
}

func TestReentrantCallIsRejected(t *testing.T) {
	ctx := context.Background()
	tl := newInitializedLedger(t)
	tl.fund(t, alice, 2000)
	require.NoError(t, tl.Stake(ctx, alice, sdkmath.NewUint(1000)))
	tl.clock.Advance(ledger.DefaultBlocksPerYear)

	var nestedErr error
	tl.backend.SetTransferHook(func(ctx context.Context, _, to string, _ sdkmath.Uint) error {
		if to != alice {
			return nil
		}
		nestedErr = tl.ClaimRewards(ctx, alice)
		return nestedErr
	})

	err := tl.Unstake(ctx, alice, sdkmath.NewUint(1000))
	require.Error(t, err)
	assert.ErrorIs(t, nestedErr, ledger.ErrReentrantCall)
	assert.ErrorIs(t, err, ledger.ErrReentrantCall)
	assert.True(t, ledger.IsTransferError(err))

	// reads are refused too while inside an operation
	tl.backend.SetTransferHook(func(ctx context.Context, _, _ string, _ sdkmath.Uint) error {
		_, err := tl.BalanceOf(ctx, alice)
		return err
	})
	err = tl.ClaimRewards(ctx, alice)
	assert.ErrorIs(t, err, ledger.ErrReentrantCall)

	tl.backend.SetTransferHook(nil)
	assert.Equal(t, sdkmath.NewUint(1000), tl.holder(t, alice).StakedTokens)
	tl.assertConserved(t)
}

func TestEmitterMayCallBackIntoLedger(t *testing.T) {
	ctx := context.Background()
	backend := ledger.NewMemoryBackend()
	clock := ledger.NewManualClock(1)
	params := ledger.DefaultParams(owner, treasury, defaultPool)
	backend.Credit(owner, defaultPool)
	backend.Credit(alice, sdkmath.NewUint(2000))

	var (
		l         *ledger.Ledger
		seen      []types.EventTypes
		nestedErr error
	)
	emitter := ledger.EmitterFunc(func(ev ledger.Event) {
		seen = append(seen, ev.EventType())
		// the first stake triggers a second one from the emitter, with a
		// fresh context
		if staked, ok := ev.(ledger.Staked); ok && staked.Amount.Equal(sdkmath.NewUint(1000)) {
			nestedErr = l.Stake(context.Background(), alice, sdkmath.NewUint(500))
		}
	})

	l, err := ledger.New(backend, clock, params, ledger.WithEmitter(emitter))
	require.NoError(t, err)
	require.NoError(t, l.Init(ctx, owner))

	done := make(chan error, 1)
	go func() {
		done <- l.Stake(ctx, alice, sdkmath.NewUint(1000))
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("stake did not return while the emitter called back into the ledger")
	}

	require.NoError(t, nestedErr)
	assert.Equal(t, []types.EventTypes{
		types.EventInitialized,
		types.EventStaked,
		types.EventStaked,
	}, seen)

	holder, err := l.StakeHolderOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, sdkmath.NewUint(1500), holder.StakedTokens)
}

func TestEventsAreEmittedAfterCommitOnly(t *testing.T) {
	ctx := context.Background()
	tl := newInitializedLedger(t)
	tl.fund(t, alice, 500)

	require.Equal(t, []ledger.Event{
		ledger.Initialized{Account: owner, RewardPool: defaultPool},
	}, tl.recorder.Events())

	err := tl.Stake(ctx, alice, sdkmath.NewUint(1000))
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Len(t, tl.recorder.Events(), 1)

	require.NoError(t, tl.Stake(ctx, alice, sdkmath.NewUint(500)))
	assert.Equal(t, []ledger.Event{
		ledger.Staked{Account: alice, Amount: sdkmath.NewUint(500)},
	}, tl.eventsSince(1))

	stored := tl.backend.Events()
	require.Len(t, stored, 2)
	assert.Equal(t, uint64(1), stored[1].Block)
	assert.Equal(t, tl.recorder.Events()[1], stored[1].Event)
}

func TestConcurrentOperationsKeepTotals(t *testing.T) {
	ctx := context.Background()
	tl := newInitializedLedger(t)
	require.NoError(t, tl.SwitchFees(ctx, owner, true, true, true))

	accounts := []string{"acc-0", "acc-1", "acc-2", "acc-3", "acc-4", "acc-5", "acc-6", "acc-7"}
	for _, account := range accounts {
		tl.fund(t, account, 1_000_000)
	}

	var wg sync.WaitGroup
	for i, account := range accounts {
		wg.Add(1)
		go func(i int, account string) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				assert.NoError(t, tl.Stake(ctx, account, sdkmath.NewUint(10_000)))
				if j%3 == 0 {
					tl.clock.Advance(uint64(100 * (i + 1)))
				}
				_, _ = tl.UnclaimedRewardsOf(ctx, account)
				if j%4 == 0 {
					assert.NoError(t, tl.Unstake(ctx, account, sdkmath.NewUint(5_000)))
				}
			}
		}(i, account)
	}
	wg.Wait()

	tl.assertConserved(t)
}
