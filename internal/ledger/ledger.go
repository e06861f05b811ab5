package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"
)

const (
	OpInit                     = "init"
	OpPause                    = "pause"
	OpUnpause                  = "unpause"
	OpStake                    = "stake"
	OpUnstake                  = "unstake"
	OpRestakeRewards           = "restakeRewards"
	OpClaimRewards             = "claimRewards"
	OpSwitchFees               = "switchFees"
	OpSwitchRewards            = "switchRewards"
	OpEmergencyWithdrawRewards = "emergencyWithdrawRewards"
)

// Ledger is the staking accounting engine. Every public operation runs as a
// single unit of work on the backend, and operations are serialized.
type Ledger struct {
	mu      sync.RWMutex
	backend Backend
	clock   Clock
	auth    Authorizer
	params  Params
	emitter Emitter

	// pending holds committed events not yet handed to the emitter, in
	// commit order. Both fields are guarded by mu.
	pending  []Event
	draining bool
}

type Option func(*Ledger)

// WithAuthorizer replaces the default owner-only access guard.
func WithAuthorizer(auth Authorizer) Option {
	return func(l *Ledger) {
		if auth != nil {
			l.auth = auth
		}
	}
}

// WithEmitter sets the receiver of committed events.
func WithEmitter(emitter Emitter) Option {
	return func(l *Ledger) {
		if emitter != nil {
			l.emitter = emitter
		}
	}
}

func New(backend Backend, clock Clock, params Params, opts ...Option) (*Ledger, error) {
	if backend == nil {
		return nil, fmt.Errorf("ledger backend is required")
	}
	if clock == nil {
		return nil, fmt.Errorf("ledger clock is required")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ledger params: %w", err)
	}

	l := &Ledger{
		backend: backend,
		clock:   clock,
		auth:    OwnerAuthorizer(params.Owner),
		params:  params,
		emitter: NoopEmitter{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Params returns the deployment constants of the ledger.
func (l *Ledger) Params() Params {
	return l.params
}

type operationKey struct{}

func inOperation(ctx context.Context) bool {
	v, _ := ctx.Value(operationKey{}).(string)
	return v != ""
}

// operation carries the working set of one unit of work. Records are loaded
// once, mutated in place and written back by flush.
type operation struct {
	ctx     context.Context
	name    string
	caller  string
	block   uint64
	params  Params
	auth    Authorizer
	tx      Tx
	state   *GlobalState
	holders map[string]*StakeHolder
	dirty   map[string]struct{}
	events  []Event
}

func (op *operation) holder(account string) (*StakeHolder, error) {
	if h, ok := op.holders[account]; ok {
		return h, nil
	}
	h, err := op.tx.GetStakeHolder(op.ctx, account)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load stake holder %s: %w", op.name, account, err)
	}
	op.holders[account] = h
	return h, nil
}

func (op *operation) touch(account string) {
	op.dirty[account] = struct{}{}
}

func (op *operation) emit(ev Event) {
	op.events = append(op.events, ev)
}

func (op *operation) transferIn(from string, amount sdkmath.Uint) error {
	if amount.IsZero() {
		return nil
	}
	if err := op.tx.TransferIn(op.ctx, from, amount); err != nil {
		return &TransferError{Op: op.name, Direction: "from", Account: from, Err: err}
	}
	return nil
}

func (op *operation) transferOut(to string, amount sdkmath.Uint) error {
	if amount.IsZero() {
		return nil
	}
	if err := op.tx.TransferOut(op.ctx, to, amount); err != nil {
		return &TransferError{Op: op.name, Direction: "to", Account: to, Err: err}
	}
	return nil
}

// flush writes back everything the operation touched.
func (op *operation) flush() error {
	if err := op.tx.SaveLedgerState(op.ctx, op.state); err != nil {
		return fmt.Errorf("%s: failed to save ledger state: %w", op.name, err)
	}

	accounts := make([]string, 0, len(op.dirty))
	for account := range op.dirty {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	for _, account := range accounts {
		if err := op.tx.SaveStakeHolder(op.ctx, account, op.holders[account]); err != nil {
			return fmt.Errorf("%s: failed to save stake holder %s: %w", op.name, account, err)
		}
	}

	if len(op.events) > 0 {
		if err := op.tx.AppendEvents(op.ctx, op.block, op.events); err != nil {
			return fmt.Errorf("%s: failed to record events: %w", op.name, err)
		}
	}
	return nil
}

// execute runs fn as one serialized, all-or-nothing unit of work. Events are
// handed to the emitter only once the backend committed and the ledger lock
// is released.
func (l *Ledger) execute(ctx context.Context, name, caller string, fn func(op *operation) error) error {
	if inOperation(ctx) {
		return fmt.Errorf("%s: %w", name, ErrReentrantCall)
	}

	if err := l.commit(ctx, name, caller, fn); err != nil {
		return err
	}
	l.drainEvents()
	return nil
}

func (l *Ledger) commit(ctx context.Context, name, caller string, fn func(op *operation) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	block, err := l.clock.CurrentBlock(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to read current block: %w", name, err)
	}

	var committed []Event
	txCtx := context.WithValue(ctx, operationKey{}, name)
	err = l.backend.RunInTx(txCtx, func(ctx context.Context, tx Tx) error {
		state, err := tx.GetLedgerState(ctx)
		if err != nil {
			return fmt.Errorf("%s: failed to load ledger state: %w", name, err)
		}

		op := &operation{
			ctx:     ctx,
			name:    name,
			caller:  caller,
			block:   block,
			params:  l.params,
			auth:    l.auth,
			tx:      tx,
			state:   state,
			holders: make(map[string]*StakeHolder),
			dirty:   make(map[string]struct{}),
		}
		if err := fn(op); err != nil {
			return err
		}
		if err := op.flush(); err != nil {
			return err
		}
		committed = op.events
		return nil
	})

	logger := log.Ctx(ctx)
	if err != nil {
		ev := logger.Error()
		if IsPreconditionError(err) || IsAuthorizationError(err) {
			ev = logger.Warn()
		}
		ev.Err(err).
			Str("operation", name).
			Str("caller", caller).
			Uint64("block", block).
			Msg("ledger operation rejected")
		return err
	}

	logger.Debug().
		Str("operation", name).
		Str("caller", caller).
		Uint64("block", block).
		Int("events", len(committed)).
		Msg("ledger operation committed")

	l.pending = append(l.pending, committed...)
	return nil
}

// drainEvents hands pending events to the emitter outside the lock. Only one
// goroutine drains at a time so events keep their commit order, including
// events of operations the emitter itself triggers.
func (l *Ledger) drainEvents() {
	l.mu.Lock()
	if l.draining {
		l.mu.Unlock()
		return
	}
	l.draining = true

	for len(l.pending) > 0 {
		events := l.pending
		l.pending = nil
		l.mu.Unlock()
		for _, ev := range events {
			l.emitter.Emit(ev)
		}
		l.mu.Lock()
	}

	l.draining = false
	l.mu.Unlock()
}

// view runs a read-only unit of work concurrently with other reads.
func (l *Ledger) view(ctx context.Context, fn func(ctx context.Context, tx Tx, block uint64) error) error {
	if inOperation(ctx) {
		return ErrReentrantCall
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	block, err := l.clock.CurrentBlock(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current block: %w", err)
	}
	return l.backend.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		return fn(ctx, tx, block)
	})
}
