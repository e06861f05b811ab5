package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	sdkmath "cosmossdk.io/math"
)

// DefaultCustodyAccount is the token book account holding staked principal
// and the reward pool.
const DefaultCustodyAccount = "ledger"

// RecordedEvent is an event together with the block of the operation that
// produced it.
type RecordedEvent struct {
	Block uint64
	Event Event
}

// TransferHook is called before every transfer of a MemoryBackend. A non nil
// error fails the transfer. It follows the Bank contract on calling back into
// the ledger.
type TransferHook func(ctx context.Context, from, to string, amount sdkmath.Uint) error

// MemoryBackend keeps ledger records and a token book in process. Units of
// work operate on a copy that replaces the committed data only on success.
type MemoryBackend struct {
	mu       sync.Mutex
	custody  string
	state    *GlobalState
	holders  map[string]*StakeHolder
	balances map[string]sdkmath.Uint
	events   []RecordedEvent
	hook     TransferHook
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		custody:  DefaultCustodyAccount,
		state:    NewGlobalState(),
		holders:  make(map[string]*StakeHolder),
		balances: make(map[string]sdkmath.Uint),
	}
}

// SetTransferHook installs hook, or removes it when nil.
func (m *MemoryBackend) SetTransferHook(hook TransferHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hook = hook
}

// Credit mints amount into account, outside of any ledger operation.
func (m *MemoryBackend) Credit(account string, amount sdkmath.Uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[account] = balanceOf(m.balances, account).Add(amount)
}

// Balance returns the token book balance of account.
func (m *MemoryBackend) Balance(account string) sdkmath.Uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneUint(balanceOf(m.balances, account))
}

// CustodyAccount returns the account the ledger holds value in.
func (m *MemoryBackend) CustodyAccount() string {
	return m.custody
}

// Events returns every committed event in commit order.
func (m *MemoryBackend) Events() []RecordedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedEvent, len(m.events))
	copy(out, m.events)
	return out
}

// StakeHolders returns the accounts with a stored record, sorted.
func (m *MemoryBackend) StakeHolders() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	accounts := make([]string, 0, len(m.holders))
	for account := range m.holders {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	return accounts
}

func (m *MemoryBackend) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{
		backend:  m,
		state:    m.state.Clone(),
		holders:  make(map[string]*StakeHolder, len(m.holders)),
		balances: make(map[string]sdkmath.Uint, len(m.balances)),
	}
	for account, h := range m.holders {
		tx.holders[account] = h.Clone()
	}
	for account, b := range m.balances {
		tx.balances[account] = cloneUint(b)
	}

	if err := fn(ctx, tx); err != nil {
		return err
	}

	m.state = tx.state
	m.holders = tx.holders
	m.balances = tx.balances
	m.events = append(m.events, tx.events...)
	return nil
}

type memoryTx struct {
	backend  *MemoryBackend
	state    *GlobalState
	holders  map[string]*StakeHolder
	balances map[string]sdkmath.Uint
	events   []RecordedEvent
}

func (tx *memoryTx) GetLedgerState(_ context.Context) (*GlobalState, error) {
	return tx.state.Clone(), nil
}

func (tx *memoryTx) SaveLedgerState(_ context.Context, state *GlobalState) error {
	tx.state = state.Clone()
	return nil
}

func (tx *memoryTx) GetStakeHolder(_ context.Context, account string) (*StakeHolder, error) {
	if h, ok := tx.holders[account]; ok {
		return h.Clone(), nil
	}
	return NewStakeHolder(), nil
}

func (tx *memoryTx) SaveStakeHolder(_ context.Context, account string, holder *StakeHolder) error {
	tx.holders[account] = holder.Clone()
	return nil
}

func (tx *memoryTx) AppendEvents(_ context.Context, block uint64, events []Event) error {
	for _, ev := range events {
		tx.events = append(tx.events, RecordedEvent{Block: block, Event: ev})
	}
	return nil
}

func (tx *memoryTx) TransferIn(ctx context.Context, from string, amount sdkmath.Uint) error {
	return tx.move(ctx, from, tx.backend.custody, amount)
}

func (tx *memoryTx) TransferOut(ctx context.Context, to string, amount sdkmath.Uint) error {
	return tx.move(ctx, tx.backend.custody, to, amount)
}

func (tx *memoryTx) move(ctx context.Context, from, to string, amount sdkmath.Uint) error {
	if tx.backend.hook != nil {
		if err := tx.backend.hook(ctx, from, to, amount); err != nil {
			return err
		}
	}

	balance := balanceOf(tx.balances, from)
	if balance.LT(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientFunds, from, balance, amount)
	}
	tx.balances[from] = balance.Sub(amount)
	tx.balances[to] = balanceOf(tx.balances, to).Add(amount)
	return nil
}

func balanceOf(balances map[string]sdkmath.Uint, account string) sdkmath.Uint {
	if b, ok := balances[account]; ok && !b.IsNil() {
		return b
	}
	return sdkmath.ZeroUint()
}
