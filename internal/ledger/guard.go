package ledger

// PauseView exposes the Active/Paused state gating user operations.
type PauseView interface {
	IsPaused() bool
}

// Guard rejects user operations while the ledger is paused.
func Guard(p PauseView) error {
	if p == nil {
		return nil
	}
	if p.IsPaused() {
		return ErrPaused
	}
	return nil
}

// Authorizer decides whether a caller may run administrative operations.
type Authorizer interface {
	IsAdmin(caller string) bool
}

// OwnerAuthorizer admits a single designated owner account.
type OwnerAuthorizer string

func (o OwnerAuthorizer) IsAdmin(caller string) bool {
	return caller != "" && caller == string(o)
}

// requireActive is the lifecycle gate of every user-facing mutation.
func (op *operation) requireActive() error {
	if !op.state.Initialized {
		return precondition(op.name, ErrNotInitialized)
	}
	if err := Guard(op.state); err != nil {
		return precondition(op.name, err)
	}
	return nil
}

func (op *operation) requireOwner() error {
	if !op.auth.IsAdmin(op.caller) {
		return &AuthorizationError{Op: op.name, Caller: op.caller}
	}
	return nil
}

func (op *operation) requireInitialized() error {
	if !op.state.Initialized {
		return precondition(op.name, ErrNotInitialized)
	}
	return nil
}
