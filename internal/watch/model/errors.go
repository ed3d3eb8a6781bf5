package model

import (
	"errors"
	"fmt"
)

// Input validation errors.
var (
	ErrInvalidSubject      = errors.New("invalid subject")
	ErrInvalidTarget       = errors.New("target amount must be positive")
	ErrInvalidConfirmation = errors.New("target confirmation must be positive")
	ErrInvalidTimeout      = errors.New("waiting time out of range")
	ErrCallbackCompleted   = errors.New("callback already completed")
	ErrSubjectBusy         = errors.New("subject already has a pending rule")
)

// State errors.
var (
	ErrNotStarted     = errors.New("not started")
	ErrAlreadyStarted = errors.New("already started")
	ErrStopped        = errors.New("already stopped")
	ErrAlreadyRunning = errors.New("already running")
)

// Not-found errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrRuleNotFound  = fmt.Errorf("rule %w", ErrNotFound)
	ErrWatchNotFound = fmt.Errorf("watch %w", ErrNotFound)
	ErrBlockNotFound = fmt.Errorf("block %w", ErrNotFound)
	ErrTxNotFound    = fmt.Errorf("transaction %w", ErrNotFound)
	// ErrCallbackNotFound is also returned when a rule references an unknown callback.
	ErrCallbackNotFound = fmt.Errorf("callback %w", ErrNotFound)
)

// Consistency errors. Anything wrapping ErrInconsistent must stop the affected pump.
var (
	ErrInconsistent          = errors.New("inconsistent state")
	ErrInvalidGenesis        = fmt.Errorf("%w: non-genesis block on empty store", ErrInconsistent)
	ErrConfirmationUnderflow = fmt.Errorf("%w: height below watch origin", ErrInconsistent)
)
