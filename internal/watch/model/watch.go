package model

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"
)

// WatchStatus describes the lifecycle of a persisted watch.
type WatchStatus string

var (
	WatchUncompleted WatchStatus = "uncompleted"
	WatchSucceeded   WatchStatus = "succeeded"
	WatchRejected    WatchStatus = "rejected"
	WatchTimedOut    WatchStatus = "timed_out"
)

// Watch is a tracked occurrence tied to the block that produced it. RuleID is a
// back-reference; the rule is looked up, never owned.
type Watch struct {
	ID         uuid.UUID
	RuleID     uuid.UUID
	StartBlock chainhash.Hash
	StartTime  time.Time
	Status     WatchStatus
	// Confirmation is the last confirmation count recorded for the watch.
	Confirmation int
}

// Key returns the watch identifier.
func (w Watch) Key() uuid.UUID {
	return w.ID
}

// Origin returns the hash of the block that created the watch.
func (w Watch) Origin() chainhash.Hash {
	return w.StartBlock
}

// Rule returns the identifier of the rule the watch was created for.
func (w Watch) Rule() uuid.UUID {
	return w.RuleID
}

// TransactionWatch tracks the confirmation depth of a single transaction.
type TransactionWatch struct {
	Watch
	TxID chainhash.Hash
}

// BalanceWatch tracks a balance change of an address caused by one transaction.
type BalanceWatch struct {
	Watch
	Address       string
	TxID          chainhash.Hash
	BalanceChange btcutil.Amount
}
