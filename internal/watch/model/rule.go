package model

import (
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/google/uuid"
)

// RuleKind identifies which engine governs a rule.
type RuleKind string

var (
	RuleBalance     RuleKind = "balance"
	RuleTransaction RuleKind = "transaction"
)

// RuleStatus is the persisted state of a rule.
type RuleStatus string

var (
	RulePending  RuleStatus = "pending"
	RuleSuccess  RuleStatus = "success"
	RuleTimedOut RuleStatus = "timed_out"
	RuleRejected RuleStatus = "rejected"
)

// Terminal reports whether no further transitions are allowed from s.
func (s RuleStatus) Terminal() bool {
	switch s {
	case RuleSuccess, RuleTimedOut, RuleRejected:
		return true
	default:
		return false
	}
}

// Rule is a user's watch intent. Everything except Status, RemainingWaitingTime and
// CurrentWatchID is immutable after creation.
type Rule struct {
	ID   uuid.UUID
	Kind RuleKind
	// Subject is an address for balance rules and a transaction id for transaction rules.
	Subject              string
	TargetAmount         btcutil.Amount
	TargetConfirmation   int
	OriginalWaitingTime  time.Duration
	RemainingWaitingTime time.Duration
	SuccessData          json.RawMessage
	// TimeoutData is optional; without it a timeout is not delivered.
	TimeoutData    json.RawMessage
	CallbackID     *uuid.UUID
	Status         RuleStatus
	CurrentWatchID *uuid.UUID
	CreatedAt      time.Time
}

// DefaultMinWaitingTime and DefaultMaxWaitingTime bound rule waiting times.
const (
	DefaultMinWaitingTime = time.Second
	DefaultMaxWaitingTime = 30 * 24 * time.Hour
)
