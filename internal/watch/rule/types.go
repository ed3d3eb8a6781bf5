package rule

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RuleRepository persists rules. UpdateStatus is a compare-and-set and reports
	// whether the transition happened.
	RuleRepository interface {
		Add(ctx context.Context, rule *model.Rule) error
		Get(ctx context.Context, id uuid.UUID) (*model.Rule, error)
		GetStatus(ctx context.Context, id uuid.UUID) (model.RuleStatus, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.RuleStatus) (bool, error)
		GetRemainingWaitingTime(ctx context.Context, id uuid.UUID) (time.Duration, error)
		SubtractRemainingWaitingTime(ctx context.Context, id uuid.UUID, elapsed time.Duration) (time.Duration, error)
		UpdateCurrentWatch(ctx context.Context, id uuid.UUID, watchID *uuid.UUID) error
		ListWaiting(ctx context.Context, kind model.RuleKind) ([]*model.Rule, error)
	}

	CallbackRepository interface {
		Add(ctx context.Context, sourceAddress, url string) (*model.Callback, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Callback, error)
		AddHistory(ctx context.Context, id uuid.UUID, result model.CallbackResult) error
		SetCompleted(ctx context.Context, id uuid.UUID) error
	}

	// CallbackExecutor performs the outbound delivery of a callback result.
	CallbackExecutor interface {
		Execute(ctx context.Context, id uuid.UUID, url string, result model.CallbackResult) error
	}

	TransactionWatchRepository interface {
		Add(ctx context.Context, watch model.TransactionWatch) error
		Get(ctx context.Context, id uuid.UUID) (*model.TransactionWatch, error)
		List(ctx context.Context, status model.WatchStatus) ([]model.TransactionWatch, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.WatchStatus, confirmation int) error
	}

	// BalanceWatchRepository persists balance watches. Transition methods return the
	// watches actually transitioned with their final confirmation count.
	BalanceWatchRepository interface {
		Add(ctx context.Context, watches []model.BalanceWatch) error
		List(ctx context.Context, status model.WatchStatus) ([]model.BalanceWatch, error)
		UpdateStatus(ctx context.Context, ids []uuid.UUID, status model.WatchStatus) error
		ListUncompleted(ctx context.Context, address string) ([]model.BalanceWatch, error)
		SetConfirmationCount(ctx context.Context, counts map[uuid.UUID]int) error
		TransitionToRejected(ctx context.Context, address string, block chainhash.Hash) ([]model.BalanceWatch, error)
		TransitionToSucceeded(ctx context.Context, ids []uuid.UUID) ([]model.BalanceWatch, error)
		TransitionToTimedOut(ctx context.Context, ruleID uuid.UUID) ([]model.BalanceWatch, error)
	}

	// BalanceDecoder extracts per-address balance changes from a transaction.
	BalanceDecoder interface {
		Decode(ctx context.Context, tx *model.Transaction) ([]model.BalanceChange, error)
	}

	// AddressReleaser returns a reserved address to its pool.
	AddressReleaser interface {
		Release(ctx context.Context, address string) error
	}

	// SubjectValidator checks that a subject is well formed for the network.
	SubjectValidator interface {
		ValidateAddress(address string) error
	}

	// TerminalHook performs kind specific bookkeeping once a rule reaches a terminal status.
	TerminalHook interface {
		OnTerminal(ctx context.Context, rule *model.Rule, status model.RuleStatus) error
	}

	EngineMetrics interface {
		ObserveTerminal(kind model.RuleKind, status model.RuleStatus)
		SetActiveTimers(kind model.RuleKind, count int)
		ObserveDelivery(err error, started time.Time)
	}
)
