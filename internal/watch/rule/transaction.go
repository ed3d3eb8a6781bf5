package rule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/tracker"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// TransactionDeps are the collaborators of a TransactionWatcher.
type TransactionDeps struct {
	EngineDeps
	Watches TransactionWatchRepository
	Blocks  tracker.BlockIndex
}

// TransactionRequest asks to be notified once TxID reaches TargetConfirmation.
type TransactionRequest struct {
	TxID               string
	TargetConfirmation int
	WaitingTime        time.Duration
	SuccessData        json.RawMessage
	TimeoutData        json.RawMessage
	CallbackID         *uuid.UUID
}

type activeTransaction struct {
	rule  *model.Rule
	watch *model.TransactionWatch
}

// TransactionWatcher watches transactions until they reach a confirmation depth.
type TransactionWatcher struct {
	logger        *zap.Logger
	engine        *Engine
	rules         RuleRepository
	watches       TransactionWatchRepository
	confirmations *tracker.ConfirmationWatcher[model.TransactionWatch]

	mu     sync.RWMutex
	active map[chainhash.Hash]*activeTransaction
	byRule map[uuid.UUID]chainhash.Hash
}

// NewTransactionWatcher creates a TransactionWatcher.
func NewTransactionWatcher(deps TransactionDeps, logger *zap.Logger) (*TransactionWatcher, error) {
	if deps.Watches == nil {
		return nil, errors.New("transaction watch repository is required")
	}
	if deps.Blocks == nil {
		return nil, errors.New("block index is required")
	}

	logger = logger.Named("transaction")
	w := &TransactionWatcher{
		logger:  logger,
		rules:   deps.Rules,
		watches: deps.Watches,
		active:  make(map[chainhash.Hash]*activeTransaction),
		byRule:  make(map[uuid.UUID]chainhash.Hash),
	}
	engine, err := NewEngine(model.RuleTransaction, deps.EngineDeps, w, logger)
	if err != nil {
		return nil, err
	}
	w.engine = engine
	w.confirmations = tracker.NewConfirmationWatcher[model.TransactionWatch](
		deps.Blocks, w, tracker.NewTransactionResolver(w), w, logger.Named("confirmations"),
	)
	return w, nil
}

// Start resumes pending transaction rules and their current watches.
func (w *TransactionWatcher) Start(ctx context.Context) error {
	return w.engine.Start(ctx, w.resume)
}

// Stop stops the timers and persists the remaining waiting times.
func (w *TransactionWatcher) Stop(ctx context.Context) error {
	return w.engine.Stop(ctx)
}

// BlockAdded implements chain.Listener.
func (w *TransactionWatcher) BlockAdded(ctx context.Context, block *model.Block, height uint64) error {
	return w.confirmations.BlockAdded(ctx, block, height)
}

// BlockRemoving implements chain.Listener.
func (w *TransactionWatcher) BlockRemoving(ctx context.Context, block *model.Block, height uint64) error {
	return w.confirmations.BlockRemoving(ctx, block, height)
}

// StartWatch creates a pending transaction rule.
func (w *TransactionWatcher) StartWatch(ctx context.Context, req TransactionRequest) (*model.Rule, error) {
	if err := w.engine.Running(); err != nil {
		return nil, err
	}
	txID, err := chainhash.NewHashFromStr(req.TxID)
	if err != nil || len(req.TxID) != chainhash.MaxHashStringSize {
		return nil, fmt.Errorf("%w: transaction id %q", model.ErrInvalidSubject, req.TxID)
	}
	if !w.reserve(*txID) {
		return nil, model.ErrSubjectBusy
	}

	rule, err := w.engine.CreateRule(ctx, Request{
		Subject:            txID.String(),
		TargetConfirmation: req.TargetConfirmation,
		WaitingTime:        req.WaitingTime,
		SuccessData:        req.SuccessData,
		TimeoutData:        req.TimeoutData,
		CallbackID:         req.CallbackID,
	})
	if err != nil {
		w.release(*txID, nil)
		return nil, err
	}
	w.activate(*txID, rule, nil)
	w.logger.Info("transaction rule created", zap.Stringer("rule", rule.ID), zap.Stringer("tx", txID))

	return rule, nil
}

// CancelRule rejects a pending transaction rule.
func (w *TransactionWatcher) CancelRule(ctx context.Context, id uuid.UUID) (*model.Rule, error) {
	return w.engine.CancelRule(ctx, id)
}

// CreateWatches implements tracker.Creator.
func (w *TransactionWatcher) CreateWatches(_ context.Context, block *model.Block, _ uint64) ([]model.TransactionWatch, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.active) == 0 {
		return nil, nil
	}

	var created []model.TransactionWatch
	for _, tx := range block.Transactions {
		entry, ok := w.active[tx.TxID]
		if !ok || entry == nil {
			continue
		}
		created = append(created, model.TransactionWatch{
			Watch: model.Watch{
				ID:         uuid.New(),
				RuleID:     entry.rule.ID,
				StartBlock: block.Hash,
				StartTime:  block.Timestamp,
				Status:     model.WatchUncompleted,
			},
			TxID: tx.TxID,
		})
	}
	return created, nil
}

// AddWatches implements tracker.Handler. The new watch becomes the rule's current one.
func (w *TransactionWatcher) AddWatches(ctx context.Context, watches []model.TransactionWatch) error {
	for i := range watches {
		watch := watches[i]
		if err := w.watches.Add(ctx, watch); err != nil {
			return fmt.Errorf("add transaction watch: %w", err)
		}
		id := watch.ID
		if err := w.rules.UpdateCurrentWatch(ctx, watch.RuleID, &id); err != nil {
			return fmt.Errorf("update current watch of rule %s: %w", watch.RuleID, err)
		}
		w.setWatch(watch.TxID, &watch)
	}
	return nil
}

// RemoveCompletedWatches implements tracker.Handler.
func (w *TransactionWatcher) RemoveCompletedWatches(ctx context.Context, watches []model.TransactionWatch) error {
	for _, watch := range watches {
		count, _ := w.confirmations.Confirmation(watch.ID)
		if err := w.watches.UpdateStatus(ctx, watch.ID, model.WatchSucceeded, count); err != nil {
			return fmt.Errorf("transition watch %s to succeeded: %w", watch.ID, err)
		}
	}
	return nil
}

// RemoveUncompletedWatches implements tracker.Handler. The rule keeps waiting for the
// transaction to be mined again.
func (w *TransactionWatcher) RemoveUncompletedWatches(ctx context.Context, startBlock chainhash.Hash) error {
	for _, entry := range w.watchesFrom(startBlock) {
		count, _ := w.confirmations.Confirmation(entry.watch.ID)
		if err := w.watches.UpdateStatus(ctx, entry.watch.ID, model.WatchRejected, count); err != nil {
			return fmt.Errorf("reject watch %s: %w", entry.watch.ID, err)
		}
		if err := w.rules.UpdateCurrentWatch(ctx, entry.rule.ID, nil); err != nil {
			return fmt.Errorf("clear current watch of rule %s: %w", entry.rule.ID, err)
		}
		w.setWatch(entry.watch.TxID, nil)
		w.logger.Info("watch rejected by reorg", zap.Stringer("watch", entry.watch.ID), zap.Stringer("rule", entry.rule.ID))
	}
	return nil
}

// ConfirmationUpdate implements tracker.TransactionHandler.
func (w *TransactionWatcher) ConfirmationUpdate(
	ctx context.Context,
	watch model.TransactionWatch,
	confirmation int,
	ctype tracker.ConfirmationType,
) (bool, error) {
	rule := w.ruleFor(watch.RuleID)
	if rule == nil {
		return false, nil
	}
	if ctype != tracker.Confirmed || confirmation < rule.TargetConfirmation {
		return false, nil
	}
	return w.engine.Complete(ctx, rule.ID, model.RuleSuccess)
}

// OnTerminal implements TerminalHook.
func (w *TransactionWatcher) OnTerminal(ctx context.Context, rule *model.Rule, status model.RuleStatus) error {
	txID, err := chainhash.NewHashFromStr(rule.Subject)
	if err != nil {
		return fmt.Errorf("parse subject of rule %s: %w", rule.ID, err)
	}
	w.release(*txID, &rule.ID)

	watchStatus := model.WatchTimedOut
	switch status {
	case model.RuleSuccess:
		return nil
	case model.RuleRejected:
		watchStatus = model.WatchRejected
	}

	var errs error
	for _, c := range w.confirmations.ForceResolve(rule.ID) {
		if err := w.watches.UpdateStatus(ctx, c.Watch.ID, watchStatus, c.Count); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("transition watch %s: %w", c.Watch.ID, err))
		}
	}
	return errs
}

func (w *TransactionWatcher) resume(ctx context.Context, rule *model.Rule) error {
	txID, err := chainhash.NewHashFromStr(rule.Subject)
	if err != nil {
		return fmt.Errorf("parse subject of rule %s: %w", rule.ID, err)
	}
	w.activate(*txID, rule, nil)
	if rule.CurrentWatchID == nil {
		return nil
	}

	watch, err := w.watches.Get(ctx, *rule.CurrentWatchID)
	if errors.Is(err, model.ErrNotFound) {
		w.logger.Warn("current watch is gone", zap.Stringer("rule", rule.ID), zap.Stringer("watch", *rule.CurrentWatchID))
		return w.rules.UpdateCurrentWatch(ctx, rule.ID, nil)
	}
	if err != nil {
		return fmt.Errorf("get watch %s: %w", *rule.CurrentWatchID, err)
	}
	if watch.Status != model.WatchUncompleted {
		return w.rules.UpdateCurrentWatch(ctx, rule.ID, nil)
	}

	stale, err := w.confirmations.Register(ctx, []model.TransactionWatch{*watch})
	if err != nil {
		return err
	}
	if len(stale) > 0 {
		if err := w.watches.UpdateStatus(ctx, watch.ID, model.WatchRejected, 0); err != nil {
			return fmt.Errorf("reject stale watch %s: %w", watch.ID, err)
		}
		return w.rules.UpdateCurrentWatch(ctx, rule.ID, nil)
	}
	w.setWatch(*txID, watch)
	return nil
}

func (w *TransactionWatcher) reserve(txID chainhash.Hash) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.active[txID]; ok {
		return false
	}
	w.active[txID] = nil
	return true
}

func (w *TransactionWatcher) activate(txID chainhash.Hash, rule *model.Rule, watch *model.TransactionWatch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active[txID] = &activeTransaction{rule: rule, watch: watch}
	w.byRule[rule.ID] = txID
}

func (w *TransactionWatcher) release(txID chainhash.Hash, ruleID *uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	entry, ok := w.active[txID]
	if !ok {
		return
	}
	if ruleID != nil && entry != nil && entry.rule.ID != *ruleID {
		return
	}
	delete(w.active, txID)
	if entry != nil {
		delete(w.byRule, entry.rule.ID)
	}
}

func (w *TransactionWatcher) setWatch(txID chainhash.Hash, watch *model.TransactionWatch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if entry, ok := w.active[txID]; ok && entry != nil {
		entry.watch = watch
	}
}

func (w *TransactionWatcher) ruleFor(ruleID uuid.UUID) *model.Rule {
	w.mu.RLock()
	defer w.mu.RUnlock()
	txID, ok := w.byRule[ruleID]
	if !ok {
		return nil
	}
	entry := w.active[txID]
	if entry == nil {
		return nil
	}
	return entry.rule
}

func (w *TransactionWatcher) watchesFrom(startBlock chainhash.Hash) []activeTransaction {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []activeTransaction
	for _, entry := range w.active {
		if entry != nil && entry.watch != nil && entry.watch.StartBlock == startBlock {
			out = append(out, *entry)
		}
	}
	return out
}
