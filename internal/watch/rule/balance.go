package rule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/tracker"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// BalanceDeps are the collaborators of a BalanceWatcher.
type BalanceDeps struct {
	EngineDeps
	Watches   BalanceWatchRepository
	Blocks    tracker.BlockIndex
	Decoder   BalanceDecoder
	Validator SubjectValidator
	// Releaser is optional.
	Releaser AddressReleaser
}

// BalanceRequest asks to be notified once Amount has been received by Address with
// TargetConfirmation confirmations.
type BalanceRequest struct {
	Address            string
	Amount             btcutil.Amount
	TargetConfirmation int
	WaitingTime        time.Duration
	SuccessData        json.RawMessage
	TimeoutData        json.RawMessage
	CallbackID         *uuid.UUID
}

// BalanceWatcher watches addresses for received amounts.
type BalanceWatcher struct {
	logger        *zap.Logger
	engine        *Engine
	rules         RuleRepository
	watches       BalanceWatchRepository
	decoder       BalanceDecoder
	validator     SubjectValidator
	releaser      AddressReleaser
	confirmations *tracker.ConfirmationWatcher[model.BalanceWatch]

	mu     sync.RWMutex
	active map[string]*model.Rule
}

// NewBalanceWatcher creates a BalanceWatcher.
func NewBalanceWatcher(deps BalanceDeps, logger *zap.Logger) (*BalanceWatcher, error) {
	if deps.Watches == nil {
		return nil, errors.New("balance watch repository is required")
	}
	if deps.Blocks == nil {
		return nil, errors.New("block index is required")
	}
	if deps.Decoder == nil {
		return nil, errors.New("balance decoder is required")
	}
	if deps.Validator == nil {
		return nil, errors.New("address validator is required")
	}
	if deps.Releaser == nil {
		deps.Releaser = noopReleaser{}
	}

	logger = logger.Named("balance")
	w := &BalanceWatcher{
		logger:    logger,
		rules:     deps.Rules,
		watches:   deps.Watches,
		decoder:   deps.Decoder,
		validator: deps.Validator,
		releaser:  deps.Releaser,
		active:    make(map[string]*model.Rule),
	}
	engine, err := NewEngine(model.RuleBalance, deps.EngineDeps, w, logger)
	if err != nil {
		return nil, err
	}
	w.engine = engine
	w.confirmations = tracker.NewConfirmationWatcher[model.BalanceWatch](
		deps.Blocks, w, tracker.NewBalanceResolver(w), w, logger.Named("confirmations"),
	)
	return w, nil
}

// Start resumes pending balance rules.
func (w *BalanceWatcher) Start(ctx context.Context) error {
	return w.engine.Start(ctx, w.resume)
}

// Stop stops the timers and persists the remaining waiting times.
func (w *BalanceWatcher) Stop(ctx context.Context) error {
	return w.engine.Stop(ctx)
}

// BlockAdded implements chain.Listener.
func (w *BalanceWatcher) BlockAdded(ctx context.Context, block *model.Block, height uint64) error {
	return w.confirmations.BlockAdded(ctx, block, height)
}

// BlockRemoving implements chain.Listener.
func (w *BalanceWatcher) BlockRemoving(ctx context.Context, block *model.Block, height uint64) error {
	return w.confirmations.BlockRemoving(ctx, block, height)
}

// StartWatch creates a pending balance rule for an address.
func (w *BalanceWatcher) StartWatch(ctx context.Context, req BalanceRequest) (*model.Rule, error) {
	if err := w.engine.Running(); err != nil {
		return nil, err
	}
	if err := w.validator.ValidateAddress(req.Address); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidSubject, err)
	}
	if req.Amount <= 0 {
		return nil, model.ErrInvalidTarget
	}
	if !w.reserve(req.Address) {
		return nil, model.ErrSubjectBusy
	}

	rule, err := w.engine.CreateRule(ctx, Request{
		Subject:            req.Address,
		TargetAmount:       req.Amount,
		TargetConfirmation: req.TargetConfirmation,
		WaitingTime:        req.WaitingTime,
		SuccessData:        req.SuccessData,
		TimeoutData:        req.TimeoutData,
		CallbackID:         req.CallbackID,
	})
	if err != nil {
		w.release(req.Address, nil)
		return nil, err
	}
	w.activate(rule)
	w.logger.Info("balance rule created", zap.Stringer("rule", rule.ID), zap.String("address", rule.Subject))

	return rule, nil
}

// CancelRule rejects a pending balance rule.
func (w *BalanceWatcher) CancelRule(ctx context.Context, id uuid.UUID) (*model.Rule, error) {
	return w.engine.CancelRule(ctx, id)
}

// CreateWatches implements tracker.Creator: one watch per transaction and watched address.
func (w *BalanceWatcher) CreateWatches(ctx context.Context, block *model.Block, _ uint64) ([]model.BalanceWatch, error) {
	if w.activeCount() == 0 {
		return nil, nil
	}

	var created []model.BalanceWatch
	for i := range block.Transactions {
		tx := &block.Transactions[i]
		changes, err := w.decoder.Decode(ctx, tx)
		if err != nil {
			return nil, fmt.Errorf("decode tx %s: %w", tx.TxID, err)
		}
		for _, change := range changes {
			if change.Amount == 0 {
				continue
			}
			rule := w.ruleFor(change.Address)
			if rule == nil {
				continue
			}
			created = append(created, model.BalanceWatch{
				Watch: model.Watch{
					ID:         uuid.New(),
					RuleID:     rule.ID,
					StartBlock: block.Hash,
					StartTime:  block.Timestamp,
					Status:     model.WatchUncompleted,
				},
				Address:       change.Address,
				TxID:          tx.TxID,
				BalanceChange: change.Amount,
			})
		}
	}
	return created, nil
}

// AddWatches implements tracker.Handler.
func (w *BalanceWatcher) AddWatches(ctx context.Context, watches []model.BalanceWatch) error {
	if err := w.watches.Add(ctx, watches); err != nil {
		return fmt.Errorf("add balance watches: %w", err)
	}
	for _, watch := range watches {
		id := watch.ID
		if err := w.rules.UpdateCurrentWatch(ctx, watch.RuleID, &id); err != nil {
			return fmt.Errorf("update current watch of rule %s: %w", watch.RuleID, err)
		}
	}
	return nil
}

// RemoveCompletedWatches implements tracker.Handler.
func (w *BalanceWatcher) RemoveCompletedWatches(ctx context.Context, watches []model.BalanceWatch) error {
	ids := make([]uuid.UUID, 0, len(watches))
	for _, watch := range watches {
		ids = append(ids, watch.ID)
	}
	if _, err := w.watches.TransitionToSucceeded(ctx, ids); err != nil {
		return fmt.Errorf("transition balance watches to succeeded: %w", err)
	}
	return nil
}

// RemoveUncompletedWatches implements tracker.Handler. Rules of the rejected watches
// stay pending and keep counting down.
func (w *BalanceWatcher) RemoveUncompletedWatches(ctx context.Context, startBlock chainhash.Hash) error {
	for _, address := range w.activeAddresses() {
		rejected, err := w.watches.TransitionToRejected(ctx, address, startBlock)
		if err != nil {
			return fmt.Errorf("reject watches of %s: %w", address, err)
		}
		for _, watch := range rejected {
			w.logger.Info("watch rejected by reorg",
				zap.Stringer("watch", watch.ID),
				zap.Stringer("rule", watch.RuleID),
				zap.Int("confirmation", watch.Confirmation),
			)
			if err := w.clearCurrentWatch(ctx, watch.RuleID, watch.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// ConfirmationUpdate implements tracker.BalanceHandler. The received amount is the sum
// of the address's balance changes confirmed at least TargetConfirmation times.
func (w *BalanceWatcher) ConfirmationUpdate(
	ctx context.Context,
	address string,
	confirmations []tracker.BalanceConfirmation,
	ctype tracker.ConfirmationType,
) (bool, error) {
	rule := w.ruleFor(address)
	if rule == nil {
		return false, nil
	}

	counts := make(map[uuid.UUID]int, len(confirmations))
	var received btcutil.Amount
	for _, c := range confirmations {
		if c.Watch.RuleID != rule.ID {
			continue
		}
		counts[c.Watch.ID] = c.Confirmation
		if c.Confirmation >= rule.TargetConfirmation {
			received += c.Amount
		}
	}
	if len(counts) == 0 {
		return false, nil
	}
	if err := w.watches.SetConfirmationCount(ctx, counts); err != nil {
		return false, fmt.Errorf("set confirmation count: %w", err)
	}

	if ctype != tracker.Confirmed || received < rule.TargetAmount {
		return false, nil
	}
	won, err := w.engine.Complete(ctx, rule.ID, model.RuleSuccess)
	if err != nil && won {
		// the rule is terminal even though its bookkeeping failed
		return won, multierr.Append(err, w.finishSucceeded(ctx, rule.ID))
	}
	return won, err
}

// finishSucceeded stops tracking the watches of a succeeded rule and marks them
// succeeded.
func (w *BalanceWatcher) finishSucceeded(ctx context.Context, ruleID uuid.UUID) error {
	resolved := w.confirmations.ForceResolve(ruleID)
	if len(resolved) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(resolved))
	for _, c := range resolved {
		ids = append(ids, c.Watch.ID)
	}
	if _, err := w.watches.TransitionToSucceeded(ctx, ids); err != nil {
		return fmt.Errorf("transition balance watches to succeeded: %w", err)
	}
	return nil
}

// OnTerminal implements TerminalHook.
func (w *BalanceWatcher) OnTerminal(ctx context.Context, rule *model.Rule, status model.RuleStatus) error {
	w.release(rule.Subject, &rule.ID)

	var errs []error
	switch status {
	case model.RuleTimedOut:
		resolved := w.confirmations.ForceResolve(rule.ID)
		if len(resolved) > 0 {
			counts := make(map[uuid.UUID]int, len(resolved))
			for _, c := range resolved {
				counts[c.Watch.ID] = c.Count
			}
			if err := w.watches.SetConfirmationCount(ctx, counts); err != nil {
				errs = append(errs, fmt.Errorf("set final confirmation count: %w", err))
			}
		}
		timedOut, err := w.watches.TransitionToTimedOut(ctx, rule.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("transition watches to timed out: %w", err))
		}
		w.logger.Info("balance rule timed out", zap.Stringer("rule", rule.ID), zap.Int("watches", len(timedOut)))
	case model.RuleRejected:
		w.confirmations.ForceResolve(rule.ID)
		uncompleted, err := w.watches.ListUncompleted(ctx, rule.Subject)
		if err != nil {
			errs = append(errs, fmt.Errorf("list uncompleted watches: %w", err))
			break
		}
		var ids []uuid.UUID
		for _, watch := range uncompleted {
			if watch.RuleID == rule.ID {
				ids = append(ids, watch.ID)
			}
		}
		if len(ids) > 0 {
			if err := w.watches.UpdateStatus(ctx, ids, model.WatchRejected); err != nil {
				errs = append(errs, fmt.Errorf("reject watches: %w", err))
			}
		}
	}

	if err := w.releaser.Release(ctx, rule.Subject); err != nil {
		errs = append(errs, fmt.Errorf("release address %s: %w", rule.Subject, err))
	}
	return multierr.Combine(errs...)
}

func (w *BalanceWatcher) resume(ctx context.Context, rule *model.Rule) error {
	w.activate(rule)

	uncompleted, err := w.watches.ListUncompleted(ctx, rule.Subject)
	if err != nil {
		return fmt.Errorf("list uncompleted watches of %s: %w", rule.Subject, err)
	}
	var own []model.BalanceWatch
	for _, watch := range uncompleted {
		if watch.RuleID == rule.ID {
			own = append(own, watch)
		}
	}
	if len(own) == 0 {
		return nil
	}

	stale, err := w.confirmations.Register(ctx, own)
	if err != nil {
		return err
	}
	for _, watch := range stale {
		if _, err := w.watches.TransitionToRejected(ctx, watch.Address, watch.StartBlock); err != nil {
			return fmt.Errorf("reject stale watch %s: %w", watch.ID, err)
		}
		if err := w.clearCurrentWatch(ctx, rule.ID, watch.ID); err != nil {
			return err
		}
	}
	w.logger.Debug("balance rule resumed",
		zap.Stringer("rule", rule.ID),
		zap.Int("watches", len(own)-len(stale)),
		zap.Int("stale", len(stale)),
	)
	return nil
}

func (w *BalanceWatcher) clearCurrentWatch(ctx context.Context, ruleID, watchID uuid.UUID) error {
	rule, err := w.rules.Get(ctx, ruleID)
	if err != nil {
		return fmt.Errorf("get rule %s: %w", ruleID, err)
	}
	if rule.CurrentWatchID == nil || *rule.CurrentWatchID != watchID {
		return nil
	}
	if err := w.rules.UpdateCurrentWatch(ctx, ruleID, nil); err != nil {
		return fmt.Errorf("clear current watch of rule %s: %w", ruleID, err)
	}
	return nil
}

func (w *BalanceWatcher) reserve(address string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.active[address]; ok {
		return false
	}
	w.active[address] = nil
	return true
}

func (w *BalanceWatcher) activate(rule *model.Rule) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active[rule.Subject] = rule
}

// release frees address when it is reserved or held by ruleID.
func (w *BalanceWatcher) release(address string, ruleID *uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	current, ok := w.active[address]
	if !ok {
		return
	}
	if ruleID != nil && current != nil && current.ID != *ruleID {
		return
	}
	delete(w.active, address)
}

func (w *BalanceWatcher) ruleFor(address string) *model.Rule {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active[address]
}

func (w *BalanceWatcher) activeCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.active)
}

func (w *BalanceWatcher) activeAddresses() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	addresses := make([]string, 0, len(w.active))
	for address := range w.active {
		addresses = append(addresses, address)
	}
	return addresses
}

type noopReleaser struct{}

func (noopReleaser) Release(context.Context, string) error { return nil }
