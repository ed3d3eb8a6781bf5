// Package rule combines persisted rules, per-rule timeout timers and the confirmation
// engine so that every rule reaches exactly one terminal status.
package rule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/goodnatureofminers/blockinsight7000-watcher/pkg/workerpool"
	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/lnd/fn/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const resumeWorkerCount = 8

type engineState int

const (
	stateNotStarted engineState = iota
	stateStarted
	stateStopped
)

// Request describes a new rule.
type Request struct {
	Subject            string
	TargetAmount       btcutil.Amount
	TargetConfirmation int
	WaitingTime        time.Duration
	SuccessData        json.RawMessage
	TimeoutData        json.RawMessage
	CallbackID         *uuid.UUID
}

// Limits bounds the waiting time of new rules.
type Limits struct {
	MinWaitingTime time.Duration
	MaxWaitingTime time.Duration
}

// EngineDeps are the collaborators of an Engine.
type EngineDeps struct {
	Rules     RuleRepository
	Callbacks CallbackRepository
	Executor  CallbackExecutor
	Clock     clock.Clock
	Metrics   EngineMetrics
	Limits    Limits
}

type ruleTimer struct {
	armedAt  time.Time
	duration time.Duration
	stop     chan struct{}
}

// Engine owns the timers of one rule kind and performs terminal transitions.
type Engine struct {
	logger    *zap.Logger
	kind      model.RuleKind
	rules     RuleRepository
	callbacks CallbackRepository
	executor  CallbackExecutor
	clock     clock.Clock
	metrics   EngineMetrics
	limits    Limits
	hook      TerminalHook

	mu         sync.Mutex
	state      engineState
	baseCtx    context.Context
	timers     map[uuid.UUID]*ruleTimer
	goroutines *fn.GoroutineManager
}

// NewEngine creates an Engine for rules of kind. hook is invoked after every terminal
// transition the engine wins.
func NewEngine(kind model.RuleKind, deps EngineDeps, hook TerminalHook, logger *zap.Logger) (*Engine, error) {
	if deps.Rules == nil {
		return nil, errors.New("rule repository is required")
	}
	if deps.Callbacks == nil {
		return nil, errors.New("callback repository is required")
	}
	if deps.Executor == nil {
		return nil, errors.New("callback executor is required")
	}
	if deps.Metrics == nil {
		return nil, errors.New("engine metrics is required")
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewDefaultClock()
	}
	if deps.Limits.MinWaitingTime <= 0 {
		deps.Limits.MinWaitingTime = model.DefaultMinWaitingTime
	}
	if deps.Limits.MaxWaitingTime <= 0 {
		deps.Limits.MaxWaitingTime = model.DefaultMaxWaitingTime
	}

	return &Engine{
		logger:    logger.Named("engine").With(zap.String("kind", string(kind))),
		kind:      kind,
		rules:     deps.Rules,
		callbacks: deps.Callbacks,
		executor:  deps.Executor,
		clock:     deps.Clock,
		metrics:   deps.Metrics,
		limits:    deps.Limits,
		hook:      hook,
		timers:    make(map[uuid.UUID]*ruleTimer),
	}, nil
}

// Start loads every pending rule, hands it to resume and re-arms its timer with the
// remaining, not the original, waiting time.
func (e *Engine) Start(ctx context.Context, resume func(context.Context, *model.Rule) error) error {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	switch state {
	case stateStarted:
		return model.ErrAlreadyStarted
	case stateStopped:
		return model.ErrStopped
	}

	rules, err := e.rules.ListWaiting(ctx, e.kind)
	if err != nil {
		return fmt.Errorf("list waiting rules: %w", err)
	}

	if resume != nil && len(rules) > 0 {
		if err := workerpool.Process(ctx, resumeWorkerCount, rules, resume); err != nil {
			return fmt.Errorf("resume rules: %w", err)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != stateNotStarted {
		return model.ErrAlreadyStarted
	}
	e.state = stateStarted
	e.baseCtx = ctx
	e.goroutines = fn.NewGoroutineManager()
	for _, r := range rules {
		e.armLocked(r.ID, r.RemainingWaitingTime)
	}
	e.metrics.SetActiveTimers(e.kind, len(e.timers))
	e.logger.Info("engine started", zap.Int("resumed", len(rules)))

	return nil
}

// Stop cancels every timer and persists the time left on it. No rule is marked
// terminal because of a stop.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case stateNotStarted:
		e.mu.Unlock()
		return model.ErrNotStarted
	case stateStopped:
		e.mu.Unlock()
		return model.ErrStopped
	}
	e.state = stateStopped
	timers := e.timers
	e.timers = make(map[uuid.UUID]*ruleTimer)
	goroutines := e.goroutines
	now := e.clock.Now()
	e.mu.Unlock()

	for _, t := range timers {
		close(t.stop)
	}
	goroutines.Stop()

	var errs error
	for id, t := range timers {
		elapsed := now.Sub(t.armedAt)
		if elapsed <= 0 {
			continue
		}
		if elapsed > t.duration {
			elapsed = t.duration
		}
		if _, err := e.rules.SubtractRemainingWaitingTime(ctx, id, elapsed); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("persist remaining time of rule %s: %w", id, err))
		}
	}
	e.metrics.SetActiveTimers(e.kind, 0)
	e.logger.Info("engine stopped", zap.Int("timers", len(timers)))

	return errs
}

// Running reports whether the engine accepts work.
func (e *Engine) Running() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case stateNotStarted:
		return model.ErrNotStarted
	case stateStopped:
		return model.ErrStopped
	default:
		return nil
	}
}

// CreateRule validates and persists a pending rule and arms its timer. Subject
// validation is left to the caller.
func (e *Engine) CreateRule(ctx context.Context, req Request) (*model.Rule, error) {
	if err := e.Running(); err != nil {
		return nil, err
	}
	if req.TargetConfirmation <= 0 {
		return nil, model.ErrInvalidConfirmation
	}
	if req.WaitingTime < e.limits.MinWaitingTime || req.WaitingTime > e.limits.MaxWaitingTime {
		return nil, fmt.Errorf("%w: %s not in [%s, %s]", model.ErrInvalidTimeout, req.WaitingTime,
			e.limits.MinWaitingTime, e.limits.MaxWaitingTime)
	}
	if req.CallbackID != nil {
		cb, err := e.callbacks.Get(ctx, *req.CallbackID)
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrCallbackNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("get callback: %w", err)
		}
		if cb.Completed {
			return nil, model.ErrCallbackCompleted
		}
	}

	rule := &model.Rule{
		ID:                   uuid.New(),
		Kind:                 e.kind,
		Subject:              req.Subject,
		TargetAmount:         req.TargetAmount,
		TargetConfirmation:   req.TargetConfirmation,
		OriginalWaitingTime:  req.WaitingTime,
		RemainingWaitingTime: req.WaitingTime,
		SuccessData:          req.SuccessData,
		TimeoutData:          req.TimeoutData,
		CallbackID:           req.CallbackID,
		Status:               model.RulePending,
		CreatedAt:            e.clock.Now(),
	}
	if err := e.rules.Add(ctx, rule); err != nil {
		return nil, fmt.Errorf("add rule: %w", err)
	}

	e.mu.Lock()
	if e.state == stateStarted {
		e.armLocked(rule.ID, rule.RemainingWaitingTime)
		e.metrics.SetActiveTimers(e.kind, len(e.timers))
		e.mu.Unlock()
		return rule, nil
	}
	e.mu.Unlock()

	// stopped while persisting: nothing armed the timer, so the rule must not resume
	if _, err := e.rules.UpdateStatus(context.WithoutCancel(ctx), rule.ID, model.RulePending, model.RuleRejected); err != nil {
		e.logger.Error("reject unarmed rule failed", zap.Stringer("rule", rule.ID), zap.Error(err))
	}
	return nil, model.ErrStopped
}

// CancelRule rejects a pending rule. Cancelling a terminal rule is a no-op.
func (e *Engine) CancelRule(ctx context.Context, id uuid.UUID) (*model.Rule, error) {
	if err := e.Running(); err != nil {
		return nil, err
	}
	rule, err := e.rules.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule.Kind != e.kind {
		return nil, model.ErrRuleNotFound
	}
	if _, err := e.Complete(ctx, id, model.RuleRejected); err != nil {
		return nil, err
	}
	return e.rules.Get(ctx, id)
}

// Complete moves a pending rule to status. The status write is a compare-and-set, so
// when the timer and the confirmation path race only the first caller wins and the
// other gets false.
func (e *Engine) Complete(ctx context.Context, id uuid.UUID, status model.RuleStatus) (bool, error) {
	if !status.Terminal() {
		return false, fmt.Errorf("status %q is not terminal", status)
	}
	if err := e.Running(); err != nil {
		return false, err
	}

	won, err := e.rules.UpdateStatus(ctx, id, model.RulePending, status)
	if err != nil {
		return false, fmt.Errorf("update status of rule %s: %w", id, err)
	}
	logger := e.logger.With(zap.Stringer("rule", id), zap.String("status", string(status)))
	if !won {
		logger.Debug("rule already terminal")
		return false, nil
	}
	e.disarm(id)
	e.metrics.ObserveTerminal(e.kind, status)
	logger.Info("rule completed")

	rule, err := e.rules.Get(ctx, id)
	if err != nil {
		return true, fmt.Errorf("get rule %s: %w", id, err)
	}
	if e.hook != nil {
		if err := e.hook.OnTerminal(ctx, rule, status); err != nil {
			logger.Error("terminal bookkeeping failed", zap.Error(err))
			return true, fmt.Errorf("terminal bookkeeping of rule %s: %w", id, err)
		}
	}
	e.notify(ctx, rule, status)

	return true, nil
}

// notify records the outcome in callback history and schedules delivery. Rejected
// rules and timeouts without a timeout payload are not delivered.
func (e *Engine) notify(ctx context.Context, rule *model.Rule, status model.RuleStatus) {
	if rule.CallbackID == nil {
		return
	}

	result := model.CallbackResult{RuleID: rule.ID}
	switch status {
	case model.RuleSuccess:
		result.Status = model.CallbackStatusSuccess
		result.Data = rule.SuccessData
	case model.RuleTimedOut:
		if len(rule.TimeoutData) == 0 {
			return
		}
		result.Status = model.CallbackStatusTimeout
		result.Data = rule.TimeoutData
	default:
		return
	}

	callbackID := *rule.CallbackID
	logger := e.logger.With(zap.Stringer("rule", rule.ID), zap.Stringer("callback", callbackID))
	if err := e.callbacks.AddHistory(ctx, callbackID, result); err != nil {
		logger.Warn("append callback history failed", zap.Error(err))
	}

	e.mu.Lock()
	goroutines, baseCtx := e.goroutines, e.baseCtx
	e.mu.Unlock()

	started := goroutines.Go(baseCtx, func(ctx context.Context) {
		e.deliver(ctx, callbackID, result, logger)
	})
	if !started {
		logger.Warn("callback delivery skipped, engine is stopping")
	}
}

func (e *Engine) deliver(ctx context.Context, id uuid.UUID, result model.CallbackResult, logger *zap.Logger) {
	cb, err := e.callbacks.Get(ctx, id)
	if err != nil {
		logger.Warn("load callback failed", zap.Error(err))
		return
	}
	if cb.Completed {
		logger.Warn("callback already completed, skipping delivery")
		return
	}

	started := time.Now()
	err = e.executor.Execute(ctx, id, cb.URL, result)
	e.metrics.ObserveDelivery(err, started)
	if err != nil {
		logger.Warn("callback delivery failed", zap.Error(err))
		return
	}
	if err := e.callbacks.SetCompleted(ctx, id); err != nil {
		logger.Warn("mark callback completed failed", zap.Error(err))
	}
}

// armLocked must be called with e.mu held. TickAfter is registered before the
// goroutine starts so the deadline is fixed at arm time.
func (e *Engine) armLocked(id uuid.UUID, d time.Duration) {
	if old, ok := e.timers[id]; ok {
		close(old.stop)
	}
	tick := e.clock.TickAfter(d)
	t := &ruleTimer{armedAt: e.clock.Now(), duration: d, stop: make(chan struct{})}
	e.timers[id] = t

	started := e.goroutines.Go(e.baseCtx, func(ctx context.Context) {
		select {
		case <-tick:
			e.expire(ctx, id, t)
		case <-t.stop:
		case <-ctx.Done():
		}
	})
	if !started {
		e.logger.Warn("timer not armed, engine is stopping", zap.Stringer("rule", id))
	}
}

func (e *Engine) expire(ctx context.Context, id uuid.UUID, t *ruleTimer) {
	e.mu.Lock()
	if current, ok := e.timers[id]; !ok || current != t {
		e.mu.Unlock()
		return
	}
	delete(e.timers, id)
	e.metrics.SetActiveTimers(e.kind, len(e.timers))
	e.mu.Unlock()

	won, err := e.Complete(ctx, id, model.RuleTimedOut)
	if err == nil {
		return
	}
	e.logger.Error("timeout failed", zap.Stringer("rule", id), zap.Error(err))
	if won {
		return
	}
	// the timer already expired, so the rule times out right after restart
	if _, err := e.rules.SubtractRemainingWaitingTime(context.WithoutCancel(ctx), id, t.duration); err != nil {
		e.logger.Error("persist expired timer failed", zap.Stringer("rule", id), zap.Error(err))
	}
}

func (e *Engine) disarm(id uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.timers[id]
	if !ok {
		return
	}
	delete(e.timers, id)
	close(t.stop)
	e.metrics.SetActiveTimers(e.kind, len(e.timers))
}

// ActiveTimers returns the number of armed timers.
func (e *Engine) ActiveTimers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.timers)
}
