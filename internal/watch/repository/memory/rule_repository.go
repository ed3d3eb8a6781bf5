package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
)

// RuleRepository keeps rules in memory.
type RuleRepository struct {
	mu    sync.Mutex
	rules map[uuid.UUID]model.Rule
}

func NewRuleRepository() *RuleRepository {
	return &RuleRepository{rules: make(map[uuid.UUID]model.Rule)}
}

func (r *RuleRepository) Add(_ context.Context, rule *model.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[rule.ID]; ok {
		return fmt.Errorf("rule %s already exists", rule.ID)
	}
	r.rules[rule.ID] = *rule
	return nil
}

func (r *RuleRepository) Get(_ context.Context, id uuid.UUID) (*model.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return nil, model.ErrRuleNotFound
	}
	return &rule, nil
}

func (r *RuleRepository) GetStatus(_ context.Context, id uuid.UUID) (model.RuleStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return "", model.ErrRuleNotFound
	}
	return rule.Status, nil
}

// UpdateStatus sets the status to "to" only while it is still "from".
func (r *RuleRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to model.RuleStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return false, model.ErrRuleNotFound
	}
	if rule.Status != from {
		return false, nil
	}
	rule.Status = to
	r.rules[id] = rule
	return true, nil
}

func (r *RuleRepository) GetRemainingWaitingTime(_ context.Context, id uuid.UUID) (time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return 0, model.ErrRuleNotFound
	}
	return rule.RemainingWaitingTime, nil
}

// SubtractRemainingWaitingTime lowers the remaining time by elapsed, floored at zero.
func (r *RuleRepository) SubtractRemainingWaitingTime(_ context.Context, id uuid.UUID, elapsed time.Duration) (time.Duration, error) {
	if elapsed <= 0 {
		return 0, fmt.Errorf("elapsed must be positive, got %s", elapsed)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return 0, model.ErrRuleNotFound
	}
	rule.RemainingWaitingTime -= elapsed
	if rule.RemainingWaitingTime < 0 {
		rule.RemainingWaitingTime = 0
	}
	r.rules[id] = rule
	return rule.RemainingWaitingTime, nil
}

func (r *RuleRepository) UpdateCurrentWatch(_ context.Context, id uuid.UUID, watchID *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return model.ErrRuleNotFound
	}
	if watchID != nil {
		wid := *watchID
		watchID = &wid
	}
	rule.CurrentWatchID = watchID
	r.rules[id] = rule
	return nil
}

// ListWaiting returns the pending rules of kind ordered by creation time.
func (r *RuleRepository) ListWaiting(_ context.Context, kind model.RuleKind) ([]*model.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Rule
	for _, rule := range r.rules {
		if rule.Kind != kind || rule.Status != model.RulePending {
			continue
		}
		rule := rule
		out = append(out, &rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
