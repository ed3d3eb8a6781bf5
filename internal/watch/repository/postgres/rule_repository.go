package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RuleRepository implements rule.RuleRepository.
type RuleRepository struct {
	repository
}

func NewRuleRepository(db *gorm.DB, metrics Metrics) *RuleRepository {
	return &RuleRepository{repository{db: db, metrics: metrics}}
}

func (r *RuleRepository) Add(ctx context.Context, rule *model.Rule) (err error) {
	started := time.Now()
	defer func() { r.observe("rule_add", err, started) }()

	rec := newRuleRecord(rule)
	if err = r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert rule %s: %w", rule.ID, err)
	}
	return nil
}

func (r *RuleRepository) Get(ctx context.Context, id uuid.UUID) (rule *model.Rule, err error) {
	started := time.Now()
	defer func() { r.observe("rule_get", err, started) }()

	rec, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.model(), nil
}

func (r *RuleRepository) GetStatus(ctx context.Context, id uuid.UUID) (status model.RuleStatus, err error) {
	started := time.Now()
	defer func() { r.observe("rule_get_status", err, started) }()

	rec, err := r.get(ctx, id)
	if err != nil {
		return "", err
	}
	return model.RuleStatus(rec.Status), nil
}

// UpdateStatus writes to only while the row still holds from.
func (r *RuleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.RuleStatus) (ok bool, err error) {
	started := time.Now()
	defer func() { r.observe("rule_update_status", err, started) }()

	res := r.db.WithContext(ctx).
		Model(&ruleRecord{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if err = res.Error; err != nil {
		return false, fmt.Errorf("update status of rule %s: %w", id, err)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	if _, err = r.get(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (r *RuleRepository) GetRemainingWaitingTime(ctx context.Context, id uuid.UUID) (remaining time.Duration, err error) {
	started := time.Now()
	defer func() { r.observe("rule_get_remaining_waiting_time", err, started) }()

	rec, err := r.get(ctx, id)
	if err != nil {
		return 0, err
	}
	return time.Duration(rec.RemainingWaitingTime), nil
}

// SubtractRemainingWaitingTime lowers the remaining time by elapsed, floored at zero.
func (r *RuleRepository) SubtractRemainingWaitingTime(ctx context.Context, id uuid.UUID, elapsed time.Duration) (remaining time.Duration, err error) {
	started := time.Now()
	defer func() { r.observe("rule_subtract_remaining_waiting_time", err, started) }()

	if elapsed <= 0 {
		return 0, fmt.Errorf("elapsed must be positive, got %s", elapsed)
	}

	var left []int64
	err = r.db.WithContext(ctx).Raw(`
UPDATE watch_rules
SET remaining_waiting_time_ns = GREATEST(remaining_waiting_time_ns - ?, 0),
    updated_at = now()
WHERE id = ?
RETURNING remaining_waiting_time_ns`, int64(elapsed), id).Scan(&left).Error
	if err != nil {
		return 0, fmt.Errorf("subtract remaining waiting time of rule %s: %w", id, err)
	}
	if len(left) == 0 {
		err = model.ErrRuleNotFound
		return 0, err
	}
	return time.Duration(left[0]), nil
}

func (r *RuleRepository) UpdateCurrentWatch(ctx context.Context, id uuid.UUID, watchID *uuid.UUID) (err error) {
	started := time.Now()
	defer func() { r.observe("rule_update_current_watch", err, started) }()

	res := r.db.WithContext(ctx).
		Model(&ruleRecord{}).
		Where("id = ?", id).
		Update("current_watch_id", watchID)
	if err = res.Error; err != nil {
		return fmt.Errorf("update current watch of rule %s: %w", id, err)
	}
	if res.RowsAffected == 0 {
		err = model.ErrRuleNotFound
		return err
	}
	return nil
}

// ListWaiting returns the pending rules of kind ordered by creation time.
func (r *RuleRepository) ListWaiting(ctx context.Context, kind model.RuleKind) (rules []*model.Rule, err error) {
	started := time.Now()
	defer func() { r.observe("rule_list_waiting", err, started) }()

	var recs []ruleRecord
	err = r.db.WithContext(ctx).
		Where("kind = ? AND status = ?", string(kind), string(model.RulePending)).
		Order("created_at").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list waiting %s rules: %w", kind, err)
	}

	rules = make([]*model.Rule, 0, len(recs))
	for _, rec := range recs {
		rules = append(rules, rec.model())
	}
	return rules, nil
}

func (r *RuleRepository) get(ctx context.Context, id uuid.UUID) (*ruleRecord, error) {
	var rec ruleRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get rule %s: %w", id, err)
	}
	return &rec, nil
}
