package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BalanceWatchRepository implements rule.BalanceWatchRepository.
type BalanceWatchRepository struct {
	repository
}

func NewBalanceWatchRepository(db *gorm.DB, metrics Metrics) *BalanceWatchRepository {
	return &BalanceWatchRepository{repository{db: db, metrics: metrics}}
}

func (r *BalanceWatchRepository) Add(ctx context.Context, watches []model.BalanceWatch) (err error) {
	started := time.Now()
	defer func() { r.observe("balance_watch_add", err, started) }()

	if len(watches) == 0 {
		return nil
	}
	recs := make([]balanceWatchRecord, 0, len(watches))
	for _, w := range watches {
		if w.Status == "" {
			w.Status = model.WatchUncompleted
		}
		recs = append(recs, newBalanceWatchRecord(w))
	}
	if err = r.db.WithContext(ctx).Create(&recs).Error; err != nil {
		return fmt.Errorf("insert balance watches: %w", err)
	}
	return nil
}

// List returns watches with status, or every watch when status is empty.
func (r *BalanceWatchRepository) List(ctx context.Context, status model.WatchStatus) (watches []model.BalanceWatch, err error) {
	started := time.Now()
	defer func() { r.observe("balance_watch_list", err, started) }()

	query := r.db.WithContext(ctx).Order("created_at, id")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	var recs []balanceWatchRecord
	if err = query.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list balance watches: %w", err)
	}
	return balanceWatches(recs)
}

func (r *BalanceWatchRepository) UpdateStatus(ctx context.Context, ids []uuid.UUID, status model.WatchStatus) (err error) {
	started := time.Now()
	defer func() { r.observe("balance_watch_update_status", err, started) }()

	if len(ids) == 0 {
		return nil
	}
	err = r.db.WithContext(ctx).
		Model(&balanceWatchRecord{}).
		Where("id IN ?", ids).
		Update("status", string(status)).Error
	if err != nil {
		return fmt.Errorf("update balance watches: %w", err)
	}
	return nil
}

func (r *BalanceWatchRepository) ListUncompleted(ctx context.Context, address string) (watches []model.BalanceWatch, err error) {
	started := time.Now()
	defer func() { r.observe("balance_watch_list_uncompleted", err, started) }()

	var recs []balanceWatchRecord
	err = r.db.WithContext(ctx).
		Where("address = ? AND status = ?", address, string(model.WatchUncompleted)).
		Order("created_at, id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list uncompleted watches of %s: %w", address, err)
	}
	return balanceWatches(recs)
}

func (r *BalanceWatchRepository) SetConfirmationCount(ctx context.Context, counts map[uuid.UUID]int) (err error) {
	started := time.Now()
	defer func() { r.observe("balance_watch_set_confirmation_count", err, started) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, count := range counts {
			res := tx.Model(&balanceWatchRecord{}).Where("id = ?", id).Update("confirmation", count)
			if res.Error != nil {
				return fmt.Errorf("set confirmation of watch %s: %w", id, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", model.ErrWatchNotFound, id)
			}
		}
		return nil
	})
}

func (r *BalanceWatchRepository) TransitionToRejected(ctx context.Context, address string, block chainhash.Hash) (watches []model.BalanceWatch, err error) {
	started := time.Now()
	defer func() { r.observe("balance_watch_transition_to_rejected", err, started) }()

	return r.transition(ctx, model.WatchRejected, "address = ? AND start_block = ?", address, block.String())
}

func (r *BalanceWatchRepository) TransitionToSucceeded(ctx context.Context, ids []uuid.UUID) (watches []model.BalanceWatch, err error) {
	started := time.Now()
	defer func() { r.observe("balance_watch_transition_to_succeeded", err, started) }()

	if len(ids) == 0 {
		return nil, nil
	}
	return r.transition(ctx, model.WatchSucceeded, "id IN ?", ids)
}

func (r *BalanceWatchRepository) TransitionToTimedOut(ctx context.Context, ruleID uuid.UUID) (watches []model.BalanceWatch, err error) {
	started := time.Now()
	defer func() { r.observe("balance_watch_transition_to_timed_out", err, started) }()

	return r.transition(ctx, model.WatchTimedOut, "rule_id = ?", ruleID)
}

// transition moves the uncompleted watches matching the condition to status and
// returns them as updated.
func (r *BalanceWatchRepository) transition(ctx context.Context, status model.WatchStatus, condition string, args ...any) ([]model.BalanceWatch, error) {
	var recs []balanceWatchRecord
	err := r.db.WithContext(ctx).
		Model(&recs).
		Clauses(clause.Returning{}).
		Where(condition, args...).
		Where("status = ?", string(model.WatchUncompleted)).
		Update("status", string(status)).Error
	if err != nil {
		return nil, fmt.Errorf("transition balance watches to %s: %w", status, err)
	}
	return balanceWatches(recs)
}
