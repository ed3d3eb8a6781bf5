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

// TransactionWatchRepository implements rule.TransactionWatchRepository.
type TransactionWatchRepository struct {
	repository
}

func NewTransactionWatchRepository(db *gorm.DB, metrics Metrics) *TransactionWatchRepository {
	return &TransactionWatchRepository{repository{db: db, metrics: metrics}}
}

func (r *TransactionWatchRepository) Add(ctx context.Context, watch model.TransactionWatch) (err error) {
	started := time.Now()
	defer func() { r.observe("transaction_watch_add", err, started) }()

	if watch.Status == "" {
		watch.Status = model.WatchUncompleted
	}
	rec := newTransactionWatchRecord(watch)
	if err = r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert transaction watch %s: %w", watch.ID, err)
	}
	return nil
}

func (r *TransactionWatchRepository) Get(ctx context.Context, id uuid.UUID) (watch *model.TransactionWatch, err error) {
	started := time.Now()
	defer func() { r.observe("transaction_watch_get", err, started) }()

	var rec transactionWatchRecord
	err = r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = model.ErrWatchNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction watch %s: %w", id, err)
	}
	w, err := rec.model()
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// List returns watches with status, or every watch when status is empty.
func (r *TransactionWatchRepository) List(ctx context.Context, status model.WatchStatus) (watches []model.TransactionWatch, err error) {
	started := time.Now()
	defer func() { r.observe("transaction_watch_list", err, started) }()

	query := r.db.WithContext(ctx).Order("created_at, id")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	var recs []transactionWatchRecord
	if err = query.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list transaction watches: %w", err)
	}

	watches = make([]model.TransactionWatch, 0, len(recs))
	for _, rec := range recs {
		w, err := rec.model()
		if err != nil {
			return nil, err
		}
		watches = append(watches, w)
	}
	return watches, nil
}

func (r *TransactionWatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.WatchStatus, confirmation int) (err error) {
	started := time.Now()
	defer func() { r.observe("transaction_watch_update_status", err, started) }()

	res := r.db.WithContext(ctx).
		Model(&transactionWatchRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "confirmation": confirmation})
	if err = res.Error; err != nil {
		return fmt.Errorf("update transaction watch %s: %w", id, err)
	}
	if res.RowsAffected == 0 {
		err = model.ErrWatchNotFound
		return err
	}
	return nil
}
