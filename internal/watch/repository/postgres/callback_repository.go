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

// CallbackRepository implements rule.CallbackRepository.
type CallbackRepository struct {
	repository
}

func NewCallbackRepository(db *gorm.DB, metrics Metrics) *CallbackRepository {
	return &CallbackRepository{repository{db: db, metrics: metrics}}
}

func (r *CallbackRepository) Add(ctx context.Context, sourceAddress, url string) (cb *model.Callback, err error) {
	started := time.Now()
	defer func() { r.observe("callback_add", err, started) }()

	rec := callbackRecord{
		ID:                      uuid.New(),
		RegisteredSourceAddress: sourceAddress,
		RegisteredTime:          time.Now().UTC(),
		URL:                     url,
	}
	if err = r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("insert callback: %w", err)
	}
	return rec.model(), nil
}

func (r *CallbackRepository) Get(ctx context.Context, id uuid.UUID) (cb *model.Callback, err error) {
	started := time.Now()
	defer func() { r.observe("callback_get", err, started) }()

	var rec callbackRecord
	err = r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = model.ErrCallbackNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("get callback %s: %w", id, err)
	}
	return rec.model(), nil
}

// AddHistory appends result to the callback's history.
func (r *CallbackRepository) AddHistory(ctx context.Context, id uuid.UUID, result model.CallbackResult) (err error) {
	started := time.Now()
	defer func() { r.observe("callback_add_history", err, started) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&callbackRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("lookup callback %s: %w", id, err)
		}
		if count == 0 {
			return model.ErrCallbackNotFound
		}
		rec := callbackHistoryRecord{
			CallbackID: id,
			RuleID:     result.RuleID,
			Status:     result.Status,
			Data:       string(result.Data),
			InvokedAt:  time.Now().UTC(),
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("insert callback history: %w", err)
		}
		return nil
	})
}

func (r *CallbackRepository) SetCompleted(ctx context.Context, id uuid.UUID) (err error) {
	started := time.Now()
	defer func() { r.observe("callback_set_completed", err, started) }()

	res := r.db.WithContext(ctx).Model(&callbackRecord{}).Where("id = ?", id).Update("completed", true)
	if err = res.Error; err != nil {
		return fmt.Errorf("complete callback %s: %w", id, err)
	}
	if res.RowsAffected == 0 {
		err = model.ErrCallbackNotFound
		return err
	}
	return nil
}

// History returns the recorded results of a callback in append order.
func (r *CallbackRepository) History(ctx context.Context, id uuid.UUID) (history []model.CallbackHistory, err error) {
	started := time.Now()
	defer func() { r.observe("callback_history", err, started) }()

	var recs []callbackHistoryRecord
	if err = r.db.WithContext(ctx).Where("callback_id = ?", id).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list history of callback %s: %w", id, err)
	}
	history = make([]model.CallbackHistory, 0, len(recs))
	for _, rec := range recs {
		history = append(history, rec.model())
	}
	return history, nil
}
