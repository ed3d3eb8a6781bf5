package postgres

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
)

type ruleRecord struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind                 string     `gorm:"type:varchar(32);not null"`
	Subject              string     `gorm:"type:varchar(128);not null"`
	TargetAmount         int64      `gorm:"not null"`
	TargetConfirmation   int        `gorm:"not null"`
	OriginalWaitingTime  int64      `gorm:"column:original_waiting_time_ns;not null"`
	RemainingWaitingTime int64      `gorm:"column:remaining_waiting_time_ns;not null"`
	SuccessData          string     `gorm:"type:text;not null;default:''"`
	TimeoutData          string     `gorm:"type:text;not null;default:''"`
	CallbackID           *uuid.UUID `gorm:"type:uuid"`
	Status               string     `gorm:"type:varchar(32);not null;index"`
	CurrentWatchID       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (ruleRecord) TableName() string {
	return "watch_rules"
}

func newRuleRecord(rule *model.Rule) ruleRecord {
	return ruleRecord{
		ID:                   rule.ID,
		Kind:                 string(rule.Kind),
		Subject:              rule.Subject,
		TargetAmount:         int64(rule.TargetAmount),
		TargetConfirmation:   rule.TargetConfirmation,
		OriginalWaitingTime:  int64(rule.OriginalWaitingTime),
		RemainingWaitingTime: int64(rule.RemainingWaitingTime),
		SuccessData:          string(rule.SuccessData),
		TimeoutData:          string(rule.TimeoutData),
		CallbackID:           rule.CallbackID,
		Status:               string(rule.Status),
		CurrentWatchID:       rule.CurrentWatchID,
		CreatedAt:            rule.CreatedAt,
	}
}

func (r ruleRecord) model() *model.Rule {
	return &model.Rule{
		ID:                   r.ID,
		Kind:                 model.RuleKind(r.Kind),
		Subject:              r.Subject,
		TargetAmount:         btcutil.Amount(r.TargetAmount),
		TargetConfirmation:   r.TargetConfirmation,
		OriginalWaitingTime:  time.Duration(r.OriginalWaitingTime),
		RemainingWaitingTime: time.Duration(r.RemainingWaitingTime),
		SuccessData:          rawMessage(r.SuccessData),
		TimeoutData:          rawMessage(r.TimeoutData),
		CallbackID:           r.CallbackID,
		Status:               model.RuleStatus(r.Status),
		CurrentWatchID:       r.CurrentWatchID,
		CreatedAt:            r.CreatedAt,
	}
}

type callbackRecord struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegisteredSourceAddress string    `gorm:"type:varchar(255);not null"`
	RegisteredTime          time.Time `gorm:"not null"`
	Completed               bool      `gorm:"not null;default:false"`
	URL                     string    `gorm:"type:text;not null"`
}

func (callbackRecord) TableName() string {
	return "watch_callbacks"
}

func (r callbackRecord) model() *model.Callback {
	return &model.Callback{
		ID:                      r.ID,
		RegisteredSourceAddress: r.RegisteredSourceAddress,
		RegisteredTime:          r.RegisteredTime,
		Completed:               r.Completed,
		URL:                     r.URL,
	}
}

type callbackHistoryRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	CallbackID uuid.UUID `gorm:"type:uuid;not null;index"`
	RuleID     uuid.UUID `gorm:"type:uuid;not null"`
	Status     string    `gorm:"type:varchar(32);not null"`
	Data       string    `gorm:"type:text;not null;default:''"`
	InvokedAt  time.Time `gorm:"not null"`
}

func (callbackHistoryRecord) TableName() string {
	return "watch_callback_history"
}

func (r callbackHistoryRecord) model() model.CallbackHistory {
	return model.CallbackHistory{
		CallbackID: r.CallbackID,
		Result: model.CallbackResult{
			RuleID: r.RuleID,
			Status: r.Status,
			Data:   rawMessage(r.Data),
		},
		InvokedAt: r.InvokedAt,
	}
}

type transactionWatchRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RuleID       uuid.UUID `gorm:"type:uuid;not null;index"`
	TxID         string    `gorm:"column:tx_id;type:char(64);not null"`
	StartBlock   string    `gorm:"type:char(64);not null"`
	StartTime    time.Time `gorm:"not null"`
	Status       string    `gorm:"type:varchar(32);not null"`
	Confirmation int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (transactionWatchRecord) TableName() string {
	return "watch_transaction_watches"
}

func newTransactionWatchRecord(w model.TransactionWatch) transactionWatchRecord {
	return transactionWatchRecord{
		ID:           w.ID,
		RuleID:       w.RuleID,
		TxID:         w.TxID.String(),
		StartBlock:   w.StartBlock.String(),
		StartTime:    w.StartTime,
		Status:       string(w.Status),
		Confirmation: w.Confirmation,
	}
}

func (r transactionWatchRecord) model() (model.TransactionWatch, error) {
	watch, err := watchColumns(r.ID, r.RuleID, r.StartBlock, r.StartTime, r.Status, r.Confirmation)
	if err != nil {
		return model.TransactionWatch{}, err
	}
	txID, err := chainhash.NewHashFromStr(r.TxID)
	if err != nil {
		return model.TransactionWatch{}, fmt.Errorf("watch %s tx id: %w", r.ID, err)
	}
	return model.TransactionWatch{Watch: watch, TxID: *txID}, nil
}

type balanceWatchRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RuleID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Address       string    `gorm:"type:varchar(128);not null;index"`
	TxID          string    `gorm:"column:tx_id;type:char(64);not null"`
	BalanceChange int64     `gorm:"not null"`
	StartBlock    string    `gorm:"type:char(64);not null"`
	StartTime     time.Time `gorm:"not null"`
	Status        string    `gorm:"type:varchar(32);not null"`
	Confirmation  int       `gorm:"not null;default:0"`
	CreatedAt     time.Time
}

func (balanceWatchRecord) TableName() string {
	return "watch_balance_watches"
}

func newBalanceWatchRecord(w model.BalanceWatch) balanceWatchRecord {
	return balanceWatchRecord{
		ID:            w.ID,
		RuleID:        w.RuleID,
		Address:       w.Address,
		TxID:          w.TxID.String(),
		BalanceChange: int64(w.BalanceChange),
		StartBlock:    w.StartBlock.String(),
		StartTime:     w.StartTime,
		Status:        string(w.Status),
		Confirmation:  w.Confirmation,
	}
}

func (r balanceWatchRecord) model() (model.BalanceWatch, error) {
	watch, err := watchColumns(r.ID, r.RuleID, r.StartBlock, r.StartTime, r.Status, r.Confirmation)
	if err != nil {
		return model.BalanceWatch{}, err
	}
	txID, err := chainhash.NewHashFromStr(r.TxID)
	if err != nil {
		return model.BalanceWatch{}, fmt.Errorf("watch %s tx id: %w", r.ID, err)
	}
	return model.BalanceWatch{
		Watch:         watch,
		Address:       r.Address,
		TxID:          *txID,
		BalanceChange: btcutil.Amount(r.BalanceChange),
	}, nil
}

func balanceWatches(records []balanceWatchRecord) ([]model.BalanceWatch, error) {
	out := make([]model.BalanceWatch, 0, len(records))
	for _, rec := range records {
		w, err := rec.model()
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func watchColumns(id, ruleID uuid.UUID, startBlock string, startTime time.Time, status string, confirmation int) (model.Watch, error) {
	block, err := chainhash.NewHashFromStr(startBlock)
	if err != nil {
		return model.Watch{}, fmt.Errorf("watch %s start block: %w", id, err)
	}
	return model.Watch{
		ID:           id,
		RuleID:       ruleID,
		StartBlock:   *block,
		StartTime:    startTime,
		Status:       model.WatchStatus(status),
		Confirmation: confirmation,
	}, nil
}

func rawMessage(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}
