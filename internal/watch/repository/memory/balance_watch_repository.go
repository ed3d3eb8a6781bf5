package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
)

// BalanceWatchRepository keeps balance watches in memory.
type BalanceWatchRepository struct {
	mu      sync.Mutex
	seq     int
	order   map[uuid.UUID]int
	watches map[uuid.UUID]model.BalanceWatch
}

func NewBalanceWatchRepository() *BalanceWatchRepository {
	return &BalanceWatchRepository{
		order:   make(map[uuid.UUID]int),
		watches: make(map[uuid.UUID]model.BalanceWatch),
	}
}

func (r *BalanceWatchRepository) Add(_ context.Context, watches []model.BalanceWatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range watches {
		if _, ok := r.watches[w.ID]; ok {
			return fmt.Errorf("watch %s already exists", w.ID)
		}
	}
	for _, w := range watches {
		if w.Status == "" {
			w.Status = model.WatchUncompleted
		}
		r.seq++
		r.order[w.ID] = r.seq
		r.watches[w.ID] = w
	}
	return nil
}

func (r *BalanceWatchRepository) List(_ context.Context, status model.WatchStatus) ([]model.BalanceWatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.filter(func(w model.BalanceWatch) bool { return status == "" || w.Status == status }), nil
}

func (r *BalanceWatchRepository) UpdateStatus(_ context.Context, ids []uuid.UUID, status model.WatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		w, ok := r.watches[id]
		if !ok {
			return fmt.Errorf("%w: %s", model.ErrWatchNotFound, id)
		}
		w.Status = status
		r.watches[id] = w
	}
	return nil
}

func (r *BalanceWatchRepository) ListUncompleted(_ context.Context, address string) ([]model.BalanceWatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.filter(func(w model.BalanceWatch) bool {
		return w.Address == address && w.Status == model.WatchUncompleted
	}), nil
}

func (r *BalanceWatchRepository) SetConfirmationCount(_ context.Context, counts map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, count := range counts {
		w, ok := r.watches[id]
		if !ok {
			return fmt.Errorf("%w: %s", model.ErrWatchNotFound, id)
		}
		w.Confirmation = count
		r.watches[id] = w
	}
	return nil
}

func (r *BalanceWatchRepository) TransitionToRejected(_ context.Context, address string, block chainhash.Hash) ([]model.BalanceWatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.transition(model.WatchRejected, func(w model.BalanceWatch) bool {
		return w.Address == address && w.StartBlock == block
	}), nil
}

func (r *BalanceWatchRepository) TransitionToSucceeded(_ context.Context, ids []uuid.UUID) ([]model.BalanceWatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return r.transition(model.WatchSucceeded, func(w model.BalanceWatch) bool {
		_, ok := set[w.ID]
		return ok
	}), nil
}

func (r *BalanceWatchRepository) TransitionToTimedOut(_ context.Context, ruleID uuid.UUID) ([]model.BalanceWatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.transition(model.WatchTimedOut, func(w model.BalanceWatch) bool {
		return w.RuleID == ruleID
	}), nil
}

// transition moves uncompleted watches matching match to status.
func (r *BalanceWatchRepository) transition(status model.WatchStatus, match func(model.BalanceWatch) bool) []model.BalanceWatch {
	moved := r.filter(func(w model.BalanceWatch) bool {
		return w.Status == model.WatchUncompleted && match(w)
	})
	for i := range moved {
		moved[i].Status = status
		r.watches[moved[i].ID] = moved[i]
	}
	return moved
}

func (r *BalanceWatchRepository) filter(match func(model.BalanceWatch) bool) []model.BalanceWatch {
	var out []model.BalanceWatch
	for _, w := range r.watches {
		if match(w) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] < r.order[out[j].ID] })
	return out
}
