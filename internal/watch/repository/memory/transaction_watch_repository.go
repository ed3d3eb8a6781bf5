package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
)

// TransactionWatchRepository keeps transaction watches in memory.
type TransactionWatchRepository struct {
	mu      sync.Mutex
	seq     int
	order   map[uuid.UUID]int
	watches map[uuid.UUID]model.TransactionWatch
}

func NewTransactionWatchRepository() *TransactionWatchRepository {
	return &TransactionWatchRepository{
		order:   make(map[uuid.UUID]int),
		watches: make(map[uuid.UUID]model.TransactionWatch),
	}
}

func (r *TransactionWatchRepository) Add(_ context.Context, watch model.TransactionWatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.watches[watch.ID]; ok {
		return fmt.Errorf("watch %s already exists", watch.ID)
	}
	if watch.Status == "" {
		watch.Status = model.WatchUncompleted
	}
	r.seq++
	r.order[watch.ID] = r.seq
	r.watches[watch.ID] = watch
	return nil
}

func (r *TransactionWatchRepository) Get(_ context.Context, id uuid.UUID) (*model.TransactionWatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.watches[id]
	if !ok {
		return nil, model.ErrWatchNotFound
	}
	return &w, nil
}

func (r *TransactionWatchRepository) List(_ context.Context, status model.WatchStatus) ([]model.TransactionWatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.TransactionWatch
	for _, w := range r.watches {
		if status == "" || w.Status == status {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] < r.order[out[j].ID] })
	return out, nil
}

func (r *TransactionWatchRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.WatchStatus, confirmation int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.watches[id]
	if !ok {
		return model.ErrWatchNotFound
	}
	w.Status = status
	w.Confirmation = confirmation
	r.watches[id] = w
	return nil
}
