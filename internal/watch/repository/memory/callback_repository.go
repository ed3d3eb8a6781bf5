package memory

import (
	"context"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
)

// CallbackRepository keeps callbacks and their history in memory.
type CallbackRepository struct {
	mu        sync.Mutex
	now       func() time.Time
	callbacks map[uuid.UUID]model.Callback
	history   map[uuid.UUID][]model.CallbackHistory
}

func NewCallbackRepository() *CallbackRepository {
	return &CallbackRepository{
		now:       time.Now,
		callbacks: make(map[uuid.UUID]model.Callback),
		history:   make(map[uuid.UUID][]model.CallbackHistory),
	}
}

func (r *CallbackRepository) Add(_ context.Context, sourceAddress, url string) (*model.Callback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cb := model.Callback{
		ID:                      uuid.New(),
		RegisteredSourceAddress: sourceAddress,
		RegisteredTime:          r.now().UTC(),
		URL:                     url,
	}
	r.callbacks[cb.ID] = cb
	return &cb, nil
}

func (r *CallbackRepository) Get(_ context.Context, id uuid.UUID) (*model.Callback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cb, ok := r.callbacks[id]
	if !ok {
		return nil, model.ErrCallbackNotFound
	}
	return &cb, nil
}

func (r *CallbackRepository) AddHistory(_ context.Context, id uuid.UUID, result model.CallbackResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.callbacks[id]; !ok {
		return model.ErrCallbackNotFound
	}
	r.history[id] = append(r.history[id], model.CallbackHistory{CallbackID: id, Result: result, InvokedAt: r.now().UTC()})
	return nil
}

// SetCompleted flips Completed once; later calls are no-ops.
func (r *CallbackRepository) SetCompleted(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cb, ok := r.callbacks[id]
	if !ok {
		return model.ErrCallbackNotFound
	}
	cb.Completed = true
	r.callbacks[id] = cb
	return nil
}

// History returns the recorded results of a callback in append order.
func (r *CallbackRepository) History(_ context.Context, id uuid.UUID) ([]model.CallbackHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]model.CallbackHistory(nil), r.history[id]...), nil
}
