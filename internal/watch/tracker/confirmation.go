package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Confirmation is the confirmation depth of a watch at the current event.
type Confirmation[W Item] struct {
	Watch    W
	Count    int
	Previous int
}

// Changed reports whether the depth differs from the last reported one.
func (c Confirmation[W]) Changed() bool {
	return c.Count != c.Previous
}

// Creator builds new watches from an added block.
type Creator[W Item] interface {
	CreateWatches(ctx context.Context, block *model.Block, height uint64) ([]W, error)
}

// Resolver turns confirmation depths into resolved watches.
type Resolver[W Item] interface {
	Resolve(ctx context.Context, confirmations []Confirmation[W], ctype ConfirmationType) ([]W, error)
}

type trackedWatch[W Item] struct {
	watch        W
	confirmation int
}

// ConfirmationWatcher tracks outstanding watches and recomputes their confirmation
// depth on every chain event.
type ConfirmationWatcher[W Item] struct {
	logger   *zap.Logger
	index    BlockIndex
	creator  Creator[W]
	resolver Resolver[W]
	handler  Handler[W]
	watcher  *Watcher[W]

	mu      sync.Mutex
	watches map[uuid.UUID]*trackedWatch[W]
}

// NewConfirmationWatcher creates a ConfirmationWatcher. handler persists the lifecycle
// changes; the in-memory registry follows it.
func NewConfirmationWatcher[W Item](
	index BlockIndex,
	creator Creator[W],
	resolver Resolver[W],
	handler Handler[W],
	logger *zap.Logger,
) *ConfirmationWatcher[W] {
	cw := &ConfirmationWatcher[W]{
		logger:   logger,
		index:    index,
		creator:  creator,
		resolver: resolver,
		handler:  handler,
		watches:  make(map[uuid.UUID]*trackedWatch[W]),
	}
	cw.watcher = NewWatcher[W](cw, cw, logger)
	return cw
}

// BlockAdded implements chain.Listener.
func (cw *ConfirmationWatcher[W]) BlockAdded(ctx context.Context, block *model.Block, height uint64) error {
	return cw.watcher.Execute(ctx, block, height, BlockAdded)
}

// BlockRemoving implements chain.Listener.
func (cw *ConfirmationWatcher[W]) BlockRemoving(ctx context.Context, block *model.Block, height uint64) error {
	return cw.watcher.Execute(ctx, block, height, BlockRemoving)
}

// Register resumes tracking of persisted watches. Watches whose origin block is not on
// the local chain are returned as stale and not tracked.
func (cw *ConfirmationWatcher[W]) Register(ctx context.Context, watches []W) ([]W, error) {
	var stale []W
	for _, w := range watches {
		_, _, err := cw.index.Get(ctx, w.Origin())
		if errors.Is(err, model.ErrBlockNotFound) {
			stale = append(stale, w)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lookup origin of watch %s: %w", w.Key(), err)
		}
		cw.track(w)
	}
	return stale, nil
}

// ForceResolve stops tracking every watch of the rule and returns them with their last
// known confirmation depth.
func (cw *ConfirmationWatcher[W]) ForceResolve(ruleID uuid.UUID) []Confirmation[W] {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	var resolved []Confirmation[W]
	for id, t := range cw.watches {
		if t.watch.Rule() != ruleID {
			continue
		}
		resolved = append(resolved, Confirmation[W]{Watch: t.watch, Count: t.confirmation, Previous: t.confirmation})
		delete(cw.watches, id)
	}
	return resolved
}

// Tracked returns the number of tracked watches.
func (cw *ConfirmationWatcher[W]) Tracked() int {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return len(cw.watches)
}

// Confirmation returns the last reported depth of a tracked watch.
func (cw *ConfirmationWatcher[W]) Confirmation(id uuid.UUID) (int, bool) {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	t, ok := cw.watches[id]
	if !ok {
		return 0, false
	}
	return t.confirmation, true
}

// GetConfirmation computes the depth of w with the chain tip at currentHeight.
func (cw *ConfirmationWatcher[W]) GetConfirmation(ctx context.Context, w W, currentHeight int64) (int, error) {
	_, start, err := cw.index.Get(ctx, w.Origin())
	if err != nil {
		return 0, fmt.Errorf("lookup origin %s: %w", w.Origin(), err)
	}
	startHeight := int64(start)
	if currentHeight < startHeight-1 {
		return 0, fmt.Errorf("watch %s origin %d current %d: %w", w.Key(), startHeight, currentHeight, model.ErrConfirmationUnderflow)
	}
	return int(currentHeight - startHeight + 1), nil
}

// CreateWatches implements Matcher.
func (cw *ConfirmationWatcher[W]) CreateWatches(ctx context.Context, block *model.Block, height uint64) ([]W, error) {
	return cw.creator.CreateWatches(ctx, block, height)
}

// GetWatches implements Matcher. Every tracked watch is relevant since each block
// shifts every depth.
func (cw *ConfirmationWatcher[W]) GetWatches(context.Context, *model.Block, uint64) ([]W, error) {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	watches := make([]W, 0, len(cw.watches))
	for _, t := range cw.watches {
		watches = append(watches, t.watch)
	}
	return watches, nil
}

// ExecuteWatches implements Matcher. A removing event is evaluated against the height
// below the retracted block.
func (cw *ConfirmationWatcher[W]) ExecuteWatches(
	ctx context.Context,
	watches []W,
	_ *model.Block,
	height uint64,
	event EventType,
) ([]W, error) {
	ctype, err := ConfirmationTypeFor(event)
	if err != nil {
		return nil, err
	}

	current := int64(height)
	if event == BlockRemoving {
		current--
	}

	confirmations := make([]Confirmation[W], 0, len(watches))
	for _, w := range watches {
		count, err := cw.GetConfirmation(ctx, w, current)
		if errors.Is(err, model.ErrBlockNotFound) {
			cw.logger.Warn("watch origin left the chain", zap.Stringer("watch", w.Key()), zap.Stringer("origin", w.Origin()))
			continue
		}
		if err != nil {
			return nil, err
		}
		previous, ok := cw.Confirmation(w.Key())
		if !ok {
			continue
		}
		confirmations = append(confirmations, Confirmation[W]{Watch: w, Count: count, Previous: previous})
	}

	resolved, err := cw.resolver.Resolve(ctx, confirmations, ctype)
	if err != nil {
		return nil, fmt.Errorf("resolve confirmations: %w", err)
	}

	cw.mu.Lock()
	for _, c := range confirmations {
		if t, ok := cw.watches[c.Watch.Key()]; ok {
			t.confirmation = c.Count
		}
	}
	cw.mu.Unlock()

	return resolved, nil
}

// AddWatches implements Handler.
func (cw *ConfirmationWatcher[W]) AddWatches(ctx context.Context, watches []W) error {
	if err := cw.handler.AddWatches(ctx, watches); err != nil {
		return err
	}
	for _, w := range watches {
		cw.track(w)
	}
	return nil
}

// RemoveCompletedWatches implements Handler.
func (cw *ConfirmationWatcher[W]) RemoveCompletedWatches(ctx context.Context, watches []W) error {
	if err := cw.handler.RemoveCompletedWatches(ctx, watches); err != nil {
		return err
	}
	cw.mu.Lock()
	defer cw.mu.Unlock()
	for _, w := range watches {
		delete(cw.watches, w.Key())
	}
	return nil
}

// RemoveUncompletedWatches implements Handler.
func (cw *ConfirmationWatcher[W]) RemoveUncompletedWatches(ctx context.Context, startBlock chainhash.Hash) error {
	if err := cw.handler.RemoveUncompletedWatches(ctx, startBlock); err != nil {
		return err
	}
	cw.mu.Lock()
	defer cw.mu.Unlock()
	for id, t := range cw.watches {
		if t.watch.Origin() == startBlock {
			delete(cw.watches, id)
		}
	}
	return nil
}

func (cw *ConfirmationWatcher[W]) track(w W) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if _, ok := cw.watches[w.Key()]; ok {
		return
	}
	cw.watches[w.Key()] = &trackedWatch[W]{watch: w}
}
