package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"go.uber.org/zap"
)

// Matcher supplies the watch-specific steps of block processing.
type Matcher[W Item] interface {
	// CreateWatches inspects block contents and returns new watches.
	CreateWatches(ctx context.Context, block *model.Block, height uint64) ([]W, error)
	// GetWatches returns the tracked watches relevant to the block.
	GetWatches(ctx context.Context, block *model.Block, height uint64) ([]W, error)
	// ExecuteWatches resolves watches against the event and returns those fully resolved.
	ExecuteWatches(ctx context.Context, watches []W, block *model.Block, height uint64, event EventType) ([]W, error)
}

// Handler persists watch lifecycle changes.
type Handler[W Item] interface {
	AddWatches(ctx context.Context, watches []W) error
	RemoveCompletedWatches(ctx context.Context, watches []W) error
	// RemoveUncompletedWatches drops every watch created by startBlock.
	RemoveUncompletedWatches(ctx context.Context, startBlock chainhash.Hash) error
}

// Watcher drives a Matcher for each chain event.
type Watcher[W Item] struct {
	logger  *zap.Logger
	matcher Matcher[W]
	handler Handler[W]
}

// NewWatcher creates a Watcher.
func NewWatcher[W Item](matcher Matcher[W], handler Handler[W], logger *zap.Logger) *Watcher[W] {
	return &Watcher[W]{
		logger:  logger,
		matcher: matcher,
		handler: handler,
	}
}

// Execute processes one chain event. Watches are only created from added blocks.
func (w *Watcher[W]) Execute(ctx context.Context, block *model.Block, height uint64, event EventType) error {
	if block == nil {
		return errors.New("block is required")
	}

	if event == BlockAdded {
		created, err := w.matcher.CreateWatches(ctx, block, height)
		if err != nil {
			return fmt.Errorf("create watches: %w", err)
		}
		if len(created) > 0 {
			if err := w.handler.AddWatches(ctx, created); err != nil {
				return fmt.Errorf("add watches: %w", err)
			}
			w.logger.Debug("watches created", zap.Int("count", len(created)), zap.Uint64("height", height))
		}
	}

	watches, err := w.matcher.GetWatches(ctx, block, height)
	if err != nil {
		return fmt.Errorf("get watches: %w", err)
	}

	var resolved []W
	if len(watches) > 0 {
		resolved, err = w.matcher.ExecuteWatches(ctx, watches, block, height, event)
		if err != nil {
			return fmt.Errorf("execute watches: %w", err)
		}
		if len(resolved) > 0 {
			if err := w.handler.RemoveCompletedWatches(ctx, resolved); err != nil {
				return fmt.Errorf("remove completed watches: %w", err)
			}
		}
	}

	if event == BlockRemoving {
		if err := w.handler.RemoveUncompletedWatches(ctx, block.Hash); err != nil {
			return fmt.Errorf("remove watches of block %s: %w", block.Hash, err)
		}
	}

	return nil
}

// BlockAdded implements chain.Listener.
func (w *Watcher[W]) BlockAdded(ctx context.Context, block *model.Block, height uint64) error {
	return w.Execute(ctx, block, height, BlockAdded)
}

// BlockRemoving implements chain.Listener.
func (w *Watcher[W]) BlockRemoving(ctx context.Context, block *model.Block, height uint64) error {
	return w.Execute(ctx, block, height, BlockRemoving)
}
