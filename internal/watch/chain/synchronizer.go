package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"go.uber.org/zap"
)

// Synchronizer maintains the local best chain and emits BlockAdded and BlockRemoving
// events to its listeners. It implements BlockHandler.
type Synchronizer struct {
	logger      *zap.Logger
	store       BlockStore
	metrics     SynchronizerMetrics
	startHeight uint64
	listeners   []Listener
	done        chan error
}

// NewSynchronizer creates a Synchronizer whose local chain starts at startHeight.
func NewSynchronizer(
	store BlockStore,
	metrics SynchronizerMetrics,
	startHeight uint64,
	logger *zap.Logger,
) (*Synchronizer, error) {
	if store == nil {
		return nil, errors.New("block store is required")
	}
	if metrics == nil {
		return nil, errors.New("synchronizer metrics is required")
	}
	return &Synchronizer{
		logger:      logger.Named("synchronizer"),
		store:       store,
		metrics:     metrics,
		startHeight: startHeight,
		done:        make(chan error, 1),
	}, nil
}

// AddListener registers a listener. Listeners are notified in registration order and
// must be added before the pump starts.
func (s *Synchronizer) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Done receives the error reported by the pump when it stops; nil on a clean stop.
func (s *Synchronizer) Done() <-chan error {
	return s.done
}

// GetBlockHint returns the height following the local tip, or the start height when
// nothing is known yet.
func (s *Synchronizer) GetBlockHint(ctx context.Context) (Hint, error) {
	_, height, err := s.store.GetLast(ctx)
	if errors.Is(err, model.ErrBlockNotFound) {
		return FetchHint(s.startHeight), nil
	}
	if err != nil {
		return Hint{}, fmt.Errorf("get last block: %w", err)
	}
	return FetchHint(height + 1), nil
}

// ProcessBlock reconciles block, claimed to be at height, with the local chain and
// returns the next hint. A nil block means the node has nothing at height yet.
func (s *Synchronizer) ProcessBlock(ctx context.Context, block *model.Block, height uint64) (hint Hint, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveProcess(err, started)
	}()

	if block == nil {
		return WaitHint(), nil
	}

	last, lastHeight, err := s.store.GetLast(ctx)
	if errors.Is(err, model.ErrBlockNotFound) {
		if height != s.startHeight {
			return Hint{}, fmt.Errorf("block %s at height %d: %w", block.Hash, height, model.ErrInvalidGenesis)
		}
		return s.accept(ctx, block, height)
	}
	if err != nil {
		return Hint{}, fmt.Errorf("get last block: %w", err)
	}

	if height != lastHeight+1 {
		return FetchHint(lastHeight + 1), nil
	}

	if block.PrevHash != last.Hash {
		s.logger.Info("fork detected, rolling back tip",
			zap.Uint64("height", lastHeight),
			zap.Stringer("tip", last.Hash),
			zap.Stringer("incoming_prev", block.PrevHash),
		)
		for _, l := range s.listeners {
			if err := l.BlockRemoving(ctx, last, lastHeight); err != nil {
				return Hint{}, fmt.Errorf("notify block removing %s: %w", last.Hash, err)
			}
		}
		if err := s.store.RemoveLast(ctx); err != nil {
			return Hint{}, fmt.Errorf("remove block %s: %w", last.Hash, err)
		}
		s.metrics.ObserveBlockRemoved(lastHeight)
		return FetchHint(lastHeight), nil
	}

	return s.accept(ctx, block, height)
}

func (s *Synchronizer) accept(ctx context.Context, block *model.Block, height uint64) (Hint, error) {
	if err := s.store.Add(ctx, block, height); err != nil {
		return Hint{}, fmt.Errorf("add block %s: %w", block.Hash, err)
	}
	for _, l := range s.listeners {
		if err := l.BlockAdded(ctx, block, height); err != nil {
			return Hint{}, fmt.Errorf("notify block added %s: %w", block.Hash, err)
		}
	}
	s.metrics.ObserveBlockAdded(height)
	s.logger.Debug("block added", zap.Uint64("height", height), zap.Stringer("hash", block.Hash))

	return FetchHint(height + 1), nil
}

// Stop is called once by the Retriever when the pump ends.
func (s *Synchronizer) Stop(err error) {
	select {
	case s.done <- err:
	default:
		s.logger.Warn("dropping pump stop report", zap.Error(err))
	}
}
