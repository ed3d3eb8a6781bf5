package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/lightningnetwork/lnd/fn/v2"
	"go.uber.org/zap"
)

const defaultPollInterval = 5 * time.Second

// Retriever pumps blocks from a BlockSource into a BlockHandler.
type Retriever struct {
	logger       *zap.Logger
	source       BlockSource
	blockSignal  <-chan struct{}
	pollInterval time.Duration
	sleep        func(context.Context, time.Duration) error

	mu      sync.Mutex
	manager *fn.GoroutineManager
}

// NewRetriever creates a Retriever. blockSignal may be nil, in which case waiting
// falls back to polling every pollInterval.
func NewRetriever(
	source BlockSource,
	blockSignal <-chan struct{},
	pollInterval time.Duration,
	logger *zap.Logger,
) *Retriever {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Retriever{
		logger:       logger.Named("retriever"),
		source:       source,
		blockSignal:  blockSignal,
		pollInterval: pollInterval,
		sleep:        clock.SleepWithContext,
	}
}

// Start launches the pump. Only one pump may run at a time.
func (r *Retriever) Start(ctx context.Context, handler BlockHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.manager != nil {
		return model.ErrAlreadyRunning
	}

	manager := fn.NewGoroutineManager()
	started := manager.Go(ctx, func(ctx context.Context) {
		err := r.pump(ctx, handler)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		if err != nil {
			r.logger.Error("block pump stopped", zap.Error(err))
		} else {
			r.logger.Info("block pump stopped")
		}
		handler.Stop(err)
	})
	if !started {
		return fmt.Errorf("start block pump: %w", ctx.Err())
	}
	r.manager = manager

	return nil
}

// Stop cancels the pump and blocks until it has quiesced. Calling Stop on a stopped
// Retriever is a no-op.
func (r *Retriever) Stop() {
	r.mu.Lock()
	manager := r.manager
	r.manager = nil
	r.mu.Unlock()

	if manager != nil {
		manager.Stop()
	}
}

func (r *Retriever) pump(ctx context.Context, handler BlockHandler) error {
	hint, err := handler.GetBlockHint(ctx)
	if err != nil {
		return fmt.Errorf("get block hint: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch hint.Action {
		case HintStop:
			return nil
		case HintWait:
			if err := r.wait(ctx); err != nil {
				return err
			}
			if hint, err = handler.GetBlockHint(ctx); err != nil {
				return fmt.Errorf("get block hint: %w", err)
			}
		case HintFetch:
			block, err := r.source.FetchBlock(ctx, hint.Height)
			if errors.Is(err, model.ErrBlockNotFound) {
				block, err = nil, nil
			}
			if err != nil {
				return fmt.Errorf("fetch block %d: %w", hint.Height, err)
			}
			if hint, err = handler.ProcessBlock(ctx, block, hint.Height); err != nil {
				return fmt.Errorf("process block: %w", err)
			}
		default:
			return fmt.Errorf("unknown hint %s", hint)
		}
	}
}

func (r *Retriever) wait(ctx context.Context) error {
	if r.blockSignal == nil {
		return r.sleep(ctx, r.pollInterval)
	}

	timer := time.NewTimer(r.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.blockSignal:
		return nil
	case <-timer.C:
		return nil
	}
}
