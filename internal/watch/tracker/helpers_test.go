package tracker

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/google/uuid"
)

// chainIndex answers BlockIndex lookups from a hash to height map.
func chainIndex(ctrl *gomock.Controller, heights map[chainhash.Hash]uint64) *MockBlockIndex {
	index := NewMockBlockIndex(ctrl)
	index.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, hash chainhash.Hash) (*model.Block, uint64, error) {
			h, ok := heights[hash]
			if !ok {
				return nil, 0, model.ErrBlockNotFound
			}
			return &model.Block{Hash: hash}, h, nil
		}).AnyTimes()
	return index
}

func txWatch(origin chainhash.Hash, rule uuid.UUID) model.TransactionWatch {
	return model.TransactionWatch{
		Watch: model.Watch{ID: uuid.New(), RuleID: rule, StartBlock: origin},
		TxID:  chainhash.Hash{0xaa},
	}
}

type createFunc[W Item] func(ctx context.Context, block *model.Block, height uint64) ([]W, error)

func (f createFunc[W]) CreateWatches(ctx context.Context, block *model.Block, height uint64) ([]W, error) {
	return f(ctx, block, height)
}

// createAt returns the given watches when the block at height is added.
func createAt[W Item](height uint64, watches ...W) createFunc[W] {
	return func(_ context.Context, _ *model.Block, h uint64) ([]W, error) {
		if h == height {
			return watches, nil
		}
		return nil, nil
	}
}

type recordingHandler[W Item] struct {
	added       []W
	completed   []W
	uncompleted []chainhash.Hash
}

func (h *recordingHandler[W]) AddWatches(_ context.Context, watches []W) error {
	h.added = append(h.added, watches...)
	return nil
}

func (h *recordingHandler[W]) RemoveCompletedWatches(_ context.Context, watches []W) error {
	h.completed = append(h.completed, watches...)
	return nil
}

func (h *recordingHandler[W]) RemoveUncompletedWatches(_ context.Context, startBlock chainhash.Hash) error {
	h.uncompleted = append(h.uncompleted, startBlock)
	return nil
}
