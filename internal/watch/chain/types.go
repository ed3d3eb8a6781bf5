package chain

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockSource fetches blocks from an external node. It returns model.ErrBlockNotFound
	// when the node has no block at the height yet.
	BlockSource interface {
		FetchBlock(ctx context.Context, height uint64) (*model.Block, error)
	}

	// BlockHandler consumes blocks fetched by the Retriever.
	BlockHandler interface {
		GetBlockHint(ctx context.Context) (Hint, error)
		ProcessBlock(ctx context.Context, block *model.Block, height uint64) (Hint, error)
		Stop(err error)
	}

	// Pump is the part of the Retriever the Supervisor drives.
	Pump interface {
		Start(ctx context.Context, handler BlockHandler) error
		Stop()
	}

	// Listener receives ordered chain events from the Synchronizer.
	Listener interface {
		BlockAdded(ctx context.Context, block *model.Block, height uint64) error
		BlockRemoving(ctx context.Context, block *model.Block, height uint64) error
	}

	// BlockStore keeps the locally known active chain. Lookups of absent blocks return
	// model.ErrBlockNotFound.
	BlockStore interface {
		Get(ctx context.Context, hash chainhash.Hash) (*model.Block, uint64, error)
		GetByHeight(ctx context.Context, height uint64) (*model.Block, error)
		GetLast(ctx context.Context) (*model.Block, uint64, error)
		GetFirst(ctx context.Context) (*model.Block, uint64, error)
		Add(ctx context.Context, block *model.Block, height uint64) error
		RemoveLast(ctx context.Context) error
		GetTransaction(ctx context.Context, txID chainhash.Hash) (*model.Transaction, error)
	}

	SynchronizerMetrics interface {
		ObserveBlockAdded(height uint64)
		ObserveBlockRemoved(height uint64)
		ObserveProcess(err error, started time.Time)
	}
)
