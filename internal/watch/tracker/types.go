package tracker

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockIndex resolves the height of a locally known block.
	BlockIndex interface {
		Get(ctx context.Context, hash chainhash.Hash) (*model.Block, uint64, error)
	}

	// BalanceHandler receives grouped confirmation changes for one address and reports
	// whether every watch of the address is resolved.
	BalanceHandler interface {
		ConfirmationUpdate(ctx context.Context, address string, confirmations []BalanceConfirmation, ctype ConfirmationType) (bool, error)
	}

	// TransactionHandler receives the confirmation change of a single transaction watch.
	TransactionHandler interface {
		ConfirmationUpdate(ctx context.Context, watch model.TransactionWatch, confirmation int, ctype ConfirmationType) (bool, error)
	}
)
