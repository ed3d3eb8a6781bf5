package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"go.uber.org/zap"
)

// BalanceDecoder derives per-address balance changes of a transaction. Outputs credit
// their addresses, inputs debit the addresses of the outputs they spend.
type BalanceDecoder struct {
	logger    *zap.Logger
	coin      model.Coin
	store     TransactionStore
	rpc       RPCClient
	converter *TransactionConverter
}

// NewBalanceDecoder creates a BalanceDecoder. Spent outputs are looked up in store
// first and in the node second.
func NewBalanceDecoder(coin model.Coin, store TransactionStore, rpc RPCClient, converter *TransactionConverter, logger *zap.Logger) *BalanceDecoder {
	return &BalanceDecoder{
		logger:    logger.Named("balance_decoder"),
		coin:      coin,
		store:     store,
		rpc:       rpc,
		converter: converter,
	}
}

// Decode implements rule.BalanceDecoder. Changes are aggregated per address in
// first-seen order; addresses whose changes cancel out are omitted.
func (d *BalanceDecoder) Decode(ctx context.Context, tx *model.Transaction) ([]model.BalanceChange, error) {
	var order []string
	sums := make(map[string]btcutil.Amount)
	add := func(address string, amount btcutil.Amount) {
		if _, ok := sums[address]; !ok {
			order = append(order, address)
		}
		sums[address] += amount
	}

	for _, in := range tx.Inputs {
		if in.IsCoinbase {
			continue
		}
		prev, err := d.previousOutput(ctx, in.PrevTxID, in.PrevVout)
		if err != nil {
			return nil, err
		}
		if prev == nil {
			d.logger.Warn("spent output not resolved",
				zap.Stringer("tx", tx.TxID),
				zap.Stringer("prev_tx", in.PrevTxID),
				zap.Uint32("prev_vout", in.PrevVout),
			)
			continue
		}
		for _, address := range prev.Addresses {
			add(address, -prev.Value)
		}
	}
	for _, out := range tx.Outputs {
		for _, address := range out.Addresses {
			add(address, out.Value)
		}
	}

	changes := make([]model.BalanceChange, 0, len(order))
	for _, address := range order {
		if sums[address] == 0 {
			continue
		}
		changes = append(changes, model.BalanceChange{Coin: d.coin, Address: address, Amount: sums[address]})
	}
	return changes, nil
}

// previousOutput returns nil when the spent output cannot be found anywhere.
func (d *BalanceDecoder) previousOutput(ctx context.Context, txID chainhash.Hash, vout uint32) (*model.TransactionOutput, error) {
	tx, err := d.store.GetTransaction(ctx, txID)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrNotFound):
		tx, err = d.fetchTransaction(txID)
		if err != nil {
			return nil, err
		}
		if tx == nil {
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("lookup tx %s: %w", txID, err)
	}

	for i := range tx.Outputs {
		if tx.Outputs[i].Index == vout {
			return &tx.Outputs[i], nil
		}
	}
	return nil, nil
}

func (d *BalanceDecoder) fetchTransaction(txID chainhash.Hash) (*model.Transaction, error) {
	raw, err := d.rpc.GetRawTransactionVerbose(&txID)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get raw transaction %s: %w", txID, err)
	}
	return d.converter.Convert(*raw)
}
