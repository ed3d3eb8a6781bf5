package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
)

const selectTransaction = `
SELECT
	txid,
	input_prev_txids,
	input_prev_vouts,
	input_coinbase,
	output_indexes,
	output_values,
	output_addresses
FROM watch_transactions FINAL
WHERE coin = ? AND network = ?`

// GetTransaction returns a transaction included in an active block.
func (s *BlockStore) GetTransaction(ctx context.Context, txID chainhash.Hash) (*model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		s.metrics.Observe("get_transaction", s.coin, s.network, err, start)
	}()

	const condition = `
	AND txid = ?
	AND block_hash IN (
		SELECT hash
		FROM watch_blocks FINAL
		WHERE coin = ? AND network = ? AND removed = 0
	)
LIMIT 1`

	txs, err := s.transactions(ctx, selectTransaction+condition, s.coin, s.network, txID.String(), s.coin, s.network)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		err = model.ErrTxNotFound
		return nil, err
	}
	return &txs[0], nil
}

func (s *BlockStore) blockTransactions(ctx context.Context, blockHash chainhash.Hash) ([]model.Transaction, error) {
	const condition = ` AND block_hash = ? ORDER BY position ASC`

	return s.transactions(ctx, selectTransaction+condition, s.coin, s.network, blockHash.String())
}

func (s *BlockStore) transactions(ctx context.Context, query string, args ...any) (_ []model.Transaction, err error) {
	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var txs []model.Transaction
	for rows.Next() {
		var row transactionRow
		if err = rows.Scan(
			&row.TxID,
			&row.InputPrevTxIDs,
			&row.InputPrevVouts,
			&row.InputCoinbase,
			&row.OutputIndexes,
			&row.OutputValues,
			&row.OutputAddresses,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx, err := row.model()
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// transactionRow is the columnar form of a transaction: inputs and outputs are
// stored as parallel arrays.
type transactionRow struct {
	TxID            string
	InputPrevTxIDs  []string
	InputPrevVouts  []uint32
	InputCoinbase   []bool
	OutputIndexes   []uint32
	OutputValues    []int64
	OutputAddresses [][]string
}

func newTransactionRow(tx model.Transaction) transactionRow {
	row := transactionRow{
		TxID:            tx.TxID.String(),
		InputPrevTxIDs:  make([]string, 0, len(tx.Inputs)),
		InputPrevVouts:  make([]uint32, 0, len(tx.Inputs)),
		InputCoinbase:   make([]bool, 0, len(tx.Inputs)),
		OutputIndexes:   make([]uint32, 0, len(tx.Outputs)),
		OutputValues:    make([]int64, 0, len(tx.Outputs)),
		OutputAddresses: make([][]string, 0, len(tx.Outputs)),
	}
	for _, in := range tx.Inputs {
		row.InputPrevTxIDs = append(row.InputPrevTxIDs, in.PrevTxID.String())
		row.InputPrevVouts = append(row.InputPrevVouts, in.PrevVout)
		row.InputCoinbase = append(row.InputCoinbase, in.IsCoinbase)
	}
	for _, out := range tx.Outputs {
		addresses := out.Addresses
		if addresses == nil {
			addresses = []string{}
		}
		row.OutputIndexes = append(row.OutputIndexes, out.Index)
		row.OutputValues = append(row.OutputValues, int64(out.Value))
		row.OutputAddresses = append(row.OutputAddresses, addresses)
	}
	return row
}

func (r transactionRow) model() (model.Transaction, error) {
	var tx model.Transaction
	if err := decodeHash(r.TxID, &tx.TxID); err != nil {
		return model.Transaction{}, fmt.Errorf("transaction id: %w", err)
	}
	if len(r.InputPrevVouts) != len(r.InputPrevTxIDs) || len(r.InputCoinbase) != len(r.InputPrevTxIDs) {
		return model.Transaction{}, fmt.Errorf("transaction %s: input columns differ in length", r.TxID)
	}
	if len(r.OutputValues) != len(r.OutputIndexes) || len(r.OutputAddresses) != len(r.OutputIndexes) {
		return model.Transaction{}, fmt.Errorf("transaction %s: output columns differ in length", r.TxID)
	}

	for i, prev := range r.InputPrevTxIDs {
		in := model.TransactionInput{PrevVout: r.InputPrevVouts[i], IsCoinbase: r.InputCoinbase[i]}
		if err := decodeHash(prev, &in.PrevTxID); err != nil {
			return model.Transaction{}, fmt.Errorf("transaction %s input %d: %w", r.TxID, i, err)
		}
		tx.Inputs = append(tx.Inputs, in)
	}
	for i, index := range r.OutputIndexes {
		out := model.TransactionOutput{Index: index, Value: btcutil.Amount(r.OutputValues[i])}
		if len(r.OutputAddresses[i]) > 0 {
			out.Addresses = r.OutputAddresses[i]
		}
		tx.Outputs = append(tx.Outputs, out)
	}
	return tx, nil
}
