package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/goodnatureofminers/blockinsight7000-watcher/pkg/safe"
)

const insertBlock = `
INSERT INTO watch_blocks (
	coin,
	network,
	height,
	hash,
	prev_hash,
	timestamp,
	removed,
	version
) VALUES`

const insertTransactions = `
INSERT INTO watch_transactions (
	coin,
	network,
	block_hash,
	txid,
	position,
	input_prev_txids,
	input_prev_vouts,
	input_coinbase,
	output_indexes,
	output_values,
	output_addresses,
	version
) VALUES`

// Add appends block at height, which must directly follow the tip. Transactions are
// written before the block row so an active block always has its transactions.
func (s *BlockStore) Add(ctx context.Context, block *model.Block, height uint64) error {
	start := time.Now()
	var err error
	defer func() {
		s.metrics.Observe("add_block", s.coin, s.network, err, start)
	}()

	_, last, err := s.header(ctx, lastCondition)
	switch {
	case errors.Is(err, model.ErrBlockNotFound):
		err = nil
	case err != nil:
		return err
	case height != last+1:
		err = fmt.Errorf("add block at %d, expected %d: %w", height, last+1, model.ErrInconsistent)
		return err
	}

	version := s.version()
	if err = s.insertTransactions(ctx, block, version); err != nil {
		return err
	}
	if err = s.insertBlock(ctx, block, height, false, version); err != nil {
		return err
	}
	return nil
}

// RemoveLast marks the tip as removed.
func (s *BlockStore) RemoveLast(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() {
		s.metrics.Observe("remove_last_block", s.coin, s.network, err, start)
	}()

	block, height, err := s.header(ctx, lastCondition)
	if err != nil {
		return err
	}
	err = s.insertBlock(ctx, block, height, true, s.version())
	return err
}

func (s *BlockStore) insertBlock(ctx context.Context, block *model.Block, height uint64, removed bool, version uint64) error {
	batch, err := s.conn.PrepareBatch(ctx, insertBlock)
	if err != nil {
		return fmt.Errorf("prepare block batch: %w", err)
	}
	if err = batch.Append(
		string(s.coin),
		string(s.network),
		height,
		block.Hash.String(),
		block.PrevHash.String(),
		block.Timestamp,
		removed,
		version,
	); err != nil {
		return fmt.Errorf("append block: %w", err)
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert block: %w", err)
	}
	return nil
}

func (s *BlockStore) insertTransactions(ctx context.Context, block *model.Block, version uint64) error {
	if len(block.Transactions) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, insertTransactions)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}
	for i, tx := range block.Transactions {
		row := newTransactionRow(tx)
		position, err := safe.Uint32(i)
		if err != nil {
			return fmt.Errorf("transaction %s position: %w", row.TxID, err)
		}
		if err = batch.Append(
			string(s.coin),
			string(s.network),
			block.Hash.String(),
			row.TxID,
			position,
			row.InputPrevTxIDs,
			row.InputPrevVouts,
			row.InputCoinbase,
			row.OutputIndexes,
			row.OutputValues,
			row.OutputAddresses,
			version,
		); err != nil {
			return fmt.Errorf("append transaction %s: %w", row.TxID, err)
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
