package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
)

const selectBlock = `
SELECT
	hash,
	prev_hash,
	timestamp,
	height
FROM watch_blocks FINAL
WHERE coin = ? AND network = ? AND removed = 0`

const (
	byHashCondition   = ` AND hash = ? LIMIT 1`
	byHeightCondition = ` AND height = ? LIMIT 1`
	lastCondition     = ` ORDER BY height DESC LIMIT 1`
	firstCondition    = ` ORDER BY height ASC LIMIT 1`
)

func (s *BlockStore) Get(ctx context.Context, hash chainhash.Hash) (*model.Block, uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		s.metrics.Observe("get_block", s.coin, s.network, err, start)
	}()

	block, height, err := s.block(ctx, byHashCondition, hash.String())
	return block, height, err
}

func (s *BlockStore) GetByHeight(ctx context.Context, height uint64) (*model.Block, error) {
	start := time.Now()
	var err error
	defer func() {
		s.metrics.Observe("get_block_by_height", s.coin, s.network, err, start)
	}()

	block, _, err := s.block(ctx, byHeightCondition, height)
	return block, err
}

func (s *BlockStore) GetLast(ctx context.Context) (*model.Block, uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		s.metrics.Observe("get_last_block", s.coin, s.network, err, start)
	}()

	block, height, err := s.block(ctx, lastCondition)
	return block, height, err
}

func (s *BlockStore) GetFirst(ctx context.Context) (*model.Block, uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		s.metrics.Observe("get_first_block", s.coin, s.network, err, start)
	}()

	block, height, err := s.block(ctx, firstCondition)
	return block, height, err
}

// block loads an active block matching condition together with its transactions.
func (s *BlockStore) block(ctx context.Context, condition string, args ...any) (*model.Block, uint64, error) {
	block, height, err := s.header(ctx, condition, args...)
	if err != nil {
		return nil, 0, err
	}
	if block.Transactions, err = s.blockTransactions(ctx, block.Hash); err != nil {
		return nil, 0, err
	}
	return block, height, nil
}

func (s *BlockStore) header(ctx context.Context, condition string, args ...any) (_ *model.Block, _ uint64, err error) {
	rows, err := s.conn.Query(ctx, selectBlock+condition, append([]any{s.coin, s.network}, args...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query block: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, 0, fmt.Errorf("iterate block: %w", err)
		}
		return nil, 0, model.ErrBlockNotFound
	}

	var (
		hash, prevHash string
		timestamp      time.Time
		height         uint64
	)
	if err = rows.Scan(&hash, &prevHash, &timestamp, &height); err != nil {
		return nil, 0, fmt.Errorf("scan block: %w", err)
	}

	block := &model.Block{Timestamp: timestamp.UTC()}
	if err = decodeHash(hash, &block.Hash); err != nil {
		return nil, 0, fmt.Errorf("block hash: %w", err)
	}
	if err = decodeHash(prevHash, &block.PrevHash); err != nil {
		return nil, 0, fmt.Errorf("block %s previous hash: %w", hash, err)
	}
	return block, height, nil
}

func decodeHash(s string, dst *chainhash.Hash) error {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return err
	}
	*dst = *h
	return nil
}
