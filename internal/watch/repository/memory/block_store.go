// Package memory provides in-process implementations of the watcher repositories.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
)

// BlockStore keeps the active chain in memory.
type BlockStore struct {
	mu      sync.RWMutex
	first   uint64
	blocks  []*model.Block
	heights map[chainhash.Hash]uint64
	txs     map[chainhash.Hash]*model.Transaction
}

// NewBlockStore creates an empty BlockStore.
func NewBlockStore() *BlockStore {
	return &BlockStore{
		heights: make(map[chainhash.Hash]uint64),
		txs:     make(map[chainhash.Hash]*model.Transaction),
	}
}

func (s *BlockStore) Get(_ context.Context, hash chainhash.Hash) (*model.Block, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	height, ok := s.heights[hash]
	if !ok {
		return nil, 0, model.ErrBlockNotFound
	}
	return s.blocks[height-s.first], height, nil
}

func (s *BlockStore) GetByHeight(_ context.Context, height uint64) (*model.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.blocks) == 0 || height < s.first || height >= s.first+uint64(len(s.blocks)) {
		return nil, model.ErrBlockNotFound
	}
	return s.blocks[height-s.first], nil
}

func (s *BlockStore) GetLast(_ context.Context) (*model.Block, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.blocks) == 0 {
		return nil, 0, model.ErrBlockNotFound
	}
	last := uint64(len(s.blocks)) - 1
	return s.blocks[last], s.first + last, nil
}

func (s *BlockStore) GetFirst(_ context.Context) (*model.Block, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.blocks) == 0 {
		return nil, 0, model.ErrBlockNotFound
	}
	return s.blocks[0], s.first, nil
}

// Add appends block at height, which must directly follow the tip.
func (s *BlockStore) Add(_ context.Context, block *model.Block, height uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.blocks) == 0 {
		s.first = height
	} else if next := s.first + uint64(len(s.blocks)); height != next {
		return fmt.Errorf("add block at %d, expected %d: %w", height, next, model.ErrInconsistent)
	}
	s.blocks = append(s.blocks, block)
	s.heights[block.Hash] = height
	for i := range block.Transactions {
		s.txs[block.Transactions[i].TxID] = &block.Transactions[i]
	}
	return nil
}

func (s *BlockStore) RemoveLast(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.blocks) == 0 {
		return model.ErrBlockNotFound
	}
	last := s.blocks[len(s.blocks)-1]
	s.blocks = s.blocks[:len(s.blocks)-1]
	delete(s.heights, last.Hash)
	for _, tx := range last.Transactions {
		delete(s.txs, tx.TxID)
	}
	return nil
}

func (s *BlockStore) GetTransaction(_ context.Context, txID chainhash.Hash) (*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.txs[txID]
	if !ok {
		return nil, model.ErrTxNotFound
	}
	return tx, nil
}
