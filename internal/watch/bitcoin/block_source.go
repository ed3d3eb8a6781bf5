package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/goodnatureofminers/blockinsight7000-watcher/pkg/safe"
)

// BlockSource implements chain.BlockSource on top of the node RPC.
type BlockSource struct {
	rpc       RPCClient
	converter *TransactionConverter
}

// NewBlockSource creates a BlockSource.
func NewBlockSource(rpc RPCClient, converter *TransactionConverter) *BlockSource {
	return &BlockSource{rpc: rpc, converter: converter}
}

// LatestHeight returns the latest block height available from the node.
func (s *BlockSource) LatestHeight(_ context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock retrieves the block at height. Heights above the node's tip yield
// model.ErrBlockNotFound.
func (s *BlockSource) FetchBlock(ctx context.Context, height uint64) (*model.Block, error) {
	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("block height exceeds rpc limit: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	latest, err := s.LatestHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("get block count: %w", err)
	}
	if height > latest {
		return nil, model.ErrBlockNotFound
	}

	hash, err := s.rpc.GetBlockHash(rpcHeight)
	if isNotFound(err) {
		return nil, model.ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	src, err := s.rpc.GetBlockVerboseTx(hash)
	if isNotFound(err) {
		return nil, model.ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	return BuildBlockFromVerbose(*src, s.converter)
}

// isNotFound reports whether err is the node's answer for an unknown block or height.
func isNotFound(err error) bool {
	var rpcErr *btcjson.RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	code := rpcErr.Code
	return code == btcjson.ErrRPCOutOfRange || code == btcjson.ErrRPCInvalidParameter || code == btcjson.ErrRPCBlockNotFound
}
