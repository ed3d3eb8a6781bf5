// Package clickhouse keeps the watcher's active chain in ClickHouse.
package clickhouse

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/lightningnetwork/lnd/clock"
)

// BlockStore implements chain.BlockStore for one coin and network. Rows are never
// deleted: removing the tip writes a newer version of its row flagged as removed.
type BlockStore struct {
	conn    Conn
	coin    model.Coin
	network model.Network
	metrics Metrics
	clock   clock.Clock

	mu          sync.Mutex
	lastVersion uint64
}

// Open connects to ClickHouse using dsn.
func Open(dsn string) (Conn, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}
	return conn, nil
}

func NewBlockStore(conn Conn, coin model.Coin, network model.Network, metrics Metrics) *BlockStore {
	return &BlockStore{
		conn:    conn,
		coin:    coin,
		network: network,
		metrics: metrics,
		clock:   clock.NewDefaultClock(),
	}
}

// version returns a strictly increasing row version.
func (s *BlockStore) version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := uint64(s.clock.Now().UnixNano())
	if v <= s.lastVersion {
		v = s.lastVersion + 1
	}
	s.lastVersion = v
	return v
}
