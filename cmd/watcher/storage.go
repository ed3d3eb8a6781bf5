package main

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/chain"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/repository/memory"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/repository/postgres"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/rule"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type storage struct {
	blocks             chain.BlockStore
	rules              rule.RuleRepository
	callbacks          rule.CallbackRepository
	balanceWatches     rule.BalanceWatchRepository
	transactionWatches rule.TransactionWatchRepository
}

func newStorage(cfg config, logger *zap.Logger) (storage, func() error, error) {
	switch cfg.Storage {
	case storageMemory:
		logger.Warn("using in-memory storage, state is lost on restart")
		return storage{
			blocks:             memory.NewBlockStore(),
			rules:              memory.NewRuleRepository(),
			callbacks:          memory.NewCallbackRepository(),
			balanceWatches:     memory.NewBalanceWatchRepository(),
			transactionWatches: memory.NewTransactionWatchRepository(),
		}, func() error { return nil }, nil
	case storageSQL:
		return newSQLStorage(cfg)
	default:
		return storage{}, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

func newSQLStorage(cfg config) (storage, func() error, error) {
	if cfg.ClickhouseDSN == "" {
		return storage{}, nil, errors.New("ClickHouse DSN is required for sql storage")
	}
	if cfg.PostgresDSN == "" {
		return storage{}, nil, errors.New("PostgreSQL DSN is required for sql storage")
	}

	conn, err := clickhouse.Open(cfg.ClickhouseDSN)
	if err != nil {
		return storage{}, nil, err
	}
	db, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		return storage{}, nil, multierr.Append(err, conn.Close())
	}

	pgMetrics := metrics.NewPostgresRepository()
	s := storage{
		blocks:             clickhouse.NewBlockStore(conn, cfg.Coin, cfg.Network, metrics.NewClickhouseRepository()),
		rules:              postgres.NewRuleRepository(db, pgMetrics),
		callbacks:          postgres.NewCallbackRepository(db, pgMetrics),
		balanceWatches:     postgres.NewBalanceWatchRepository(db, pgMetrics),
		transactionWatches: postgres.NewTransactionWatchRepository(db, pgMetrics),
	}
	closeAll := func() error {
		return multierr.Combine(conn.Close(), postgres.Close(db))
	}
	return s, closeAll, nil
}
