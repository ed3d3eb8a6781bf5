// Command watcher follows a Bitcoin node and delivers callbacks when watched
// balances or transactions reach their confirmation targets.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/metrics"
	observed "github.com/goodnatureofminers/blockinsight7000-watcher/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/callback"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/chain"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/rule"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/lnd/clock"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	storageMemory = "memory"
	storageSQL    = "sql"
)

type config struct {
	Coin        model.Coin    `long:"coin" env:"WATCHER_COIN" description:"coin name" default:"BTC"`
	Network     model.Network `long:"network" env:"WATCHER_NETWORK" description:"network name" required:"true"`
	RPCURL      string        `long:"rpc-url" env:"WATCHER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser     string        `long:"rpc-user" env:"WATCHER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword string        `long:"rpc-password" env:"WATCHER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	ZMQAddr     string        `long:"zmq-addr" env:"WATCHER_ZMQ_ADDR" description:"bitcoind zmqpubhashblock address (requires the zmq build tag)"`

	PollInterval time.Duration `long:"poll-interval" env:"WATCHER_POLL_INTERVAL" description:"how long to wait for a new block before polling again" default:"10s"`
	RestartDelay time.Duration `long:"restart-delay" env:"WATCHER_RESTART_DELAY" description:"delay before restarting a failed block pump" default:"5s"`
	StartHeight  uint64        `long:"start-height" env:"WATCHER_START_HEIGHT" description:"height of the first block followed on an empty store"`

	Storage       string `long:"storage" env:"WATCHER_STORAGE" description:"storage backend" choice:"memory" choice:"sql" default:"memory"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"WATCHER_CLICKHOUSE_DSN" description:"ClickHouse DSN for the block store (sql storage)"`
	PostgresDSN   string `long:"postgres-dsn" env:"WATCHER_POSTGRES_DSN" description:"PostgreSQL DSN for rules, watches and callbacks (sql storage)"`

	GRPCAddr string `long:"grpc-addr" env:"WATCHER_GRPC_ADDR" description:"gRPC health server address" default:":8000"`
	RestAddr string `long:"rest-addr" env:"WATCHER_REST_ADDR" description:"REST and metrics address" default:":8001"`

	MinWaitingTime  time.Duration `long:"min-waiting-time" env:"WATCHER_MIN_WAITING_TIME" description:"shortest accepted rule waiting time" default:"1s"`
	MaxWaitingTime  time.Duration `long:"max-waiting-time" env:"WATCHER_MAX_WAITING_TIME" description:"longest accepted rule waiting time" default:"720h"`
	CallbackTimeout time.Duration `long:"callback-timeout" env:"WATCHER_CALLBACK_TIMEOUT" description:"timeout of a single callback request" default:"10s"`
	CallbackRPS     int           `long:"callback-rps" env:"WATCHER_CALLBACK_RPS" description:"callback requests per second, 0 for unlimited" default:"50"`
	CallbackRetries uint64        `long:"callback-retries" env:"WATCHER_CALLBACK_RETRIES" description:"retries of a failed callback delivery, 0 delivers once per terminal transition" default:"0"`

	LogProduction bool `long:"log-production" env:"WATCHER_LOG_PRODUCTION" description:"use the production logger"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		panic("failed to parse flags: " + err.Error())
	}

	logger, err := newLogger(cfg.LogProduction)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("watcher failed", zap.Error(err))
	}
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) (err error) {
	store, closeStorage, err := newStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeStorage())
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := observed.NewObservedClient(rpcClient, metrics.NewRPCClient(cfg.Coin, cfg.Network))

	decoder, err := bitcoin.NewScriptDecoder(cfg.Network)
	if err != nil {
		return err
	}
	validator, err := bitcoin.NewAddressValidator(cfg.Network)
	if err != nil {
		return err
	}
	converter := bitcoin.NewTransactionConverter(decoder)

	engineDeps := rule.EngineDeps{
		Rules:     store.rules,
		Callbacks: store.callbacks,
		Executor:  callback.NewExecutor(callback.NewHTTPClient(cfg.CallbackTimeout), cfg.CallbackRPS, cfg.CallbackRetries, logger),
		Clock:     clock.NewDefaultClock(),
		Metrics:   metrics.NewRuleEngine(),
		Limits:    rule.Limits{MinWaitingTime: cfg.MinWaitingTime, MaxWaitingTime: cfg.MaxWaitingTime},
	}
	balances, err := rule.NewBalanceWatcher(rule.BalanceDeps{
		EngineDeps: engineDeps,
		Watches:    store.balanceWatches,
		Blocks:     store.blocks,
		Decoder:    bitcoin.NewBalanceDecoder(cfg.Coin, store.blocks, rpc, converter, logger),
		Validator:  validator,
	}, logger)
	if err != nil {
		return fmt.Errorf("init balance watcher: %w", err)
	}
	transactions, err := rule.NewTransactionWatcher(rule.TransactionDeps{
		EngineDeps: engineDeps,
		Watches:    store.transactionWatches,
		Blocks:     store.blocks,
	}, logger)
	if err != nil {
		return fmt.Errorf("init transaction watcher: %w", err)
	}

	synchronizer, err := chain.NewSynchronizer(store.blocks, metrics.NewSynchronizer(cfg.Coin, cfg.Network), cfg.StartHeight, logger)
	if err != nil {
		return fmt.Errorf("init synchronizer: %w", err)
	}
	synchronizer.AddListener(balances)
	synchronizer.AddListener(transactions)

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}
	retriever := chain.NewRetriever(bitcoin.NewBlockSource(rpc, converter), blockSignal, cfg.PollInterval, logger)
	supervisor := chain.NewSupervisor(retriever, synchronizer, cfg.RestartDelay, logger)

	if err = balances.Start(ctx); err != nil {
		return fmt.Errorf("start balance watcher: %w", err)
	}
	defer func() {
		err = multierr.Append(err, balances.Stop(context.Background()))
	}()
	if err = transactions.Start(ctx); err != nil {
		return fmt.Errorf("start transaction watcher: %w", err)
	}
	defer func() {
		err = multierr.Append(err, transactions.Stop(context.Background()))
	}()

	serveCtx, cancelServe := context.WithCancel(ctx)
	defer cancelServe()
	if err = serve(serveCtx, cfg, logger, transport.NewRuleHandler(balances, transactions, store.rules, store.callbacks, logger)); err != nil {
		return err
	}

	logger.Info("following chain",
		zap.String("coin", string(cfg.Coin)),
		zap.String("network", string(cfg.Network)),
		zap.String("storage", cfg.Storage),
		zap.Uint64("start_height", cfg.StartHeight),
	)
	return supervisor.Run(ctx)
}

// serve starts the gRPC health server and the REST gateway. Both stop when ctx is done.
func serve(ctx context.Context, cfg config, logger *zap.Logger, handler *transport.RuleHandler) error {
	grpcServer, healthServer := transport.NewGRPCServer(logger)
	socket, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server stopped", zap.Error(serveErr))
		}
	}()

	gw, conn, err := transport.NewGateway(cfg.GRPCAddr, handler)
	if err != nil {
		grpcServer.Stop()
		return err
	}
	httpServer := transport.NewHTTPServer(cfg.RestAddr, gw)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", cfg.RestAddr))
		if serveErr := httpServer.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("Failed to listen and serve", zap.Error(serveErr))
		}
	}()
	go func() {
		transport.Shutdown(ctx, logger, grpcServer, httpServer)
		_ = conn.Close()
	}()

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return nil
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
