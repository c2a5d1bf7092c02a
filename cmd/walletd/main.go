package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/account"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/bitcoin"
	badgerrepo "github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/repository/badger"
	clickhouserepo "github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/service"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/syncer"
	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/txstore"
)

type config struct {
	Network      string `long:"network" env:"WALLETD_NETWORK" description:"bitcoin network (main, testnet, regtest, signet, simnet)" default:"main"`
	ExtendedKey  string `long:"xpub" env:"WALLETD_XPUB" description:"account extended public key; a private key is neutered on load" required:"true"`
	Subaddresses uint32 `long:"subaddresses" env:"WALLETD_SUBADDRESSES" description:"subaddresses to keep derived on the primary account" default:"20"`

	RPCURL      string        `long:"rpc-url" env:"WALLETD_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser     string        `long:"rpc-user" env:"WALLETD_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword string        `long:"rpc-password" env:"WALLETD_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRPS      int           `long:"rpc-rps" env:"WALLETD_RPC_RPS" description:"max RPC requests per second, 0 for unlimited" default:"50"`
	ZMQBlockURL string        `long:"zmq-block-url" env:"WALLETD_ZMQ_BLOCK_URL" description:"ZMQ hashblock endpoint that triggers an immediate sync"`
	PollEvery   time.Duration `long:"poll-interval" env:"WALLETD_POLL_INTERVAL" description:"interval between sync passes" default:"10s"`

	ReorgDepth   uint64 `long:"reorg-depth" env:"WALLETD_REORG_DEPTH" description:"deepest reorganization the wallet rewinds" default:"100"`
	UnlockBlocks uint64 `long:"unlock-blocks" env:"WALLETD_UNLOCK_BLOCKS" description:"blocks a received output stays locked" default:"10"`

	StateStore    string `long:"state-store" env:"WALLETD_STATE_STORE" description:"wallet state backend" choice:"badger" choice:"clickhouse" default:"badger"`
	BadgerDir     string `long:"badger-dir" env:"WALLETD_BADGER_DIR" description:"badger data directory; empty keeps state in memory" default:"data/wallet"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"WALLETD_CLICKHOUSE_DSN" description:"ClickHouse DSN for the clickhouse state store"`
	WalletName    string `long:"wallet-name" env:"WALLETD_WALLET_NAME" description:"wallet name in shared ClickHouse tables" default:"default"`

	GRPCAddr string `long:"grpc-addr" env:"WALLETD_GRPC_ADDR" description:"gRPC listen address" default:":8000"`
	HTTPAddr string `long:"http-addr" env:"WALLETD_HTTP_ADDR" description:"HTTP listen address for /metrics and /healthz" default:":8001"`

	Tracing       bool `long:"tracing" env:"WALLETD_TRACING" description:"export sync spans over OTLP/HTTP (configured with OTEL_EXPORTER_OTLP_* variables)"`
	TracingStdout bool `long:"tracing-stdout" env:"WALLETD_TRACING_STDOUT" description:"print spans to stdout instead of exporting them"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("walletd failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := bitcoin.ChainParams(cfg.Network)
	if err != nil {
		return err
	}
	network := params.Name

	shutdownTracing, err := setupTracing(ctx, cfg.Tracing, cfg.TracingStdout)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("failed to flush spans", zap.Error(err))
		}
	}()

	deriver, err := bitcoin.NewKeyDeriver(cfg.ExtendedKey, params)
	if err != nil {
		return fmt.Errorf("init key deriver: %w", err)
	}

	rpc, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		rpc.Shutdown()
		rpc.WaitForShutdown()
	}()

	states, err := newStateStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("init state store: %w", err)
	}
	defer func() {
		if err := states.Close(); err != nil {
			logger.Warn("failed to close state store", zap.Error(err))
		}
	}()

	registry := account.NewRegistry(deriver, logger.Named("accounts"))
	store := txstore.New(registry, cfg.ReorgDepth, logger.Named("txstore"))
	attributes := service.NewAttributes()

	daemon := bitcoin.NewDaemon(
		bitcoin.NewRPCClient(rpc, metrics.NewRPCClient(network), cfg.RPCRPS),
		cfg.ReorgDepth,
		logger.Named("daemon"),
	)
	coordinator, err := syncer.NewCoordinator(
		daemon,
		bitcoin.NewDecoder(params, cfg.UnlockBlocks),
		states,
		store,
		registry,
		service.NewPersister(registry, store, attributes),
		metrics.NewSyncer(network),
		logger.Named("syncer"),
	)
	if err != nil {
		return err
	}

	wallet, err := service.NewWallet(registry, store, attributes, coordinator, logger.Named("wallet"))
	if err != nil {
		return err
	}
	if err := wallet.Open(ctx); err != nil {
		return err
	}
	if err := ensureSubaddresses(wallet, cfg.Subaddresses); err != nil {
		return err
	}
	primary, err := wallet.PrimaryAddress()
	if err != nil {
		return err
	}
	logger.Info("wallet ready",
		zap.String("network", network),
		zap.String("primary_address", primary),
		zap.Uint64("height", wallet.Height()),
	)

	srv, err := startServers(ctx, cfg.GRPCAddr, cfg.HTTPAddr, logger)
	if err != nil {
		return err
	}
	defer srv.stop()

	blocks, err := startBlockSignal(ctx, cfg.ZMQBlockURL, logger)
	if err != nil {
		return fmt.Errorf("init block signal: %w", err)
	}

	srv.serving(true)
	err = wallet.Run(ctx, cfg.PollEvery, blocks)
	srv.serving(false)
	return err
}

// ensureSubaddresses derives primary account subaddresses up to count so payments to them are seen.
func ensureSubaddresses(wallet *service.Wallet, count uint32) error {
	subs, err := wallet.Subaddresses(0)
	if err != nil {
		return err
	}
	for n := uint32(len(subs)); n < count; n++ {
		if _, err := wallet.CreateSubaddress(0, ""); err != nil {
			return fmt.Errorf("derive subaddress %d: %w", n, err)
		}
	}
	return nil
}

type stateStore interface {
	syncer.StateStore
	io.Closer
}

func newStateStore(cfg config, logger *zap.Logger) (stateStore, error) {
	switch cfg.StateStore {
	case "clickhouse":
		if cfg.ClickhouseDSN == "" {
			return nil, errors.New("ClickHouse DSN is required for the clickhouse state store")
		}
		return clickhouserepo.NewRepository(cfg.ClickhouseDSN, cfg.WalletName, metrics.NewRepository("clickhouse"), logger.Named("clickhouse"))
	case "badger", "":
		return badgerrepo.NewRepository(cfg.BadgerDir, metrics.NewRepository("badger"), logger.Named("badger"))
	default:
		return nil, fmt.Errorf("unknown state store %q", cfg.StateStore)
	}
}
