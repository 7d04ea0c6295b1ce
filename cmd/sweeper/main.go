package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/block"
	"github.com/feral-file/sei-marketplace-indexer/internal/chain"
	"github.com/feral-file/sei-marketplace-indexer/internal/codec"
	"github.com/feral-file/sei-marketplace-indexer/internal/config"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/handlers"
	"github.com/feral-file/sei-marketplace-indexer/internal/ledger"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/metadata"
	"github.com/feral-file/sei-marketplace-indexer/internal/notify"
	"github.com/feral-file/sei-marketplace-indexer/internal/ops"
	"github.com/feral-file/sei-marketplace-indexer/internal/reconciler"
	"github.com/feral-file/sei-marketplace-indexer/internal/store"
	"github.com/feral-file/sei-marketplace-indexer/internal/sweeper"
	"github.com/feral-file/sei-marketplace-indexer/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	txHash     = flag.String("tx", "", "Replay a single transaction by hash and exit")
	height     = flag.Int64("height", 0, "Replay every transaction of a block and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         logger.NewGormLogger(cfg.Database.SlowQuery),
		TranslateError: true,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	b64 := adapter.NewBase64()
	httpClient := adapter.NewHTTPClient(cfg.Chain.QueryTimeout)
	metadataHTTPClient := adapter.NewHTTPClient(cfg.Metadata.Timeout)

	contracts := codec.Contracts{
		Mrkt:   cfg.Contracts.Mrkt,
		Pallet: cfg.Contracts.Pallet,
	}

	chainClient := chain.NewClient(chain.Options{
		RESTURL:      cfg.Chain.RESTURL,
		Contracts:    contracts,
		QueryTimeout: cfg.Chain.QueryTimeout,
		Limiter:      rate.NewLimiter(rate.Limit(cfg.Chain.RequestsPerSecond), cfg.Chain.Burst),
	}, httpClient, b64)
	blockProvider := block.NewBlockProvider(block.NewChainFetcher(chainClient), block.Config{
		TTL:            cfg.Chain.BlockHeadTTL,
		StaleWindow:    cfg.Chain.BlockHeadStaleWindow,
		MaxCachedTimes: cfg.Chain.BlockTimeCacheSize,
	}, clock)

	uriResolver := uri.NewResolver(metadataHTTPClient, &uri.Config{
		IPFSGateways:    cfg.Metadata.IPFSGateways,
		ArweaveGateways: cfg.Metadata.ArweaveGateways,
	})
	fetcher := metadata.NewFetcher(metadataHTTPClient, uriResolver,
		rate.NewLimiter(rate.Limit(cfg.Metadata.RequestsPerSecond), cfg.Metadata.Burst),
		metadata.Config{
			PalletAPIURL: cfg.Metadata.PalletAPIURL,
			MaxAttempts:  cfg.Metadata.MaxAttempts,
			RetryDelay:   cfg.Metadata.RetryDelay,
			Timeout:      cfg.Metadata.Timeout,
		})
	entityReconciler := reconciler.New(dataStore, chainClient, fetcher, jsonAdapter, clock)
	auditLedger := ledger.New(dataStore, blockProvider, jsonAdapter, ledger.Config{})

	publisher := notify.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = notify.NewJetStreamPublisher(notify.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream")
	}
	defer publisher.Close()

	deps := handlers.Deps{
		Store:      dataStore,
		Chain:      chainClient,
		Reconciler: entityReconciler,
		JSON:       jsonAdapter,
	}

	// Replay order follows the family order: tokens first, then the markets
	processors := make([]handlers.Processor, 0, len(domain.AllContexts))
	for _, family := range domain.AllContexts {
		router, err := handlers.NewRouter(family, deps, auditLedger, publisher, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create router", zap.Error(err), zap.String("family", string(family)))
		}
		processors = append(processors, router)
	}

	txReconciler := sweeper.NewTxReconciler(sweeper.TxReconcilerConfig{
		Contracts: contracts,
		PoolSize:  cfg.Sweeper.Worker.PoolSize,
		QueueSize: cfg.Sweeper.Worker.QueueSize,
	}, chainClient, blockProvider, auditLedger, processors)
	defer txReconciler.Close()

	// One-off replays
	if *txHash != "" || *height > 0 {
		if err := replayOnce(ctx, txReconciler); err != nil {
			logger.ErrorCtx(ctx, err)
			logger.Flush(2 * time.Second)
			os.Exit(1)
		}
		return
	}

	blockSweeper := sweeper.NewBlockSweeper(sweeper.BlockSweeperConfig{
		StartHeight:    int64(cfg.Sweeper.StartHeight),    //nolint:gosec,G115
		LookbackBlocks: int64(cfg.Sweeper.LookbackBlocks), //nolint:gosec,G115
		BatchBlocks:    int64(cfg.Sweeper.BatchBlocks),    //nolint:gosec,G115
		PollInterval:   cfg.Sweeper.PollInterval,
		GapBatchSize:   cfg.Sweeper.GapBatchSize,
	}, dataStore, blockProvider, txReconciler, clock)

	logger.InfoCtx(ctx, "Initialized block sweeper",
		zap.Uint64("start_height", cfg.Sweeper.StartHeight),
		zap.Uint64("lookback_blocks", cfg.Sweeper.LookbackBlocks),
		zap.Uint64("batch_blocks", cfg.Sweeper.BatchBlocks),
		zap.Duration("poll_interval", cfg.Sweeper.PollInterval),
	)

	// Health and metrics
	opsServer := ops.New(ops.Config{
		Debug:      cfg.Debug,
		ListenAddr: cfg.Ops.ListenAddr,
	}, dataStore)
	go func() {
		if err := opsServer.Start(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "ops"))
		}
	}()

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := blockSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := blockSweeper.Stop(shutdownCtx); err != nil {
		logger.Error(err, zap.String("sweeper", blockSweeper.Name()))
	}
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "ops"))
	}

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Sweeper stopped")
}

// replayOnce handles the -tx and -height flags
func replayOnce(ctx context.Context, txReconciler sweeper.TxReconciler) error {
	if *txHash != "" {
		logger.InfoCtx(ctx, "Replaying transaction", zap.String("tx_hash", *txHash))
		if err := txReconciler.ReconcileTxHash(ctx, *txHash); err != nil {
			return fmt.Errorf("failed to replay tx %s: %w", *txHash, err)
		}
	}

	if *height > 0 {
		logger.InfoCtx(ctx, "Replaying block", zap.Int64("height", *height))
		if err := txReconciler.ReconcileHeight(ctx, *height); err != nil {
			return fmt.Errorf("failed to replay height %d: %w", *height, err)
		}
	}

	return nil
}
