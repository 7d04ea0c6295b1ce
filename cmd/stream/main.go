package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
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
	"github.com/feral-file/sei-marketplace-indexer/internal/handlers"
	"github.com/feral-file/sei-marketplace-indexer/internal/ledger"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/metadata"
	"github.com/feral-file/sei-marketplace-indexer/internal/notify"
	"github.com/feral-file/sei-marketplace-indexer/internal/ops"
	"github.com/feral-file/sei-marketplace-indexer/internal/reconciler"
	"github.com/feral-file/sei-marketplace-indexer/internal/store"
	"github.com/feral-file/sei-marketplace-indexer/internal/stream"
	"github.com/feral-file/sei-marketplace-indexer/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadStreamConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "stream",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Stream")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         logger.NewGormLogger(cfg.Database.SlowQuery),
		TranslateError: true,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
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

	// Chain access
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

	// Metadata and entity reconciliation
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

	// Notifications are optional
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

	// One supervisor per family
	dialer := adapter.NewWSDialer(cfg.Stream.WriteTimeout)
	decoder := codec.NewDecoder(b64)
	supervisors := make([]*stream.Supervisor, 0, len(cfg.Stream.Families))
	for _, family := range cfg.Stream.StreamFamilies() {
		router, err := handlers.NewRouter(family, deps, auditLedger, publisher, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create router", zap.Error(err), zap.String("family", string(family)))
		}

		supervisors = append(supervisors, stream.New(stream.Config{
			URL:            cfg.Chain.RPCWSSURL,
			Contracts:      contracts,
			ReconnectDelay: cfg.Stream.ReconnectDelay,
			PingInterval:   cfg.Stream.PingInterval,
			ReadTimeout:    cfg.Stream.ReadTimeout,
			WriteTimeout:   cfg.Stream.WriteTimeout,
		}, dialer, decoder, router, auditLedger, clock))
	}

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

	var wg sync.WaitGroup
	for _, s := range supervisors {
		wg.Add(1)
		go func(s *stream.Supervisor) {
			defer wg.Done()
			logger.InfoCtx(ctx, "Starting supervisor", zap.String("family", string(s.Family())))
			s.Run(ctx)
		}(s)
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))

	cancel()
	for _, s := range supervisors {
		if err := s.Close(); err != nil {
			logger.Warn("Failed to close supervisor", zap.String("family", string(s.Family())), zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		logger.Warn("Supervisors did not stop in time")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "ops"))
	}

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Stream stopped")
}
