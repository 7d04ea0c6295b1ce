package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/chain"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
)

// DefaultMaxCachedTimes bounds the block time cache when Config.MaxCachedTimes is unset
const DefaultMaxCachedTimes = 10_000

// head is the cached chain head
type head struct {
	Height    int64
	FetchedAt time.Time
}

// BlockProvider provides cached access to the chain head height and block header times.
// Sweeps replay many transactions of the same block, and the checkpoint recorder asks for
// the head on every reconnect, so both are served from memory where possible.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider,BlockFetcher=MockBlockFetcher
type BlockProvider interface {
	// GetLatestBlock returns the chain head height, potentially from cache
	GetLatestBlock(ctx context.Context) (int64, error)

	// GetBlockTime returns the header time of the block at height, potentially from cache
	GetBlockTime(ctx context.Context, height int64) (time.Time, error)
}

// BlockFetcher reads block headers from the chain
type BlockFetcher interface {
	FetchLatestBlock(ctx context.Context) (int64, error)
	FetchBlockTime(ctx context.Context, height int64) (time.Time, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long the head height is served from cache
	TTL time.Duration

	// StaleWindow is how long a cached head may still be served when a refresh fails
	StaleWindow time.Duration

	// MaxCachedTimes caps the number of block times kept in memory.
	// Header times never change, so entries are only dropped when the cap is reached.
	MaxCachedTimes int
}

type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu         sync.RWMutex
	head       *head
	blockTimes map[int64]time.Time
}

// NewBlockProvider creates a new BlockProvider with caching
func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	if config.MaxCachedTimes <= 0 {
		config.MaxCachedTimes = DefaultMaxCachedTimes
	}
	return &blockProvider{
		fetcher:    fetcher,
		config:     config,
		clock:      clock,
		blockTimes: make(map[int64]time.Time),
	}
}

// GetLatestBlock returns the head height, using cache if valid
func (p *blockProvider) GetLatestBlock(ctx context.Context) (int64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.FetchedAt) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached head height", zap.Int64("height", cached.Height))
		return cached.Height, nil
	}

	height, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.FetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale head height",
				zap.Int64("height", cached.Height),
				zap.Error(err))
			return cached.Height, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.head = &head{Height: height, FetchedAt: now}
	p.mu.Unlock()

	return height, nil
}

// GetBlockTime returns the header time of a block, fetching it once
func (p *blockProvider) GetBlockTime(ctx context.Context, height int64) (time.Time, error) {
	p.mu.RLock()
	cached, ok := p.blockTimes[height]
	p.mu.RUnlock()

	if ok {
		return cached, nil
	}

	logger.DebugCtx(ctx, "Fetching block time", zap.Int64("height", height))
	blockTime, err := p.fetcher.FetchBlockTime(ctx, height)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch block time for height %d: %w", height, err)
	}

	p.mu.Lock()
	if len(p.blockTimes) >= p.config.MaxCachedTimes {
		p.blockTimes = make(map[int64]time.Time)
	}
	p.blockTimes[height] = blockTime
	p.mu.Unlock()

	return blockTime, nil
}

// chainFetcher reads block headers through the chain REST client
type chainFetcher struct {
	client chain.Client
}

// NewChainFetcher returns a BlockFetcher backed by client
func NewChainFetcher(client chain.Client) BlockFetcher {
	return &chainFetcher{client: client}
}

func (f *chainFetcher) FetchLatestBlock(ctx context.Context) (int64, error) {
	b, err := f.client.GetBlock(ctx, 0)
	if err != nil {
		return 0, err
	}
	return b.Height, nil
}

func (f *chainFetcher) FetchBlockTime(ctx context.Context, height int64) (time.Time, error) {
	b, err := f.client.GetBlock(ctx, height)
	if err != nil {
		return time.Time{}, err
	}
	return b.Time, nil
}
