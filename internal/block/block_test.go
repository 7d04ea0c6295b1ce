package block_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/sei-marketplace-indexer/internal/block"
	"github.com/feral-file/sei-marketplace-indexer/internal/chain"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/mocks"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testBlockProviderMocks struct {
	ctrl     *gomock.Controller
	fetcher  *mocks.MockBlockFetcher
	clock    *mocks.MockClock
	provider block.BlockProvider
}

func setupTest(t *testing.T, cfg block.Config) *testBlockProviderMocks {
	ctrl := gomock.NewController(t)

	mockFetcher := mocks.NewMockBlockFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	return &testBlockProviderMocks{
		ctrl:     ctrl,
		fetcher:  mockFetcher,
		clock:    mockClock,
		provider: block.NewBlockProvider(mockFetcher, cfg, mockClock),
	}
}

func tearDownTest(tm *testBlockProviderMocks) {
	tm.ctrl.Finish()
}

var defaultConfig = block.Config{
	TTL:         10 * time.Second,
	StaleWindow: 2 * time.Minute,
}

func TestBlockProvider_GetLatestBlock_FirstFetch(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(int64(1000), nil)

	height, err := tm.provider.GetLatestBlock(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), height)
}

func TestBlockProvider_GetLatestBlock_UsesCache_WithinTTL(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(int64(1000), nil).Times(1)

	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(5 * time.Second))
	height, err := tm.provider.GetLatestBlock(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), height)
}

func TestBlockProvider_GetLatestBlock_RefreshesCache_AfterTTL(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(int64(1000), nil),
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(int64(1005), nil),
	)
	tm.clock.EXPECT().Now().Return(now)
	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(11 * time.Second))
	height, err := tm.provider.GetLatestBlock(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1005), height)
}

func TestBlockProvider_GetLatestBlock_UsesStaleCacheOnError_WithinStaleWindow(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(int64(1000), nil)
	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(time.Minute))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(int64(0), errors.New("gateway unavailable"))
	height, err := tm.provider.GetLatestBlock(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), height)
}

func TestBlockProvider_GetLatestBlock_ReturnsError_WhenNoCache_AndFetchFails(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tearDownTest(tm)

	ctx := context.Background()

	tm.clock.EXPECT().Now().Return(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(int64(0), errors.New("gateway unavailable"))

	height, err := tm.provider.GetLatestBlock(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid cache available")
	assert.Zero(t, height)
}

func TestBlockProvider_GetLatestBlock_ReturnsError_WhenStaleCache_BeyondStaleWindow(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(int64(1000), nil)
	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(3 * time.Minute))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(int64(0), errors.New("gateway unavailable"))
	_, err = tm.provider.GetLatestBlock(ctx)

	require.Error(t, err)
}

func TestBlockProvider_GetBlockTime_CachesForever(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tearDownTest(tm)

	ctx := context.Background()
	blockTime := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tm.fetcher.EXPECT().FetchBlockTime(ctx, int64(42)).Return(blockTime, nil).Times(1)

	for i := 0; i < 3; i++ {
		got, err := tm.provider.GetBlockTime(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, blockTime, got)
	}
}

func TestBlockProvider_GetBlockTime_ReturnsFetchError(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.fetcher.EXPECT().FetchBlockTime(ctx, int64(42)).Return(time.Time{}, errors.New("pruned"))

	_, err := tm.provider.GetBlockTime(ctx, 42)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "height 42")
}

func TestBlockProvider_GetBlockTime_ResetsWhenCapReached(t *testing.T) {
	tm := setupTest(t, block.Config{MaxCachedTimes: 2})
	defer tearDownTest(tm)

	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tm.fetcher.EXPECT().FetchBlockTime(ctx, int64(1)).Return(base, nil).Times(2)
	tm.fetcher.EXPECT().FetchBlockTime(ctx, int64(2)).Return(base.Add(time.Second), nil).Times(1)
	tm.fetcher.EXPECT().FetchBlockTime(ctx, int64(3)).Return(base.Add(2*time.Second), nil).Times(1)

	for _, h := range []int64{1, 2, 3, 1} {
		_, err := tm.provider.GetBlockTime(ctx, h)
		require.NoError(t, err)
	}
}

func TestBlockProvider_GetBlockTime_ConcurrentAccess(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tearDownTest(tm)

	ctx := context.Background()
	blockTime := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tm.fetcher.EXPECT().FetchBlockTime(ctx, int64(7)).Return(blockTime, nil).MinTimes(1)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := tm.provider.GetBlockTime(ctx, 7)
			assert.NoError(t, err)
			assert.Equal(t, blockTime, got)
		}()
	}
	wg.Wait()
}

func TestChainFetcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	client := mocks.NewMockChainClient(ctrl)
	blockTime := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	client.EXPECT().GetBlock(ctx, int64(0)).Return(&chain.Block{Height: 900, Time: blockTime}, nil)
	client.EXPECT().GetBlock(ctx, int64(850)).Return(&chain.Block{Height: 850, Time: blockTime}, nil)

	fetcher := block.NewChainFetcher(client)

	height, err := fetcher.FetchLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(900), height)

	got, err := fetcher.FetchBlockTime(ctx, 850)
	require.NoError(t, err)
	assert.Equal(t, blockTime, got)
}
