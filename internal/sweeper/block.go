package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/block"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/metrics"
	"github.com/feral-file/sei-marketplace-indexer/internal/store"
)

const (
	DEFAULT_POLL_INTERVAL   = 5 * time.Second
	DEFAULT_LOOKBACK_BLOCKS = 20
	DEFAULT_BATCH_BLOCKS    = 50
	DEFAULT_GAP_BATCH_SIZE  = 10
)

// errStopped ends a cycle early when Stop is requested
var errStopped = errors.New("sweeper stopped")

// BlockSweeperConfig holds configuration for the block sweeper
type BlockSweeperConfig struct {
	// StartHeight is where the cursor starts when none is stored. Zero starts at the chain head.
	StartHeight int64
	// LookbackBlocks is how far before a gap checkpoint the sweep begins
	LookbackBlocks int64
	BatchBlocks    int64
	PollInterval   time.Duration
	GapBatchSize   int
}

// blockSweeper first closes the stream gaps recorded as checkpoints, then walks the
// current_height cursor toward the chain head
type blockSweeper struct {
	config     BlockSweeperConfig
	store      store.Store
	blocks     block.BlockProvider
	reconciler TxReconciler
	clock      adapter.Clock
	running    atomic.Bool
	stopChan   chan struct{}
	stoppedCh  chan struct{}
}

// NewBlockSweeper creates a new block sweeper
func NewBlockSweeper(
	config BlockSweeperConfig,
	st store.Store,
	blocks block.BlockProvider,
	reconciler TxReconciler,
	clock adapter.Clock,
) Sweeper {
	if config.PollInterval <= 0 {
		config.PollInterval = DEFAULT_POLL_INTERVAL
	}
	if config.LookbackBlocks <= 0 {
		config.LookbackBlocks = DEFAULT_LOOKBACK_BLOCKS
	}
	if config.BatchBlocks <= 0 {
		config.BatchBlocks = DEFAULT_BATCH_BLOCKS
	}
	if config.GapBatchSize <= 0 {
		config.GapBatchSize = DEFAULT_GAP_BATCH_SIZE
	}

	return &blockSweeper{
		config:     config,
		store:      st,
		blocks:     blocks,
		reconciler: reconciler,
		clock:      clock,
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *blockSweeper) Name() string {
	return "block-sweeper"
}

// Start runs sweep cycles until the context is canceled or Stop is called
func (s *blockSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting block sweeper",
		zap.Int64("start_height", s.config.StartHeight),
		zap.Int64("lookback_blocks", s.config.LookbackBlocks),
		zap.Int64("batch_blocks", s.config.BatchBlocks),
		zap.Duration("poll_interval", s.config.PollInterval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Block sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Block sweeper stop requested")
			return nil
		default:
		}

		caughtUp, err := s.runSweepCycle(ctx)
		if err != nil && !errors.Is(err, errStopped) && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		if err != nil || caughtUp {
			s.sleep(ctx, s.config.PollInterval)
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *blockSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping block sweeper")

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Block sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Block sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle resolves pending gaps then advances the cursor by at most one batch.
// It reports whether the cursor reached the chain head.
func (s *blockSweeper) runSweepCycle(ctx context.Context) (bool, error) {
	if err := s.resolveGaps(ctx); err != nil {
		return false, err
	}
	return s.advanceCursor(ctx)
}

func (s *blockSweeper) resolveGaps(ctx context.Context) error {
	gaps, err := s.store.ListUnresolvedMissingStreamBlocks(ctx, s.config.GapBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list missing stream blocks: %w", err)
	}

	for _, gap := range gaps {
		from := gap.Height - s.config.LookbackBlocks
		if from < 1 {
			from = 1
		}

		logger.InfoCtx(ctx, "Sweeping stream gap",
			zap.String("family", string(gap.Context)),
			zap.Int64("from", from),
			zap.Int64("to", gap.Height))

		if err := s.checkStopped(ctx); err != nil {
			return err
		}
		err := s.reconciler.ReconcileRange(ctx, from, gap.Height, func(int64) error {
			return s.checkStopped(ctx)
		})
		if err != nil {
			return err
		}

		if err := s.store.ResolveMissingStreamBlock(ctx, gap.ID, s.clock.Now()); err != nil {
			return fmt.Errorf("failed to resolve missing stream block: %w", err)
		}
		metrics.SweeperGapsResolved.Inc()
	}

	return nil
}

func (s *blockSweeper) advanceCursor(ctx context.Context) (bool, error) {
	latest, err := s.blocks.GetLatestBlock(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get latest block: %w", err)
	}

	cursor, err := s.store.GetHeightCursor(ctx, domain.CurrentHeightCursor)
	if err != nil {
		return false, err
	}

	if cursor == 0 {
		cursor = latest
		if s.config.StartHeight > 0 {
			cursor = s.config.StartHeight - 1
		}
		if err := s.store.SetHeightCursor(ctx, domain.CurrentHeightCursor, cursor); err != nil {
			return false, err
		}
		logger.InfoCtx(ctx, "Initialized height cursor", zap.Int64("cursor", cursor))
	}

	end := cursor + s.config.BatchBlocks
	if end > latest {
		end = latest
	}

	if end <= cursor {
		return true, nil
	}
	if err := s.checkStopped(ctx); err != nil {
		return false, err
	}
	// The cursor moves after each applied height so a failure resumes right after the last good one
	err = s.reconciler.ReconcileRange(ctx, cursor+1, end, func(height int64) error {
		if err := s.store.SetHeightCursor(ctx, domain.CurrentHeightCursor, height); err != nil {
			return err
		}
		metrics.SweeperCursorHeight.Set(float64(height))
		return s.checkStopped(ctx)
	})
	if err != nil {
		return false, err
	}

	return end >= latest, nil
}

func (s *blockSweeper) checkStopped(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopChan:
		return errStopped
	default:
		return nil
	}
}

// sleep waits for d, returning early on context cancellation or stop
func (s *blockSweeper) sleep(ctx context.Context, d time.Duration) {
	sleepCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.stopChan:
			cancel()
		case <-sleepCtx.Done():
		}
	}()

	_ = s.clock.SleepContext(sleepCtx, d)
}
