package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/sei-marketplace-indexer/internal/block"
	"github.com/feral-file/sei-marketplace-indexer/internal/chain"
	"github.com/feral-file/sei-marketplace-indexer/internal/codec"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/handlers"
	"github.com/feral-file/sei-marketplace-indexer/internal/ledger"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/metrics"
)

// TxReconciler replays historical transactions through the family routers.
// A transaction already in the ledger for a family is not replayed for that family.
// Transactions are always applied in chain order: handlers that read stored state
// (bids, edits, pallet cancels) depend on what earlier transactions wrote.
//
//go:generate mockgen -source=reconcile.go -destination=../mocks/tx_reconciler.go -package=mocks -mock_names=TxReconciler=MockTxReconciler
type TxReconciler interface {
	// ReconcileTx replays one transaction for every family it has events for
	ReconcileTx(ctx context.Context, tx chain.Tx) error
	// ReconcileTxHash fetches a transaction by hash and replays it
	ReconcileTxHash(ctx context.Context, hash string) error
	// ReconcileHeight replays every transaction of a block in chain order
	ReconcileHeight(ctx context.Context, height int64) error
	// ReconcileRange replays the blocks from..to inclusive in ascending order. Blocks are
	// fetched concurrently but applied one at a time; done is called after each height and
	// an error from it stops the range.
	ReconcileRange(ctx context.Context, from, to int64, done func(height int64) error) error
	// Close stops the worker pool
	Close()
}

// TxReconcilerConfig holds the replay settings
type TxReconcilerConfig struct {
	Contracts codec.Contracts
	// PoolSize bounds the concurrent block fetches of a range
	PoolSize  int
	QueueSize int
}

type txReconciler struct {
	chain      chain.Client
	blocks     block.BlockProvider
	ledger     ledger.Ledger
	processors []handlers.Processor
	contracts  codec.Contracts
	pool       pond.ResultPool[[]chain.Tx]
}

// NewTxReconciler creates a reconciler replaying through processors, in the given order
func NewTxReconciler(
	config TxReconcilerConfig,
	chainClient chain.Client,
	blocks block.BlockProvider,
	l ledger.Ledger,
	processors []handlers.Processor,
) TxReconciler {
	if config.PoolSize <= 0 {
		config.PoolSize = 1
	}

	return &txReconciler{
		chain:      chainClient,
		blocks:     blocks,
		ledger:     l,
		processors: processors,
		contracts:  config.Contracts,
		pool:       pond.NewResultPool[[]chain.Tx](config.PoolSize, pond.WithQueueSize(config.QueueSize)),
	}
}

func (r *txReconciler) ReconcileTx(ctx context.Context, tx chain.Tx) error {
	var date *time.Time
	for _, processor := range r.processors {
		family := processor.Family()

		events := codec.Filter(family, tx.Events, r.contracts)
		if len(events) == 0 {
			continue
		}

		exists, err := r.ledger.Exists(ctx, tx.Hash, family)
		if err != nil {
			return fmt.Errorf("failed to check ledger: %w", err)
		}
		if exists {
			logger.DebugCtx(ctx, "Transaction already processed",
				zap.String("tx_hash", tx.Hash),
				zap.String("family", string(family)))
			continue
		}

		// Replays are dated with the block time, fetched once per transaction
		if date == nil {
			blockTime, err := r.blocks.GetBlockTime(ctx, tx.Height)
			if err != nil {
				return fmt.Errorf("failed to get block time: %w", err)
			}
			date = &blockTime
		}

		summary := processor.Process(ctx, tx.Hash, events, *date, domain.ModeScanner)
		metrics.SweeperTxsReplayed.WithLabelValues(string(family)).Inc()

		logger.InfoCtx(ctx, "Replayed transaction",
			zap.String("tx_hash", tx.Hash),
			zap.Int64("height", tx.Height),
			zap.String("family", string(family)),
			zap.Int("handled", summary.Handled),
			zap.Int("failed", summary.Failed))
	}

	return nil
}

func (r *txReconciler) ReconcileTxHash(ctx context.Context, hash string) error {
	tx, err := r.chain.GetTx(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to get tx: %w", err)
	}
	if tx == nil {
		return fmt.Errorf("%w: tx %s", domain.ErrNotFound, hash)
	}

	return r.ReconcileTx(ctx, *tx)
}

func (r *txReconciler) ReconcileHeight(ctx context.Context, height int64) error {
	txs, err := r.fetchHeight(ctx, height)
	if err != nil {
		return err
	}
	return r.applyHeight(ctx, height, txs)
}

func (r *txReconciler) ReconcileRange(ctx context.Context, from, to int64, done func(height int64) error) error {
	if from > to {
		return nil
	}

	// Pending fetches are abandoned once the range stops
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make([]pond.ResultTask[[]chain.Tx], 0, to-from+1)
	for height := from; height <= to; height++ {
		h := height
		tasks = append(tasks, r.pool.SubmitErr(func() ([]chain.Tx, error) {
			return r.fetchHeight(fetchCtx, h)
		}))
	}

	for i, task := range tasks {
		height := from + int64(i)

		txs, err := task.Wait()
		if err != nil {
			return err
		}
		if err := r.applyHeight(ctx, height, txs); err != nil {
			return err
		}
		if done != nil {
			if err := done(height); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *txReconciler) Close() {
	r.pool.StopAndWait()
}

func (r *txReconciler) fetchHeight(ctx context.Context, height int64) ([]chain.Tx, error) {
	txs, err := r.chain.GetTxsByHeight(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("failed to get txs at height %d: %w", height, err)
	}
	return txs, nil
}

// applyHeight replays the transactions of one block sequentially, in the order the chain returned them
func (r *txReconciler) applyHeight(ctx context.Context, height int64, txs []chain.Tx) error {
	for _, tx := range txs {
		if err := r.ReconcileTx(ctx, tx); err != nil {
			return fmt.Errorf("failed to reconcile height %d: %w", height, err)
		}
	}

	if len(txs) > 0 {
		logger.DebugCtx(ctx, "Reconciled height", zap.Int64("height", height), zap.Int("txs", len(txs)))
	}

	return nil
}
