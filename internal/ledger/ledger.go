package ledger

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/block"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/store"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
)

// DefaultGapAttempts is how many times the head height is requested when marking a gap
const DefaultGapAttempts = 6

// Entry is one processing attempt of one event
type Entry struct {
	TxHash  string
	Action  string
	Context domain.StreamContext
	Event   domain.Event
	// Err is the handler failure, nil for handled and skipped events
	Err error
}

// WriteResult reports the outcome of a best-effort ledger write.
// Callers may inspect it but must not fail event processing on it.
type WriteResult struct {
	Err error
}

func (w WriteResult) OK() bool {
	return w.Err == nil
}

// Ledger records processing attempts and stream gaps.
// An entry for (tx hash, context), failed or not, marks the transaction as already attempted.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// Record writes an audit entry. Write failures are logged and returned in the result only.
	Record(ctx context.Context, entry Entry) WriteResult
	// Exists reports whether any attempt was recorded for the transaction in the context
	Exists(ctx context.Context, txHash string, streamContext domain.StreamContext) (bool, error)
	// MarkGap records the current head height as a window the sweeper must revisit
	MarkGap(ctx context.Context, streamContext domain.StreamContext) WriteResult
}

// Config holds the ledger settings
type Config struct {
	// GapAttempts counts the first head request
	GapAttempts uint64
}

type ledger struct {
	store  store.Store
	blocks block.BlockProvider
	json   adapter.JSON
	config Config
}

// New creates a ledger
func New(st store.Store, blocks block.BlockProvider, json adapter.JSON, config Config) Ledger {
	if config.GapAttempts == 0 {
		config.GapAttempts = DefaultGapAttempts
	}
	return &ledger{
		store:  st,
		blocks: blocks,
		json:   json,
		config: config,
	}
}

func (l *ledger) Record(ctx context.Context, entry Entry) WriteResult {
	streamTx := &schema.StreamTx{
		TxHash:  entry.TxHash,
		Action:  entry.Action,
		Context: entry.Context,
	}

	payload, err := l.json.MarshalCanonical(entry.Event)
	if err != nil {
		// Keep the attempt even when the payload cannot be encoded
		logger.WarnCtx(ctx, "Failed to canonicalize ledger event", zap.String("txHash", entry.TxHash), zap.Error(err))
	} else {
		streamTx.Event = datatypes.JSON(payload)
	}

	if entry.Err != nil {
		message := entry.Err.Error()
		streamTx.IsFailure = true
		streamTx.Message = &message
	}

	if err := l.store.CreateStreamTx(ctx, streamTx); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to create stream tx: %w", err),
			zap.String("txHash", entry.TxHash),
			zap.String("action", entry.Action),
			zap.String("context", string(entry.Context)))
		return WriteResult{Err: err}
	}

	return WriteResult{}
}

func (l *ledger) Exists(ctx context.Context, txHash string, streamContext domain.StreamContext) (bool, error) {
	exists, err := l.store.StreamTxExists(ctx, txHash, streamContext)
	if err != nil {
		return false, fmt.Errorf("failed to look up stream tx: %w", err)
	}
	return exists, nil
}

func (l *ledger) MarkGap(ctx context.Context, streamContext domain.StreamContext) WriteResult {
	var height int64
	operation := func() error {
		h, err := l.blocks.GetLatestBlock(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		height = h
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, l.config.GapAttempts-1), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to get head height for missing stream block: %w", err),
			zap.String("context", string(streamContext)))
		return WriteResult{Err: err}
	}

	if err := l.store.CreateMissingStreamBlock(ctx, streamContext, height); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to create missing stream block: %w", err),
			zap.String("context", string(streamContext)),
			zap.Int64("height", height))
		return WriteResult{Err: err}
	}

	logger.InfoCtx(ctx, "Recorded missing stream block",
		zap.String("context", string(streamContext)),
		zap.Int64("height", height))

	return WriteResult{}
}
