package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/codec"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/ledger"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/metrics"
	"github.com/feral-file/sei-marketplace-indexer/internal/notify"
)

// Summary counts the outcomes of one transaction. Skipped events are also counted as handled.
type Summary struct {
	Handled int
	Skipped int
	Failed  int
}

// Processor applies the events of one transaction for a single contract family
//
//go:generate mockgen -source=router.go -destination=../mocks/processor.go -package=mocks -mock_names=Processor=MockProcessor
type Processor interface {
	Family() domain.StreamContext
	// Process handles events in order. A failing event never prevents its siblings from running.
	Process(ctx context.Context, txHash string, events []domain.Event, date time.Time, mode domain.Mode) Summary
}

// Router dispatches the events of one family to their handlers and records every outcome
type Router struct {
	family    domain.StreamContext
	handlers  map[string]Handler
	ledger    ledger.Ledger
	publisher notify.Publisher
	clock     adapter.Clock
}

// NewRouter creates the router of family with the built-in handler set
func NewRouter(family domain.StreamContext, deps Deps, l ledger.Ledger, publisher notify.Publisher, clock adapter.Clock) (*Router, error) {
	var handlers map[string]Handler
	switch family {
	case domain.ContextCwr721:
		handlers = NewCw721(deps).Handlers()
	case domain.ContextMrkt:
		handlers = NewMrkt(deps).Handlers()
	case domain.ContextPallet:
		handlers = NewPallet(deps).Handlers()
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFamily, family)
	}

	return &Router{
		family:    family,
		handlers:  handlers,
		ledger:    l,
		publisher: publisher,
		clock:     clock,
	}, nil
}

func (r *Router) Family() domain.StreamContext {
	return r.family
}

func (r *Router) Process(ctx context.Context, txHash string, events []domain.Event, date time.Time, mode domain.Mode) Summary {
	var summary Summary

	ctx = logger.WithFields(ctx,
		zap.String("tx_hash", txHash),
		zap.String("family", string(r.family)),
		zap.String("mode", string(mode)))

	for _, event := range events {
		action := codec.Tag(r.family, event)
		handler, ok := r.handlers[action]
		if !ok {
			continue
		}

		start := r.clock.Now()
		result := r.dispatch(ctx, handler, action, domain.Input{
			Event:  event,
			TxHash: txHash,
			Date:   date,
			Mode:   mode,
		})
		metrics.HandlerDuration.WithLabelValues(string(r.family), action).Observe(r.clock.Since(start).Seconds())

		switch {
		case result.IsOK():
			summary.Handled++
			metrics.EventsProcessed.WithLabelValues(string(r.family), action, metrics.OutcomeOK).Inc()
			logger.InfoCtx(ctx, fmt.Sprintf("Done handling %s", action))
		case result.IsSkip():
			summary.Handled++
			summary.Skipped++
			metrics.EventsProcessed.WithLabelValues(string(r.family), action, metrics.OutcomeSkip).Inc()
			logger.DebugCtx(ctx, "Skipped event", zap.String("action", action), zap.String("reason", result.Reason()))
		default:
			summary.Failed++
			metrics.EventsProcessed.WithLabelValues(string(r.family), action, metrics.OutcomeError).Inc()
			logger.ErrorCtx(ctx, result.Error(), zap.String("action", action))
		}

		written := r.ledger.Record(ctx, ledger.Entry{
			TxHash:  txHash,
			Action:  action,
			Context: r.family,
			Event:   event,
			Err:     result.Error(),
		})
		if !written.OK() {
			metrics.LedgerWriteFailures.WithLabelValues(string(r.family)).Inc()
		}

		if result.IsOK() {
			r.publish(ctx, txHash, action, event, date)
		}
	}

	return summary
}

// dispatch runs a handler and turns a panic into a failed result
func (r *Router) dispatch(ctx context.Context, handler Handler, action string, in domain.Input) (result domain.Result) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = domain.Err(fmt.Errorf("panic in %s handler: %v", action, recovered))
		}
	}()

	return handler(ctx, in)
}

func (r *Router) publish(ctx context.Context, txHash, action string, event domain.Event, date time.Time) {
	err := r.publisher.Publish(ctx, notify.Notification{
		TxHash:     txHash,
		Context:    r.family,
		Action:     action,
		Attributes: event.Attributes,
		Date:       date,
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to publish notification", zap.String("action", action), zap.Error(err))
	}
}
