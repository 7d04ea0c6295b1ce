// Package stream keeps one websocket subscription per contract family alive and feeds
// the transactions it receives to the family router.
package stream

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/codec"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/handlers"
	"github.com/feral-file/sei-marketplace-indexer/internal/ledger"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/metrics"
)

const (
	defaultPingInterval = 30 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

// Config holds the supervisor settings
type Config struct {
	URL       string
	Contracts codec.Contracts
	// ReconnectDelay is waited between a disconnect and the next dial, zero reconnects at once
	ReconnectDelay time.Duration
	PingInterval   time.Duration
	// ReadTimeout is the read deadline, refreshed by every frame and pong. Zero disables it.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Supervisor owns the subscription of one family
type Supervisor struct {
	family    domain.StreamContext
	config    Config
	dialer    adapter.WSDialer
	decoder   *codec.Decoder
	processor handlers.Processor
	ledger    ledger.Ledger
	clock     adapter.Clock

	mu   sync.Mutex
	conn adapter.WSConn
}

// New creates a supervisor for the family served by processor
func New(config Config, dialer adapter.WSDialer, decoder *codec.Decoder, processor handlers.Processor, l ledger.Ledger, clock adapter.Clock) *Supervisor {
	if config.PingInterval <= 0 {
		config.PingInterval = defaultPingInterval
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = defaultWriteTimeout
	}

	return &Supervisor{
		family:    processor.Family(),
		config:    config,
		dialer:    dialer,
		decoder:   decoder,
		processor: processor,
		ledger:    l,
		clock:     clock,
	}
}

func (s *Supervisor) Family() domain.StreamContext {
	return s.family
}

// Run keeps the subscription alive until ctx is cancelled. Every lost connection leaves a
// gap checkpoint for the sweeper before the next dial.
func (s *Supervisor) Run(ctx context.Context) {
	ctx = logger.WithFields(ctx, zap.String("family", string(s.family)))
	logger.InfoCtx(ctx, "Starting stream supervisor", zap.String("url", s.config.URL))

	for {
		err := s.session(ctx)
		if ctx.Err() != nil {
			logger.InfoCtx(ctx, "Stream supervisor stopped")
			return
		}

		metrics.StreamReconnects.WithLabelValues(string(s.family)).Inc()
		logger.WarnCtx(ctx, "Stream disconnected, reconnecting",
			zap.Error(err),
			zap.Duration("delay", s.config.ReconnectDelay))

		s.ledger.MarkGap(ctx, s.family)

		if err := s.clock.SleepContext(ctx, s.config.ReconnectDelay); err != nil {
			logger.InfoCtx(ctx, "Stream supervisor stopped")
			return
		}
	}
}

// Close closes the active connection, which makes Run reconnect
func (s *Supervisor) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// session runs one connection from dial to disconnect
func (s *Supervisor) session(ctx context.Context) error {
	conn, err := s.dialer.Dial(ctx, s.config.URL)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}
	s.setConn(conn)
	defer func() {
		_ = s.Close()
	}()

	request, err := codec.NewSubscribeRequest(s.family, s.config.Contracts)
	if err != nil {
		return err
	}

	if err := conn.SetWriteDeadline(s.clock.Now().Add(s.config.WriteTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := conn.WriteJSON(request); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	logger.InfoCtx(ctx, "Subscribed", zap.String("query", request.Params.Query))

	if err := s.extendReadDeadline(conn); err != nil {
		return err
	}
	conn.SetPongHandler(func(string) error {
		return s.extendReadDeadline(conn)
	})

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.pingLoop(sessionCtx, conn)
	go func() {
		// Unblocks ReadMessage on shutdown
		<-sessionCtx.Done()
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read: %w", err)
		}
		metrics.StreamFrames.WithLabelValues(string(s.family)).Inc()

		if err := s.extendReadDeadline(conn); err != nil {
			return err
		}

		if err := s.handleFrame(ctx, data); err != nil {
			return err
		}
	}
}

// handleFrame processes one frame. Only a rejected subscription ends the session.
func (s *Supervisor) handleFrame(ctx context.Context, data []byte) error {
	msg, err := s.decoder.DecodeMessage(data)
	if errors.Is(err, domain.ErrSubscriptionFailed) {
		return err
	}
	if err != nil {
		logger.WarnCtx(ctx, "Dropping undecodable frame", zap.Error(err))
		return nil
	}

	if msg.TxHash == "" {
		return nil
	}

	events := codec.Filter(s.family, msg.Events, s.config.Contracts)
	if len(events) == 0 {
		return nil
	}

	now := s.clock.Now()
	metrics.StreamLastMessage.WithLabelValues(string(s.family)).Set(float64(now.Unix()))

	summary := s.processor.Process(ctx, msg.TxHash, events, now, domain.ModeStream)
	logger.DebugCtx(ctx, "Processed transaction",
		zap.String("tx_hash", msg.TxHash),
		zap.Int64("height", msg.Height),
		zap.Int("handled", summary.Handled),
		zap.Int("failed", summary.Failed))

	return nil
}

func (s *Supervisor) pingLoop(ctx context.Context, conn adapter.WSConn) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := s.clock.Now().Add(s.config.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				logger.WarnCtx(ctx, "Failed to send ping", zap.Error(err))
				return
			}
		}
	}
}

func (s *Supervisor) extendReadDeadline(conn adapter.WSConn) error {
	if s.config.ReadTimeout <= 0 {
		return nil
	}
	if err := conn.SetReadDeadline(s.clock.Now().Add(s.config.ReadTimeout)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}
	return nil
}

func (s *Supervisor) setConn(conn adapter.WSConn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn = conn
}
