package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type jetStreamPublisher struct {
	nc            adapter.NatsConn
	js            adapter.JetStream
	streamName    string
	subjectPrefix string
	json          adapter.JSON
	clock         adapter.Clock
}

// NewJetStreamPublisher connects to NATS and returns a JetStream publisher
func NewJetStreamPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON, clock adapter.Clock) (Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = "marketplace"
	}

	return &jetStreamPublisher{
		nc:            nc,
		js:            js,
		streamName:    cfg.StreamName,
		subjectPrefix: prefix,
		json:          jsonAdapter,
		clock:         clock,
	}, nil
}

func (p *jetStreamPublisher) Publish(ctx context.Context, notification Notification) error {
	if notification.ID == "" {
		notification.ID = ulid.MustNew(ulid.Timestamp(p.clock.Now()), ulid.DefaultEntropy()).String()
	}

	data, err := p.json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// Format: {prefix}.{context}.{action}, e.g. marketplace.mrkt.start_sale
	subject := fmt.Sprintf("%s.%s.%s", p.subjectPrefix, notification.Context, notification.Action)

	opts := []jetstream.PublishOpt{jetstream.WithMsgID(notification.ID)}
	if p.streamName != "" {
		opts = append(opts, jetstream.WithExpectStream(p.streamName))
	}

	if _, err := p.js.Publish(ctx, subject, data, opts...); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	logger.DebugCtx(ctx, "Published notification", zap.String("subject", subject), zap.String("id", notification.ID))

	return nil
}

// Close closes the NATS connection
func (p *jetStreamPublisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
