package notify

import (
	"context"
	"time"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// Notification announces one handled marketplace event
type Notification struct {
	ID         string               `json:"id"`
	TxHash     string               `json:"tx_hash"`
	Context    domain.StreamContext `json:"context"`
	Action     string               `json:"action"`
	Attributes []domain.Attribute   `json:"attributes"`
	Date       time.Time            `json:"date"`
}

// Publisher defines the interface for announcing handled events to downstream consumers
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// Publish sends a notification. ID is filled in when empty.
	Publish(ctx context.Context, notification Notification) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every notification
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Notification) error {
	return nil
}

func (noopPublisher) Close() {}
