package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// StreamTx represents the stream_txs table, the audit ledger of handled events
type StreamTx struct {
	ID      int64                `gorm:"column:id;primaryKey;autoIncrement"`
	TxHash  string               `gorm:"column:tx_hash;not null;type:text;index:idx_stream_txs_hash_context,priority:1"`
	Action  string               `gorm:"column:action;not null;type:text"`
	Context domain.StreamContext `gorm:"column:context;not null;type:text;index:idx_stream_txs_hash_context,priority:2"`
	// Event is the canonical JSON of the handled event
	Event     datatypes.JSON `gorm:"column:event"`
	IsFailure bool           `gorm:"column:is_failure;not null;default:false"`
	Message   *string        `gorm:"column:message;type:text"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (StreamTx) TableName() string {
	return "stream_txs"
}

// MissingStreamBlock represents the missing_stream_blocks table: chain heights at which a
// stream subscription dropped. The sweeper replays a window ending at Height.
type MissingStreamBlock struct {
	ID         int64                `gorm:"column:id;primaryKey;autoIncrement"`
	Context    domain.StreamContext `gorm:"column:context;not null;type:text"`
	Height     int64                `gorm:"column:height;not null"`
	ResolvedAt *time.Time           `gorm:"column:resolved_at;index:idx_missing_stream_blocks_resolved"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
}

func (MissingStreamBlock) TableName() string {
	return "missing_stream_blocks"
}
