package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
)

// CursorStore defines the interface for storing and retrieving block height cursors
type CursorStore interface {
	// GetHeightCursor retrieves the last processed height stored under name, 0 when unset
	GetHeightCursor(ctx context.Context, name string) (int64, error)
	// SetHeightCursor stores the last processed height under name
	SetHeightCursor(ctx context.Context, name string, height int64) error
}

type cursorStore struct {
	db *gorm.DB
}

// NewCursorStore creates a new cursor store
func NewCursorStore(db *gorm.DB) CursorStore {
	return &cursorStore{db: db}
}

func (s *cursorStore) GetHeightCursor(ctx context.Context, name string) (int64, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", name).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get height cursor: %w", err)
	}

	height, err := strconv.ParseInt(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse height cursor %q: %w", kv.Value, err)
	}

	return height, nil
}

func (s *cursorStore) SetHeightCursor(ctx context.Context, name string, height int64) error {
	kv := schema.KeyValueStore{
		Key:   name,
		Value: strconv.FormatInt(height, 10),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set height cursor: %w", err)
	}

	return nil
}
