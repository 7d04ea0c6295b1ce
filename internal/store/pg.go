package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
)

type pgStore struct {
	CursorStore
	db *gorm.DB
}

// NewPGStore creates a new store over db. The connection should be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{
		CursorStore: NewCursorStore(db),
		db:          db,
	}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0, defaults from NormalizeConnectionPoolSettings are used.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// isDuplicate reports whether err is a unique constraint violation.
// The message checks cover drivers opened without TranslateError.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *pgStore) GetCollectionByAddress(ctx context.Context, address string) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

func (s *pgStore) CreateCollection(ctx context.Context, collection *schema.Collection) error {
	if err := s.db.WithContext(ctx).Create(collection).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: collection %s", ErrDuplicate, collection.Address)
		}
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func (s *pgStore) GetNft(ctx context.Context, address, tokenID string) (*schema.Nft, error) {
	var nft schema.Nft
	err := s.db.WithContext(ctx).
		Where("token_address = ? AND token_id = ?", address, tokenID).
		First(&nft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get nft: %w", err)
	}
	return &nft, nil
}

func (s *pgStore) CreateNft(ctx context.Context, nft *schema.Nft) error {
	if err := s.db.WithContext(ctx).Create(nft).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: nft %s/%s", ErrDuplicate, nft.TokenAddress, nft.TokenID)
		}
		return fmt.Errorf("failed to create nft: %w", err)
	}
	return nil
}

func (s *pgStore) UpdateNftOwner(ctx context.Context, nftID int64, owner string) error {
	err := s.db.WithContext(ctx).Model(&schema.Nft{}).
		Where("id = ?", nftID).
		Update("owner_address", owner).Error
	if err != nil {
		return fmt.Errorf("failed to update nft owner: %w", err)
	}
	return nil
}

func (s *pgStore) UpsertListing(ctx context.Context, listing *schema.Listing) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "nft_id"}, {Name: "market"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tx_hash",
			"collection_address",
			"seller_address",
			"price",
			"denom",
			"sale_type",
			"min_bid_increment_percent",
			"start_date",
			"end_date",
			"expiration_time",
			"created_date",
		}),
	}).Create(listing).Error
	if err != nil {
		return fmt.Errorf("failed to upsert listing: %w", err)
	}
	return nil
}

func (s *pgStore) GetListing(ctx context.Context, nftID int64, market domain.Marketplace) (*schema.Listing, error) {
	var listing schema.Listing
	err := s.db.WithContext(ctx).
		Where("nft_id = ? AND market = ?", nftID, market).
		First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

func (s *pgStore) DeleteListing(ctx context.Context, nftID int64, market domain.Marketplace) error {
	err := s.db.WithContext(ctx).
		Where("nft_id = ? AND market = ?", nftID, market).
		Delete(&schema.Listing{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return nil
}

func (s *pgStore) UpdateListingTerms(ctx context.Context, listingID int64, terms ListingTerms) error {
	updates := map[string]interface{}{}
	if terms.Price != nil {
		updates["price"] = *terms.Price
	}
	if terms.MinBidIncrementPercent != nil {
		updates["min_bid_increment_percent"] = *terms.MinBidIncrementPercent
	}
	if len(updates) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Model(&schema.Listing{}).
		Where("id = ?", listingID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update listing terms: %w", err)
	}
	return nil
}

func (s *pgStore) UpsertNftOffer(ctx context.Context, offer *schema.NftOffer) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "nft_id"}, {Name: "buyer_address"}, {Name: "price"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"denom",
			"tx_hash",
			"start_date",
			"end_date",
			"created_date",
		}),
	}).Create(offer).Error
	if err != nil {
		return fmt.Errorf("failed to upsert nft offer: %w", err)
	}
	return nil
}

func (s *pgStore) DeleteNftOffer(ctx context.Context, nftID int64, buyer string, price decimal.Decimal) error {
	err := s.db.WithContext(ctx).
		Where("nft_id = ? AND buyer_address = ? AND price = ?", nftID, buyer, price).
		Delete(&schema.NftOffer{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete nft offer: %w", err)
	}
	return nil
}

func (s *pgStore) UpsertCollectionOffer(ctx context.Context, offer *schema.CollectionOffer) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "collection_address"}, {Name: "buyer_address"}, {Name: "price"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"denom",
			"quantity",
			"current_quantity",
			"tx_hash",
			"start_date",
			"end_date",
			"created_date",
		}),
	}).Create(offer).Error
	if err != nil {
		return fmt.Errorf("failed to upsert collection offer: %w", err)
	}
	return nil
}

func (s *pgStore) UpdateCollectionOfferQuantity(ctx context.Context, address, buyer string, price decimal.Decimal, currentQuantity, quantity int64) error {
	err := s.db.WithContext(ctx).Model(&schema.CollectionOffer{}).
		Where("collection_address = ? AND buyer_address = ? AND price = ?", address, buyer, price).
		Updates(map[string]interface{}{
			"current_quantity": currentQuantity,
			"quantity":         quantity,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update collection offer quantity: %w", err)
	}
	return nil
}

func (s *pgStore) DeleteCollectionOffer(ctx context.Context, address, buyer string, price decimal.Decimal) error {
	err := s.db.WithContext(ctx).
		Where("collection_address = ? AND buyer_address = ? AND price = ?", address, buyer, price).
		Delete(&schema.CollectionOffer{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete collection offer: %w", err)
	}
	return nil
}

func (s *pgStore) CreateBidWithTransaction(ctx context.Context, transaction *schema.Transaction, bidding *schema.Bidding) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create bid transaction: %w", err)
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "listing_id"}, {Name: "buyer_address"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "denom", "tx_hash", "created_date"}),
		}).Create(bidding).Error; err != nil {
			return fmt.Errorf("failed to upsert bidding: %w", err)
		}

		return nil
	})
}

func (s *pgStore) DeleteBidding(ctx context.Context, listingID int64, buyer string) error {
	err := s.db.WithContext(ctx).
		Where("listing_id = ? AND buyer_address = ?", listingID, buyer).
		Delete(&schema.Bidding{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete bidding: %w", err)
	}
	return nil
}

func (s *pgStore) CreateActivity(ctx context.Context, activity *schema.Activity) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(activity).Error
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (s *pgStore) RecordSale(ctx context.Context, record SaleRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The sale activity claims the sale; a second writer of the same tx stops here
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record.Activity)
		if result.Error != nil {
			return fmt.Errorf("failed to create sale activity: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record.Transaction).Error; err != nil {
			return fmt.Errorf("failed to create sale transaction: %w", err)
		}
		points := []schema.UserLoyaltyPoint{record.BuyPoint, record.SellPoint}
		if err := tx.Create(&points).Error; err != nil {
			return fmt.Errorf("failed to create loyalty points: %w", err)
		}
		return nil
	})
}

func (s *pgStore) CreateStreamTx(ctx context.Context, streamTx *schema.StreamTx) error {
	if err := s.db.WithContext(ctx).Create(streamTx).Error; err != nil {
		return fmt.Errorf("failed to create stream tx: %w", err)
	}
	return nil
}

func (s *pgStore) StreamTxExists(ctx context.Context, txHash string, streamContext domain.StreamContext) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.StreamTx{}).
		Where("tx_hash = ? AND context = ?", txHash, streamContext).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check stream tx: %w", err)
	}
	return count > 0, nil
}

func (s *pgStore) CreateMissingStreamBlock(ctx context.Context, streamContext domain.StreamContext, height int64) error {
	block := schema.MissingStreamBlock{
		Context: streamContext,
		Height:  height,
	}
	if err := s.db.WithContext(ctx).Create(&block).Error; err != nil {
		return fmt.Errorf("failed to create missing stream block: %w", err)
	}
	return nil
}

func (s *pgStore) ListUnresolvedMissingStreamBlocks(ctx context.Context, limit int) ([]schema.MissingStreamBlock, error) {
	var blocks []schema.MissingStreamBlock
	err := s.db.WithContext(ctx).
		Where("resolved_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list missing stream blocks: %w", err)
	}
	return blocks, nil
}

func (s *pgStore) ResolveMissingStreamBlock(ctx context.Context, id int64, resolvedAt time.Time) error {
	err := s.db.WithContext(ctx).Model(&schema.MissingStreamBlock{}).
		Where("id = ?", id).
		Update("resolved_at", resolvedAt).Error
	if err != nil {
		return fmt.Errorf("failed to resolve missing stream block: %w", err)
	}
	return nil
}
