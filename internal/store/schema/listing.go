package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// Listing represents the listings table: at most one open listing per NFT per marketplace
type Listing struct {
	ID                     int64              `gorm:"column:id;primaryKey;autoIncrement"`
	NftID                  int64              `gorm:"column:nft_id;not null;uniqueIndex:uq_listings_nft_market,priority:1"`
	Market                 domain.Marketplace `gorm:"column:market;not null;type:text;uniqueIndex:uq_listings_nft_market,priority:2"`
	TxHash                 string             `gorm:"column:tx_hash;not null;type:text"`
	CollectionAddress      string             `gorm:"column:collection_address;not null;type:text;index:idx_listings_collection"`
	SellerAddress          string             `gorm:"column:seller_address;not null;type:text"`
	Price                  decimal.Decimal    `gorm:"column:price;not null;type:numeric"`
	Denom                  string             `gorm:"column:denom;not null;type:text"`
	SaleType               domain.SaleType    `gorm:"column:sale_type;not null;type:text"`
	MinBidIncrementPercent *decimal.Decimal   `gorm:"column:min_bid_increment_percent;type:numeric"`
	StartDate              *time.Time         `gorm:"column:start_date"`
	EndDate                *time.Time         `gorm:"column:end_date"`
	ExpirationTime         *time.Time         `gorm:"column:expiration_time"`
	CreatedDate            time.Time          `gorm:"column:created_date;not null"`
}

func (Listing) TableName() string {
	return "listings"
}
