package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// NftOffer represents the nft_offers table, offers made on a single token
type NftOffer struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	NftID        int64           `gorm:"column:nft_id;not null;uniqueIndex:uq_nft_offers,priority:1"`
	BuyerAddress string          `gorm:"column:buyer_address;not null;type:text;uniqueIndex:uq_nft_offers,priority:2"`
	Price        decimal.Decimal `gorm:"column:price;not null;type:numeric;uniqueIndex:uq_nft_offers,priority:3"`
	Denom        string          `gorm:"column:denom;not null;type:text"`
	TxHash       string          `gorm:"column:tx_hash;not null;type:text"`
	StartDate    *time.Time      `gorm:"column:start_date"`
	EndDate      *time.Time      `gorm:"column:end_date"`
	CreatedDate  time.Time       `gorm:"column:created_date;not null"`
}

func (NftOffer) TableName() string {
	return "nft_offers"
}

// CollectionOffer represents the collection_offers table, offers on any token of a collection
type CollectionOffer struct {
	ID                int64           `gorm:"column:id;primaryKey;autoIncrement"`
	CollectionAddress string          `gorm:"column:collection_address;not null;type:text;uniqueIndex:uq_collection_offers,priority:1"`
	BuyerAddress      string          `gorm:"column:buyer_address;not null;type:text;uniqueIndex:uq_collection_offers,priority:2"`
	Price             decimal.Decimal `gorm:"column:price;not null;type:numeric;uniqueIndex:uq_collection_offers,priority:3"`
	Denom             string          `gorm:"column:denom;not null;type:text"`
	// Quantity is the number of tokens the buyer wants
	Quantity int64 `gorm:"column:quantity;not null;default:0"`
	// CurrentQuantity is the number of tokens already accepted
	CurrentQuantity int64      `gorm:"column:current_quantity;not null;default:0"`
	TxHash          string     `gorm:"column:tx_hash;not null;type:text"`
	StartDate       *time.Time `gorm:"column:start_date"`
	EndDate         *time.Time `gorm:"column:end_date"`
	CreatedDate     time.Time  `gorm:"column:created_date;not null"`
}

func (CollectionOffer) TableName() string {
	return "collection_offers"
}

// Bidding represents the biddings table, one live bid per buyer per listing
type Bidding struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ListingID    int64           `gorm:"column:listing_id;not null;uniqueIndex:uq_biddings_listing_buyer,priority:1"`
	BuyerAddress string          `gorm:"column:buyer_address;not null;type:text;uniqueIndex:uq_biddings_listing_buyer,priority:2"`
	Price        decimal.Decimal `gorm:"column:price;not null;type:numeric"`
	Denom        string          `gorm:"column:denom;not null;type:text"`
	TxHash       string          `gorm:"column:tx_hash;not null;type:text"`
	CreatedDate  time.Time       `gorm:"column:created_date;not null"`
}

func (Bidding) TableName() string {
	return "biddings"
}
