package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// Activity represents the activities table, the append-only per-NFT market history.
// A transaction yields at most one activity per NFT, kind and market.
type Activity struct {
	ID            int64              `gorm:"column:id;primaryKey;autoIncrement"`
	NftID         int64              `gorm:"column:nft_id;not null;index:idx_activities_nft_date,priority:1;uniqueIndex:uq_activities_tx,priority:2"`
	Market        domain.Marketplace `gorm:"column:market;not null;type:text;uniqueIndex:uq_activities_tx,priority:4"`
	EventKind     domain.EventKind   `gorm:"column:event_kind;not null;type:text;uniqueIndex:uq_activities_tx,priority:3"`
	Denom         string             `gorm:"column:denom;type:text"`
	Price         decimal.Decimal    `gorm:"column:price;not null;type:numeric"`
	SellerAddress string             `gorm:"column:seller_address;type:text"`
	BuyerAddress  string             `gorm:"column:buyer_address;type:text"`
	TxHash        string             `gorm:"column:tx_hash;not null;type:text;index:idx_activities_tx_hash;uniqueIndex:uq_activities_tx,priority:1"`
	Metadata      datatypes.JSON     `gorm:"column:metadata"`
	Date          time.Time          `gorm:"column:date;not null;index:idx_activities_nft_date,priority:2"`
}

func (Activity) TableName() string {
	return "activities"
}

// Transaction represents the transactions table, one row per sale or bid of an NFT
type Transaction struct {
	ID                int64              `gorm:"column:id;primaryKey;autoIncrement"`
	TxHash            string             `gorm:"column:tx_hash;not null;type:text;index:idx_transactions_tx_hash;uniqueIndex:uq_transactions_tx,priority:1"`
	Market            domain.Marketplace `gorm:"column:market;not null;type:text;uniqueIndex:uq_transactions_tx,priority:2"`
	NftID             int64              `gorm:"column:nft_id;not null;uniqueIndex:uq_transactions_tx,priority:3"`
	CollectionAddress string             `gorm:"column:collection_address;not null;type:text;index:idx_transactions_collection"`
	BuyerAddress      string             `gorm:"column:buyer_address;type:text"`
	SellerAddress     string             `gorm:"column:seller_address;type:text"`
	Volume            decimal.Decimal    `gorm:"column:volume;not null;type:numeric"`
	Date              time.Time          `gorm:"column:date;not null"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// UserLoyaltyPoint represents the user_loyalty_points table
type UserLoyaltyPoint struct {
	ID            int64                   `gorm:"column:id;primaryKey;autoIncrement"`
	WalletAddress string                  `gorm:"column:wallet_address;not null;type:text;index:idx_user_loyalty_points_wallet"`
	Kind          domain.LoyaltyPointKind `gorm:"column:kind;not null;type:text"`
	Point         decimal.Decimal         `gorm:"column:point;not null;type:numeric"`
	Date          time.Time               `gorm:"column:date;not null"`
}

func (UserLoyaltyPoint) TableName() string {
	return "user_loyalty_points"
}
