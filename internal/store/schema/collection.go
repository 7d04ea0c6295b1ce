package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Collection represents the collections table, one row per cw721 contract seen in a marketplace event
type Collection struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Address string `gorm:"column:address;not null;type:text;uniqueIndex:uq_collections_address"`
	Name    string `gorm:"column:name;type:text"`
	Symbol  string `gorm:"column:symbol;type:text"`
	// Supply is the num_tokens value at the time the collection was first indexed
	Supply int64 `gorm:"column:supply;not null;default:0"`
	// Royalty is the royalty percentage from the first NFT's extension, if any
	Royalty     *decimal.Decimal `gorm:"column:royalty;type:numeric"`
	Description string           `gorm:"column:description;type:text"`
	Image       string           `gorm:"column:image;type:text"`
	Banner      string           `gorm:"column:banner;type:text"`
	Slug        string           `gorm:"column:slug;type:text"`
	Socials     datatypes.JSON   `gorm:"column:socials"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Collection) TableName() string {
	return "collections"
}
