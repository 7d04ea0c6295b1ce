package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Nft represents the nfts table
type Nft struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement"`
	TokenAddress string         `gorm:"column:token_address;not null;type:text;uniqueIndex:uq_nfts_token,priority:1"`
	TokenID      string         `gorm:"column:token_id;not null;type:text;uniqueIndex:uq_nfts_token,priority:2"`
	OwnerAddress string         `gorm:"column:owner_address;type:text;index:idx_nfts_owner"`
	Name         string         `gorm:"column:name;type:text"`
	Image        string         `gorm:"column:image;type:text"`
	Description  string         `gorm:"column:description;type:text"`
	ExternalURL  string         `gorm:"column:external_url;type:text"`
	TokenURI     string         `gorm:"column:token_uri;type:text"`
	Traits       datatypes.JSON `gorm:"column:traits"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Nft) TableName() string {
	return "nfts"
}
