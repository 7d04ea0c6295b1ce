package schema

import "time"

// KeyValueStore stores process state such as the sweeper height cursor
type KeyValueStore struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (KeyValueStore) TableName() string {
	return "key_value_store"
}

// All lists every model, in dependency order, for migrations in tests
func All() []any {
	return []any{
		&Collection{},
		&Nft{},
		&Listing{},
		&NftOffer{},
		&CollectionOffer{},
		&Bidding{},
		&Activity{},
		&Transaction{},
		&UserLoyaltyPoint{},
		&StreamTx{},
		&MissingStreamBlock{},
		&KeyValueStore{},
	}
}
