package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
)

// ErrDuplicate is returned by create operations that hit a unique constraint
var ErrDuplicate = errors.New("duplicate record")

// SaleRecord groups the rows written for one completed sale
type SaleRecord struct {
	Transaction schema.Transaction
	Activity    schema.Activity
	BuyPoint    schema.UserLoyaltyPoint
	SellPoint   schema.UserLoyaltyPoint
}

// ListingTerms are the mutable terms of an open listing; nil fields are left unchanged
type ListingTerms struct {
	Price                  *decimal.Decimal
	MinBidIncrementPercent *decimal.Decimal
}

// Store defines the interface for database operations.
// Getters return nil without error when the row does not exist.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore -aux_files=github.com/feral-file/sei-marketplace-indexer/internal/store=cursor_store.go
type Store interface {
	CursorStore

	// Ping checks the database connection
	Ping(ctx context.Context) error

	// GetCollectionByAddress retrieves a collection by its cw721 address
	GetCollectionByAddress(ctx context.Context, address string) (*schema.Collection, error)
	// CreateCollection inserts a collection; a concurrent insert of the same address returns ErrDuplicate
	CreateCollection(ctx context.Context, collection *schema.Collection) error

	// GetNft retrieves an NFT by contract address and token id
	GetNft(ctx context.Context, address, tokenID string) (*schema.Nft, error)
	// CreateNft inserts an NFT; a concurrent insert of the same token returns ErrDuplicate
	CreateNft(ctx context.Context, nft *schema.Nft) error
	// UpdateNftOwner sets the owner of an NFT
	UpdateNftOwner(ctx context.Context, nftID int64, owner string) error

	// UpsertListing creates the listing or overwrites the one with the same (nft, market)
	UpsertListing(ctx context.Context, listing *schema.Listing) error
	GetListing(ctx context.Context, nftID int64, market domain.Marketplace) (*schema.Listing, error)
	DeleteListing(ctx context.Context, nftID int64, market domain.Marketplace) error
	UpdateListingTerms(ctx context.Context, listingID int64, terms ListingTerms) error

	UpsertNftOffer(ctx context.Context, offer *schema.NftOffer) error
	DeleteNftOffer(ctx context.Context, nftID int64, buyer string, price decimal.Decimal) error
	UpsertCollectionOffer(ctx context.Context, offer *schema.CollectionOffer) error
	UpdateCollectionOfferQuantity(ctx context.Context, address, buyer string, price decimal.Decimal, currentQuantity, quantity int64) error
	DeleteCollectionOffer(ctx context.Context, address, buyer string, price decimal.Decimal) error

	// CreateBidWithTransaction writes the bid transaction and upserts the bidding atomically.
	// A transaction already stored for the same tx hash, market and NFT is kept.
	CreateBidWithTransaction(ctx context.Context, tx *schema.Transaction, bidding *schema.Bidding) error
	DeleteBidding(ctx context.Context, listingID int64, buyer string) error

	// CreateActivity appends an activity, ignoring one already stored for the same tx hash, NFT, kind and market
	CreateActivity(ctx context.Context, activity *schema.Activity) error

	// RecordSale writes the sale transaction, its activity and both loyalty rows, all or nothing.
	// Recording a sale whose activity already exists is a no-op.
	RecordSale(ctx context.Context, record SaleRecord) error

	CreateStreamTx(ctx context.Context, streamTx *schema.StreamTx) error
	// StreamTxExists reports whether any ledger entry exists for the transaction in the given context
	StreamTxExists(ctx context.Context, txHash string, streamContext domain.StreamContext) (bool, error)

	CreateMissingStreamBlock(ctx context.Context, streamContext domain.StreamContext, height int64) error
	// ListUnresolvedMissingStreamBlocks returns the oldest unresolved checkpoints first
	ListUnresolvedMissingStreamBlocks(ctx context.Context, limit int) ([]schema.MissingStreamBlock, error)
	ResolveMissingStreamBlock(ctx context.Context, id int64, resolvedAt time.Time) error
}
