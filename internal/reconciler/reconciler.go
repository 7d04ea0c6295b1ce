package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/chain"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/metadata"
	"github.com/feral-file/sei-marketplace-indexer/internal/store"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
)

// Sale describes one completed sale
type Sale struct {
	Market            domain.Marketplace
	TxHash            string
	CollectionAddress string
	NftID             int64
	Buyer             string
	Seller            string
	// Price is in base units (usei)
	Price    decimal.Decimal
	Denom    string
	Date     time.Time
	Metadata datatypes.JSON
}

// Reconciler materializes collections and NFTs on first reference and writes sale records.
// EnsureCollection and EnsureNft are safe to call concurrently for the same key.
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// EnsureCollection creates the collection when it is not stored yet. royalty may be nil.
	EnsureCollection(ctx context.Context, address string, royalty *decimal.Decimal) (*schema.Collection, error)
	// EnsureNft creates the NFT (and its collection) when it is not stored yet and returns its id
	EnsureNft(ctx context.Context, address, tokenID string) (int64, error)
	// SyncOwnerFromChain sets the stored owner to the current cw721 owner
	SyncOwnerFromChain(ctx context.Context, address, tokenID string) error
	// RecordSale writes the transaction, sale activity and loyalty points of a sale atomically
	RecordSale(ctx context.Context, sale Sale) error
}

type reconciler struct {
	store    store.Store
	chain    chain.Client
	metadata metadata.Fetcher
	json     adapter.JSON
	clock    adapter.Clock
}

// New creates a reconciler
func New(st store.Store, chainClient chain.Client, fetcher metadata.Fetcher, json adapter.JSON, clock adapter.Clock) Reconciler {
	return &reconciler{
		store:    st,
		chain:    chainClient,
		metadata: fetcher,
		json:     json,
		clock:    clock,
	}
}

func (r *reconciler) EnsureCollection(ctx context.Context, address string, royalty *decimal.Decimal) (*schema.Collection, error) {
	existing, err := r.store.GetCollectionByAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	info, err := r.chain.ContractInfo(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract info: %w", err)
	}

	supply, err := r.chain.NumTokens(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to query num tokens: %w", err)
	}

	meta := r.metadata.CollectionMetadata(ctx, address)

	collection := &schema.Collection{
		Address:     address,
		Name:        info.Name,
		Symbol:      info.Symbol,
		Supply:      int64(supply), //nolint:gosec,G115
		Royalty:     royalty,
		Description: meta.Description,
		Image:       meta.Pfp,
		Banner:      meta.Banner,
		Slug:        meta.Slug,
	}
	if len(meta.Socials) > 0 {
		socials, err := r.json.Marshal(meta.Socials)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to encode collection socials", zap.String("collection", address), zap.Error(err))
		} else {
			collection.Socials = datatypes.JSON(socials)
		}
	}

	err = r.store.CreateCollection(ctx, collection)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a race with a concurrent handler
		existing, err = r.store.GetCollectionByAddress(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read collection: %w", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("collection %s conflicted but is not readable", address)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	logger.InfoCtx(ctx, "Created collection", zap.String("collection", address), zap.String("name", info.Name))

	return collection, nil
}

func (r *reconciler) EnsureNft(ctx context.Context, address, tokenID string) (int64, error) {
	existing, err := r.store.GetNft(ctx, address, tokenID)
	if err != nil {
		return 0, fmt.Errorf("failed to get nft: %w", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	info, err := r.chain.NftInfo(ctx, address, tokenID)
	if err != nil {
		return 0, fmt.Errorf("failed to query nft info: %w", err)
	}

	var royalty *decimal.Decimal
	if pct := info.RoyaltyPercentage(); pct != nil {
		d := decimal.NewFromFloat(*pct)
		royalty = &d
	}

	if _, err := r.EnsureCollection(ctx, address, royalty); err != nil {
		return 0, err
	}

	meta := r.metadata.NftMetadata(ctx, info.TokenURI)

	nft := &schema.Nft{
		TokenAddress: address,
		TokenID:      tokenID,
		Name:         meta.Name,
		Image:        meta.Image,
		Description:  meta.Description,
		ExternalURL:  meta.ExternalURL,
		TokenURI:     info.TokenURI,
	}
	if len(meta.Attributes) > 0 {
		traits, err := r.json.Marshal(meta.Attributes)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to encode nft traits",
				zap.String("collection", address),
				zap.String("tokenID", tokenID),
				zap.Error(err))
		} else {
			nft.Traits = datatypes.JSON(traits)
		}
	}

	err = r.store.CreateNft(ctx, nft)
	if errors.Is(err, store.ErrDuplicate) {
		existing, err = r.store.GetNft(ctx, address, tokenID)
		if err != nil {
			return 0, fmt.Errorf("failed to re-read nft: %w", err)
		}
		if existing == nil {
			return 0, fmt.Errorf("nft %s/%s conflicted but is not readable", address, tokenID)
		}
		return existing.ID, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create nft: %w", err)
	}

	return nft.ID, nil
}

func (r *reconciler) SyncOwnerFromChain(ctx context.Context, address, tokenID string) error {
	owner, err := r.chain.OwnerOf(ctx, address, tokenID)
	if err != nil {
		return fmt.Errorf("failed to query owner: %w", err)
	}

	nft, err := r.store.GetNft(ctx, address, tokenID)
	if err != nil {
		return fmt.Errorf("failed to get nft: %w", err)
	}
	if nft == nil {
		return fmt.Errorf("%w: nft %s/%s", domain.ErrNotFound, address, tokenID)
	}

	if err := r.store.UpdateNftOwner(ctx, nft.ID, owner); err != nil {
		return fmt.Errorf("failed to update owner: %w", err)
	}

	return nil
}

func (r *reconciler) RecordSale(ctx context.Context, sale Sale) error {
	points := domain.UseiToSei(sale.Price)
	// Points are dated when granted, not when the sale happened
	grantedAt := r.clock.Now()

	record := store.SaleRecord{
		Transaction: schema.Transaction{
			TxHash:            sale.TxHash,
			Market:            sale.Market,
			NftID:             sale.NftID,
			CollectionAddress: sale.CollectionAddress,
			BuyerAddress:      sale.Buyer,
			SellerAddress:     sale.Seller,
			Volume:            sale.Price,
			Date:              sale.Date,
		},
		Activity: schema.Activity{
			NftID:         sale.NftID,
			Market:        sale.Market,
			EventKind:     domain.EventKindSale,
			Denom:         sale.Denom,
			Price:         sale.Price,
			SellerAddress: sale.Seller,
			BuyerAddress:  sale.Buyer,
			TxHash:        sale.TxHash,
			Metadata:      sale.Metadata,
			Date:          sale.Date,
		},
		BuyPoint: schema.UserLoyaltyPoint{
			WalletAddress: sale.Buyer,
			Kind:          domain.LoyaltyPointBuy,
			Point:         points,
			Date:          grantedAt,
		},
		SellPoint: schema.UserLoyaltyPoint{
			WalletAddress: sale.Seller,
			Kind:          domain.LoyaltyPointSell,
			Point:         points,
			Date:          grantedAt,
		},
	}

	if err := r.store.RecordSale(ctx, record); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	return nil
}
