package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/feral-file/sei-marketplace-indexer/internal/codec"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/reconciler"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
)

// Pallet handles the Pallet auction contract
type Pallet struct {
	deps Deps
}

func NewPallet(deps Deps) *Pallet {
	return &Pallet{deps: deps}
}

// Handlers returns the handler of every pallet event type
func (h *Pallet) Handlers() map[string]Handler {
	return map[string]Handler{
		codec.EventCreateAuction: h.CreateAuction,
		codec.EventCancelAuction: h.CancelAuction,
		codec.EventBuyNow:        h.BuyNow,
	}
}

func (h *Pallet) CreateAuction(ctx context.Context, in domain.Input) domain.Result {
	address, tokenID, err := palletToken(in, codec.EventCreateAuction)
	if err != nil {
		return domain.Err(err)
	}

	listing, err := h.deps.Chain.GetPalletListing(ctx, address, tokenID)
	if err != nil {
		return domain.Err(fmt.Errorf("failed to query pallet listing: %w", err))
	}
	if listing == nil || listing.Auction == nil {
		return domain.Skip("pallet listing has no auction")
	}

	auction := listing.Auction
	if len(auction.Prices) == 0 || auction.Prices[0].Amount == "" || auction.Prices[0].Denom == "" {
		return domain.Err(fmt.Errorf("%w: missing amount or denom: %s", domain.ErrInvalidAuction, in.TxHash))
	}

	price, err := parseAmount("auction price", auction.Prices[0].Amount)
	if err != nil {
		return domain.Err(err)
	}
	denom := auction.Prices[0].Denom

	nftID, err := h.deps.Reconciler.EnsureNft(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}

	createdAt := time.Unix(auction.CreatedAt, 0).UTC()

	row := &schema.Listing{
		NftID:             nftID,
		Market:            domain.MarketplacePallet,
		TxHash:            in.TxHash,
		CollectionAddress: address,
		SellerAddress:     listing.Owner,
		Price:             price,
		Denom:             denom,
		SaleType:          domain.SaleTypeFixed,
		CreatedDate:       createdAt,
	}
	if auction.ExpirationTime != nil {
		row.ExpirationTime = unixTime(*auction.ExpirationTime)
	}

	if err := h.deps.Store.UpsertListing(ctx, row); err != nil {
		return domain.Err(fmt.Errorf("failed to upsert listing: %w", err))
	}

	if err := h.deps.Store.CreateActivity(ctx, &schema.Activity{
		NftID:         nftID,
		Market:        domain.MarketplacePallet,
		EventKind:     domain.EventKindList,
		Denom:         denom,
		Price:         price,
		SellerAddress: listing.Owner,
		TxHash:        in.TxHash,
		Metadata:      emptyMetadata,
		Date:          createdAt,
	}); err != nil {
		return domain.Err(fmt.Errorf("failed to create list activity: %w", err))
	}

	return domain.Ok()
}

func (h *Pallet) CancelAuction(ctx context.Context, in domain.Input) domain.Result {
	address, tokenID, err := palletToken(in, codec.EventCancelAuction)
	if err != nil {
		return domain.Err(err)
	}

	nft, listing, err := h.storedListing(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}
	if listing == nil {
		return domain.Skip("no pallet listing")
	}

	if err := h.deps.Store.DeleteListing(ctx, nft.ID, domain.MarketplacePallet); err != nil {
		return domain.Err(fmt.Errorf("failed to delete listing: %w", err))
	}

	if err := h.deps.Store.CreateActivity(ctx, &schema.Activity{
		NftID:         nft.ID,
		Market:        domain.MarketplacePallet,
		EventKind:     domain.EventKindDelist,
		Denom:         listing.Denom,
		Price:         listing.Price,
		SellerAddress: listing.SellerAddress,
		TxHash:        in.TxHash,
		Metadata:      emptyMetadata,
		Date:          in.Date,
	}); err != nil {
		return domain.Err(fmt.Errorf("failed to create delist activity: %w", err))
	}

	return domain.Ok()
}

// BuyNow closes a pallet listing. The event does not carry the buyer, it is read from
// the recipient of the transaction's wasm event.
func (h *Pallet) BuyNow(ctx context.Context, in domain.Input) domain.Result {
	address, tokenID, err := palletToken(in, codec.EventBuyNow)
	if err != nil {
		return domain.Err(err)
	}

	nft, listing, err := h.storedListing(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}
	if listing == nil {
		return domain.Skip("no pallet listing")
	}

	buyer, err := h.buyer(ctx, in.TxHash)
	if err != nil {
		return domain.Err(err)
	}

	if err := h.deps.Store.DeleteListing(ctx, nft.ID, domain.MarketplacePallet); err != nil {
		return domain.Err(fmt.Errorf("failed to delete listing: %w", err))
	}

	if err := h.deps.Reconciler.RecordSale(ctx, reconciler.Sale{
		Market:            domain.MarketplacePallet,
		TxHash:            in.TxHash,
		CollectionAddress: address,
		NftID:             nft.ID,
		Buyer:             buyer,
		Seller:            listing.SellerAddress,
		Price:             listing.Price,
		Denom:             domain.NativeDenom,
		Date:              in.Date,
		Metadata:          emptyMetadata,
	}); err != nil {
		return domain.Err(err)
	}

	return domain.Ok()
}

func (h *Pallet) storedListing(ctx context.Context, address, tokenID string) (*schema.Nft, *schema.Listing, error) {
	nft, err := h.deps.Store.GetNft(ctx, address, tokenID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get nft: %w", err)
	}
	if nft == nil {
		return nil, nil, nil
	}

	listing, err := h.deps.Store.GetListing(ctx, nft.ID, domain.MarketplacePallet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return nft, listing, nil
}

func (h *Pallet) buyer(ctx context.Context, txHash string) (string, error) {
	tx, err := h.deps.Chain.GetTx(ctx, txHash)
	if err != nil {
		return "", fmt.Errorf("failed to get tx: %w", err)
	}
	if tx == nil {
		return domain.UnknownAddress, nil
	}

	for _, event := range tx.Events {
		if event.Type == codec.WasmEventType && event.Has("recipient") {
			return event.Attr("recipient"), nil
		}
	}
	return domain.UnknownAddress, nil
}

func palletToken(in domain.Input, eventType string) (string, string, error) {
	attrs := readAttributes(in.Event)
	address := attrs.required("nft_address")
	tokenID := attrs.required("nft_token_id")
	return address, tokenID, attrs.check(eventType, in.TxHash)
}
