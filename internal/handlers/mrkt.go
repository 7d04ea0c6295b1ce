package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/feral-file/sei-marketplace-indexer/internal/chain"
	"github.com/feral-file/sei-marketplace-indexer/internal/codec"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/reconciler"
	"github.com/feral-file/sei-marketplace-indexer/internal/store"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
)

// Mrkt handles the marketplace sale contract
type Mrkt struct {
	deps Deps
}

func NewMrkt(deps Deps) *Mrkt {
	return &Mrkt{deps: deps}
}

// Handlers returns the handler of every marketplace action
func (h *Mrkt) Handlers() map[string]Handler {
	return map[string]Handler{
		codec.ActionStartSale:             h.StartSale,
		codec.ActionAcceptOffer:           h.AcceptOffer,
		codec.ActionAcceptSale:            h.AcceptSale,
		codec.ActionCancelSale:            h.CancelSale,
		codec.ActionMakeCollectionOffer:   h.MakeOffer,
		codec.ActionCancelCollectionOffer: h.CancelOffer,
		codec.ActionFixedSell:             h.FixedSell,
		codec.ActionBidding:               h.Bidding,
		codec.ActionCancelPropose:         h.CancelBidding,
		codec.ActionEditSale:              h.EditSale,
	}
}

func (h *Mrkt) StartSale(ctx context.Context, in domain.Input) domain.Result {
	attrs := readAttributes(in.Event)
	address := attrs.required("cw721_address")
	tokenID := attrs.required("token_id")
	initialPrice := attrs.required("initial_price")
	attrs.required("sale_type")
	seller := attrs.required("seller")
	denom := attrs.required("denom")
	if err := attrs.check(codec.ActionStartSale, in.TxHash); err != nil {
		return domain.Err(err)
	}

	price, err := parseAmount("initial_price", initialPrice)
	if err != nil {
		return domain.Err(err)
	}

	nftID, err := h.deps.Reconciler.EnsureNft(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}

	sale, err := h.deps.Chain.GetSale(ctx, address, tokenID)
	if err != nil {
		return domain.Err(fmt.Errorf("failed to query sale: %w", err))
	}

	// The sale may already be over by the time it is queried; only the activity remains
	if sale != nil {
		listing, err := listingFromSale(nftID, address, in.TxHash, in.Date, sale)
		if err != nil {
			return domain.Err(err)
		}
		if err := h.deps.Store.UpsertListing(ctx, listing); err != nil {
			return domain.Err(fmt.Errorf("failed to upsert listing: %w", err))
		}
	}

	if err := h.activity(ctx, &schema.Activity{
		NftID:         nftID,
		EventKind:     domain.EventKindList,
		Denom:         denom,
		Price:         price,
		SellerAddress: seller,
		TxHash:        in.TxHash,
		Date:          in.Date,
	}); err != nil {
		return domain.Err(err)
	}

	return domain.Ok()
}

// AcceptOffer completes a sale against an offer, then reconciles the listing and both offer
// kinds with the contract: whichever the contract no longer reports is removed.
func (h *Mrkt) AcceptOffer(ctx context.Context, in domain.Input) domain.Result {
	attrs := readAttributes(in.Event)
	address := attrs.required("cw721_address")
	tokenID := attrs.required("token_id")
	buyer := attrs.required("buyer")
	seller := attrs.required("seller")
	priceAttr := attrs.required("price")
	denom := attrs.required("denom")
	if err := attrs.check(codec.ActionAcceptOffer, in.TxHash); err != nil {
		return domain.Err(err)
	}

	price, err := parseAmount("price", priceAttr)
	if err != nil {
		return domain.Err(err)
	}

	nftID, err := h.deps.Reconciler.EnsureNft(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}

	sale, err := h.deps.Chain.GetSale(ctx, address, tokenID)
	if err != nil {
		return domain.Err(fmt.Errorf("failed to query sale: %w", err))
	}

	tokenOffer, err := h.deps.Chain.GetOffer(ctx, chain.OfferQuery{
		Cw721Address: address,
		Buyer:        buyer,
		Price:        priceAttr,
		TokenID:      &tokenID,
	})
	if err != nil {
		return domain.Err(fmt.Errorf("failed to query nft offer: %w", err))
	}

	collectionOffer, err := h.deps.Chain.GetOffer(ctx, chain.OfferQuery{
		Cw721Address: address,
		Buyer:        buyer,
		Price:        priceAttr,
	})
	if err != nil {
		return domain.Err(fmt.Errorf("failed to query collection offer: %w", err))
	}

	if sale == nil {
		if err := h.deps.Store.DeleteListing(ctx, nftID, domain.MarketplaceMrkt); err != nil {
			return domain.Err(fmt.Errorf("failed to delete listing: %w", err))
		}
	}

	if tokenOffer == nil {
		if err := h.deps.Store.DeleteNftOffer(ctx, nftID, buyer, price); err != nil {
			return domain.Err(fmt.Errorf("failed to delete nft offer: %w", err))
		}
	}

	if collectionOffer == nil {
		if err := h.deps.Store.DeleteCollectionOffer(ctx, address, buyer, price); err != nil {
			return domain.Err(fmt.Errorf("failed to delete collection offer: %w", err))
		}
	} else {
		if err := h.deps.Store.UpdateCollectionOfferQuantity(ctx, address, buyer, price,
			collectionOffer.NumAccepted, collectionOffer.Quantity); err != nil {
			return domain.Err(fmt.Errorf("failed to update collection offer: %w", err))
		}
	}

	if err := h.deps.Reconciler.RecordSale(ctx, reconciler.Sale{
		Market:            domain.MarketplaceMrkt,
		TxHash:            in.TxHash,
		CollectionAddress: address,
		NftID:             nftID,
		Buyer:             buyer,
		Seller:            seller,
		Price:             price,
		Denom:             denom,
		Date:              in.Date,
		Metadata:          emptyMetadata,
	}); err != nil {
		return domain.Err(err)
	}

	return domain.Ok()
}

func (h *Mrkt) AcceptSale(ctx context.Context, in domain.Input) domain.Result {
	return h.completeSale(ctx, in, codec.ActionAcceptSale)
}

func (h *Mrkt) FixedSell(ctx context.Context, in domain.Input) domain.Result {
	return h.completeSale(ctx, in, codec.ActionFixedSell)
}

// completeSale handles the sales that close a listing: accept_sale and fixed_sell
func (h *Mrkt) completeSale(ctx context.Context, in domain.Input, action string) domain.Result {
	attrs := readAttributes(in.Event)
	address := attrs.required("cw721_address")
	tokenID := attrs.required("token_id")
	buyer := attrs.required("buyer")
	seller := attrs.required("seller")
	priceAttr := attrs.required("price")
	denom := attrs.required("denom")
	if err := attrs.check(action, in.TxHash); err != nil {
		return domain.Err(err)
	}

	price, err := parseAmount("price", priceAttr)
	if err != nil {
		return domain.Err(err)
	}

	metadata := emptyMetadata
	if messages := attrs.optional("messages"); action == codec.ActionFixedSell && messages != "" {
		encoded, err := h.deps.JSON.Marshal(map[string]string{"messages": messages})
		if err != nil {
			return domain.Err(fmt.Errorf("failed to encode sale metadata: %w", err))
		}
		metadata = datatypes.JSON(encoded)
	}

	nftID, err := h.deps.Reconciler.EnsureNft(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}

	if err := h.deleteListingWithoutSale(ctx, nftID, address, tokenID); err != nil {
		return domain.Err(err)
	}

	if err := h.deps.Reconciler.RecordSale(ctx, reconciler.Sale{
		Market:            domain.MarketplaceMrkt,
		TxHash:            in.TxHash,
		CollectionAddress: address,
		NftID:             nftID,
		Buyer:             buyer,
		Seller:            seller,
		Price:             price,
		Denom:             denom,
		Date:              in.Date,
		Metadata:          metadata,
	}); err != nil {
		return domain.Err(err)
	}

	return domain.Ok()
}

func (h *Mrkt) CancelSale(ctx context.Context, in domain.Input) domain.Result {
	attrs := readAttributes(in.Event)
	address := attrs.required("cw721_address")
	tokenID := attrs.required("token_id")
	seller := attrs.required("seller")
	priceAttr := attrs.required("price")
	denom := attrs.required("denom")
	if err := attrs.check(codec.ActionCancelSale, in.TxHash); err != nil {
		return domain.Err(err)
	}

	price, err := parseAmount("price", priceAttr)
	if err != nil {
		return domain.Err(err)
	}

	nftID, err := h.deps.Reconciler.EnsureNft(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}

	if err := h.deleteListingWithoutSale(ctx, nftID, address, tokenID); err != nil {
		return domain.Err(err)
	}

	if err := h.activity(ctx, &schema.Activity{
		NftID:         nftID,
		EventKind:     domain.EventKindDelist,
		Denom:         denom,
		Price:         price,
		SellerAddress: seller,
		TxHash:        in.TxHash,
		Date:          in.Date,
	}); err != nil {
		return domain.Err(err)
	}

	return domain.Ok()
}

// MakeOffer handles both offer kinds: a token_id attribute makes it a single NFT offer,
// otherwise it is a collection offer.
func (h *Mrkt) MakeOffer(ctx context.Context, in domain.Input) domain.Result {
	attrs := readAttributes(in.Event)
	address := attrs.required("cw721_address")
	buyer := attrs.required("buyer")
	attrs.required("quantity")
	priceAttr := attrs.required("price")
	denom := attrs.required("denom")
	tokenID := attrs.optional("token_id")
	if err := attrs.check(codec.ActionMakeCollectionOffer, in.TxHash); err != nil {
		return domain.Err(err)
	}

	price, err := parseAmount("price", priceAttr)
	if err != nil {
		return domain.Err(err)
	}

	if _, err := h.deps.Reconciler.EnsureCollection(ctx, address, nil); err != nil {
		return domain.Err(err)
	}

	if tokenID == "" {
		offer, err := h.deps.Chain.GetOffer(ctx, chain.OfferQuery{Cw721Address: address, Buyer: buyer, Price: priceAttr})
		if err != nil {
			return domain.Err(fmt.Errorf("failed to query collection offer: %w", err))
		}
		if offer == nil {
			return domain.Ok()
		}

		row, err := collectionOfferFromChain(address, in.TxHash, in.Date, offer)
		if err != nil {
			return domain.Err(err)
		}
		if err := h.deps.Store.UpsertCollectionOffer(ctx, row); err != nil {
			return domain.Err(fmt.Errorf("failed to upsert collection offer: %w", err))
		}
		return domain.Ok()
	}

	nftID, err := h.deps.Reconciler.EnsureNft(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}

	offer, err := h.deps.Chain.GetOffer(ctx, chain.OfferQuery{Cw721Address: address, Buyer: buyer, Price: priceAttr, TokenID: &tokenID})
	if err != nil {
		return domain.Err(fmt.Errorf("failed to query nft offer: %w", err))
	}
	if offer != nil {
		row, err := nftOfferFromChain(nftID, in.TxHash, in.Date, offer)
		if err != nil {
			return domain.Err(err)
		}
		if err := h.deps.Store.UpsertNftOffer(ctx, row); err != nil {
			return domain.Err(fmt.Errorf("failed to upsert nft offer: %w", err))
		}
	}

	if err := h.activity(ctx, &schema.Activity{
		NftID:        nftID,
		EventKind:    domain.EventKindMakeOffer,
		Denom:        denom,
		Price:        price,
		BuyerAddress: buyer,
		TxHash:       in.TxHash,
		Date:         in.Date,
	}); err != nil {
		return domain.Err(err)
	}

	return domain.Ok()
}

// CancelOffer mirrors MakeOffer: the offer row is removed once the contract stops reporting it
func (h *Mrkt) CancelOffer(ctx context.Context, in domain.Input) domain.Result {
	attrs := readAttributes(in.Event)
	address := attrs.required("cw721_address")
	buyer := attrs.required("buyer")
	priceAttr := attrs.required("price")
	denom := attrs.required("denom")
	tokenID := attrs.optional("token_id")
	if err := attrs.check(codec.ActionCancelCollectionOffer, in.TxHash); err != nil {
		return domain.Err(err)
	}

	price, err := parseAmount("price", priceAttr)
	if err != nil {
		return domain.Err(err)
	}

	if tokenID == "" {
		offer, err := h.deps.Chain.GetOffer(ctx, chain.OfferQuery{Cw721Address: address, Buyer: buyer, Price: priceAttr})
		if err != nil {
			return domain.Err(fmt.Errorf("failed to query collection offer: %w", err))
		}
		if offer == nil {
			if err := h.deps.Store.DeleteCollectionOffer(ctx, address, buyer, price); err != nil {
				return domain.Err(fmt.Errorf("failed to delete collection offer: %w", err))
			}
		}
		return domain.Ok()
	}

	nftID, err := h.deps.Reconciler.EnsureNft(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}

	offer, err := h.deps.Chain.GetOffer(ctx, chain.OfferQuery{Cw721Address: address, Buyer: buyer, Price: priceAttr, TokenID: &tokenID})
	if err != nil {
		return domain.Err(fmt.Errorf("failed to query nft offer: %w", err))
	}
	if offer == nil {
		if err := h.deps.Store.DeleteNftOffer(ctx, nftID, buyer, price); err != nil {
			return domain.Err(fmt.Errorf("failed to delete nft offer: %w", err))
		}
	}

	if err := h.activity(ctx, &schema.Activity{
		NftID:        nftID,
		EventKind:    domain.EventKindCancelOffer,
		Denom:        denom,
		Price:        price,
		BuyerAddress: buyer,
		TxHash:       in.TxHash,
		Date:         in.Date,
	}); err != nil {
		return domain.Err(err)
	}

	return domain.Ok()
}

// Bidding records a bid on an open auction together with its transaction
func (h *Mrkt) Bidding(ctx context.Context, in domain.Input) domain.Result {
	attrs := readAttributes(in.Event)
	address := attrs.required("cw721_address")
	tokenID := attrs.required("token_id")
	buyer := attrs.required("buyer")
	priceAttr := attrs.required("price")
	if err := attrs.check(codec.ActionBidding, in.TxHash); err != nil {
		return domain.Err(err)
	}

	price, err := parseAmount("price", priceAttr)
	if err != nil {
		return domain.Err(err)
	}

	listing, err := h.openListing(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}
	if listing == nil {
		return domain.Err(fmt.Errorf("%w when bidding: %s", domain.ErrListingNotFound, in.TxHash))
	}

	err = h.deps.Store.CreateBidWithTransaction(ctx,
		&schema.Transaction{
			TxHash:            in.TxHash,
			Market:            domain.MarketplaceMrkt,
			NftID:             listing.NftID,
			CollectionAddress: address,
			BuyerAddress:      buyer,
			SellerAddress:     listing.SellerAddress,
			Volume:            price,
			Date:              in.Date,
		},
		&schema.Bidding{
			ListingID:    listing.ID,
			BuyerAddress: buyer,
			Price:        price,
			Denom:        listing.Denom,
			TxHash:       in.TxHash,
			CreatedDate:  in.Date,
		})
	if err != nil {
		return domain.Err(fmt.Errorf("failed to create bid: %w", err))
	}

	return domain.Ok()
}

func (h *Mrkt) CancelBidding(ctx context.Context, in domain.Input) domain.Result {
	attrs := readAttributes(in.Event)
	address := attrs.required("cw721_address")
	tokenID := attrs.required("token_id")
	buyer := attrs.required("buyer")
	if err := attrs.check(codec.ActionCancelPropose, in.TxHash); err != nil {
		return domain.Err(err)
	}

	listing, err := h.openListing(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}
	if listing == nil {
		return domain.Err(fmt.Errorf("%w when cancel_propose: %s", domain.ErrListingNotFound, in.TxHash))
	}

	if err := h.deps.Store.DeleteBidding(ctx, listing.ID, buyer); err != nil {
		return domain.Err(fmt.Errorf("failed to delete bidding: %w", err))
	}

	return domain.Ok()
}

// EditSale updates the price and bid increment of an open listing
func (h *Mrkt) EditSale(ctx context.Context, in domain.Input) domain.Result {
	attrs := readAttributes(in.Event)
	address := attrs.required("cw721_address")
	tokenID := attrs.required("token_id")
	if err := attrs.check(codec.ActionEditSale, in.TxHash); err != nil {
		return domain.Err(err)
	}

	price, err := parseOptionalAmount("initial_price", attrs.optional("initial_price"))
	if err != nil {
		return domain.Err(err)
	}
	increment, err := parseOptionalAmount("min_bid_increment_percent", attrs.optional("min_bid_increment_percent"))
	if err != nil {
		return domain.Err(err)
	}

	listing, err := h.openListing(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}
	if listing == nil {
		return domain.Err(fmt.Errorf("%w when edit_sale: %s", domain.ErrListingNotFound, in.TxHash))
	}

	if err := h.deps.Store.UpdateListingTerms(ctx, listing.ID, store.ListingTerms{
		Price:                  price,
		MinBidIncrementPercent: increment,
	}); err != nil {
		return domain.Err(fmt.Errorf("failed to update listing: %w", err))
	}

	return domain.Ok()
}

// openListing returns the stored mrkt listing of a token, nil when there is none
func (h *Mrkt) openListing(ctx context.Context, address, tokenID string) (*schema.Listing, error) {
	nft, err := h.deps.Store.GetNft(ctx, address, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get nft: %w", err)
	}
	if nft == nil {
		return nil, nil
	}

	listing, err := h.deps.Store.GetListing(ctx, nft.ID, domain.MarketplaceMrkt)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}

// deleteListingWithoutSale removes the mrkt listing once the contract reports no active sale
func (h *Mrkt) deleteListingWithoutSale(ctx context.Context, nftID int64, address, tokenID string) error {
	sale, err := h.deps.Chain.GetSale(ctx, address, tokenID)
	if err != nil {
		return fmt.Errorf("failed to query sale: %w", err)
	}
	if sale != nil {
		return nil
	}

	if err := h.deps.Store.DeleteListing(ctx, nftID, domain.MarketplaceMrkt); err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return nil
}

func (h *Mrkt) activity(ctx context.Context, activity *schema.Activity) error {
	activity.Market = domain.MarketplaceMrkt
	if activity.Metadata == nil {
		activity.Metadata = emptyMetadata
	}
	if err := h.deps.Store.CreateActivity(ctx, activity); err != nil {
		return fmt.Errorf("failed to create %s activity: %w", activity.EventKind, err)
	}
	return nil
}

func listingFromSale(nftID int64, address, txHash string, date time.Time, sale *chain.Sale) (*schema.Listing, error) {
	price, err := parseAmount("initial_price", sale.InitialPrice)
	if err != nil {
		return nil, err
	}

	collection := sale.Cw721Address
	if collection == "" {
		collection = address
	}

	listing := &schema.Listing{
		NftID:             nftID,
		Market:            domain.MarketplaceMrkt,
		TxHash:            txHash,
		CollectionAddress: collection,
		SellerAddress:     sale.Provider,
		Price:             price,
		Denom:             sale.Denom.Native,
		SaleType:          sale.ListingSaleType(),
		CreatedDate:       date,
	}

	if sale.MinBidIncrementPercent != nil {
		increment := decimal.NewFromFloat(*sale.MinBidIncrementPercent)
		listing.MinBidIncrementPercent = &increment
	}

	if !sale.DurationType.Fixed {
		listing.StartDate = unixTime(sale.DurationType.Start)
		listing.EndDate = unixTime(sale.DurationType.End)
	}

	return listing, nil
}

func nftOfferFromChain(nftID int64, txHash string, date time.Time, offer *chain.Offer) (*schema.NftOffer, error) {
	price, err := parseAmount("offer price", offer.Price)
	if err != nil {
		return nil, err
	}

	return &schema.NftOffer{
		NftID:        nftID,
		BuyerAddress: offer.Buyer,
		Price:        price,
		Denom:        offer.Denom.Native,
		TxHash:       txHash,
		StartDate:    unixTime(offer.Duration.Start),
		EndDate:      unixTime(offer.Duration.End),
		CreatedDate:  date,
	}, nil
}

func collectionOfferFromChain(address, txHash string, date time.Time, offer *chain.Offer) (*schema.CollectionOffer, error) {
	price, err := parseAmount("offer price", offer.Price)
	if err != nil {
		return nil, err
	}

	collection := offer.Cw721Address
	if collection == "" {
		collection = address
	}

	return &schema.CollectionOffer{
		CollectionAddress: collection,
		BuyerAddress:      offer.Buyer,
		Price:             price,
		Denom:             offer.Denom.Native,
		Quantity:          offer.Quantity,
		CurrentQuantity:   offer.NumAccepted,
		TxHash:            txHash,
		StartDate:         unixTime(offer.Duration.Start),
		EndDate:           unixTime(offer.Duration.End),
		CreatedDate:       date,
	}, nil
}
