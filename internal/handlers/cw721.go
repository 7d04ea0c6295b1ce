package handlers

import (
	"context"
	"fmt"

	"github.com/feral-file/sei-marketplace-indexer/internal/codec"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// Cw721 handles the NFT transfer family
type Cw721 struct {
	deps Deps
}

func NewCw721(deps Deps) *Cw721 {
	return &Cw721{deps: deps}
}

// Handlers returns the handler of every cw721 action
func (h *Cw721) Handlers() map[string]Handler {
	return map[string]Handler{
		codec.ActionMint:        h.Mint,
		codec.ActionTransferNft: h.TransferNft,
		codec.ActionSendNft:     h.SendNft,
	}
}

// Mint records the minted token and its first owner.
// A mint without owner is a collection level mint and is skipped.
func (h *Cw721) Mint(ctx context.Context, in domain.Input) domain.Result {
	address := in.Event.Attr("_contract_address")
	tokenID := in.Event.Attr("token_id")
	owner := in.Event.Attr("owner")

	if address == "" || tokenID == "" || owner == "" {
		return domain.Skip("mint without token owner")
	}

	return h.applyOwner(ctx, in, address, tokenID, owner)
}

func (h *Cw721) TransferNft(ctx context.Context, in domain.Input) domain.Result {
	return h.transfer(ctx, in, codec.ActionTransferNft)
}

func (h *Cw721) SendNft(ctx context.Context, in domain.Input) domain.Result {
	return h.transfer(ctx, in, codec.ActionSendNft)
}

func (h *Cw721) transfer(ctx context.Context, in domain.Input, action string) domain.Result {
	attrs := readAttributes(in.Event)
	address := attrs.required("_contract_address")
	tokenID := attrs.required("token_id")
	recipient := attrs.required("recipient")
	if err := attrs.check(action, in.TxHash); err != nil {
		return domain.Err(err)
	}

	return h.applyOwner(ctx, in, address, tokenID, recipient)
}

// applyOwner ensures the NFT exists and sets its owner. Replayed events may be stale,
// so in scanner mode the owner is read from the contract instead.
func (h *Cw721) applyOwner(ctx context.Context, in domain.Input, address, tokenID, owner string) domain.Result {
	nftID, err := h.deps.Reconciler.EnsureNft(ctx, address, tokenID)
	if err != nil {
		return domain.Err(err)
	}

	if in.Mode == domain.ModeScanner {
		if err := h.deps.Reconciler.SyncOwnerFromChain(ctx, address, tokenID); err != nil {
			return domain.Err(err)
		}
		return domain.Ok()
	}

	if err := h.deps.Store.UpdateNftOwner(ctx, nftID, owner); err != nil {
		return domain.Err(fmt.Errorf("failed to update owner: %w", err))
	}

	return domain.Ok()
}
