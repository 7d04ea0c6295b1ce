package codec

import (
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// Transfer family actions, carried in the action attribute of wasm events
const (
	ActionMint        = "mint"
	ActionTransferNft = "transfer_nft"
	ActionSendNft     = "send_nft"
)

// Marketplace sale actions, carried in the action attribute of wasm events
const (
	ActionStartSale             = "start_sale"
	ActionAcceptOffer           = "accept_offer"
	ActionAcceptSale            = "accept_sale"
	ActionCancelSale            = "cancel_sale"
	ActionMakeCollectionOffer   = "make_collection_offer"
	ActionCancelCollectionOffer = "cancel_collection_offer"
	ActionFixedSell             = "fixed_sell"
	ActionBidding               = "bidding"
	ActionEditSale              = "edit_sale"
	ActionCancelPropose         = "cancel_propose"
)

// Auction event types. The auction contract is matched on the event type itself.
const (
	EventCreateAuction = "wasm-create_auction"
	EventCancelAuction = "wasm-cancel_auction"
	EventBuyNow        = "wasm-buy_now"
)

// WasmEventType is the type of events emitted by cosmwasm contracts
const WasmEventType = "wasm"

var (
	cw721Actions = map[string]struct{}{
		ActionMint:        {},
		ActionTransferNft: {},
		ActionSendNft:     {},
	}

	mrktActions = map[string]struct{}{
		ActionStartSale:             {},
		ActionAcceptOffer:           {},
		ActionAcceptSale:            {},
		ActionCancelSale:            {},
		ActionMakeCollectionOffer:   {},
		ActionCancelCollectionOffer: {},
		ActionFixedSell:             {},
		ActionBidding:               {},
		ActionEditSale:              {},
		ActionCancelPropose:         {},
	}

	palletEventTypes = map[string]struct{}{
		EventCreateAuction: {},
		EventCancelAuction: {},
		EventBuyNow:        {},
	}
)

// Contracts holds the addresses that scope the marketplace and auction families
type Contracts struct {
	Mrkt   string
	Pallet string
}

// Tag returns the action or type tag of event within family, or "" when the
// event does not belong to the family vocabulary
func Tag(family domain.StreamContext, event domain.Event) string {
	switch family {
	case domain.ContextCwr721:
		if event.Type != WasmEventType {
			return ""
		}
		if _, ok := cw721Actions[event.Action()]; ok {
			return event.Action()
		}
	case domain.ContextMrkt:
		if event.Type != WasmEventType {
			return ""
		}
		if _, ok := mrktActions[event.Action()]; ok {
			return event.Action()
		}
	case domain.ContextPallet:
		if _, ok := palletEventTypes[event.Type]; ok {
			return event.Type
		}
	}
	return ""
}

// Filter keeps, in order, the events of family that carry a known tag.
// Marketplace events must also come from the configured marketplace contract.
func Filter(family domain.StreamContext, events []domain.Event, contracts Contracts) []domain.Event {
	var out []domain.Event
	for _, event := range events {
		if Tag(family, event) == "" {
			continue
		}
		if family == domain.ContextMrkt && event.Attr("_contract_address") != contracts.Mrkt {
			continue
		}
		out = append(out, event)
	}
	return out
}
