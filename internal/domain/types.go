package domain

import (
	"time"
)

// StreamContext identifies a contract family. The values are persisted on ledger
// entries and checkpoint markers.
type StreamContext string

const (
	// ContextCwr721 is the NFT transfer family (mint, transfer_nft, send_nft)
	ContextCwr721 StreamContext = "cwr721"
	// ContextMrkt is the marketplace sale contract
	ContextMrkt StreamContext = "mrkt"
	// ContextPallet is the auction contract
	ContextPallet StreamContext = "pallet"
)

// AllContexts lists every contract family in processing order
var AllContexts = []StreamContext{ContextCwr721, ContextMrkt, ContextPallet}

// Valid reports whether c is a known contract family
func (c StreamContext) Valid() bool {
	switch c {
	case ContextCwr721, ContextMrkt, ContextPallet:
		return true
	}
	return false
}

// Marketplace identifies the venue a listing or sale belongs to
type Marketplace string

const (
	MarketplaceMrkt   Marketplace = "mrkt"
	MarketplacePallet Marketplace = "pallet"
)

// SaleType is the kind of a listing
type SaleType string

const (
	SaleTypeFixed   SaleType = "fixed"
	SaleTypeAuction SaleType = "auction"
)

// EventKind classifies an activity row
type EventKind string

const (
	EventKindList        EventKind = "list"
	EventKindDelist      EventKind = "delist"
	EventKindSale        EventKind = "sale"
	EventKindMakeOffer   EventKind = "make_offer"
	EventKindCancelOffer EventKind = "cancel_offer"
)

// LoyaltyPointKind is the side of a sale a point grant rewards
type LoyaltyPointKind string

const (
	LoyaltyPointBuy  LoyaltyPointKind = "buy"
	LoyaltyPointSell LoyaltyPointKind = "sell"
)

// Mode tells a handler where an event came from
type Mode string

const (
	// ModeStream is a live event; its payload is trusted for ownership and it is dated with wall clock time
	ModeStream Mode = "stream"
	// ModeScanner is a replayed event; ownership is re-read from chain and it is dated with the block time
	ModeScanner Mode = "scanner"
)

// Attribute is one decoded key/value pair of a contract event
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a decoded contract event
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// Attr returns the value of the first attribute named key, or "" when absent
func (e Event) Attr(key string) string {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Has reports whether the event carries a non-empty attribute named key
func (e Event) Has(key string) bool {
	return e.Attr(key) != ""
}

// Action returns the value of the action attribute
func (e Event) Action() string {
	return e.Attr("action")
}

// Input is everything a handler receives for one event
type Input struct {
	Event  Event
	TxHash string
	// Date is the activity timestamp: wall clock for live events, block time for replays
	Date time.Time
	Mode Mode
}
