package chain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// Block is the header data the indexer needs from a block
type Block struct {
	Height int64
	Time   time.Time
}

// Tx is an indexed transaction with its plain-text events
type Tx struct {
	Hash   string
	Height int64
	Events []domain.Event
}

// NftInfo is the cw721 nft_info response
type NftInfo struct {
	TokenURI  string `json:"token_uri"`
	Extension *struct {
		RoyaltyPercentage *float64 `json:"royalty_percentage"`
	} `json:"extension"`
}

// RoyaltyPercentage returns the royalty from the token extension, if any
func (n *NftInfo) RoyaltyPercentage() *float64 {
	if n == nil || n.Extension == nil {
		return nil
	}
	return n.Extension.RoyaltyPercentage
}

// ContractInfo is the cw721 contract_info response
type ContractInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Denom is the denomination wrapper used by the marketplace contract
type Denom struct {
	Native string `json:"native"`
}

// DurationType is either "Fixed" or {"Time":[start,end]} in unix seconds
type DurationType struct {
	Fixed bool
	Start int64
	End   int64
}

func (d *DurationType) UnmarshalJSON(data []byte) error {
	var fixed string
	if err := json.Unmarshal(data, &fixed); err == nil {
		if fixed != "Fixed" {
			return fmt.Errorf("unknown duration type %q", fixed)
		}
		*d = DurationType{Fixed: true}
		return nil
	}

	var timed struct {
		Time []int64 `json:"Time"`
	}
	if err := json.Unmarshal(data, &timed); err != nil {
		return fmt.Errorf("invalid duration type: %w", err)
	}
	if len(timed.Time) != 2 {
		return fmt.Errorf("invalid duration window length %d", len(timed.Time))
	}
	*d = DurationType{Start: timed.Time[0], End: timed.Time[1]}
	return nil
}

func (d DurationType) MarshalJSON() ([]byte, error) {
	if d.Fixed {
		return json.Marshal("Fixed")
	}
	return json.Marshal(map[string][]int64{"Time": {d.Start, d.End}})
}

// Sale is the marketplace get_sale response
type Sale struct {
	Buyout                 *string      `json:"buyout"`
	CanAccept              bool         `json:"can_accept"`
	Cw721Address           string       `json:"cw721_address"`
	Denom                  Denom        `json:"denom"`
	DurationType           DurationType `json:"duration_type"`
	InitialPrice           string       `json:"initial_price"`
	MinBidIncrementPercent *float64     `json:"min_bid_increment_percent"`
	Provider               string       `json:"provider"`
	SaleType               string       `json:"sale_type"`
	TokenID                string       `json:"token_id"`
}

// ListingSaleType maps the contract sale type to the stored one
func (s *Sale) ListingSaleType() domain.SaleType {
	if s.SaleType == "Fixed" {
		return domain.SaleTypeFixed
	}
	return domain.SaleTypeAuction
}

// OfferDuration is an offer validity window in unix seconds
type OfferDuration struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Offer is the marketplace get_offer response
type Offer struct {
	Buyer        string        `json:"buyer"`
	Cw721Address string        `json:"cw721_address"`
	Denom        Denom         `json:"denom"`
	Duration     OfferDuration `json:"duration"`
	NumAccepted  int64         `json:"num_accepted"`
	Price        string        `json:"price"`
	Quantity     int64         `json:"quantity"`
	TokenID      *string       `json:"token_id"`
}

// OfferQuery selects an offer. A nil TokenID selects the collection offer.
type OfferQuery struct {
	Cw721Address string
	Buyer        string
	Price        string
	TokenID      *string
}

// PalletPrice is one accepted price of a pallet auction
type PalletPrice struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

// PalletAuction is an open pallet listing
type PalletAuction struct {
	AuctionType    string        `json:"auction_type"`
	CreatedAt      int64         `json:"created_at"`
	ExpirationTime *int64        `json:"expiration_time"`
	ID             int64         `json:"id"`
	Prices         []PalletPrice `json:"prices"`
}

// PalletListing is the pallet nft response; Auction is nil when the token is not listed
type PalletListing struct {
	NftAddress string         `json:"nft_address"`
	NftTokenID string         `json:"nft_token_id"`
	Owner      string         `json:"owner"`
	Auction    *PalletAuction `json:"auction"`
}
