package domain

import "github.com/shopspring/decimal"

const (
	// DEFAULT_IPFS_GATEWAY is used when no IPFS gateway is configured
	DEFAULT_IPFS_GATEWAY = "https://ipfs.io"
	// DEFAULT_ARWEAVE_GATEWAY is used when no Arweave gateway is configured
	DEFAULT_ARWEAVE_GATEWAY = "https://arweave.net"

	// NativeDenom is the base denomination of the chain
	NativeDenom = "usei"

	// UnknownAddress stands in for a counterparty that could not be recovered from chain
	UnknownAddress = "unknown"

	// CurrentHeightCursor is the key_value_store key of the block scan cursor
	CurrentHeightCursor = "current_height"
)

// useiPerSei is the number of base units in one sei
var useiPerSei = decimal.New(1, 6)

// UseiToSei converts an amount of usei into sei
func UseiToSei(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(useiPerSei)
}
