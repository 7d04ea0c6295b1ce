package codec

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// SubscribeRequest is the JSON-RPC subscribe call sent when a connection opens
type SubscribeRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	ID      string          `json:"id"`
	Params  SubscribeParams `json:"params"`
}

type SubscribeParams struct {
	Query string `json:"query"`
}

// FilterQuery returns the node-side event query for family
func FilterQuery(family domain.StreamContext, contracts Contracts) (string, error) {
	switch family {
	case domain.ContextCwr721:
		return "tm.event = 'Tx' AND wasm._contract_address EXISTS AND wasm.token_id EXISTS AND wasm.action EXISTS", nil
	case domain.ContextMrkt:
		return fmt.Sprintf("tm.event = 'Tx' AND wasm._contract_address='%s'", contracts.Mrkt), nil
	case domain.ContextPallet:
		return fmt.Sprintf("tm.event = 'Tx' AND execute._contract_address='%s'", contracts.Pallet), nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnknownFamily, family)
}

// NewSubscribeRequest builds a subscribe call with a fresh random id
func NewSubscribeRequest(family domain.StreamContext, contracts Contracts) (*SubscribeRequest, error) {
	query, err := FilterQuery(family, contracts)
	if err != nil {
		return nil, err
	}

	return &SubscribeRequest{
		JSONRPC: "2.0",
		Method:  "subscribe",
		ID:      uuid.NewString(),
		Params:  SubscribeParams{Query: query},
	}, nil
}
