package chain

//go:generate mockgen -source=client.go -destination=../mocks/chain_client.go -package=mocks -mock_names=Client=MockChainClient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/codec"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

const txPageLimit = 100

// Client queries chain state through the Cosmos REST gateway
type Client interface {
	// GetBlock returns the block header at height, or the latest block when height is 0
	GetBlock(ctx context.Context, height int64) (*Block, error)
	// GetTx returns the transaction with the given hash, or nil when the node does not know it
	GetTx(ctx context.Context, hash string) (*Tx, error)
	// GetTxsByHeight returns every transaction included in the block at height
	GetTxsByHeight(ctx context.Context, height int64) ([]Tx, error)

	NftInfo(ctx context.Context, cw721Address, tokenID string) (*NftInfo, error)
	OwnerOf(ctx context.Context, cw721Address, tokenID string) (string, error)
	ContractInfo(ctx context.Context, cw721Address string) (*ContractInfo, error)
	NumTokens(ctx context.Context, cw721Address string) (uint64, error)

	// GetSale returns the active mrkt sale of a token, or nil when it has none
	GetSale(ctx context.Context, cw721Address, tokenID string) (*Sale, error)
	// GetOffer returns the mrkt offer matching query, or nil when it is gone
	GetOffer(ctx context.Context, query OfferQuery) (*Offer, error)
	// GetPalletListing returns the pallet state of a token; Auction is nil when it is not listed
	GetPalletListing(ctx context.Context, nftAddress, tokenID string) (*PalletListing, error)
}

// Options configures the REST client
type Options struct {
	RESTURL      string
	Contracts    codec.Contracts
	QueryTimeout time.Duration
	Limiter      *rate.Limiter
}

type restClient struct {
	baseURL      string
	contracts    codec.Contracts
	queryTimeout time.Duration
	limiter      *rate.Limiter
	httpClient   adapter.HTTPClient
	base64       adapter.Base64
	decoder      *codec.Decoder
}

// NewClient creates a chain client over the REST gateway at opts.RESTURL
func NewClient(opts Options, httpClient adapter.HTTPClient, b64 adapter.Base64) Client {
	return &restClient{
		baseURL:      strings.TrimRight(opts.RESTURL, "/"),
		contracts:    opts.Contracts,
		queryTimeout: opts.QueryTimeout,
		limiter:      opts.Limiter,
		httpClient:   httpClient,
		base64:       b64,
		decoder:      codec.NewDecoder(b64),
	}
}

type restEvent struct {
	Type       string             `json:"type"`
	Attributes []domain.Attribute `json:"attributes"`
}

type restTxResponse struct {
	Height string      `json:"height"`
	TxHash string      `json:"txhash"`
	Events []restEvent `json:"events"`
}

type restBlock struct {
	Block struct {
		Header struct {
			Height string    `json:"height"`
			Time   time.Time `json:"time"`
		} `json:"header"`
	} `json:"block"`
}

func (c *restClient) GetBlock(ctx context.Context, height int64) (*Block, error) {
	ref := "latest"
	if height > 0 {
		ref = strconv.FormatInt(height, 10)
	}

	var resp restBlock
	if err := c.get(ctx, fmt.Sprintf("%s/cosmos/base/tendermint/v1beta1/blocks/%s", c.baseURL, ref), &resp); err != nil {
		return nil, fmt.Errorf("failed to get block %s: %w", ref, err)
	}

	h, err := strconv.ParseInt(resp.Block.Header.Height, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid block height %q: %w", resp.Block.Header.Height, err)
	}

	return &Block{Height: h, Time: resp.Block.Header.Time}, nil
}

func (c *restClient) GetTx(ctx context.Context, hash string) (*Tx, error) {
	var resp struct {
		TxResponse *restTxResponse `json:"tx_response"`
	}
	err := c.get(ctx, fmt.Sprintf("%s/cosmos/tx/v1beta1/txs/%s", c.baseURL, url.PathEscape(hash)), &resp)
	if err != nil {
		var statusErr *adapter.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tx %s: %w", hash, err)
	}
	if resp.TxResponse == nil {
		return nil, nil
	}

	tx, err := c.toTx(resp.TxResponse)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *restClient) GetTxsByHeight(ctx context.Context, height int64) ([]Tx, error) {
	var txs []Tx
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("events", fmt.Sprintf("tx.height=%d", height))
		query.Set("page", strconv.Itoa(page))
		query.Set("limit", strconv.Itoa(txPageLimit))

		var resp struct {
			TxResponses []restTxResponse `json:"tx_responses"`
			Total       string           `json:"total"`
		}
		if err := c.get(ctx, fmt.Sprintf("%s/cosmos/tx/v1beta1/txs?%s", c.baseURL, query.Encode()), &resp); err != nil {
			return nil, fmt.Errorf("failed to list txs at height %d: %w", height, err)
		}

		for i := range resp.TxResponses {
			tx, err := c.toTx(&resp.TxResponses[i])
			if err != nil {
				return nil, err
			}
			txs = append(txs, tx)
		}

		total, _ := strconv.Atoi(resp.Total)
		if len(resp.TxResponses) < txPageLimit || (total > 0 && len(txs) >= total) {
			return txs, nil
		}
	}
}

func (c *restClient) NftInfo(ctx context.Context, cw721Address, tokenID string) (*NftInfo, error) {
	var info *NftInfo
	query := map[string]any{"nft_info": map[string]any{"token_id": tokenID}}
	if err := c.smartQuery(ctx, cw721Address, query, &info); err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("%w: nft %s/%s", domain.ErrNotFound, cw721Address, tokenID)
	}
	return info, nil
}

func (c *restClient) OwnerOf(ctx context.Context, cw721Address, tokenID string) (string, error) {
	var resp struct {
		Owner string `json:"owner"`
	}
	query := map[string]any{"owner_of": map[string]any{"token_id": tokenID}}
	if err := c.smartQuery(ctx, cw721Address, query, &resp); err != nil {
		return "", err
	}
	return resp.Owner, nil
}

func (c *restClient) ContractInfo(ctx context.Context, cw721Address string) (*ContractInfo, error) {
	var info ContractInfo
	query := map[string]any{"contract_info": map[string]any{}}
	if err := c.smartQuery(ctx, cw721Address, query, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *restClient) NumTokens(ctx context.Context, cw721Address string) (uint64, error) {
	var resp struct {
		Count uint64 `json:"count"`
	}
	query := map[string]any{"num_tokens": map[string]any{}}
	if err := c.smartQuery(ctx, cw721Address, query, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *restClient) GetSale(ctx context.Context, cw721Address, tokenID string) (*Sale, error) {
	var sale *Sale
	query := map[string]any{"get_sale": map[string]any{
		"cw721_address": cw721Address,
		"token_id":      tokenID,
	}}
	if err := c.smartQuery(ctx, c.contracts.Mrkt, query, &sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (c *restClient) GetOffer(ctx context.Context, q OfferQuery) (*Offer, error) {
	var offer *Offer
	query := map[string]any{"get_offer": map[string]any{
		"cw721_address": q.Cw721Address,
		"buyer":         q.Buyer,
		"price":         q.Price,
		"token_id":      q.TokenID,
	}}
	if err := c.smartQuery(ctx, c.contracts.Mrkt, query, &offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (c *restClient) GetPalletListing(ctx context.Context, nftAddress, tokenID string) (*PalletListing, error) {
	var listing PalletListing
	query := map[string]any{"nft": map[string]any{
		"address":  nftAddress,
		"token_id": tokenID,
	}}
	if err := c.smartQuery(ctx, c.contracts.Pallet, query, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// smartQuery runs a wasm smart query and decodes its data field into out
func (c *restClient) smartQuery(ctx context.Context, contract string, query any, out any) error {
	payload, err := json.Marshal(query)
	if err != nil {
		return fmt.Errorf("failed to encode smart query: %w", err)
	}

	endpoint := fmt.Sprintf("%s/cosmwasm/wasm/v1/contract/%s/smart/%s",
		c.baseURL, contract, c.base64.EncodeURL(payload))

	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return fmt.Errorf("smart query %s on %s failed: %w", payload, contract, err)
	}

	if len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode smart query %s response: %w", payload, err)
	}
	return nil
}

func (c *restClient) get(ctx context.Context, endpoint string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if c.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	return c.httpClient.Get(ctx, endpoint, out)
}

func (c *restClient) toTx(resp *restTxResponse) (Tx, error) {
	height, err := strconv.ParseInt(resp.Height, 10, 64)
	if err != nil {
		return Tx{}, fmt.Errorf("invalid tx height %q: %w", resp.Height, err)
	}

	tx := Tx{
		Hash:   resp.TxHash,
		Height: height,
		Events: make([]domain.Event, 0, len(resp.Events)),
	}
	for _, ev := range resp.Events {
		tx.Events = append(tx.Events, c.decoder.DecodeEvent(ev.Type, ev.Attributes))
	}
	return tx, nil
}
