package codec_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/codec"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

var contracts = codec.Contracts{Mrkt: "sei1mrkt", Pallet: "sei1pallet"}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// frame builds a subscription frame with base64 encoded attributes
func frame(txHash string, height int64, events []domain.Event) []byte {
	var rendered []string
	for _, ev := range events {
		var attrs []string
		for _, a := range ev.Attributes {
			attrs = append(attrs, fmt.Sprintf(`{"key":%q,"value":%q,"index":true}`, b64(a.Key), b64(a.Value)))
		}
		rendered = append(rendered, fmt.Sprintf(`{"type":%q,"attributes":[%s]}`, ev.Type, strings.Join(attrs, ",")))
	}

	index := `{}`
	if txHash != "" {
		index = fmt.Sprintf(`{"tx.hash":[%q],"tm.event":["Tx"]}`, txHash)
	}

	return []byte(fmt.Sprintf(`{"jsonrpc":"2.0","id":"1","result":{"query":"q","data":{"type":"tendermint/event/Tx","value":{"TxResult":{"height":"%d","result":{"events":[%s]}}}},"events":%s}}`,
		height, strings.Join(rendered, ","), index))
}

func wasm(attrs ...string) domain.Event {
	ev := domain.Event{Type: codec.WasmEventType}
	for i := 0; i+1 < len(attrs); i += 2 {
		ev.Attributes = append(ev.Attributes, domain.Attribute{Key: attrs[i], Value: attrs[i+1]})
	}
	return ev
}

func TestDecodeMessage(t *testing.T) {
	decoder := codec.NewDecoder(adapter.NewBase64())

	events := []domain.Event{
		{Type: "message", Attributes: []domain.Attribute{{Key: "sender", Value: "sei1sender"}}},
		wasm("_contract_address", "sei1mrkt", "action", "start_sale", "token_id", "1"),
	}

	msg, err := decoder.DecodeMessage(frame("TXA", 42, events))
	require.NoError(t, err)
	assert.Equal(t, "TXA", msg.TxHash)
	assert.Equal(t, int64(42), msg.Height)
	require.Len(t, msg.Events, 2)
	assert.Equal(t, "message", msg.Events[0].Type)
	assert.Equal(t, "start_sale", msg.Events[1].Action())
	assert.Equal(t, "sei1mrkt", msg.Events[1].Attr("_contract_address"))
	assert.Equal(t, []string{"Tx"}, msg.Index["tm.event"])
}

func TestDecodeMessage_NonTxFrames(t *testing.T) {
	decoder := codec.NewDecoder(adapter.NewBase64())

	tests := []struct {
		name string
		raw  string
	}{
		{name: "subscribe acknowledgement", raw: `{"jsonrpc":"2.0","id":"abc","result":{}}`},
		{name: "no result", raw: `{"jsonrpc":"2.0","id":"abc"}`},
		{name: "result without tx hash", raw: `{"jsonrpc":"2.0","id":"abc","result":{"query":"q","events":{"tm.event":["NewBlock"]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := decoder.DecodeMessage([]byte(tt.raw))
			require.NoError(t, err)
			assert.Empty(t, msg.TxHash)
			assert.Empty(t, msg.Events)
		})
	}
}

func TestDecodeMessage_Errors(t *testing.T) {
	decoder := codec.NewDecoder(adapter.NewBase64())

	_, err := decoder.DecodeMessage([]byte(`not json`))
	assert.Error(t, err)

	_, err = decoder.DecodeMessage([]byte(`{"jsonrpc":"2.0","id":"1","error":{"code":-32603,"message":"Internal error","data":"max subscriptions"}}`))
	assert.True(t, errors.Is(err, domain.ErrSubscriptionFailed))
}

func TestDecodeMessage_PlainTextAttributes(t *testing.T) {
	decoder := codec.NewDecoder(adapter.NewBase64())

	raw := `{"jsonrpc":"2.0","id":"1","result":{"data":{"value":{"TxResult":{"height":"7","result":{"events":[` +
		`{"type":"wasm","attributes":[{"key":"action","value":"mint"},{"key":"token_id","value":"1"}]}]}}}},` +
		`"events":{"tx.hash":["TXP"]}}}`

	msg, err := decoder.DecodeMessage([]byte(raw))
	require.NoError(t, err)
	require.Len(t, msg.Events, 1)
	assert.Equal(t, "mint", msg.Events[0].Action())
	assert.Equal(t, "1", msg.Events[0].Attr("token_id"))
}

func TestDecodeEvent_PlainValuesThatLookEncoded(t *testing.T) {
	decoder := codec.NewDecoder(adapter.NewBase64())

	// "YWJj" and "dGVzdA==" are valid base64 of printable text but arrive as plain values
	event := decoder.DecodeEvent("wasm", []domain.Attribute{
		{Key: "action", Value: "mint"},
		{Key: "token_id", Value: "YWJj"},
		{Key: "owner", Value: "dGVzdA=="},
	})

	assert.Equal(t, "mint", event.Action())
	assert.Equal(t, "YWJj", event.Attr("token_id"))
	assert.Equal(t, "dGVzdA==", event.Attr("owner"))
}

func TestDecodeEvent_EncodedValues(t *testing.T) {
	decoder := codec.NewDecoder(adapter.NewBase64())

	event := decoder.DecodeEvent("wasm", []domain.Attribute{
		{Key: b64("action"), Value: b64("transfer_nft")},
		{Key: b64("token_id"), Value: b64("1234")},
		{Key: b64("memo"), Value: ""},
	})

	assert.Equal(t, "transfer_nft", event.Action())
	assert.Equal(t, "1234", event.Attr("token_id"))
	assert.Equal(t, "", event.Attr("memo"))
}

func TestDecodeEvent_MixedKeysStayPlain(t *testing.T) {
	decoder := codec.NewDecoder(adapter.NewBase64())

	// "seller" is not valid base64, so the whole event is treated as plain text
	event := decoder.DecodeEvent("wasm", []domain.Attribute{
		{Key: "seller", Value: "sei1seller"},
		{Key: b64("price"), Value: b64("10")},
	})

	assert.Equal(t, "sei1seller", event.Attr("seller"))
	assert.Equal(t, b64("10"), event.Attr(b64("price")))
}

func TestFilter(t *testing.T) {
	events := []domain.Event{
		wasm("_contract_address", "sei1nft", "action", "transfer_nft", "token_id", "1"),
		wasm("_contract_address", "sei1mrkt", "action", "start_sale"),
		wasm("_contract_address", "sei1other", "action", "start_sale"),
		wasm("_contract_address", "sei1mrkt", "action", "unknown_action"),
		wasm("_contract_address", "sei1mrkt"),
		{Type: "wasm-create_auction", Attributes: []domain.Attribute{{Key: "nft_address", Value: "sei1nft"}}},
		{Type: "wasm-unrelated"},
		wasm("_contract_address", "sei1nft", "action", "mint", "token_id", "2"),
	}

	cw721 := codec.Filter(domain.ContextCwr721, events, contracts)
	require.Len(t, cw721, 2)
	assert.Equal(t, "transfer_nft", cw721[0].Action())
	assert.Equal(t, "mint", cw721[1].Action())

	mrkt := codec.Filter(domain.ContextMrkt, events, contracts)
	require.Len(t, mrkt, 1)
	assert.Equal(t, "sei1mrkt", mrkt[0].Attr("_contract_address"))

	pallet := codec.Filter(domain.ContextPallet, events, contracts)
	require.Len(t, pallet, 1)
	assert.Equal(t, codec.EventCreateAuction, pallet[0].Type)

	assert.Empty(t, codec.Filter(domain.StreamContext("bogus"), events, contracts))
}

func TestTag(t *testing.T) {
	assert.Equal(t, "send_nft", codec.Tag(domain.ContextCwr721, wasm("action", "send_nft")))
	assert.Equal(t, "", codec.Tag(domain.ContextCwr721, wasm("action", "start_sale")))
	assert.Equal(t, "", codec.Tag(domain.ContextCwr721, domain.Event{Type: "execute", Attributes: []domain.Attribute{{Key: "action", Value: "mint"}}}))
	assert.Equal(t, "cancel_propose", codec.Tag(domain.ContextMrkt, wasm("action", "cancel_propose")))
	assert.Equal(t, codec.EventBuyNow, codec.Tag(domain.ContextPallet, domain.Event{Type: codec.EventBuyNow}))
	assert.Equal(t, "", codec.Tag(domain.ContextPallet, wasm("action", "buy_now")))
}

func TestNewSubscribeRequest(t *testing.T) {
	tests := []struct {
		family domain.StreamContext
		query  string
	}{
		{
			family: domain.ContextCwr721,
			query:  "tm.event = 'Tx' AND wasm._contract_address EXISTS AND wasm.token_id EXISTS AND wasm.action EXISTS",
		},
		{
			family: domain.ContextMrkt,
			query:  "tm.event = 'Tx' AND wasm._contract_address='sei1mrkt'",
		},
		{
			family: domain.ContextPallet,
			query:  "tm.event = 'Tx' AND execute._contract_address='sei1pallet'",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.family), func(t *testing.T) {
			req, err := codec.NewSubscribeRequest(tt.family, contracts)
			require.NoError(t, err)

			raw, err := json.Marshal(req)
			require.NoError(t, err)

			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.Equal(t, "2.0", decoded["jsonrpc"])
			assert.Equal(t, "subscribe", decoded["method"])
			assert.Equal(t, tt.query, decoded["params"].(map[string]interface{})["query"])

			_, err = uuid.Parse(req.ID)
			assert.NoError(t, err)
		})
	}

	first, _ := codec.NewSubscribeRequest(domain.ContextMrkt, contracts)
	second, _ := codec.NewSubscribeRequest(domain.ContextMrkt, contracts)
	assert.NotEqual(t, first.ID, second.ID)

	_, err := codec.NewSubscribeRequest(domain.StreamContext("bogus"), contracts)
	assert.ErrorIs(t, err, domain.ErrUnknownFamily)
}
