package codec

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// rpcResponse is a tendermint websocket JSON-RPC frame
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  *struct {
		Query string `json:"query"`
		Data  *struct {
			Type  string `json:"type"`
			Value *struct {
				TxResult *struct {
					Height string `json:"height"`
					Result struct {
						Events []rawEvent `json:"events"`
					} `json:"result"`
				} `json:"TxResult"`
			} `json:"value"`
		} `json:"data"`
		Events map[string][]string `json:"events"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    string `json:"data"`
	} `json:"error"`
}

type rawEvent struct {
	Type       string             `json:"type"`
	Attributes []domain.Attribute `json:"attributes"`
}

// Message is a decoded subscription frame
type Message struct {
	// TxHash is empty for frames that are not transactions (subscribe acks, heartbeats)
	TxHash string
	Height int64
	// Events are every sub-event of the transaction with decoded attributes
	Events []domain.Event
	// Index is the flattened "<type>.<key>" -> values map sent alongside the result
	Index map[string][]string
}

// Decoder turns raw frames into messages
type Decoder struct {
	base64 adapter.Base64
}

// NewDecoder creates a decoder using b64 for attribute decoding
func NewDecoder(b64 adapter.Base64) *Decoder {
	return &Decoder{base64: b64}
}

// DecodeMessage parses one websocket frame. A JSON-RPC error frame is returned as an error
// wrapping domain.ErrSubscriptionFailed.
func (d *Decoder) DecodeMessage(raw []byte) (*Message, error) {
	var resp rpcResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %d %s %s", domain.ErrSubscriptionFailed, resp.Error.Code, resp.Error.Message, resp.Error.Data)
	}

	msg := &Message{}
	if resp.Result == nil {
		return msg, nil
	}

	msg.Index = resp.Result.Events
	if hashes := resp.Result.Events["tx.hash"]; len(hashes) > 0 {
		msg.TxHash = hashes[0]
	}

	if resp.Result.Data == nil || resp.Result.Data.Value == nil || resp.Result.Data.Value.TxResult == nil {
		return msg, nil
	}

	txResult := resp.Result.Data.Value.TxResult
	if txResult.Height != "" {
		height, err := strconv.ParseInt(txResult.Height, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tx height %q: %w", txResult.Height, err)
		}
		msg.Height = height
	}

	msg.Events = make([]domain.Event, 0, len(txResult.Result.Events))
	for _, ev := range txResult.Result.Events {
		msg.Events = append(msg.Events, d.DecodeEvent(ev.Type, ev.Attributes))
	}

	return msg, nil
}

// DecodeEvent decodes the attribute keys and values of one wire event.
// Older nodes base64-encode every key and value, newer ones send plain text. The keys tell
// the two apart: an event is encoded only when every key decodes to an attribute name.
// Values are never inspected, so a plain value that happens to be valid base64 is kept.
func (d *Decoder) DecodeEvent(eventType string, attributes []domain.Attribute) domain.Event {
	event := domain.Event{
		Type:       eventType,
		Attributes: make([]domain.Attribute, 0, len(attributes)),
	}

	if !d.encodedKeys(attributes) {
		event.Attributes = append(event.Attributes, attributes...)
		return event
	}

	for _, attr := range attributes {
		event.Attributes = append(event.Attributes, domain.Attribute{
			Key:   d.decodeAttribute(attr.Key),
			Value: d.decodeAttribute(attr.Value),
		})
	}
	return event
}

func (d *Decoder) encodedKeys(attributes []domain.Attribute) bool {
	if len(attributes) == 0 {
		return false
	}
	for _, attr := range attributes {
		decoded, err := d.base64.Decode(attr.Key)
		if err != nil || !attributeName(decoded) {
			return false
		}
	}
	return true
}

// decodeAttribute base64-decodes s, keeping it verbatim when it is not valid base64
func (d *Decoder) decodeAttribute(s string) string {
	if s == "" {
		return s
	}
	decoded, err := d.base64.Decode(s)
	if err != nil {
		return s
	}
	return string(decoded)
}

// attributeName reports whether b looks like an event attribute key such as "_contract_address"
func attributeName(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '.', c == '-':
		default:
			return false
		}
	}
	return true
}
