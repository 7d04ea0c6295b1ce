package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStreamContextValid(t *testing.T) {
	tests := []struct {
		name     string
		context  StreamContext
		expected bool
	}{
		{name: "cwr721", context: ContextCwr721, expected: true},
		{name: "mrkt", context: ContextMrkt, expected: true},
		{name: "pallet", context: ContextPallet, expected: true},
		{name: "empty", context: StreamContext(""), expected: false},
		{name: "misspelled transfer family", context: StreamContext("cw721"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.context.Valid())
		})
	}
}

func TestEventAttr(t *testing.T) {
	event := Event{
		Type: "wasm",
		Attributes: []Attribute{
			{Key: "action", Value: "start_sale"},
			{Key: "token_id", Value: "1"},
			{Key: "token_id", Value: "2"},
			{Key: "denom", Value: ""},
		},
	}

	assert.Equal(t, "start_sale", event.Action())
	assert.Equal(t, "1", event.Attr("token_id"), "first occurrence wins")
	assert.Equal(t, "", event.Attr("seller"))
	assert.True(t, event.Has("token_id"))
	assert.False(t, event.Has("denom"), "empty values count as missing")
	assert.False(t, event.Has("seller"))
}

func TestResult(t *testing.T) {
	ok := Ok()
	assert.True(t, ok.IsOK())
	assert.NoError(t, ok.Error())
	assert.Equal(t, "ok", ok.Kind().String())

	skip := Skip("collection level mint")
	assert.True(t, skip.IsSkip())
	assert.Equal(t, "collection level mint", skip.Reason())
	assert.NoError(t, skip.Error())

	cause := errors.New("boom")
	failed := Err(cause)
	assert.True(t, failed.IsError())
	assert.ErrorIs(t, failed.Error(), cause)

	assert.Error(t, Err(nil).Error())
}

func TestMissingAttributeError(t *testing.T) {
	err := error(&MissingAttributeError{Action: "start_sale", TxHash: "TXA", Keys: []string{"seller", "denom"}})

	assert.ErrorIs(t, err, ErrMissingAttribute)
	assert.Equal(t, "missing attribute in start_sale: TXA (seller, denom)", err.Error())

	var target *MissingAttributeError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, []string{"seller", "denom"}, target.Keys)
}

func TestUseiToSei(t *testing.T) {
	assert.True(t, decimal.NewFromInt(1).Equal(UseiToSei(decimal.NewFromInt(1_000_000))))
	assert.True(t, decimal.RequireFromString("0.5").Equal(UseiToSei(decimal.NewFromInt(500_000))))
	assert.True(t, decimal.Zero.Equal(UseiToSei(decimal.Zero)))
}
