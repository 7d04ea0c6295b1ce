package handlers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
)

// attributes reads event attributes and collects the required ones that are missing
type attributes struct {
	event   domain.Event
	missing []string
}

func readAttributes(event domain.Event) *attributes {
	return &attributes{event: event}
}

// required returns the value of key and remembers it as missing when empty
func (a *attributes) required(key string) string {
	value := a.event.Attr(key)
	if value == "" {
		a.missing = append(a.missing, key)
	}
	return value
}

func (a *attributes) optional(key string) string {
	return a.event.Attr(key)
}

// check returns a MissingAttributeError naming every missing required key
func (a *attributes) check(action, txHash string) error {
	if len(a.missing) == 0 {
		return nil
	}
	return &domain.MissingAttributeError{Action: action, TxHash: txHash, Keys: a.missing}
}

func parseAmount(name, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return amount, nil
}

func parseOptionalAmount(name, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	amount, err := parseAmount(name, value)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

// unixTime converts contract seconds to a time, nil for zero
func unixTime(seconds int64) *time.Time {
	if seconds == 0 {
		return nil
	}
	t := time.Unix(seconds, 0).UTC()
	return &t
}
