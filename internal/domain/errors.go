package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSubscriptionFailed is returned when the node rejects a subscribe request
	ErrSubscriptionFailed = errors.New("subscription failed")

	// ErrMissingAttribute is returned when a required event attribute is absent
	ErrMissingAttribute = errors.New("missing event attribute")

	// ErrListingNotFound is returned when an action needs an open listing that is not stored
	ErrListingNotFound = errors.New("listing not found")

	// ErrInvalidAuction is returned when an auction listing carries no usable price
	ErrInvalidAuction = errors.New("invalid auction listing")

	// ErrUnknownFamily is returned for a stream context outside cwr721, mrkt and pallet
	ErrUnknownFamily = errors.New("unknown stream family")

	// ErrNotFound is returned when a chain lookup yields nothing
	ErrNotFound = errors.New("not found")
)

// MissingAttributeError reports which required attributes an event lacked
type MissingAttributeError struct {
	Action string
	TxHash string
	Keys   []string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing attribute in %s: %s (%s)", e.Action, e.TxHash, strings.Join(e.Keys, ", "))
}

func (e *MissingAttributeError) Unwrap() error {
	return ErrMissingAttribute
}
