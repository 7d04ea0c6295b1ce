// Package handlers maps decoded contract events onto store mutations.
//
// Each handler treats its event as a change notification: current sale and offer state is
// re-read from the contracts and that answer is what gets stored, so handling the same
// event twice, or two events out of order, converges on the chain state.
package handlers

import (
	"context"

	"gorm.io/datatypes"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/chain"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/reconciler"
	"github.com/feral-file/sei-marketplace-indexer/internal/store"
)

// Handler handles one decoded event
type Handler func(ctx context.Context, in domain.Input) domain.Result

// Deps are the collaborators shared by every handler family
type Deps struct {
	Store      store.Store
	Chain      chain.Client
	Reconciler reconciler.Reconciler
	JSON       adapter.JSON
}

// emptyMetadata is stored on activities that carry no extra data
var emptyMetadata = datatypes.JSON(`{}`)
