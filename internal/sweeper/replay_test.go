package sweeper_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/chain"
	"github.com/feral-file/sei-marketplace-indexer/internal/codec"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/handlers"
	"github.com/feral-file/sei-marketplace-indexer/internal/ledger"
	"github.com/feral-file/sei-marketplace-indexer/internal/mocks"
	"github.com/feral-file/sei-marketplace-indexer/internal/reconciler"
	"github.com/feral-file/sei-marketplace-indexer/internal/store"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/storetest"
	"github.com/feral-file/sei-marketplace-indexer/internal/sweeper"
)

const replayCollection = "sei1collection"

// testReplayEnv wires the marketplace router and the tx reconciler over one real store and ledger
type testReplayEnv struct {
	ctrl       *gomock.Controller
	store      store.Store
	db         *gorm.DB
	chain      *mocks.MockChainClient
	blocks     *mocks.MockBlockProvider
	router     *handlers.Router
	reconciler sweeper.TxReconciler
}

func setupTestReplayEnv(t *testing.T) *testReplayEnv {
	ctrl := gomock.NewController(t)
	st, db := storetest.NewStore(t)

	env := &testReplayEnv{
		ctrl:   ctrl,
		store:  st,
		db:     db,
		chain:  mocks.NewMockChainClient(ctrl),
		blocks: mocks.NewMockBlockProvider(ctrl),
	}

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(blockTime).AnyTimes()
	clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()
	publisher := mocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	json := adapter.NewJSON()
	l := ledger.New(st, env.blocks, json, ledger.Config{})
	router, err := handlers.NewRouter(domain.ContextMrkt, handlers.Deps{
		Store:      st,
		Chain:      env.chain,
		Reconciler: reconciler.New(st, env.chain, mocks.NewMockMetadataFetcher(ctrl), json, clock),
		JSON:       json,
	}, l, publisher, clock)
	require.NoError(t, err)
	env.router = router

	env.reconciler = sweeper.NewTxReconciler(sweeper.TxReconcilerConfig{
		Contracts: codec.Contracts{Mrkt: mrktAddress, Pallet: "sei1pallet"},
		PoolSize:  2,
	}, env.chain, env.blocks, l, []handlers.Processor{router})

	// Known tokens resolve from the store without touching the chain
	require.NoError(t, st.CreateCollection(context.Background(), &schema.Collection{Address: replayCollection, Name: "Sei Cats"}))
	for _, tokenID := range []string{"1", "2", "3"} {
		require.NoError(t, st.CreateNft(context.Background(), &schema.Nft{TokenAddress: replayCollection, TokenID: tokenID}))
	}

	return env
}

func (env *testReplayEnv) tearDown() {
	env.reconciler.Close()
	env.ctrl.Finish()
}

func (env *testReplayEnv) count(t *testing.T, model any, query ...any) int64 {
	t.Helper()
	var n int64
	q := env.db.Model(model)
	if len(query) > 0 {
		q = q.Where(query[0], query[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

// marketTxs lists, bids on, offers on and sells tokens through the marketplace contract
func marketTxs() []chain.Tx {
	return []chain.Tx{
		{Hash: "TXLIST", Height: 100, Events: []domain.Event{
			wasmEvent("_contract_address", mrktAddress, "action", "start_sale", "cw721_address", replayCollection,
				"token_id", "1", "initial_price", "1000000", "sale_type", "Fixed", "seller", "sei1seller", "denom", "usei"),
		}},
		{Hash: "TXBID", Height: 101, Events: []domain.Event{
			wasmEvent("_contract_address", mrktAddress, "action", "bidding", "cw721_address", replayCollection,
				"token_id", "1", "buyer", "sei1bidder", "price", "1200000"),
			wasmEvent("_contract_address", mrktAddress, "action", "make_collection_offer", "cw721_address", replayCollection,
				"token_id", "2", "buyer", "sei1buyer", "quantity", "1", "price", "500000", "denom", "usei"),
		}},
		{Hash: "TXSALE", Height: 102, Events: []domain.Event{
			wasmEvent("_contract_address", mrktAddress, "action", "accept_sale", "cw721_address", replayCollection,
				"token_id", "3", "buyer", "sei1buyer", "seller", "sei1seller", "price", "3000000", "denom", "usei"),
		}},
	}
}

// expectOpenMarket makes the contract report the sale of token 1 and the offer on token 2 as open
func (env *testReplayEnv) expectOpenMarket() {
	env.chain.EXPECT().GetSale(gomock.Any(), replayCollection, "1").Return(&chain.Sale{
		Provider:     "sei1seller",
		Denom:        chain.Denom{Native: "usei"},
		DurationType: chain.DurationType{Fixed: true},
		InitialPrice: "1000000",
		SaleType:     "Fixed",
	}, nil).AnyTimes()
	env.chain.EXPECT().GetSale(gomock.Any(), replayCollection, "3").Return(nil, nil).AnyTimes()
	tokenID := "2"
	env.chain.EXPECT().GetOffer(gomock.Any(), gomock.Any()).Return(&chain.Offer{
		Buyer:        "sei1buyer",
		Cw721Address: replayCollection,
		Denom:        chain.Denom{Native: "usei"},
		Price:        "500000",
		Quantity:     1,
		TokenID:      &tokenID,
	}, nil).AnyTimes()
	env.blocks.EXPECT().GetBlockTime(gomock.Any(), gomock.Any()).Return(blockTime, nil).AnyTimes()
}

func (env *testReplayEnv) processLive(t *testing.T, txs []chain.Tx) {
	t.Helper()
	for _, tx := range txs {
		events := codec.Filter(domain.ContextMrkt, tx.Events, codec.Contracts{Mrkt: mrktAddress})
		summary := env.router.Process(context.Background(), tx.Hash, events, blockTime, domain.ModeStream)
		require.Zero(t, summary.Failed, tx.Hash)
	}
}

func (env *testReplayEnv) assertMarketRows(t *testing.T) {
	t.Helper()
	assert.Equal(t, int64(1), env.count(t, &schema.Listing{}))
	assert.Equal(t, int64(1), env.count(t, &schema.Bidding{}))
	assert.Equal(t, int64(1), env.count(t, &schema.NftOffer{}))
	assert.Equal(t, int64(2), env.count(t, &schema.Transaction{}))
	assert.Equal(t, int64(1), env.count(t, &schema.Transaction{}, "tx_hash = ?", "TXSALE"))
	assert.Equal(t, int64(1), env.count(t, &schema.Activity{}, "event_kind = ?", domain.EventKindSale))
	assert.Equal(t, int64(1), env.count(t, &schema.Activity{}, "event_kind = ?", domain.EventKindList))
	assert.Equal(t, int64(1), env.count(t, &schema.Activity{}, "event_kind = ?", domain.EventKindMakeOffer))
	assert.Equal(t, int64(2), env.count(t, &schema.UserLoyaltyPoint{}))

	var bid schema.Bidding
	require.NoError(t, env.db.First(&bid).Error)
	assert.True(t, decimal.NewFromInt(1_200_000).Equal(bid.Price))
}

func TestReplay_AfterLiveProcessingIsSkipped(t *testing.T) {
	env := setupTestReplayEnv(t)
	defer env.tearDown()

	env.expectOpenMarket()
	txs := marketTxs()
	env.processLive(t, txs)
	env.assertMarketRows(t)

	for _, tx := range txs {
		require.NoError(t, env.reconciler.ReconcileTx(context.Background(), tx))
	}
	env.assertMarketRows(t)
}

func TestReplay_RacingLiveProcessingWritesOnce(t *testing.T) {
	env := setupTestReplayEnv(t)
	defer env.tearDown()

	env.expectOpenMarket()
	txs := marketTxs()

	// The replay checked the ledger before the live writes landed, so both run every handler
	env.processLive(t, txs)
	for _, tx := range txs {
		events := codec.Filter(domain.ContextMrkt, tx.Events, codec.Contracts{Mrkt: mrktAddress})
		summary := env.router.Process(context.Background(), tx.Hash, events, blockTime, domain.ModeScanner)
		require.Zero(t, summary.Failed, tx.Hash)
	}

	env.assertMarketRows(t)
}

func TestReplay_BeforeLiveProcessingWritesOnce(t *testing.T) {
	env := setupTestReplayEnv(t)
	defer env.tearDown()

	env.expectOpenMarket()
	env.chain.EXPECT().GetTxsByHeight(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, height int64) ([]chain.Tx, error) {
			for _, tx := range marketTxs() {
				if tx.Height == height {
					return []chain.Tx{tx}, nil
				}
			}
			return nil, nil
		}).AnyTimes()

	require.NoError(t, env.reconciler.ReconcileRange(context.Background(), 100, 102, nil))
	env.assertMarketRows(t)

	// A late stream delivery of the same transactions does not add rows
	env.processLive(t, marketTxs())
	env.assertMarketRows(t)
}
