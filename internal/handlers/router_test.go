package handlers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/handlers"
	"github.com/feral-file/sei-marketplace-indexer/internal/ledger"
	"github.com/feral-file/sei-marketplace-indexer/internal/mocks"
	"github.com/feral-file/sei-marketplace-indexer/internal/notify"
)

type testRouterMocks struct {
	ctrl       *gomock.Controller
	store      *mocks.MockStore
	reconciler *mocks.MockReconciler
	ledger     *mocks.MockLedger
	publisher  *mocks.MockPublisher
	clock      *mocks.MockClock
	router     *handlers.Router
}

func setupTestRouter(t *testing.T, family domain.StreamContext) *testRouterMocks {
	ctrl := gomock.NewController(t)
	tm := &testRouterMocks{
		ctrl:       ctrl,
		store:      mocks.NewMockStore(ctrl),
		reconciler: mocks.NewMockReconciler(ctrl),
		ledger:     mocks.NewMockLedger(ctrl),
		publisher:  mocks.NewMockPublisher(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(eventDate).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(5 * time.Millisecond).AnyTimes()

	router, err := handlers.NewRouter(family, handlers.Deps{
		Store:      tm.store,
		Chain:      mocks.NewMockChainClient(ctrl),
		Reconciler: tm.reconciler,
		JSON:       adapter.NewJSON(),
	}, tm.ledger, tm.publisher, tm.clock)
	require.NoError(t, err)
	tm.router = router

	return tm
}

func (tm *testRouterMocks) tearDown() {
	tm.ctrl.Finish()
}

func TestNewRouter_UnknownFamily(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := handlers.NewRouter("erc721", handlers.Deps{}, mocks.NewMockLedger(ctrl), notify.NewNoopPublisher(), adapter.NewClock())
	assert.ErrorIs(t, err, domain.ErrUnknownFamily)
}

func TestRouterProcess(t *testing.T) {
	tm := setupTestRouter(t, domain.ContextCwr721)
	defer tm.tearDown()

	skipped := wasmEvent("_contract_address", collectionAddress, "action", "mint", "token_id", "1")
	transfer := wasmEvent("_contract_address", collectionAddress, "action", "transfer_nft", "token_id", "2", "recipient", "sei1new")
	unrelated := wasmEvent("_contract_address", mrktAddress, "action", "start_sale")
	broken := wasmEvent("_contract_address", collectionAddress, "action", "send_nft", "token_id", "3")

	tm.reconciler.EXPECT().EnsureNft(gomock.Any(), collectionAddress, "2").Return(int64(12), nil)
	tm.store.EXPECT().UpdateNftOwner(gomock.Any(), int64(12), "sei1new").Return(nil)

	var entries []ledger.Entry
	tm.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry ledger.Entry) ledger.WriteResult {
			entries = append(entries, entry)
			return ledger.WriteResult{}
		}).Times(3)

	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n notify.Notification) error {
			assert.Equal(t, "TX1", n.TxHash)
			assert.Equal(t, domain.ContextCwr721, n.Context)
			assert.Equal(t, "transfer_nft", n.Action)
			assert.Equal(t, transfer.Attributes, n.Attributes)
			return nil
		})

	summary := tm.router.Process(context.Background(), "TX1",
		[]domain.Event{skipped, transfer, unrelated, broken}, eventDate, domain.ModeStream)

	assert.Equal(t, handlers.Summary{Handled: 2, Skipped: 1, Failed: 1}, summary)

	require.Len(t, entries, 3)
	assert.Equal(t, "mint", entries[0].Action)
	assert.NoError(t, entries[0].Err)
	assert.Equal(t, "transfer_nft", entries[1].Action)
	assert.NoError(t, entries[1].Err)
	assert.Equal(t, "send_nft", entries[2].Action)
	assert.ErrorIs(t, entries[2].Err, domain.ErrMissingAttribute)
	for _, entry := range entries {
		assert.Equal(t, "TX1", entry.TxHash)
		assert.Equal(t, domain.ContextCwr721, entry.Context)
	}
}

func TestRouterProcess_RecoversFromPanic(t *testing.T) {
	tm := setupTestRouter(t, domain.ContextCwr721)
	defer tm.tearDown()

	first := wasmEvent("_contract_address", collectionAddress, "action", "transfer_nft", "token_id", "1", "recipient", "sei1a")
	second := wasmEvent("_contract_address", collectionAddress, "action", "transfer_nft", "token_id", "2", "recipient", "sei1b")

	tm.reconciler.EXPECT().EnsureNft(gomock.Any(), collectionAddress, "1").DoAndReturn(
		func(context.Context, string, string) (int64, error) {
			panic("nil listing")
		})
	tm.reconciler.EXPECT().EnsureNft(gomock.Any(), collectionAddress, "2").Return(int64(2), nil)
	tm.store.EXPECT().UpdateNftOwner(gomock.Any(), int64(2), "sei1b").Return(nil)
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	var failures []error
	tm.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry ledger.Entry) ledger.WriteResult {
			if entry.Err != nil {
				failures = append(failures, entry.Err)
			}
			return ledger.WriteResult{}
		}).Times(2)

	summary := tm.router.Process(context.Background(), "TX2", []domain.Event{first, second}, eventDate, domain.ModeStream)
	assert.Equal(t, handlers.Summary{Handled: 1, Failed: 1}, summary)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Error(), "panic in transfer_nft handler")
}

func TestRouterProcess_LedgerAndPublishFailuresDoNotAbort(t *testing.T) {
	tm := setupTestRouter(t, domain.ContextCwr721)
	defer tm.tearDown()

	first := wasmEvent("_contract_address", collectionAddress, "action", "transfer_nft", "token_id", "1", "recipient", "sei1a")
	second := wasmEvent("_contract_address", collectionAddress, "action", "transfer_nft", "token_id", "2", "recipient", "sei1b")

	tm.reconciler.EXPECT().EnsureNft(gomock.Any(), collectionAddress, gomock.Any()).Return(int64(1), nil).Times(2)
	tm.store.EXPECT().UpdateNftOwner(gomock.Any(), int64(1), gomock.Any()).Return(nil).Times(2)
	tm.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(ledger.WriteResult{Err: errors.New("disk full")}).Times(2)
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("nats: timeout")).Times(2)

	summary := tm.router.Process(context.Background(), "TX3", []domain.Event{first, second}, eventDate, domain.ModeStream)
	assert.Equal(t, handlers.Summary{Handled: 2}, summary)
}

func TestRouterProcess_PassesModeAndDate(t *testing.T) {
	tm := setupTestRouter(t, domain.ContextCwr721)
	defer tm.tearDown()

	blockTime := time.Date(2024, 4, 30, 23, 59, 0, 0, time.UTC)
	transfer := wasmEvent("_contract_address", collectionAddress, "action", "transfer_nft", "token_id", "1", "recipient", "sei1stale")

	tm.reconciler.EXPECT().EnsureNft(gomock.Any(), collectionAddress, "1").Return(int64(1), nil)
	tm.reconciler.EXPECT().SyncOwnerFromChain(gomock.Any(), collectionAddress, "1").Return(nil)
	tm.ledger.EXPECT().Record(gomock.Any(), gomock.Any()).Return(ledger.WriteResult{})
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n notify.Notification) error {
			assert.True(t, blockTime.Equal(n.Date))
			return nil
		})

	summary := tm.router.Process(context.Background(), "TX4", []domain.Event{transfer}, blockTime, domain.ModeScanner)
	assert.Equal(t, 1, summary.Handled)
}
