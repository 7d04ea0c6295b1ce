package ledger_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feral-file/sei-marketplace-indexer/internal/adapter"
	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/ledger"
	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
	"github.com/feral-file/sei-marketplace-indexer/internal/mocks"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/storetest"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testLedgerMocks struct {
	ctrl   *gomock.Controller
	blocks *mocks.MockBlockProvider
	db     *gorm.DB
	ledger ledger.Ledger
}

func setupTestLedger(t *testing.T) *testLedgerMocks {
	ctrl := gomock.NewController(t)
	blocks := mocks.NewMockBlockProvider(ctrl)
	st, db := storetest.NewStore(t)

	return &testLedgerMocks{
		ctrl:   ctrl,
		blocks: blocks,
		db:     db,
		ledger: ledger.New(st, blocks, adapter.NewJSON(), ledger.Config{}),
	}
}

func (tm *testLedgerMocks) tearDown() {
	tm.ctrl.Finish()
}

var startSale = domain.Event{
	Type: "wasm",
	Attributes: []domain.Attribute{
		{Key: "token_id", Value: "1"},
		{Key: "action", Value: "start_sale"},
	},
}

func TestRecord_Success(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.tearDown()

	result := tm.ledger.Record(context.Background(), ledger.Entry{
		TxHash:  "TXA",
		Action:  "start_sale",
		Context: domain.ContextMrkt,
		Event:   startSale,
	})
	require.True(t, result.OK())

	var rows []schema.StreamTx
	require.NoError(t, tm.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "TXA", rows[0].TxHash)
	assert.Equal(t, domain.ContextMrkt, rows[0].Context)
	assert.False(t, rows[0].IsFailure)
	assert.Nil(t, rows[0].Message)
	// Canonical form: sorted keys, no insignificant whitespace
	assert.Equal(t,
		`{"attributes":[{"key":"token_id","value":"1"},{"key":"action","value":"start_sale"}],"type":"wasm"}`,
		string(rows[0].Event))
}

func TestRecord_Failure(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.tearDown()

	result := tm.ledger.Record(context.Background(), ledger.Entry{
		TxHash:  "TXA",
		Action:  "start_sale",
		Context: domain.ContextMrkt,
		Event:   startSale,
		Err:     &domain.MissingAttributeError{Action: "start_sale", TxHash: "TXA", Keys: []string{"seller"}},
	})
	require.True(t, result.OK())

	var row schema.StreamTx
	require.NoError(t, tm.db.First(&row).Error)
	assert.True(t, row.IsFailure)
	require.NotNil(t, row.Message)
	assert.Equal(t, "missing attribute in start_sale: TXA (seller)", *row.Message)
}

func TestRecord_WriteFailureIsReturnedNotRaised(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().CreateStreamTx(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	l := ledger.New(mockStore, mocks.NewMockBlockProvider(ctrl), adapter.NewJSON(), ledger.Config{})
	result := l.Record(context.Background(), ledger.Entry{TxHash: "TXA", Context: domain.ContextMrkt, Event: startSale})

	assert.False(t, result.OK())
	assert.EqualError(t, result.Err, "connection refused")
}

func TestExists(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.tearDown()

	ctx := context.Background()

	exists, err := tm.ledger.Exists(ctx, "TXA", domain.ContextMrkt)
	require.NoError(t, err)
	assert.False(t, exists)

	tm.ledger.Record(ctx, ledger.Entry{TxHash: "TXA", Action: "start_sale", Context: domain.ContextMrkt, Event: startSale, Err: errors.New("boom")})

	exists, err = tm.ledger.Exists(ctx, "TXA", domain.ContextMrkt)
	require.NoError(t, err)
	assert.True(t, exists, "a failed attempt still counts as attempted")

	exists, err = tm.ledger.Exists(ctx, "TXA", domain.ContextCwr721)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMarkGap_RetriesHeadLookup(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.tearDown()

	gomock.InOrder(
		tm.blocks.EXPECT().GetLatestBlock(gomock.Any()).Return(int64(0), errors.New("timeout")).Times(5),
		tm.blocks.EXPECT().GetLatestBlock(gomock.Any()).Return(int64(9001), nil),
	)

	result := tm.ledger.MarkGap(context.Background(), domain.ContextPallet)
	require.True(t, result.OK())

	var rows []schema.MissingStreamBlock
	require.NoError(t, tm.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ContextPallet, rows[0].Context)
	assert.Equal(t, int64(9001), rows[0].Height)
	assert.Nil(t, rows[0].ResolvedAt)
}

func TestMarkGap_GivesUpAfterSixAttempts(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.tearDown()

	tm.blocks.EXPECT().GetLatestBlock(gomock.Any()).Return(int64(0), errors.New("node down")).Times(ledger.DefaultGapAttempts)

	result := tm.ledger.MarkGap(context.Background(), domain.ContextMrkt)
	assert.False(t, result.OK())

	var count int64
	require.NoError(t, tm.db.Model(&schema.MissingStreamBlock{}).Count(&count).Error)
	assert.Zero(t, count)
}
