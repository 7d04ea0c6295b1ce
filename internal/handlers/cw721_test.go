package handlers_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/handlers"
)

func TestMint(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tm.tearDown()

	tm.seedNft(t, "1")

	event := wasmEvent("_contract_address", collectionAddress, "action", "mint", "token_id", "1", "owner", "sei1minter")
	result := handlers.NewCw721(tm.deps).Mint(context.Background(), input(event, "TXM"))
	require.True(t, result.IsOK(), result.Error())

	nft, err := tm.store.GetNft(context.Background(), collectionAddress, "1")
	require.NoError(t, err)
	assert.Equal(t, "sei1minter", nft.OwnerAddress)
}

func TestMint_WithoutOwnerSkips(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tm.tearDown()

	event := wasmEvent("_contract_address", collectionAddress, "action", "mint", "token_id", "1")
	result := handlers.NewCw721(tm.deps).Mint(context.Background(), input(event, "TXM"))
	assert.True(t, result.IsSkip())
	assert.Equal(t, "mint without token owner", result.Reason())
}

func TestTransferNft_ScannerModeReadsOwnerFromChain(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tm.tearDown()

	tm.seedNft(t, "1")
	tm.reconciler.EXPECT().SyncOwnerFromChain(gomock.Any(), collectionAddress, "1").Return(nil)

	event := wasmEvent("_contract_address", collectionAddress, "action", "transfer_nft", "token_id", "1", "recipient", "sei1stale")
	in := input(event, "TXT")
	in.Mode = domain.ModeScanner

	result := handlers.NewCw721(tm.deps).TransferNft(context.Background(), in)
	require.True(t, result.IsOK(), result.Error())

	nft, err := tm.store.GetNft(context.Background(), collectionAddress, "1")
	require.NoError(t, err)
	assert.Empty(t, nft.OwnerAddress)
}

func TestSendNft_MissingRecipient(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tm.tearDown()

	event := wasmEvent("_contract_address", collectionAddress, "action", "send_nft", "token_id", "1")
	result := handlers.NewCw721(tm.deps).SendNft(context.Background(), input(event, "TXS"))
	require.True(t, result.IsError())
	assert.EqualError(t, result.Error(), "missing attribute in send_nft: TXS (recipient)")
}
