package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/sei-marketplace-indexer/internal/domain"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

var testDate = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func dbOf(s Store) *gorm.DB {
	return s.(*pgStore).db
}

func mustNft(t *testing.T, s Store, address, tokenID string) *schema.Nft {
	t.Helper()
	nft := &schema.Nft{
		TokenAddress: address,
		TokenID:      tokenID,
		OwnerAddress: "sei1owner",
		TokenURI:     "ipfs://meta/" + tokenID,
		Traits:       datatypes.JSON(`[{"trait_type":"Background","value":"Blue"}]`),
	}
	require.NoError(t, s.CreateNft(context.Background(), nft))
	require.NotZero(t, nft.ID)
	return nft
}

func buildListing(nftID int64, market domain.Marketplace, price int64) *schema.Listing {
	return &schema.Listing{
		NftID:             nftID,
		Market:            market,
		TxHash:            "TXLIST",
		CollectionAddress: "sei1collection",
		SellerAddress:     "sei1seller",
		Price:             decimal.NewFromInt(price),
		Denom:             domain.NativeDenom,
		SaleType:          domain.SaleTypeFixed,
		CreatedDate:       testDate,
	}
}

// =============================================================================
// Tests
// =============================================================================

func testCollections(t *testing.T, store Store) {
	ctx := context.Background()

	missing, err := store.GetCollectionByAddress(ctx, "sei1unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)

	royalty := decimal.RequireFromString("2.5")
	collection := &schema.Collection{
		Address: "sei1collection",
		Name:    "Seiyans",
		Symbol:  "SEIYAN",
		Supply:  4242,
		Royalty: &royalty,
		Socials: datatypes.JSON(`[{"twitter":"seiyans"}]`),
	}
	require.NoError(t, store.CreateCollection(ctx, collection))
	require.NotZero(t, collection.ID)

	got, err := store.GetCollectionByAddress(ctx, "sei1collection")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Seiyans", got.Name)
	assert.Equal(t, int64(4242), got.Supply)
	require.NotNil(t, got.Royalty)
	assert.True(t, royalty.Equal(*got.Royalty))

	// Must be the last statement: a unique violation aborts the surrounding postgres transaction
	err = store.CreateCollection(ctx, &schema.Collection{Address: "sei1collection"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func testNfts(t *testing.T, store Store) {
	ctx := context.Background()

	missing, err := store.GetNft(ctx, "sei1collection", "1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	nft := mustNft(t, store, "sei1collection", "1")

	require.NoError(t, store.UpdateNftOwner(ctx, nft.ID, "sei1newowner"))

	got, err := store.GetNft(ctx, "sei1collection", "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, nft.ID, got.ID)
	assert.Equal(t, "sei1newowner", got.OwnerAddress)
	assert.Equal(t, "ipfs://meta/1", got.TokenURI)

	// The same token id in another collection is a different NFT
	other := mustNft(t, store, "sei1other", "1")
	assert.NotEqual(t, nft.ID, other.ID)

	err = store.CreateNft(ctx, &schema.Nft{TokenAddress: "sei1collection", TokenID: "1"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func testListings(t *testing.T, store Store) {
	ctx := context.Background()
	nft := mustNft(t, store, "sei1collection", "7")

	t.Run("upsert overwrites the listing of the same market", func(t *testing.T) {
		require.NoError(t, store.UpsertListing(ctx, buildListing(nft.ID, domain.MarketplaceMrkt, 100)))

		end := testDate.Add(24 * time.Hour)
		relisted := buildListing(nft.ID, domain.MarketplaceMrkt, 250)
		relisted.SaleType = domain.SaleTypeAuction
		relisted.StartDate = &testDate
		relisted.EndDate = &end
		relisted.SellerAddress = "sei1seller2"
		require.NoError(t, store.UpsertListing(ctx, relisted))

		var count int64
		require.NoError(t, dbOf(store).Model(&schema.Listing{}).Where("nft_id = ?", nft.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		got, err := store.GetListing(ctx, nft.ID, domain.MarketplaceMrkt)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, decimal.NewFromInt(250).Equal(got.Price))
		assert.Equal(t, domain.SaleTypeAuction, got.SaleType)
		assert.Equal(t, "sei1seller2", got.SellerAddress)
		require.NotNil(t, got.EndDate)
		assert.True(t, end.Equal(*got.EndDate))
	})

	t.Run("listings are scoped per market", func(t *testing.T) {
		require.NoError(t, store.UpsertListing(ctx, buildListing(nft.ID, domain.MarketplacePallet, 300)))

		require.NoError(t, store.DeleteListing(ctx, nft.ID, domain.MarketplaceMrkt))

		mrkt, err := store.GetListing(ctx, nft.ID, domain.MarketplaceMrkt)
		require.NoError(t, err)
		assert.Nil(t, mrkt)

		pallet, err := store.GetListing(ctx, nft.ID, domain.MarketplacePallet)
		require.NoError(t, err)
		require.NotNil(t, pallet)
		assert.True(t, decimal.NewFromInt(300).Equal(pallet.Price))
	})

	t.Run("update terms changes only the given fields", func(t *testing.T) {
		listing, err := store.GetListing(ctx, nft.ID, domain.MarketplacePallet)
		require.NoError(t, err)
		require.NotNil(t, listing)

		increment := decimal.NewFromInt(10)
		require.NoError(t, store.UpdateListingTerms(ctx, listing.ID, ListingTerms{MinBidIncrementPercent: &increment}))

		got, err := store.GetListing(ctx, nft.ID, domain.MarketplacePallet)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(300).Equal(got.Price))
		require.NotNil(t, got.MinBidIncrementPercent)
		assert.True(t, increment.Equal(*got.MinBidIncrementPercent))

		price := decimal.NewFromInt(320)
		require.NoError(t, store.UpdateListingTerms(ctx, listing.ID, ListingTerms{Price: &price}))
		got, err = store.GetListing(ctx, nft.ID, domain.MarketplacePallet)
		require.NoError(t, err)
		assert.True(t, price.Equal(got.Price))

		require.NoError(t, store.UpdateListingTerms(ctx, listing.ID, ListingTerms{}))
	})
}

func testOffers(t *testing.T, store Store) {
	ctx := context.Background()
	nft := mustNft(t, store, "sei1collection", "8")
	price := decimal.NewFromInt(500)

	t.Run("nft offers", func(t *testing.T) {
		offer := &schema.NftOffer{
			NftID:        nft.ID,
			BuyerAddress: "sei1buyer",
			Price:        price,
			Denom:        domain.NativeDenom,
			TxHash:       "TXOFFER1",
			CreatedDate:  testDate,
		}
		require.NoError(t, store.UpsertNftOffer(ctx, offer))

		again := *offer
		again.ID = 0
		again.TxHash = "TXOFFER2"
		require.NoError(t, store.UpsertNftOffer(ctx, &again))

		var offers []schema.NftOffer
		require.NoError(t, dbOf(store).Where("nft_id = ?", nft.ID).Find(&offers).Error)
		require.Len(t, offers, 1)
		assert.Equal(t, "TXOFFER2", offers[0].TxHash)

		require.NoError(t, store.DeleteNftOffer(ctx, nft.ID, "sei1buyer", price))
		require.NoError(t, dbOf(store).Where("nft_id = ?", nft.ID).Find(&offers).Error)
		assert.Empty(t, offers)
	})

	t.Run("collection offers", func(t *testing.T) {
		offer := &schema.CollectionOffer{
			CollectionAddress: "sei1collection",
			BuyerAddress:      "sei1buyer",
			Price:             price,
			Denom:             domain.NativeDenom,
			Quantity:          3,
			TxHash:            "TXCOFFER",
			CreatedDate:       testDate,
		}
		require.NoError(t, store.UpsertCollectionOffer(ctx, offer))

		require.NoError(t, store.UpdateCollectionOfferQuantity(ctx, "sei1collection", "sei1buyer", price, 1, 3))

		var got schema.CollectionOffer
		require.NoError(t, dbOf(store).Where("collection_address = ?", "sei1collection").First(&got).Error)
		assert.Equal(t, int64(1), got.CurrentQuantity)
		assert.Equal(t, int64(3), got.Quantity)

		require.NoError(t, store.DeleteCollectionOffer(ctx, "sei1collection", "sei1buyer", price))
		var count int64
		require.NoError(t, dbOf(store).Model(&schema.CollectionOffer{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func testBiddings(t *testing.T, store Store) {
	ctx := context.Background()
	nft := mustNft(t, store, "sei1collection", "9")
	listing := buildListing(nft.ID, domain.MarketplaceMrkt, 100)
	require.NoError(t, store.UpsertListing(ctx, listing))
	listing, err := store.GetListing(ctx, nft.ID, domain.MarketplaceMrkt)
	require.NoError(t, err)

	for i, price := range []int64{110, 130} {
		tx := &schema.Transaction{
			TxHash:            fmt.Sprintf("TXBID%d", i),
			Market:            domain.MarketplaceMrkt,
			NftID:             nft.ID,
			CollectionAddress: "sei1collection",
			BuyerAddress:      "sei1bidder",
			SellerAddress:     "sei1seller",
			Volume:            decimal.NewFromInt(price),
			Date:              testDate.Add(time.Duration(i) * time.Minute),
		}
		bid := &schema.Bidding{
			ListingID:    listing.ID,
			BuyerAddress: "sei1bidder",
			Price:        decimal.NewFromInt(price),
			Denom:        domain.NativeDenom,
			TxHash:       tx.TxHash,
			CreatedDate:  tx.Date,
		}
		require.NoError(t, store.CreateBidWithTransaction(ctx, tx, bid))
	}

	// Writing the latest bid again keeps a single transaction row for it
	require.NoError(t, store.CreateBidWithTransaction(ctx,
		&schema.Transaction{
			TxHash:            "TXBID1",
			Market:            domain.MarketplaceMrkt,
			NftID:             nft.ID,
			CollectionAddress: "sei1collection",
			BuyerAddress:      "sei1bidder",
			SellerAddress:     "sei1seller",
			Volume:            decimal.NewFromInt(130),
			Date:              testDate.Add(time.Minute),
		},
		&schema.Bidding{
			ListingID:    listing.ID,
			BuyerAddress: "sei1bidder",
			Price:        decimal.NewFromInt(130),
			Denom:        domain.NativeDenom,
			TxHash:       "TXBID1",
			CreatedDate:  testDate.Add(time.Minute),
		}))

	var bids []schema.Bidding
	require.NoError(t, dbOf(store).Where("listing_id = ?", listing.ID).Find(&bids).Error)
	require.Len(t, bids, 1)
	assert.True(t, decimal.NewFromInt(130).Equal(bids[0].Price))

	var txCount int64
	require.NoError(t, dbOf(store).Model(&schema.Transaction{}).Where("nft_id = ?", nft.ID).Count(&txCount).Error)
	assert.Equal(t, int64(2), txCount)

	require.NoError(t, store.DeleteBidding(ctx, listing.ID, "sei1bidder"))
	require.NoError(t, dbOf(store).Where("listing_id = ?", listing.ID).Find(&bids).Error)
	assert.Empty(t, bids)
}

func buildSaleRecord(nftID int64, txHash string, price decimal.Decimal) SaleRecord {
	points := domain.UseiToSei(price)
	return SaleRecord{
		Transaction: schema.Transaction{
			TxHash:            txHash,
			Market:            domain.MarketplaceMrkt,
			NftID:             nftID,
			CollectionAddress: "sei1collection",
			BuyerAddress:      "sei1buyer",
			SellerAddress:     "sei1seller",
			Volume:            price,
			Date:              testDate,
		},
		Activity: schema.Activity{
			NftID:         nftID,
			Market:        domain.MarketplaceMrkt,
			EventKind:     domain.EventKindSale,
			Denom:         domain.NativeDenom,
			Price:         price,
			SellerAddress: "sei1seller",
			BuyerAddress:  "sei1buyer",
			TxHash:        txHash,
			Date:          testDate,
		},
		BuyPoint:  schema.UserLoyaltyPoint{WalletAddress: "sei1buyer", Kind: domain.LoyaltyPointBuy, Point: points, Date: testDate},
		SellPoint: schema.UserLoyaltyPoint{WalletAddress: "sei1seller", Kind: domain.LoyaltyPointSell, Point: points, Date: testDate},
	}
}

func testRecordSale(t *testing.T, store Store) {
	ctx := context.Background()
	nft := mustNft(t, store, "sei1collection", "10")

	require.NoError(t, store.RecordSale(ctx, buildSaleRecord(nft.ID, "TXSALE", decimal.NewFromInt(2_500_000))))

	var activities []schema.Activity
	require.NoError(t, dbOf(store).Where("nft_id = ?", nft.ID).Find(&activities).Error)
	require.Len(t, activities, 1)
	assert.Equal(t, domain.EventKindSale, activities[0].EventKind)

	var loyalty []schema.UserLoyaltyPoint
	require.NoError(t, dbOf(store).Order("kind ASC").Find(&loyalty).Error)
	require.Len(t, loyalty, 2)
	assert.Equal(t, domain.LoyaltyPointBuy, loyalty[0].Kind)
	assert.Equal(t, "sei1buyer", loyalty[0].WalletAddress)
	assert.True(t, decimal.RequireFromString("2.5").Equal(loyalty[0].Point))
	assert.Equal(t, domain.LoyaltyPointSell, loyalty[1].Kind)

	var txs int64
	require.NoError(t, dbOf(store).Model(&schema.Transaction{}).Where("tx_hash = ?", "TXSALE").Count(&txs).Error)
	assert.Equal(t, int64(1), txs)
}

func testRecordSaleTwice(t *testing.T, store Store) {
	ctx := context.Background()
	nft := mustNft(t, store, "sei1collection", "11")
	record := buildSaleRecord(nft.ID, "TXSALE", decimal.NewFromInt(1_000_000))

	require.NoError(t, store.RecordSale(ctx, record))
	// The same sale seen again by another writer is absorbed
	require.NoError(t, store.RecordSale(ctx, buildSaleRecord(nft.ID, "TXSALE", decimal.NewFromInt(1_000_000))))

	var activities, txs, points int64
	require.NoError(t, dbOf(store).Model(&schema.Activity{}).Where("nft_id = ?", nft.ID).Count(&activities).Error)
	require.NoError(t, dbOf(store).Model(&schema.Transaction{}).Where("tx_hash = ?", "TXSALE").Count(&txs).Error)
	require.NoError(t, dbOf(store).Model(&schema.UserLoyaltyPoint{}).Count(&points).Error)
	assert.Equal(t, int64(1), activities)
	assert.Equal(t, int64(1), txs)
	assert.Equal(t, int64(2), points)

	// A different NFT sold in the same transaction is a separate sale
	other := mustNft(t, store, "sei1collection", "12")
	require.NoError(t, store.RecordSale(ctx, buildSaleRecord(other.ID, "TXSALE", decimal.NewFromInt(1_000_000))))
	require.NoError(t, dbOf(store).Model(&schema.Transaction{}).Where("tx_hash = ?", "TXSALE").Count(&txs).Error)
	require.NoError(t, dbOf(store).Model(&schema.UserLoyaltyPoint{}).Count(&points).Error)
	assert.Equal(t, int64(2), txs)
	assert.Equal(t, int64(4), points)
}

func testActivitiesIdempotent(t *testing.T, store Store) {
	ctx := context.Background()
	nft := mustNft(t, store, "sei1collection", "13")

	activity := func(kind domain.EventKind) *schema.Activity {
		return &schema.Activity{
			NftID:         nft.ID,
			Market:        domain.MarketplaceMrkt,
			EventKind:     kind,
			Denom:         domain.NativeDenom,
			Price:         decimal.NewFromInt(100),
			SellerAddress: "sei1seller",
			TxHash:        "TXLIST",
			Date:          testDate,
		}
	}

	require.NoError(t, store.CreateActivity(ctx, activity(domain.EventKindList)))
	require.NoError(t, store.CreateActivity(ctx, activity(domain.EventKindList)))
	require.NoError(t, store.CreateActivity(ctx, activity(domain.EventKindDelist)))

	var kinds []domain.EventKind
	require.NoError(t, dbOf(store).Model(&schema.Activity{}).
		Where("nft_id = ?", nft.ID).
		Order("id ASC").
		Pluck("event_kind", &kinds).Error)
	assert.Equal(t, []domain.EventKind{domain.EventKindList, domain.EventKindDelist}, kinds)
}

func testStreamTxs(t *testing.T, store Store) {
	ctx := context.Background()

	exists, err := store.StreamTxExists(ctx, "TXLEDGER", domain.ContextMrkt)
	require.NoError(t, err)
	assert.False(t, exists)

	msg := "missing attribute"
	require.NoError(t, store.CreateStreamTx(ctx, &schema.StreamTx{
		TxHash:    "TXLEDGER",
		Action:    "start_sale",
		Context:   domain.ContextMrkt,
		Event:     datatypes.JSON(`{"attributes":[],"type":"wasm"}`),
		IsFailure: true,
		Message:   &msg,
	}))

	exists, err = store.StreamTxExists(ctx, "TXLEDGER", domain.ContextMrkt)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.StreamTxExists(ctx, "TXLEDGER", domain.ContextPallet)
	require.NoError(t, err)
	assert.False(t, exists)
}

func testMissingStreamBlocks(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.CreateMissingStreamBlock(ctx, domain.ContextMrkt, 1000))
	require.NoError(t, store.CreateMissingStreamBlock(ctx, domain.ContextPallet, 1010))

	blocks, err := store.ListUnresolvedMissingStreamBlocks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, int64(1000), blocks[0].Height)
	assert.Equal(t, domain.ContextMrkt, blocks[0].Context)

	require.NoError(t, store.ResolveMissingStreamBlock(ctx, blocks[0].ID, testDate))

	blocks, err = store.ListUnresolvedMissingStreamBlocks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, int64(1010), blocks[0].Height)
}

func testHeightCursor(t *testing.T, store Store) {
	ctx := context.Background()

	height, err := store.GetHeightCursor(ctx, domain.CurrentHeightCursor)
	require.NoError(t, err)
	assert.Zero(t, height)

	require.NoError(t, store.SetHeightCursor(ctx, domain.CurrentHeightCursor, 1234))
	require.NoError(t, store.SetHeightCursor(ctx, domain.CurrentHeightCursor, 1240))

	height, err = store.GetHeightCursor(ctx, domain.CurrentHeightCursor)
	require.NoError(t, err)
	assert.Equal(t, int64(1240), height)
}

func testPing(t *testing.T, store Store) {
	require.NoError(t, store.Ping(context.Background()))
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(4, 10, time.Minute, time.Minute)
	assert.Equal(t, 4, open)
	assert.Equal(t, 4, idle)
}

// RunStoreTests runs every store test against the implementation returned by initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Collections", testCollections},
		{"Nfts", testNfts},
		{"Listings", testListings},
		{"Offers", testOffers},
		{"Biddings", testBiddings},
		{"RecordSale", testRecordSale},
		{"RecordSaleTwice", testRecordSaleTwice},
		{"ActivitiesIdempotent", testActivitiesIdempotent},
		{"StreamTxs", testStreamTxs},
		{"MissingStreamBlocks", testMissingStreamBlocks},
		{"HeightCursor", testHeightCursor},
		{"Ping", testPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
