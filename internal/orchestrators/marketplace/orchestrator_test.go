package marketplace_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/pixelforge/collectibles-api/internal/entities"
	"github.com/pixelforge/collectibles-api/internal/errors"
	"github.com/pixelforge/collectibles-api/internal/events"
	eventsmock "github.com/pixelforge/collectibles-api/internal/events/mock"
	"github.com/pixelforge/collectibles-api/internal/orchestrators/marketplace"
	"github.com/pixelforge/collectibles-api/internal/pkg/clock"
	"github.com/pixelforge/collectibles-api/internal/pkg/idgen"
	collectionrepo "github.com/pixelforge/collectibles-api/internal/repositories/collection"
	marketplacerepo "github.com/pixelforge/collectibles-api/internal/repositories/marketplace"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	miniRedis *miniredis.Miniredis
	collRepo  collectionrepo.Repository
	publisher *eventsmock.MockPublisher
	clk       *clock.Fixed
	admin     *entities.AdminCredential
	svc       marketplace.Service
	ctx       context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	collRepo, err := collectionrepo.NewRedis(&collectionrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.collRepo = collRepo

	mktRepo, err := marketplacerepo.NewRedis(&marketplacerepo.RedisConfig{Client: client})
	s.Require().NoError(err)

	s.publisher = eventsmock.NewMockPublisher(s.ctrl)
	s.clk = clock.NewFixed(time.UnixMilli(1700000000000))
	s.admin = entities.NewAdminCredential("admin_test")

	svc, err := marketplace.NewOrchestrator(&marketplace.Config{
		MarketplaceRepo:  mktRepo,
		CollectionRepo:   collRepo,
		Publisher:        s.publisher,
		Clock:            s.clk,
		MarketplaceIDGen: idgen.NewSequential("mkt"),
		Admin:            s.admin,
	})
	s.Require().NoError(err)
	s.svc = svc

	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.miniRedis.Close()
	s.ctrl.Finish()
}

// seedCollection persists the collection that backs the marketplace under
// test; its royalty terms drive the purchase split.
func (s *OrchestratorTestSuite) seedCollection(royaltyBasisPoints int64) *entities.Collection {
	coll := &entities.Collection{
		ID:                 "coll_1",
		Name:               "Pixel Heroes",
		Creator:            "0xcreator",
		RoyaltyBasisPoints: royaltyBasisPoints,
		RoyaltyRecipient:   "0xroyalty",
	}
	_, err := s.collRepo.Create(s.ctx, collectionrepo.CreateInput{Collection: coll})
	s.Require().NoError(err)
	return coll
}

func (s *OrchestratorTestSuite) createMarketplace(feeBasisPoints int64) *entities.Marketplace {
	out, err := s.svc.CreateMarketplace(s.ctx, &marketplace.CreateMarketplaceInput{
		Admin:          s.admin,
		CollectionID:   "coll_1",
		FeeBasisPoints: feeBasisPoints,
		FeeRecipient:   "0xfees",
	})
	s.Require().NoError(err)
	return out.Marketplace
}

func wizardHat(id string) *entities.AccessoryItem {
	return &entities.AccessoryItem{
		ID:     id,
		Name:   "Wizard Hat",
		Type:   entities.AccessoryTypeHead,
		Rarity: entities.RarityRare,
	}
}

func (s *OrchestratorTestSuite) listItem(mktID, itemID string, price int64) {
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	_, err := s.svc.ListAccessory(s.ctx, &marketplace.ListAccessoryInput{
		MarketplaceID: mktID,
		Accessory:     wizardHat(itemID),
		Price:         price,
		Seller:        "0xseller",
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestCreateMarketplace() {
	s.seedCollection(500)
	mkt := s.createMarketplace(250)

	s.True(mkt.Active)
	s.Equal("coll_1", mkt.CollectionID)
	s.Equal(int64(250), mkt.FeeBasisPoints)
	s.Empty(mkt.Listings)
}

func (s *OrchestratorTestSuite) TestCreateMarketplaceMissingCollection() {
	_, err := s.svc.CreateMarketplace(s.ctx, &marketplace.CreateMarketplaceInput{
		Admin:        s.admin,
		CollectionID: "coll_missing",
	})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListAccessory() {
	s.seedCollection(500)
	mkt := s.createMarketplace(250)

	item := wizardHat("item_1")
	item.Attributes = map[string]string{"color": "purple"}

	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.svc.ListAccessory(s.ctx, &marketplace.ListAccessoryInput{
		MarketplaceID: mkt.ID,
		Accessory:     item,
		Price:         1000,
		Seller:        "0xseller",
	})
	s.Require().NoError(err)
	s.Equal(int64(1000), out.Listing.Price)
	s.Equal("0xseller", out.Listing.Seller)
	s.Equal(int64(1700000000000), out.Listing.ListedAt)

	// escrow holds its own copy
	item.Attributes["color"] = "green"
	s.Equal("purple", out.Listing.Item.Attributes["color"])

	got, err := s.svc.GetListing(s.ctx, &marketplace.GetListingInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
	})
	s.Require().NoError(err)
	s.Equal("item_1", got.Listing.Item.ID)
}

func (s *OrchestratorTestSuite) TestListAccessoryDuplicate() {
	s.seedCollection(500)
	mkt := s.createMarketplace(250)
	s.listItem(mkt.ID, "item_1", 1000)

	_, err := s.svc.ListAccessory(s.ctx, &marketplace.ListAccessoryInput{
		MarketplaceID: mkt.ID,
		Accessory:     wizardHat("item_1"),
		Price:         2000,
		Seller:        "0xother",
	})
	s.Error(err)
	s.True(errors.IsDuplicateListing(err))
}

func (s *OrchestratorTestSuite) TestPurchaseSplitsPrice() {
	// fee 250 bps, royalty 500 bps, price 1000: 25 fee, 50 royalty, 925 seller
	s.seedCollection(500)
	mkt := s.createMarketplace(250)
	s.listItem(mkt.ID, "item_1", 1000)

	var sold events.AccessorySold
	s.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e events.Event) error {
			sold = e.(events.AccessorySold)
			return nil
		})

	out, err := s.svc.PurchaseAccessory(s.ctx, &marketplace.PurchaseAccessoryInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
		Payment:       entities.NewPayment(1000),
		Buyer:         "0xbuyer",
	})
	s.Require().NoError(err)

	s.Equal(int64(25), out.MarketplaceFee)
	s.Equal(int64(50), out.RoyaltyFee)
	s.Equal(int64(925), out.SellerAmount)
	s.Equal(out.Price, out.MarketplaceFee+out.RoyaltyFee+out.SellerAmount)

	s.Equal([]entities.Payout{
		{Recipient: "0xfees", Amount: 25},
		{Recipient: "0xroyalty", Amount: 50},
		{Recipient: "0xseller", Amount: 925},
	}, out.Payouts)

	s.Equal("item_1", sold.AccessoryID)
	s.Equal("0xbuyer", sold.Buyer)
	s.Equal(int64(925), sold.SellerAmount)

	// listing is gone and stats advanced
	_, err = s.svc.GetListing(s.ctx, &marketplace.GetListingInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
	})
	s.True(errors.IsListingNotFound(err))

	got, err := s.svc.GetMarketplace(s.ctx, &marketplace.GetMarketplaceInput{MarketplaceID: mkt.ID})
	s.Require().NoError(err)
	s.Equal(int64(1000), got.Marketplace.TotalVolume)
	s.Equal(int64(1), got.Marketplace.TotalSales)
}

func (s *OrchestratorTestSuite) TestPurchaseOverpaymentGoesToSeller() {
	s.seedCollection(500)
	mkt := s.createMarketplace(250)
	s.listItem(mkt.ID, "item_1", 1000)

	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.svc.PurchaseAccessory(s.ctx, &marketplace.PurchaseAccessoryInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
		Payment:       entities.NewPayment(1100),
		Buyer:         "0xbuyer",
	})
	s.Require().NoError(err)

	// fees are computed from the price; the extra 100 rides along to the seller
	s.Equal(int64(25), out.MarketplaceFee)
	s.Equal(int64(50), out.RoyaltyFee)
	s.Equal(int64(1025), out.SellerAmount)
}

func (s *OrchestratorTestSuite) TestPurchaseZeroRateFeesOmitted() {
	s.seedCollection(0)
	mkt := s.createMarketplace(0)
	s.listItem(mkt.ID, "item_1", 1000)

	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	out, err := s.svc.PurchaseAccessory(s.ctx, &marketplace.PurchaseAccessoryInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
		Payment:       entities.NewPayment(1000),
		Buyer:         "0xbuyer",
	})
	s.Require().NoError(err)

	s.Equal([]entities.Payout{{Recipient: "0xseller", Amount: 1000}}, out.Payouts)
}

func (s *OrchestratorTestSuite) TestPurchaseInsufficientPayment() {
	s.seedCollection(500)
	mkt := s.createMarketplace(250)
	s.listItem(mkt.ID, "item_1", 1000)

	_, err := s.svc.PurchaseAccessory(s.ctx, &marketplace.PurchaseAccessoryInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
		Payment:       entities.NewPayment(999),
		Buyer:         "0xbuyer",
	})
	s.Error(err)
	s.True(errors.IsInsufficientPayment(err))

	// the listing survives a failed purchase
	got, err := s.svc.GetListing(s.ctx, &marketplace.GetListingInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
	})
	s.Require().NoError(err)
	s.Equal(int64(1000), got.Listing.Price)
}

func (s *OrchestratorTestSuite) TestPurchaseMissingListing() {
	s.seedCollection(500)
	mkt := s.createMarketplace(250)

	_, err := s.svc.PurchaseAccessory(s.ctx, &marketplace.PurchaseAccessoryInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_missing",
		Payment:       entities.NewPayment(1000),
		Buyer:         "0xbuyer",
	})
	s.Error(err)
	s.True(errors.IsListingNotFound(err))
}

func (s *OrchestratorTestSuite) TestPurchaseExcessiveCombinedRate() {
	s.seedCollection(1000)
	mkt := s.createMarketplace(9500)
	s.listItem(mkt.ID, "item_1", 1000)

	_, err := s.svc.PurchaseAccessory(s.ctx, &marketplace.PurchaseAccessoryInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
		Payment:       entities.NewPayment(1000),
		Buyer:         "0xbuyer",
	})
	s.Error(err)
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestPausedMarketplace() {
	s.seedCollection(500)
	mkt := s.createMarketplace(250)
	s.listItem(mkt.ID, "item_1", 1000)

	_, err := s.svc.SetMarketplaceActive(s.ctx, &marketplace.SetMarketplaceActiveInput{
		Admin:         s.admin,
		MarketplaceID: mkt.ID,
		Active:        false,
	})
	s.Require().NoError(err)

	_, err = s.svc.ListAccessory(s.ctx, &marketplace.ListAccessoryInput{
		MarketplaceID: mkt.ID,
		Accessory:     wizardHat("item_2"),
		Price:         500,
		Seller:        "0xseller",
	})
	s.True(errors.IsMarketplacePaused(err))

	_, err = s.svc.PurchaseAccessory(s.ctx, &marketplace.PurchaseAccessoryInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
		Payment:       entities.NewPayment(1000),
		Buyer:         "0xbuyer",
	})
	s.True(errors.IsMarketplacePaused(err))

	// sellers can still reclaim escrowed items while paused
	out, err := s.svc.CancelListing(s.ctx, &marketplace.CancelListingInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
		Caller:        "0xseller",
	})
	s.Require().NoError(err)
	s.Equal("item_1", out.Accessory.ID)
}

func (s *OrchestratorTestSuite) TestCancelListingSellerOnly() {
	s.seedCollection(500)
	mkt := s.createMarketplace(250)
	s.listItem(mkt.ID, "item_1", 1000)

	_, err := s.svc.CancelListing(s.ctx, &marketplace.CancelListingInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
		Caller:        "0xrando",
	})
	s.Error(err)
	s.True(errors.IsNotAuthorized(err))

	// the rejected cancel left the listing in place
	got, err := s.svc.GetListing(s.ctx, &marketplace.GetListingInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
	})
	s.Require().NoError(err)
	s.Equal("0xseller", got.Listing.Seller)

	out, err := s.svc.CancelListing(s.ctx, &marketplace.CancelListingInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
		Caller:        "0xseller",
	})
	s.Require().NoError(err)
	s.Equal("item_1", out.Accessory.ID)

	// cancelling again reports the listing gone
	_, err = s.svc.CancelListing(s.ctx, &marketplace.CancelListingInput{
		MarketplaceID: mkt.ID,
		AccessoryID:   "item_1",
		Caller:        "0xseller",
	})
	s.True(errors.IsListingNotFound(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
