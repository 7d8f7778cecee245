// Package marketplace implements the marketplace engine: listing escrow,
// purchase settlement with basis-point fee and royalty splitting, and
// cumulative trade statistics.
package marketplace

//go:generate mockgen -destination=mock/mock_service.go -package=marketplacemock github.com/pixelforge/collectibles-api/internal/orchestrators/marketplace Service

import (
	"context"
	"log/slog"

	"github.com/pixelforge/collectibles-api/internal/entities"
	"github.com/pixelforge/collectibles-api/internal/errors"
	"github.com/pixelforge/collectibles-api/internal/events"
	"github.com/pixelforge/collectibles-api/internal/pkg/clock"
	"github.com/pixelforge/collectibles-api/internal/pkg/entitylock"
	"github.com/pixelforge/collectibles-api/internal/pkg/idgen"
	collectionrepo "github.com/pixelforge/collectibles-api/internal/repositories/collection"
	marketplacerepo "github.com/pixelforge/collectibles-api/internal/repositories/marketplace"
)

// Service defines the interface for marketplace operations
type Service interface {
	// CreateMarketplace creates a marketplace for a collection. Privileged.
	CreateMarketplace(ctx context.Context, input *CreateMarketplaceInput) (*CreateMarketplaceOutput, error)

	// SetMarketplaceActive pauses or resumes trading. Privileged.
	SetMarketplaceActive(ctx context.Context, input *SetMarketplaceActiveInput) (*SetMarketplaceActiveOutput, error)

	// ListAccessory moves a free accessory into escrow at an ask price
	ListAccessory(ctx context.Context, input *ListAccessoryInput) (*ListAccessoryOutput, error)

	// PurchaseAccessory settles a sale: splits the price into marketplace
	// fee, royalty, and seller proceeds, and releases the item to the buyer
	PurchaseAccessory(ctx context.Context, input *PurchaseAccessoryInput) (*PurchaseAccessoryOutput, error)

	// CancelListing returns an escrowed item to its seller. No fee.
	CancelListing(ctx context.Context, input *CancelListingInput) (*CancelListingOutput, error)

	// GetMarketplace is the read-only projection of a marketplace
	GetMarketplace(ctx context.Context, input *GetMarketplaceInput) (*GetMarketplaceOutput, error)

	// GetListing is the read-only projection of a single listing
	GetListing(ctx context.Context, input *GetListingInput) (*GetListingOutput, error)
}

// Config holds the dependencies for the marketplace orchestrator
type Config struct {
	MarketplaceRepo  marketplacerepo.Repository
	CollectionRepo   collectionrepo.Repository
	Publisher        events.Publisher
	Clock            clock.Clock
	MarketplaceIDGen idgen.Generator
	Admin            *entities.AdminCredential
	Locks            *entitylock.Keyed
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.MarketplaceRepo == nil {
		vb.RequiredField("MarketplaceRepo")
	}
	if c.CollectionRepo == nil {
		vb.RequiredField("CollectionRepo")
	}
	if c.Publisher == nil {
		vb.RequiredField("Publisher")
	}
	if c.MarketplaceIDGen == nil {
		vb.RequiredField("MarketplaceIDGen")
	}
	if c.Admin == nil {
		vb.RequiredField("Admin")
	}

	return vb.Build()
}

type orchestrator struct {
	marketplaceRepo  marketplacerepo.Repository
	collectionRepo   collectionrepo.Repository
	publisher        events.Publisher
	clock            clock.Clock
	marketplaceIDGen idgen.Generator
	admin            *entities.AdminCredential
	locks            *entitylock.Keyed
}

// NewOrchestrator creates a new marketplace orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	locks := cfg.Locks
	if locks == nil {
		locks = entitylock.NewKeyed()
	}

	return &orchestrator{
		marketplaceRepo:  cfg.MarketplaceRepo,
		collectionRepo:   cfg.CollectionRepo,
		publisher:        cfg.Publisher,
		clock:            c,
		marketplaceIDGen: cfg.MarketplaceIDGen,
		admin:            cfg.Admin,
		locks:            locks,
	}, nil
}

func (o *orchestrator) authorize(admin *entities.AdminCredential) error {
	if admin == nil || admin != o.admin {
		return errors.NotAuthorized("admin credential required")
	}
	return nil
}

func (o *orchestrator) CreateMarketplace(
	ctx context.Context,
	input *CreateMarketplaceInput,
) (*CreateMarketplaceOutput, error) {
	if err := o.authorize(input.Admin); err != nil {
		return nil, err
	}
	if input.CollectionID == "" {
		return nil, errors.InvalidArgument("collection ID is required")
	}
	// Unlike collection royalties, the fee rate has no ceiling here. The
	// purchase path guards against fee+royalty exceeding 100%.
	if input.FeeBasisPoints < 0 {
		return nil, errors.InvalidArgument("fee basis points cannot be negative")
	}

	// The collection must exist; one marketplace per collection by
	// convention, not enforced.
	if _, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: input.CollectionID}); err != nil {
		return nil, err
	}

	now := o.clock.Now().UnixMilli()
	mkt := &entities.Marketplace{
		ID:             o.marketplaceIDGen.Generate(),
		CollectionID:   input.CollectionID,
		Active:         true,
		Listings:       make(map[string]*entities.Listing),
		FeeBasisPoints: input.FeeBasisPoints,
		FeeRecipient:   input.FeeRecipient,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	createOutput, err := o.marketplaceRepo.Create(ctx, marketplacerepo.CreateInput{Marketplace: mkt})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create marketplace")
	}

	return &CreateMarketplaceOutput{Marketplace: createOutput.Marketplace}, nil
}

func (o *orchestrator) SetMarketplaceActive(
	ctx context.Context,
	input *SetMarketplaceActiveInput,
) (*SetMarketplaceActiveOutput, error) {
	if err := o.authorize(input.Admin); err != nil {
		return nil, err
	}

	o.locks.Lock(input.MarketplaceID)
	defer o.locks.Unlock(input.MarketplaceID)

	getOutput, err := o.marketplaceRepo.Get(ctx, marketplacerepo.GetInput{ID: input.MarketplaceID})
	if err != nil {
		return nil, err
	}
	mkt := getOutput.Marketplace

	mkt.Active = input.Active
	mkt.UpdatedAt = o.clock.Now().UnixMilli()

	if _, err := o.marketplaceRepo.Update(ctx, marketplacerepo.UpdateInput{Marketplace: mkt}); err != nil {
		return nil, errors.Wrap(err, "failed to update marketplace")
	}

	return &SetMarketplaceActiveOutput{Marketplace: mkt}, nil
}

func (o *orchestrator) ListAccessory(
	ctx context.Context,
	input *ListAccessoryInput,
) (*ListAccessoryOutput, error) {
	if input.MarketplaceID == "" {
		return nil, errors.InvalidArgument("marketplace ID is required")
	}
	if input.Accessory == nil || input.Accessory.ID == "" {
		return nil, errors.InvalidArgument("accessory is required")
	}
	if input.Seller == "" {
		return nil, errors.InvalidArgument("seller address is required")
	}
	if input.Price <= 0 {
		return nil, errors.InvalidArgument("price must be positive")
	}

	o.locks.Lock(input.MarketplaceID)
	defer o.locks.Unlock(input.MarketplaceID)

	getOutput, err := o.marketplaceRepo.Get(ctx, marketplacerepo.GetInput{ID: input.MarketplaceID})
	if err != nil {
		return nil, err
	}
	mkt := getOutput.Marketplace

	if !mkt.Active {
		return nil, errors.MarketplacePausedf("marketplace %s is paused", mkt.ID)
	}
	if mkt.Listing(input.Accessory.ID) != nil {
		return nil, errors.DuplicateListingf("accessory %s is already listed", input.Accessory.ID)
	}

	now := o.clock.Now().UnixMilli()
	listing := &entities.Listing{
		Item:     input.Accessory.Clone(),
		Seller:   input.Seller,
		Price:    input.Price,
		ListedAt: now,
	}

	if mkt.Listings == nil {
		mkt.Listings = make(map[string]*entities.Listing)
	}
	mkt.Listings[listing.Item.ID] = listing
	mkt.UpdatedAt = now

	if _, err := o.marketplaceRepo.Update(ctx, marketplacerepo.UpdateInput{Marketplace: mkt}); err != nil {
		return nil, errors.Wrap(err, "failed to store listing")
	}

	o.publish(ctx, events.AccessoryListed{
		MarketplaceID: mkt.ID,
		AccessoryID:   listing.Item.ID,
		Seller:        input.Seller,
		Price:         input.Price,
		ListedAt:      now,
	})

	return &ListAccessoryOutput{Listing: listing}, nil
}

func (o *orchestrator) PurchaseAccessory(
	ctx context.Context,
	input *PurchaseAccessoryInput,
) (*PurchaseAccessoryOutput, error) {
	if input.MarketplaceID == "" {
		return nil, errors.InvalidArgument("marketplace ID is required")
	}
	if input.AccessoryID == "" {
		return nil, errors.InvalidArgument("accessory ID is required")
	}
	if input.Buyer == "" {
		return nil, errors.InvalidArgument("buyer address is required")
	}

	o.locks.Lock(input.MarketplaceID)
	defer o.locks.Unlock(input.MarketplaceID)

	getOutput, err := o.marketplaceRepo.Get(ctx, marketplacerepo.GetInput{ID: input.MarketplaceID})
	if err != nil {
		return nil, err
	}
	mkt := getOutput.Marketplace

	if !mkt.Active {
		return nil, errors.MarketplacePausedf("marketplace %s is paused", mkt.ID)
	}

	listing := mkt.Listing(input.AccessoryID)
	if listing == nil {
		return nil, errors.ListingNotFoundf("no listing for accessory %s", input.AccessoryID)
	}
	if input.Payment.Value() < listing.Price {
		return nil, errors.InsufficientPaymentf("payment %d is less than listing price %d",
			input.Payment.Value(), listing.Price)
	}

	collOutput, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: mkt.CollectionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load collection for royalty terms")
	}
	coll := collOutput.Collection
	if input.CollectionID != "" && input.CollectionID != coll.ID {
		return nil, errors.InvalidArgumentf("collection %s does not back marketplace %s",
			input.CollectionID, mkt.ID)
	}

	// The fee ceiling and royalty ceiling are set independently, so the sum
	// has to be checked here or the seller amount could go negative.
	if mkt.FeeBasisPoints+coll.RoyaltyBasisPoints > entities.BasisPointDenominator {
		return nil, errors.Internalf("marketplace fee %d and royalty %d exceed %d basis points",
			mkt.FeeBasisPoints, coll.RoyaltyBasisPoints, entities.BasisPointDenominator)
	}

	// Fees are computed against the listing price, floor division. The
	// division remainder and any overpayment both go to the seller, so
	// every unit tendered is accounted for.
	price := listing.Price
	marketplaceFee := price * mkt.FeeBasisPoints / entities.BasisPointDenominator
	royaltyFee := price * coll.RoyaltyBasisPoints / entities.BasisPointDenominator
	sellerAmount := price - marketplaceFee - royaltyFee
	excess := input.Payment.Value() - price

	payouts := make([]entities.Payout, 0, 3)
	if marketplaceFee > 0 {
		payouts = append(payouts, entities.Payout{Recipient: mkt.FeeRecipient, Amount: marketplaceFee})
	}
	if royaltyFee > 0 {
		payouts = append(payouts, entities.Payout{Recipient: coll.RoyaltyRecipient, Amount: royaltyFee})
	}
	payouts = append(payouts, entities.Payout{Recipient: listing.Seller, Amount: sellerAmount + excess})

	item := listing.Item
	delete(mkt.Listings, input.AccessoryID)
	mkt.TotalVolume += price
	mkt.TotalSales++
	mkt.UpdatedAt = o.clock.Now().UnixMilli()

	if _, err := o.marketplaceRepo.Update(ctx, marketplacerepo.UpdateInput{Marketplace: mkt}); err != nil {
		return nil, errors.Wrap(err, "failed to settle purchase")
	}

	o.publish(ctx, events.AccessorySold{
		MarketplaceID:  mkt.ID,
		CollectionID:   coll.ID,
		AccessoryID:    item.ID,
		Seller:         listing.Seller,
		Buyer:          input.Buyer,
		Price:          price,
		MarketplaceFee: marketplaceFee,
		RoyaltyFee:     royaltyFee,
		SellerAmount:   sellerAmount + excess,
	})

	return &PurchaseAccessoryOutput{
		Accessory:      item,
		Price:          price,
		MarketplaceFee: marketplaceFee,
		RoyaltyFee:     royaltyFee,
		SellerAmount:   sellerAmount + excess,
		Payouts:        payouts,
	}, nil
}

func (o *orchestrator) CancelListing(
	ctx context.Context,
	input *CancelListingInput,
) (*CancelListingOutput, error) {
	if input.MarketplaceID == "" {
		return nil, errors.InvalidArgument("marketplace ID is required")
	}
	if input.AccessoryID == "" {
		return nil, errors.InvalidArgument("accessory ID is required")
	}

	o.locks.Lock(input.MarketplaceID)
	defer o.locks.Unlock(input.MarketplaceID)

	getOutput, err := o.marketplaceRepo.Get(ctx, marketplacerepo.GetInput{ID: input.MarketplaceID})
	if err != nil {
		return nil, err
	}
	mkt := getOutput.Marketplace

	// Cancellation works even on a paused marketplace; sellers can always
	// reclaim their escrowed items.
	listing := mkt.Listing(input.AccessoryID)
	if listing == nil {
		return nil, errors.ListingNotFoundf("no listing for accessory %s", input.AccessoryID)
	}
	if input.Caller != listing.Seller {
		return nil, errors.NotAuthorized("only the seller may cancel a listing")
	}

	item := listing.Item
	delete(mkt.Listings, input.AccessoryID)
	mkt.UpdatedAt = o.clock.Now().UnixMilli()

	if _, err := o.marketplaceRepo.Update(ctx, marketplacerepo.UpdateInput{Marketplace: mkt}); err != nil {
		return nil, errors.Wrap(err, "failed to remove listing")
	}

	return &CancelListingOutput{Accessory: item}, nil
}

func (o *orchestrator) GetMarketplace(
	ctx context.Context,
	input *GetMarketplaceInput,
) (*GetMarketplaceOutput, error) {
	getOutput, err := o.marketplaceRepo.Get(ctx, marketplacerepo.GetInput{ID: input.MarketplaceID})
	if err != nil {
		return nil, err
	}
	return &GetMarketplaceOutput{Marketplace: getOutput.Marketplace}, nil
}

func (o *orchestrator) GetListing(
	ctx context.Context,
	input *GetListingInput,
) (*GetListingOutput, error) {
	getOutput, err := o.marketplaceRepo.Get(ctx, marketplacerepo.GetInput{ID: input.MarketplaceID})
	if err != nil {
		return nil, err
	}

	listing := getOutput.Marketplace.Listing(input.AccessoryID)
	if listing == nil {
		return nil, errors.ListingNotFoundf("no listing for accessory %s", input.AccessoryID)
	}

	return &GetListingOutput{Listing: listing}, nil
}

func (o *orchestrator) publish(ctx context.Context, event events.Event) {
	if err := o.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			"event_type", event.EventType(),
			"error", err.Error())
	}
}
