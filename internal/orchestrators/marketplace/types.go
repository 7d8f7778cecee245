package marketplace

import (
	"github.com/pixelforge/collectibles-api/internal/entities"
)

// CreateMarketplaceInput defines the input for creating a marketplace
type CreateMarketplaceInput struct {
	Admin          *entities.AdminCredential
	CollectionID   string
	FeeBasisPoints int64
	FeeRecipient   string
}

// CreateMarketplaceOutput defines the output for creating a marketplace
type CreateMarketplaceOutput struct {
	Marketplace *entities.Marketplace
}

// SetMarketplaceActiveInput defines the input for pausing or resuming
type SetMarketplaceActiveInput struct {
	Admin         *entities.AdminCredential
	MarketplaceID string
	Active        bool
}

// SetMarketplaceActiveOutput defines the output for pausing or resuming
type SetMarketplaceActiveOutput struct {
	Marketplace *entities.Marketplace
}

// ListAccessoryInput defines the input for listing an accessory for sale.
// The accessory must be free; it moves into escrow.
type ListAccessoryInput struct {
	MarketplaceID string
	Accessory     *entities.AccessoryItem
	Price         int64
	Seller        string
}

// ListAccessoryOutput defines the output for listing an accessory
type ListAccessoryOutput struct {
	Listing *entities.Listing
}

// PurchaseAccessoryInput defines the input for purchasing a listed accessory
type PurchaseAccessoryInput struct {
	MarketplaceID string
	CollectionID  string
	AccessoryID   string
	Payment       entities.Payment
	Buyer         string
}

// PurchaseAccessoryOutput defines the output for a purchase: the now-free
// accessory plus the full accounting of the tendered value
type PurchaseAccessoryOutput struct {
	Accessory      *entities.AccessoryItem
	Price          int64
	MarketplaceFee int64
	RoyaltyFee     int64
	SellerAmount   int64
	Payouts        []entities.Payout
}

// CancelListingInput defines the input for cancelling a listing
type CancelListingInput struct {
	MarketplaceID string
	AccessoryID   string
	Caller        string
}

// CancelListingOutput defines the output for cancelling a listing. The item
// returns to the caller in the free state; no fee applies.
type CancelListingOutput struct {
	Accessory *entities.AccessoryItem
}

// GetMarketplaceInput defines the input for the marketplace projection
type GetMarketplaceInput struct {
	MarketplaceID string
}

// GetMarketplaceOutput defines the output for the marketplace projection
type GetMarketplaceOutput struct {
	Marketplace *entities.Marketplace
}

// GetListingInput defines the input for the listing projection
type GetListingInput struct {
	MarketplaceID string
	AccessoryID   string
}

// GetListingOutput defines the output for the listing projection
type GetListingOutput struct {
	Listing *entities.Listing
}
