package collection

import (
	"github.com/pixelforge/collectibles-api/internal/entities"
)

// CreateCollectionInput defines the input for creating a collection
type CreateCollectionInput struct {
	Admin              *entities.AdminCredential
	Name               string
	Description        string
	Creator            string
	RoyaltyBasisPoints int64
	RoyaltyRecipient   string
	MintPrice          int64
	MaxSupply          *int64 // nil = uncapped
	PublicMint         bool
}

// CreateCollectionOutput defines the output for creating a collection
type CreateCollectionOutput struct {
	Collection *entities.Collection
}

// SetPublicMintInput defines the input for toggling public minting
type SetPublicMintInput struct {
	Admin        *entities.AdminCredential
	CollectionID string
	Enabled      bool
}

// SetPublicMintOutput defines the output for toggling public minting
type SetPublicMintOutput struct {
	Collection *entities.Collection
}

// MintCharacterInput defines the input for minting a character
type MintCharacterInput struct {
	CollectionID string
	Minter       string
	Name         string
	Description  string
	ImageURI     string
	Attributes   map[string]string
	Payment      entities.Payment
}

// MintCharacterOutput defines the output for minting a character
type MintCharacterOutput struct {
	Character  *entities.Character
	Collection *entities.Collection
}

// WithdrawTreasuryInput defines the input for a treasury withdrawal
type WithdrawTreasuryInput struct {
	Admin        *entities.AdminCredential
	CollectionID string
	Amount       int64
	Recipient    string
}

// WithdrawTreasuryOutput defines the output for a treasury withdrawal
type WithdrawTreasuryOutput struct {
	Collection *entities.Collection
	Payout     entities.Payout
}

// UpdateRoyaltyInput defines the input for updating royalty terms
type UpdateRoyaltyInput struct {
	Admin              *entities.AdminCredential
	CollectionID       string
	RoyaltyBasisPoints int64
	RoyaltyRecipient   string
}

// UpdateRoyaltyOutput defines the output for updating royalty terms
type UpdateRoyaltyOutput struct {
	Collection *entities.Collection
}

// GetCollectionInput defines the input for the collection projection
type GetCollectionInput struct {
	CollectionID string
}

// GetCollectionOutput defines the output for the collection projection
type GetCollectionOutput struct {
	Collection *entities.Collection
}
