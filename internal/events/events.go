// Package events defines the notifications emitted on every state change and
// the Publisher interface they flow through. Events are fire-and-forget:
// they feed off-system indexers and are never required for correctness.
package events

// Event type names as they appear on the wire
const (
	TypeCharacterMinted     = "character.minted"
	TypeAccessoryEquipped   = "accessory.equipped"
	TypeAccessoryUnequipped = "accessory.unequipped"
	TypeAccessoryListed     = "accessory.listed"
	TypeAccessorySold       = "accessory.sold"
)

// Event is implemented by every notification
type Event interface {
	EventType() string
}

// CharacterMinted is emitted after a successful character mint
type CharacterMinted struct {
	CollectionID string `json:"collection_id"`
	CharacterID  string `json:"character_id"`
	TokenID      int64  `json:"token_id"`
	Minter       string `json:"minter"`
	Payment      int64  `json:"payment"`
	MintedAt     int64  `json:"minted_at"`
}

// EventType implements Event
func (CharacterMinted) EventType() string { return TypeCharacterMinted }

// AccessoryEquipped is emitted after an accessory occupies a slot
type AccessoryEquipped struct {
	CharacterID   string `json:"character_id"`
	AccessoryID   string `json:"accessory_id"`
	AccessoryType string `json:"accessory_type"`
	EquippedAt    int64  `json:"equipped_at"`
}

// EventType implements Event
func (AccessoryEquipped) EventType() string { return TypeAccessoryEquipped }

// AccessoryUnequipped is emitted after a slot is vacated
type AccessoryUnequipped struct {
	CharacterID   string `json:"character_id"`
	AccessoryID   string `json:"accessory_id"`
	AccessoryType string `json:"accessory_type"`
	UnequippedAt  int64  `json:"unequipped_at"`
}

// EventType implements Event
func (AccessoryUnequipped) EventType() string { return TypeAccessoryUnequipped }

// AccessoryListed is emitted when an accessory enters marketplace escrow
type AccessoryListed struct {
	MarketplaceID string `json:"marketplace_id"`
	AccessoryID   string `json:"accessory_id"`
	Seller        string `json:"seller"`
	Price         int64  `json:"price"`
	ListedAt      int64  `json:"listed_at"`
}

// EventType implements Event
func (AccessoryListed) EventType() string { return TypeAccessoryListed }

// AccessorySold is emitted after a successful purchase, carrying the full
// economic breakdown of the sale
type AccessorySold struct {
	MarketplaceID  string `json:"marketplace_id"`
	CollectionID   string `json:"collection_id"`
	AccessoryID    string `json:"accessory_id"`
	Seller         string `json:"seller"`
	Buyer          string `json:"buyer"`
	Price          int64  `json:"price"`
	MarketplaceFee int64  `json:"marketplace_fee"`
	RoyaltyFee     int64  `json:"royalty_fee"`
	SellerAmount   int64  `json:"seller_amount"`
}

// EventType implements Event
func (AccessorySold) EventType() string { return TypeAccessorySold }
