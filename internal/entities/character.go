package entities

// Character is a minted collectible with four equipment slots. Each slot
// holds at most one accessory, and the held accessory's type always matches
// its slot. UpdateCount is the number of successful equip/unequip operations
// performed on the character.
type Character struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	ImageURI     string            `json:"image_uri"`
	CollectionID string            `json:"collection_id"`
	TokenID      int64             `json:"token_id"` // 1-based, assigned at mint
	Attributes   map[string]string `json:"attributes,omitempty"`
	Head         *AccessoryItem    `json:"head,omitempty"`
	Eyes         *AccessoryItem    `json:"eyes,omitempty"`
	Clothing     *AccessoryItem    `json:"clothing,omitempty"`
	Back         *AccessoryItem    `json:"back,omitempty"`
	LastUpdated  int64             `json:"last_updated"` // unix millis
	UpdateCount  int64             `json:"update_count"`
}

// Equipped returns the accessory in the slot for the given type, or nil.
// An invalid type reads as an empty slot.
func (c *Character) Equipped(t AccessoryType) *AccessoryItem {
	switch t {
	case AccessoryTypeHead:
		return c.Head
	case AccessoryTypeEyes:
		return c.Eyes
	case AccessoryTypeClothing:
		return c.Clothing
	case AccessoryTypeBack:
		return c.Back
	default:
		return nil
	}
}

// SetEquipped places item in the slot for the given type and returns
// whatever previously occupied it. The caller is responsible for validating
// the type; an invalid type is a no-op.
func (c *Character) SetEquipped(t AccessoryType, item *AccessoryItem) *AccessoryItem {
	var prev *AccessoryItem
	switch t {
	case AccessoryTypeHead:
		prev, c.Head = c.Head, item
	case AccessoryTypeEyes:
		prev, c.Eyes = c.Eyes, item
	case AccessoryTypeClothing:
		prev, c.Clothing = c.Clothing, item
	case AccessoryTypeBack:
		prev, c.Back = c.Back, item
	}
	return prev
}

// IsEquipped reports whether the slot for the given type is occupied.
// Returns false, not an error, for an invalid type.
func (c *Character) IsEquipped(t AccessoryType) bool {
	return c.Equipped(t) != nil
}
