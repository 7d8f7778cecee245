// Package entities defines the data model for collections, characters,
// accessories, and the marketplace.
package entities

// AccessoryType identifies which equipment slot an accessory occupies
type AccessoryType string

// The four equipment slot categories
const (
	AccessoryTypeHead     AccessoryType = "head"
	AccessoryTypeEyes     AccessoryType = "eyes"
	AccessoryTypeClothing AccessoryType = "clothing"
	AccessoryTypeBack     AccessoryType = "back"
)

// AccessoryTypes returns all valid accessory types in slot order
func AccessoryTypes() []AccessoryType {
	return []AccessoryType{
		AccessoryTypeHead,
		AccessoryTypeEyes,
		AccessoryTypeClothing,
		AccessoryTypeBack,
	}
}

// IsValid reports whether the type is one of the four defined categories
func (t AccessoryType) IsValid() bool {
	switch t {
	case AccessoryTypeHead, AccessoryTypeEyes, AccessoryTypeClothing, AccessoryTypeBack:
		return true
	default:
		return false
	}
}

// Common rarity labels. Rarity is a free-form label; these are the values the
// standard templates use.
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// AccessoryItem is a concrete accessory instance minted from a template.
// Once minted it is immutable; only its holder context changes (free,
// equipped on a character, or escrowed in a marketplace listing).
type AccessoryItem struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ImageURI    string            `json:"image_uri"`
	Type        AccessoryType     `json:"type"`
	Rarity      string            `json:"rarity"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	CreatedAt   int64             `json:"created_at"` // unix millis
}

// Clone returns a deep copy so holders never alias each other's attributes
func (a *AccessoryItem) Clone() *AccessoryItem {
	if a == nil {
		return nil
	}
	cp := *a
	if a.Attributes != nil {
		cp.Attributes = make(map[string]string, len(a.Attributes))
		for k, v := range a.Attributes {
			cp.Attributes[k] = v
		}
	}
	return &cp
}

// AccessoryTemplate is a reusable blueprint accessories are minted from.
// Minting copies the template's metadata at that instant; later template
// edits do not affect already-minted items.
type AccessoryTemplate struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	ImageURI       string            `json:"image_uri"`
	Type           AccessoryType     `json:"type"`
	Rarity         string            `json:"rarity"`
	BaseAttributes map[string]string `json:"base_attributes,omitempty"`
	MintPrice      int64             `json:"mint_price"`
	MaxSupply      *int64            `json:"max_supply,omitempty"` // nil = uncapped
	CurrentSupply  int64             `json:"current_supply"`
	Active         bool              `json:"active"`
	CreatedAt      int64             `json:"created_at"`
	UpdatedAt      int64             `json:"updated_at"`
}

// SupplyAvailable reports whether another accessory may be minted
func (t *AccessoryTemplate) SupplyAvailable() bool {
	return t.MaxSupply == nil || t.CurrentSupply < *t.MaxSupply
}
