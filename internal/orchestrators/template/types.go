package template

import (
	"github.com/pixelforge/collectibles-api/internal/entities"
)

// CreateTemplateInput defines the input for creating a template
type CreateTemplateInput struct {
	Admin          *entities.AdminCredential
	Name           string
	Description    string
	ImageURI       string
	Type           entities.AccessoryType
	Rarity         string
	BaseAttributes map[string]string
	MintPrice      int64
	MaxSupply      *int64 // nil = uncapped
}

// CreateTemplateOutput defines the output for creating a template
type CreateTemplateOutput struct {
	Template *entities.AccessoryTemplate
}

// SetTemplateActiveInput defines the input for toggling a template
type SetTemplateActiveInput struct {
	Admin      *entities.AdminCredential
	TemplateID string
	Active     bool
}

// SetTemplateActiveOutput defines the output for toggling a template
type SetTemplateActiveOutput struct {
	Template *entities.AccessoryTemplate
}

// MintAccessoryInput defines the input for minting an accessory
type MintAccessoryInput struct {
	TemplateID string
	Payment    entities.Payment
}

// MintAccessoryOutput defines the output for minting an accessory. The
// returned item is in the free state, held by the caller.
type MintAccessoryOutput struct {
	Accessory *entities.AccessoryItem
}

// GetTemplateInput defines the input for the template projection
type GetTemplateInput struct {
	TemplateID string
}

// GetTemplateOutput defines the output for the template projection
type GetTemplateOutput struct {
	Template *entities.AccessoryTemplate
}
