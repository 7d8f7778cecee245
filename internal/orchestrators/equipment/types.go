package equipment

import (
	"github.com/pixelforge/collectibles-api/internal/entities"
)

// EquipInput defines the input for equipping an accessory. The accessory
// must be free (held by the caller); it is consumed by the operation.
type EquipInput struct {
	CharacterID string
	Accessory   *entities.AccessoryItem
}

// EquipOutput defines the output for equipping an accessory. Any accessory
// displaced from the slot is discarded, not returned.
type EquipOutput struct {
	Character *entities.Character
}

// UnequipInput defines the input for unequipping a slot
type UnequipInput struct {
	CharacterID string
	Type        entities.AccessoryType
}

// UnequipOutput defines the output for unequipping a slot. The extracted
// accessory is returned to the caller in the free state.
type UnequipOutput struct {
	Character *entities.Character
	Accessory *entities.AccessoryItem
}

// IsEquippedInput defines the input for the slot predicate
type IsEquippedInput struct {
	CharacterID string
	Type        entities.AccessoryType
}

// IsEquippedOutput defines the output for the slot predicate
type IsEquippedOutput struct {
	Equipped bool
}

// GetCharacterInput defines the input for the character projection
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the output for the character projection
type GetCharacterOutput struct {
	Character *entities.Character
}
