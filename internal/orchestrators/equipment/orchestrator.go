// Package equipment implements the equip-slot state machine: four
// independent slots per character, each Empty or holding exactly one
// accessory of the matching type.
package equipment

//go:generate mockgen -destination=mock/mock_service.go -package=equipmentmock github.com/pixelforge/collectibles-api/internal/orchestrators/equipment Service

import (
	"context"
	"log/slog"

	"github.com/pixelforge/collectibles-api/internal/errors"
	"github.com/pixelforge/collectibles-api/internal/events"
	"github.com/pixelforge/collectibles-api/internal/pkg/clock"
	"github.com/pixelforge/collectibles-api/internal/pkg/entitylock"
	characterrepo "github.com/pixelforge/collectibles-api/internal/repositories/character"
)

// Service defines the interface for equipment operations
type Service interface {
	// Equip places an accessory in its slot, displacing and discarding any
	// previous occupant
	Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error)

	// Unequip vacates a slot and returns the extracted accessory
	Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error)

	// IsEquipped reports whether a slot is occupied. An invalid type reads
	// as false, not an error.
	IsEquipped(ctx context.Context, input *IsEquippedInput) (*IsEquippedOutput, error)

	// GetCharacter is the read-only projection of a character
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
}

// Config holds the dependencies for the equipment orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	Publisher     events.Publisher
	Clock         clock.Clock
	Locks         *entitylock.Keyed
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Publisher == nil {
		vb.RequiredField("Publisher")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo characterrepo.Repository
	publisher     events.Publisher
	clock         clock.Clock
	locks         *entitylock.Keyed
}

// NewOrchestrator creates a new equipment orchestrator
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
		characterRepo: cfg.CharacterRepo,
		publisher:     cfg.Publisher,
		clock:         c,
		locks:         locks,
	}, nil
}

func (o *orchestrator) Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.Accessory == nil {
		return nil, errors.InvalidArgument("accessory is required")
	}
	if !input.Accessory.Type.IsValid() {
		return nil, errors.InvalidAccessoryTypef("unknown accessory type %q", input.Accessory.Type)
	}

	o.locks.Lock(input.CharacterID)
	defer o.locks.Unlock(input.CharacterID)

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	char := getOutput.Character

	// Clone on the way in so the equipped copy never aliases the
	// caller's value.
	item := input.Accessory.Clone()
	displaced := char.SetEquipped(item.Type, item)

	now := o.clock.Now().UnixMilli()
	char.LastUpdated = now
	char.UpdateCount++

	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, errors.Wrap(err, "failed to update character")
	}

	// A displaced occupant is silently discarded: no return value and no
	// disposal event. See DESIGN.md for why this stays as-is.
	if displaced != nil {
		slog.DebugContext(ctx, "equip displaced an accessory",
			"character_id", char.ID,
			"slot", string(item.Type),
			"displaced_accessory_id", displaced.ID)
	}

	o.publish(ctx, events.AccessoryEquipped{
		CharacterID:   char.ID,
		AccessoryID:   item.ID,
		AccessoryType: string(item.Type),
		EquippedAt:    now,
	})

	return &EquipOutput{Character: char}, nil
}

func (o *orchestrator) Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if !input.Type.IsValid() {
		return nil, errors.InvalidAccessoryTypef("unknown accessory type %q", input.Type)
	}

	o.locks.Lock(input.CharacterID)
	defer o.locks.Unlock(input.CharacterID)

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	char := getOutput.Character

	item := char.Equipped(input.Type)
	if item == nil {
		return nil, errors.SlotNotEquippedf("slot %q is empty", input.Type)
	}
	char.SetEquipped(input.Type, nil)

	now := o.clock.Now().UnixMilli()
	char.LastUpdated = now
	char.UpdateCount++

	if _, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: char}); err != nil {
		return nil, errors.Wrap(err, "failed to update character")
	}

	o.publish(ctx, events.AccessoryUnequipped{
		CharacterID:   char.ID,
		AccessoryID:   item.ID,
		AccessoryType: string(input.Type),
		UnequippedAt:  now,
	})

	return &UnequipOutput{Character: char, Accessory: item}, nil
}

func (o *orchestrator) IsEquipped(ctx context.Context, input *IsEquippedInput) (*IsEquippedOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	return &IsEquippedOutput{Equipped: getOutput.Character.IsEquipped(input.Type)}, nil
}

func (o *orchestrator) GetCharacter(
	ctx context.Context,
	input *GetCharacterInput,
) (*GetCharacterOutput, error) {
	getOutput, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	return &GetCharacterOutput{Character: getOutput.Character}, nil
}

func (o *orchestrator) publish(ctx context.Context, event events.Event) {
	if err := o.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			"event_type", event.EventType(),
			"error", err.Error())
	}
}
