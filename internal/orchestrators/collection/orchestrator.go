// Package collection implements the collection manager: collection
// configuration, supply-capped character minting, and the treasury that
// absorbs mint payments.
package collection

//go:generate mockgen -destination=mock/mock_service.go -package=collectionmock github.com/pixelforge/collectibles-api/internal/orchestrators/collection Service

import (
	"context"
	"log/slog"

	"github.com/pixelforge/collectibles-api/internal/entities"
	"github.com/pixelforge/collectibles-api/internal/errors"
	"github.com/pixelforge/collectibles-api/internal/events"
	"github.com/pixelforge/collectibles-api/internal/pkg/clock"
	"github.com/pixelforge/collectibles-api/internal/pkg/entitylock"
	"github.com/pixelforge/collectibles-api/internal/pkg/idgen"
	characterrepo "github.com/pixelforge/collectibles-api/internal/repositories/character"
	collectionrepo "github.com/pixelforge/collectibles-api/internal/repositories/collection"
)

// Service defines the interface for collection operations
type Service interface {
	// CreateCollection creates a collection. Privileged.
	CreateCollection(ctx context.Context, input *CreateCollectionInput) (*CreateCollectionOutput, error)

	// SetPublicMint toggles whether any principal may mint. Privileged.
	SetPublicMint(ctx context.Context, input *SetPublicMintInput) (*SetPublicMintOutput, error)

	// MintCharacter mints a character against a collection
	MintCharacter(ctx context.Context, input *MintCharacterInput) (*MintCharacterOutput, error)

	// WithdrawTreasury draws down the collection treasury. Privileged.
	WithdrawTreasury(ctx context.Context, input *WithdrawTreasuryInput) (*WithdrawTreasuryOutput, error)

	// UpdateRoyalty changes the royalty rate and recipient. Privileged.
	UpdateRoyalty(ctx context.Context, input *UpdateRoyaltyInput) (*UpdateRoyaltyOutput, error)

	// GetCollection is the read-only projection of a collection
	GetCollection(ctx context.Context, input *GetCollectionInput) (*GetCollectionOutput, error)
}

// Config holds the dependencies for the collection orchestrator
type Config struct {
	CollectionRepo  collectionrepo.Repository
	CharacterRepo   characterrepo.Repository
	Publisher       events.Publisher
	Clock           clock.Clock
	CollectionIDGen idgen.Generator
	CharacterIDGen  idgen.Generator
	Admin           *entities.AdminCredential
	Locks           *entitylock.Keyed
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CollectionRepo == nil {
		vb.RequiredField("CollectionRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Publisher == nil {
		vb.RequiredField("Publisher")
	}
	if c.CollectionIDGen == nil {
		vb.RequiredField("CollectionIDGen")
	}
	if c.CharacterIDGen == nil {
		vb.RequiredField("CharacterIDGen")
	}
	if c.Admin == nil {
		vb.RequiredField("Admin")
	}

	return vb.Build()
}

type orchestrator struct {
	collectionRepo  collectionrepo.Repository
	characterRepo   characterrepo.Repository
	publisher       events.Publisher
	clock           clock.Clock
	collectionIDGen idgen.Generator
	characterIDGen  idgen.Generator
	admin           *entities.AdminCredential
	locks           *entitylock.Keyed
}

// NewOrchestrator creates a new collection orchestrator
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
		collectionRepo:  cfg.CollectionRepo,
		characterRepo:   cfg.CharacterRepo,
		publisher:       cfg.Publisher,
		clock:           c,
		collectionIDGen: cfg.CollectionIDGen,
		characterIDGen:  cfg.CharacterIDGen,
		admin:           cfg.Admin,
		locks:           locks,
	}, nil
}

// authorize checks possession of the bootstrap credential. Identity, not
// value: a credential constructed elsewhere never matches.
func (o *orchestrator) authorize(admin *entities.AdminCredential) error {
	if admin == nil || admin != o.admin {
		return errors.NotAuthorized("admin credential required")
	}
	return nil
}

func (o *orchestrator) CreateCollection(
	ctx context.Context,
	input *CreateCollectionInput,
) (*CreateCollectionOutput, error) {
	if err := o.authorize(input.Admin); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("collection name is required")
	}
	if input.Creator == "" {
		return nil, errors.InvalidArgument("creator address is required")
	}
	if input.RoyaltyBasisPoints < 0 || input.RoyaltyBasisPoints > entities.MaxRoyaltyBasisPoints {
		return nil, errors.InvalidRoyaltyf("royalty %d exceeds maximum of %d basis points",
			input.RoyaltyBasisPoints, entities.MaxRoyaltyBasisPoints)
	}
	if input.MintPrice < 0 {
		return nil, errors.InvalidArgument("mint price cannot be negative")
	}
	if input.MaxSupply != nil && *input.MaxSupply <= 0 {
		return nil, errors.InvalidArgument("max supply must be positive when set")
	}

	now := o.clock.Now().UnixMilli()
	coll := &entities.Collection{
		ID:                 o.collectionIDGen.Generate(),
		Name:               input.Name,
		Description:        input.Description,
		Creator:            input.Creator,
		RoyaltyBasisPoints: input.RoyaltyBasisPoints,
		RoyaltyRecipient:   input.RoyaltyRecipient,
		MintPrice:          input.MintPrice,
		MaxSupply:          input.MaxSupply,
		PublicMint:         input.PublicMint,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	createOutput, err := o.collectionRepo.Create(ctx, collectionrepo.CreateInput{Collection: coll})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create collection")
	}

	return &CreateCollectionOutput{Collection: createOutput.Collection}, nil
}

func (o *orchestrator) SetPublicMint(
	ctx context.Context,
	input *SetPublicMintInput,
) (*SetPublicMintOutput, error) {
	if err := o.authorize(input.Admin); err != nil {
		return nil, err
	}

	o.locks.Lock(input.CollectionID)
	defer o.locks.Unlock(input.CollectionID)

	getOutput, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: input.CollectionID})
	if err != nil {
		return nil, err
	}
	coll := getOutput.Collection

	coll.PublicMint = input.Enabled
	coll.UpdatedAt = o.clock.Now().UnixMilli()

	if _, err := o.collectionRepo.Update(ctx, collectionrepo.UpdateInput{Collection: coll}); err != nil {
		return nil, errors.Wrap(err, "failed to update collection")
	}

	return &SetPublicMintOutput{Collection: coll}, nil
}

func (o *orchestrator) MintCharacter(
	ctx context.Context,
	input *MintCharacterInput,
) (*MintCharacterOutput, error) {
	if input.CollectionID == "" {
		return nil, errors.InvalidArgument("collection ID is required")
	}
	if input.Minter == "" {
		return nil, errors.InvalidArgument("minter address is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("character name is required")
	}

	// The lock serializes the supply check against the increment, so a
	// capped collection can never mint past its cap.
	o.locks.Lock(input.CollectionID)
	defer o.locks.Unlock(input.CollectionID)

	getOutput, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: input.CollectionID})
	if err != nil {
		return nil, err
	}
	coll := getOutput.Collection

	if !coll.CanMint(input.Minter) {
		return nil, errors.NotAuthorized("public minting is disabled and caller is not the creator")
	}
	if input.Payment.Value() < coll.MintPrice {
		return nil, errors.InsufficientPaymentf("payment %d is less than mint price %d",
			input.Payment.Value(), coll.MintPrice)
	}
	if !coll.SupplyAvailable() {
		return nil, errors.SupplyExceededf("collection %s has reached its max supply of %d",
			coll.ID, *coll.MaxSupply)
	}

	now := o.clock.Now().UnixMilli()
	tokenID := coll.TotalSupply + 1

	char := &entities.Character{
		ID:           o.characterIDGen.Generate(),
		Name:         input.Name,
		Description:  input.Description,
		ImageURI:     input.ImageURI,
		CollectionID: coll.ID,
		TokenID:      tokenID,
		Attributes:   copyAttributes(input.Attributes),
		LastUpdated:  now,
	}

	if _, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: char}); err != nil {
		return nil, errors.Wrap(err, "failed to create character")
	}

	// The full tendered amount is absorbed; overpaying is allowed and no
	// change is returned.
	coll.TotalSupply++
	coll.Treasury += input.Payment.Value()
	coll.UpdatedAt = now

	if _, err := o.collectionRepo.Update(ctx, collectionrepo.UpdateInput{Collection: coll}); err != nil {
		return nil, errors.Wrap(err, "failed to update collection supply")
	}

	o.publish(ctx, events.CharacterMinted{
		CollectionID: coll.ID,
		CharacterID:  char.ID,
		TokenID:      tokenID,
		Minter:       input.Minter,
		Payment:      input.Payment.Value(),
		MintedAt:     now,
	})

	return &MintCharacterOutput{Character: char, Collection: coll}, nil
}

func (o *orchestrator) WithdrawTreasury(
	ctx context.Context,
	input *WithdrawTreasuryInput,
) (*WithdrawTreasuryOutput, error) {
	if err := o.authorize(input.Admin); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, errors.InvalidArgument("withdrawal amount must be positive")
	}
	if input.Recipient == "" {
		return nil, errors.InvalidArgument("recipient address is required")
	}

	o.locks.Lock(input.CollectionID)
	defer o.locks.Unlock(input.CollectionID)

	getOutput, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: input.CollectionID})
	if err != nil {
		return nil, err
	}
	coll := getOutput.Collection

	if input.Amount > coll.Treasury {
		return nil, errors.InsufficientFundsf("withdrawal of %d exceeds treasury balance %d",
			input.Amount, coll.Treasury)
	}

	coll.Treasury -= input.Amount
	coll.UpdatedAt = o.clock.Now().UnixMilli()

	if _, err := o.collectionRepo.Update(ctx, collectionrepo.UpdateInput{Collection: coll}); err != nil {
		return nil, errors.Wrap(err, "failed to update treasury")
	}

	return &WithdrawTreasuryOutput{
		Collection: coll,
		Payout:     entities.Payout{Recipient: input.Recipient, Amount: input.Amount},
	}, nil
}

func (o *orchestrator) UpdateRoyalty(
	ctx context.Context,
	input *UpdateRoyaltyInput,
) (*UpdateRoyaltyOutput, error) {
	if err := o.authorize(input.Admin); err != nil {
		return nil, err
	}
	if input.RoyaltyBasisPoints < 0 || input.RoyaltyBasisPoints > entities.MaxRoyaltyBasisPoints {
		return nil, errors.InvalidRoyaltyf("royalty %d exceeds maximum of %d basis points",
			input.RoyaltyBasisPoints, entities.MaxRoyaltyBasisPoints)
	}

	o.locks.Lock(input.CollectionID)
	defer o.locks.Unlock(input.CollectionID)

	getOutput, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: input.CollectionID})
	if err != nil {
		return nil, err
	}
	coll := getOutput.Collection

	coll.RoyaltyBasisPoints = input.RoyaltyBasisPoints
	coll.RoyaltyRecipient = input.RoyaltyRecipient
	coll.UpdatedAt = o.clock.Now().UnixMilli()

	if _, err := o.collectionRepo.Update(ctx, collectionrepo.UpdateInput{Collection: coll}); err != nil {
		return nil, errors.Wrap(err, "failed to update royalty")
	}

	return &UpdateRoyaltyOutput{Collection: coll}, nil
}

func (o *orchestrator) GetCollection(
	ctx context.Context,
	input *GetCollectionInput,
) (*GetCollectionOutput, error) {
	getOutput, err := o.collectionRepo.Get(ctx, collectionrepo.GetInput{ID: input.CollectionID})
	if err != nil {
		return nil, err
	}
	return &GetCollectionOutput{Collection: getOutput.Collection}, nil
}

// publish delivers an event best-effort; sinks are not required for
// correctness so failures only log
func (o *orchestrator) publish(ctx context.Context, event events.Event) {
	if err := o.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			"event_type", event.EventType(),
			"error", err.Error())
	}
}

func copyAttributes(attrs map[string]string) map[string]string {
	if attrs == nil {
		return nil
	}
	cp := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	return cp
}
