// Package template implements the accessory template manager: reusable
// accessory blueprints and supply-capped minting of concrete instances.
package template

//go:generate mockgen -destination=mock/mock_service.go -package=templatemock github.com/pixelforge/collectibles-api/internal/orchestrators/template Service

import (
	"context"

	"github.com/pixelforge/collectibles-api/internal/entities"
	"github.com/pixelforge/collectibles-api/internal/errors"
	"github.com/pixelforge/collectibles-api/internal/pkg/clock"
	"github.com/pixelforge/collectibles-api/internal/pkg/entitylock"
	"github.com/pixelforge/collectibles-api/internal/pkg/idgen"
	templaterepo "github.com/pixelforge/collectibles-api/internal/repositories/accessorytemplate"
)

// Service defines the interface for accessory template operations
type Service interface {
	// CreateTemplate creates an accessory blueprint. Privileged.
	CreateTemplate(ctx context.Context, input *CreateTemplateInput) (*CreateTemplateOutput, error)

	// SetTemplateActive toggles whether the template can mint. Privileged.
	SetTemplateActive(ctx context.Context, input *SetTemplateActiveInput) (*SetTemplateActiveOutput, error)

	// MintAccessory mints a concrete accessory from a template. The payment
	// is burned, never credited to a treasury.
	MintAccessory(ctx context.Context, input *MintAccessoryInput) (*MintAccessoryOutput, error)

	// GetTemplate is the read-only projection of a template
	GetTemplate(ctx context.Context, input *GetTemplateInput) (*GetTemplateOutput, error)
}

// Config holds the dependencies for the template orchestrator
type Config struct {
	TemplateRepo   templaterepo.Repository
	Clock          clock.Clock
	TemplateIDGen  idgen.Generator
	AccessoryIDGen idgen.Generator
	Admin          *entities.AdminCredential
	Locks          *entitylock.Keyed
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.TemplateRepo == nil {
		vb.RequiredField("TemplateRepo")
	}
	if c.TemplateIDGen == nil {
		vb.RequiredField("TemplateIDGen")
	}
	if c.AccessoryIDGen == nil {
		vb.RequiredField("AccessoryIDGen")
	}
	if c.Admin == nil {
		vb.RequiredField("Admin")
	}

	return vb.Build()
}

type orchestrator struct {
	templateRepo   templaterepo.Repository
	clock          clock.Clock
	templateIDGen  idgen.Generator
	accessoryIDGen idgen.Generator
	admin          *entities.AdminCredential
	locks          *entitylock.Keyed
}

// NewOrchestrator creates a new template orchestrator
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
		templateRepo:   cfg.TemplateRepo,
		clock:          c,
		templateIDGen:  cfg.TemplateIDGen,
		accessoryIDGen: cfg.AccessoryIDGen,
		admin:          cfg.Admin,
		locks:          locks,
	}, nil
}

func (o *orchestrator) authorize(admin *entities.AdminCredential) error {
	if admin == nil || admin != o.admin {
		return errors.NotAuthorized("admin credential required")
	}
	return nil
}

func (o *orchestrator) CreateTemplate(
	ctx context.Context,
	input *CreateTemplateInput,
) (*CreateTemplateOutput, error) {
	if err := o.authorize(input.Admin); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("template name is required")
	}
	if !input.Type.IsValid() {
		return nil, errors.InvalidAccessoryTypef("unknown accessory type %q", input.Type)
	}
	if input.MintPrice < 0 {
		return nil, errors.InvalidArgument("mint price cannot be negative")
	}
	if input.MaxSupply != nil && *input.MaxSupply <= 0 {
		return nil, errors.InvalidArgument("max supply must be positive when set")
	}

	now := o.clock.Now().UnixMilli()
	tmpl := &entities.AccessoryTemplate{
		ID:             o.templateIDGen.Generate(),
		Name:           input.Name,
		Description:    input.Description,
		ImageURI:       input.ImageURI,
		Type:           input.Type,
		Rarity:         input.Rarity,
		BaseAttributes: copyAttributes(input.BaseAttributes),
		MintPrice:      input.MintPrice,
		MaxSupply:      input.MaxSupply,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	createOutput, err := o.templateRepo.Create(ctx, templaterepo.CreateInput{Template: tmpl})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create template")
	}

	return &CreateTemplateOutput{Template: createOutput.Template}, nil
}

func (o *orchestrator) SetTemplateActive(
	ctx context.Context,
	input *SetTemplateActiveInput,
) (*SetTemplateActiveOutput, error) {
	if err := o.authorize(input.Admin); err != nil {
		return nil, err
	}

	o.locks.Lock(input.TemplateID)
	defer o.locks.Unlock(input.TemplateID)

	getOutput, err := o.templateRepo.Get(ctx, templaterepo.GetInput{ID: input.TemplateID})
	if err != nil {
		return nil, err
	}
	tmpl := getOutput.Template

	tmpl.Active = input.Active
	tmpl.UpdatedAt = o.clock.Now().UnixMilli()

	if _, err := o.templateRepo.Update(ctx, templaterepo.UpdateInput{Template: tmpl}); err != nil {
		return nil, errors.Wrap(err, "failed to update template")
	}

	return &SetTemplateActiveOutput{Template: tmpl}, nil
}

func (o *orchestrator) MintAccessory(
	ctx context.Context,
	input *MintAccessoryInput,
) (*MintAccessoryOutput, error) {
	if input.TemplateID == "" {
		return nil, errors.InvalidArgument("template ID is required")
	}

	o.locks.Lock(input.TemplateID)
	defer o.locks.Unlock(input.TemplateID)

	getOutput, err := o.templateRepo.Get(ctx, templaterepo.GetInput{ID: input.TemplateID})
	if err != nil {
		return nil, err
	}
	tmpl := getOutput.Template

	if !tmpl.Active {
		return nil, errors.TemplateInactivef("template %s is deactivated", tmpl.ID)
	}
	if input.Payment.Value() < tmpl.MintPrice {
		return nil, errors.InsufficientPaymentf("payment %d is less than mint price %d",
			input.Payment.Value(), tmpl.MintPrice)
	}
	if !tmpl.SupplyAvailable() {
		return nil, errors.SupplyExceededf("template %s has reached its max supply of %d",
			tmpl.ID, *tmpl.MaxSupply)
	}

	now := o.clock.Now().UnixMilli()

	// Snapshot the template's metadata at this instant; later template
	// edits never reach items already minted.
	item := &entities.AccessoryItem{
		ID:          o.accessoryIDGen.Generate(),
		Name:        tmpl.Name,
		Description: tmpl.Description,
		ImageURI:    tmpl.ImageURI,
		Type:        tmpl.Type,
		Rarity:      tmpl.Rarity,
		Attributes:  copyAttributes(tmpl.BaseAttributes),
		CreatedAt:   now,
	}

	tmpl.CurrentSupply++
	tmpl.UpdatedAt = now

	if _, err := o.templateRepo.Update(ctx, templaterepo.UpdateInput{Template: tmpl}); err != nil {
		return nil, errors.Wrap(err, "failed to update template supply")
	}

	// The payment is burned: accessory mints credit no treasury, unlike
	// character mints.
	return &MintAccessoryOutput{Accessory: item}, nil
}

func (o *orchestrator) GetTemplate(
	ctx context.Context,
	input *GetTemplateInput,
) (*GetTemplateOutput, error) {
	getOutput, err := o.templateRepo.Get(ctx, templaterepo.GetInput{ID: input.TemplateID})
	if err != nil {
		return nil, err
	}
	return &GetTemplateOutput{Template: getOutput.Template}, nil
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
