// Package accessorytemplate provides the interface for template persistence
package accessorytemplate

//go:generate mockgen -destination=mock/mock_repository.go -package=templatemock github.com/pixelforge/collectibles-api/internal/repositories/accessorytemplate Repository

import (
	"context"

	"github.com/pixelforge/collectibles-api/internal/entities"
)

// Repository defines the interface for accessory template persistence
type Repository interface {
	// Create creates a new template
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a template with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a template by ID
	// Returns errors.NotFound if the template doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing template
	// Returns errors.NotFound if the template doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
}

// CreateInput defines the input for creating a template
type CreateInput struct {
	Template *entities.AccessoryTemplate
}

// CreateOutput defines the output for creating a template
type CreateOutput struct {
	Template *entities.AccessoryTemplate
}

// GetInput defines the input for getting a template
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a template
type GetOutput struct {
	Template *entities.AccessoryTemplate
}

// UpdateInput defines the input for updating a template
type UpdateInput struct {
	Template *entities.AccessoryTemplate
}

// UpdateOutput defines the output for updating a template
type UpdateOutput struct {
	Template *entities.AccessoryTemplate
}
