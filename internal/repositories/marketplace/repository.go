// Package marketplace provides the interface for marketplace persistence.
// The marketplace blob embeds its whole listing map, so every listing
// mutation is a single-key write and therefore atomic in the store.
package marketplace

//go:generate mockgen -destination=mock/mock_repository.go -package=marketplacemock github.com/pixelforge/collectibles-api/internal/repositories/marketplace Repository

import (
	"context"

	"github.com/pixelforge/collectibles-api/internal/entities"
)

// Repository defines the interface for marketplace persistence
type Repository interface {
	// Create creates a new marketplace
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a marketplace with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a marketplace by ID
	// Returns errors.NotFound if the marketplace doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing marketplace, listings included
	// Returns errors.NotFound if the marketplace doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
}

// CreateInput defines the input for creating a marketplace
type CreateInput struct {
	Marketplace *entities.Marketplace
}

// CreateOutput defines the output for creating a marketplace
type CreateOutput struct {
	Marketplace *entities.Marketplace
}

// GetInput defines the input for getting a marketplace
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a marketplace
type GetOutput struct {
	Marketplace *entities.Marketplace
}

// UpdateInput defines the input for updating a marketplace
type UpdateInput struct {
	Marketplace *entities.Marketplace
}

// UpdateOutput defines the output for updating a marketplace
type UpdateOutput struct {
	Marketplace *entities.Marketplace
}
