// Package collection provides the interface for collection persistence
package collection

//go:generate mockgen -destination=mock/mock_repository.go -package=collectionmock github.com/pixelforge/collectibles-api/internal/repositories/collection Repository

import (
	"context"

	"github.com/pixelforge/collectibles-api/internal/entities"
)

// Repository defines the interface for collection persistence
type Repository interface {
	// Create creates a new collection
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a collection with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a collection by ID
	// Returns errors.NotFound if the collection doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing collection
	// Returns errors.NotFound if the collection doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
}

// CreateInput defines the input for creating a collection
type CreateInput struct {
	Collection *entities.Collection
}

// CreateOutput defines the output for creating a collection
type CreateOutput struct {
	Collection *entities.Collection
}

// GetInput defines the input for getting a collection
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a collection
type GetOutput struct {
	Collection *entities.Collection
}

// UpdateInput defines the input for updating a collection
type UpdateInput struct {
	Collection *entities.Collection
}

// UpdateOutput defines the output for updating a collection
type UpdateOutput struct {
	Collection *entities.Collection
}
