// Package roster persists the tracker's roster as a single snapshot
package roster

//go:generate mockgen -destination=mock/mock_repository.go -package=rostermock github.com/KirkDiggler/rpg-tracker/internal/repositories/roster Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
)

// Repository stores and loads the whole roster at once
type Repository interface {
	// Load returns the stored roster
	// Returns errors.NotFound if nothing has been saved yet
	// Returns errors.DataLoss if the stored snapshot cannot be decoded
	// Returns errors.Internal for storage failures
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save replaces the stored roster
	// Returns errors.InvalidArgument for a nil roster
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Clear removes the stored roster. Clearing an empty store is not an error.
	// Returns errors.Internal for storage failures
	Clear(ctx context.Context, input ClearInput) (*ClearOutput, error)
}

// LoadInput defines the input for loading the roster
type LoadInput struct{}

// LoadOutput defines the output for loading the roster
type LoadOutput struct {
	Roster *dnd5e.Roster
}

// SaveInput defines the input for saving the roster
type SaveInput struct {
	Roster *dnd5e.Roster
}

// SaveOutput defines the output for saving the roster
type SaveOutput struct{}

// ClearInput defines the input for clearing the roster
type ClearInput struct{}

// ClearOutput defines the output for clearing the roster
type ClearOutput struct{}
