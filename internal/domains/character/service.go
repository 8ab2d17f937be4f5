package character

import (
	"context"

	"github.com/google/uuid"
)

// Service defines business logic operations for Character domain
// Input is expected to be validated by the transport layer already.
type Service interface {
	// Create builds and persists a new character
	// Name uniqueness is enforced by the storage layer, not pre-checked
	// Errors: ErrDuplicateName
	Create(ctx context.Context, req *CreateCharacterRequest) (*Character, error)

	// FindAll returns one page ordered by creation time, newest first
	// page and limit must be positive
	FindAll(ctx context.Context, page, limit int) (*Page[Character], error)

	// FindOne retrieves a character by id
	// Errors: ErrCharacterNotFound
	FindOne(ctx context.Context, id uuid.UUID) (*Character, error)

	// FindByName retrieves a character by exact name
	// Errors: ErrCharacterNotFound
	FindByName(ctx context.Context, name string) (*Character, error)

	// Update overlays the supplied fields onto the stored character (merge, not replace)
	// Errors: ErrCharacterNotFound, ErrDuplicateName
	Update(ctx context.Context, id uuid.UUID, req *UpdateCharacterRequest) (*Character, error)

	// Remove deletes a character
	// Errors: ErrCharacterNotFound
	Remove(ctx context.Context, id uuid.UUID) error

	// Seed inserts the canonical roster when the store is empty
	// Returns: created characters, or an empty list when anything is stored already
	Seed(ctx context.Context) ([]*Character, error)
}
