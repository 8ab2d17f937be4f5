package character

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence gateway the Character service depends on
// This abstraction allows:
// 1. Easy testing via mocking
// 2. Swapping database implementations (PostgreSQL, SQLite)
// 3. Keeping constraint enforcement in the storage layer
type Repository interface {
	// CreateTransient builds an unsaved Character from a field set
	// No I/O, no defaults besides record shape
	CreateTransient(fields Fields) *Character

	// Save durably stores one record
	// Inserts when ID is uuid.Nil, otherwise overwrites by identity
	// Returns: stored record with id and timestamps
	// Errors: wraps ErrUniqueViolation if another record has the same name
	Save(ctx context.Context, c *Character) (*Character, error)

	// SaveBatch stores several new records in one transaction (all or nothing)
	// Errors: same classification as Save
	SaveBatch(ctx context.Context, cs []*Character) ([]*Character, error)

	// FindOneBy looks up at most one record by exact match on id or name
	// Returns nil, nil if absent
	FindOneBy(ctx context.Context, criteria Criteria) (*Character, error)

	// FindPage returns one page plus the total count disregarding paging
	FindPage(ctx context.Context, req PageRequest) ([]Character, int64, error)

	// Remove deletes a previously fetched record
	Remove(ctx context.Context, c *Character) error

	// CountAll returns the total number of stored records
	CountAll(ctx context.Context) (int64, error)
}

// Criteria selects a single record by one field. Exactly one of ID or Name is set.
type Criteria struct {
	ID   *uuid.UUID
	Name *string
}

// ByID matches on identifier
func ByID(id uuid.UUID) Criteria {
	return Criteria{ID: &id}
}

// ByName matches on exact name
func ByName(name string) Criteria {
	return Criteria{Name: &name}
}

// SortOrder for paged reads
type SortOrder int

const (
	OrderCreatedAtDesc SortOrder = iota
)

// PageRequest - skip/take window over the ordered collection
type PageRequest struct {
	Skip  int
	Take  int
	Order SortOrder
}
