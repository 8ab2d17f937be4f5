package character

import (
	"time"

	"github.com/google/uuid"
)

// Character represents the core Character entity
// This is the domain model, independent of database/API concerns.
// Storage mapping (unique name, generated id, timestamps) is owned by the
// repository implementations, see repository/schema.
type Character struct {
	// Identity - generated by the storage layer on first save
	ID uuid.UUID `json:"id"`

	// Basic Information
	Name     string    `json:"name"`     // Required, unique across stored characters
	Episodes []Episode `json:"episodes"` // Order and duplicates preserved as given

	// Optional Details - nil means unknown
	Planet      *string `json:"planet"`
	Species     *string `json:"species"`
	Affiliation *string `json:"affiliation"`

	// Audit timestamps - maintained by the storage layer
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fields is the caller-settable part of a Character.
type Fields struct {
	Name        string
	Episodes    []Episode
	Planet      *string
	Species     *string
	Affiliation *string
}

// NewTransient builds an unsaved Character from fields.
// No defaults are applied besides record shape: a nil episode list becomes empty.
func NewTransient(f Fields) *Character {
	episodes := make([]Episode, len(f.Episodes))
	copy(episodes, f.Episodes)

	return &Character{
		Name:        f.Name,
		Episodes:    episodes,
		Planet:      f.Planet,
		Species:     f.Species,
		Affiliation: f.Affiliation,
	}
}

// IsPersisted reports whether the storage layer has assigned an identity.
func (c *Character) IsPersisted() bool {
	return c.ID != uuid.Nil
}
