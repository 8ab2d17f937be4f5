package character

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Constants for validation
const (
	MaxNameLength  = 255
	MaxTextLength  = 255
	DefaultPage    = 1
	DefaultLimit   = 10
	MaxLimit       = 100
	MinPageOrLimit = 1
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateCharacterRequest - POST /characters
type CreateCharacterRequest struct {
	Name        string    `json:"name"`
	Episodes    []Episode `json:"episodes"`
	Planet      *string   `json:"planet,omitempty"`
	Species     *string   `json:"species,omitempty"`
	Affiliation *string   `json:"affiliation,omitempty"`
}

func (r CreateCharacterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.Episodes,
			validation.NotNil.Error("episodes is required"),
			validation.Each(
				validation.Required.Error("episode cannot be empty"),
				validation.In(episodeValues()...).Error("must be a valid episode"),
			),
		),
		validation.Field(&r.Planet, validation.Length(0, MaxTextLength)),
		validation.Field(&r.Species, validation.Length(0, MaxTextLength)),
		validation.Field(&r.Affiliation, validation.Length(0, MaxTextLength)),
	)
}

// ToFields converts the request to the entity field set
func (r *CreateCharacterRequest) ToFields() Fields {
	return Fields{
		Name:        r.Name,
		Episodes:    r.Episodes,
		Planet:      r.Planet,
		Species:     r.Species,
		Affiliation: r.Affiliation,
	}
}

// UpdateCharacterRequest - PATCH /characters/:id
// All fields optional for partial updates; nil means "leave untouched"
type UpdateCharacterRequest struct {
	Name        *string   `json:"name,omitempty"`
	Episodes    []Episode `json:"episodes,omitempty"`
	Planet      *string   `json:"planet,omitempty"`
	Species     *string   `json:"species,omitempty"`
	Affiliation *string   `json:"affiliation,omitempty"`
}

func (r UpdateCharacterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("name cannot be empty"),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.Episodes,
			validation.Each(
				validation.Required.Error("episode cannot be empty"),
				validation.In(episodeValues()...).Error("must be a valid episode"),
			),
		),
		validation.Field(&r.Planet, validation.Length(0, MaxTextLength)),
		validation.Field(&r.Species, validation.Length(0, MaxTextLength)),
		validation.Field(&r.Affiliation, validation.Length(0, MaxTextLength)),
	)
}

// ApplyTo overlays the supplied fields onto an existing Character
func (r *UpdateCharacterRequest) ApplyTo(c *Character) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Episodes != nil {
		episodes := make([]Episode, len(r.Episodes))
		copy(episodes, r.Episodes)
		c.Episodes = episodes
	}
	if r.Planet != nil {
		c.Planet = r.Planet
	}
	if r.Species != nil {
		c.Species = r.Species
	}
	if r.Affiliation != nil {
		c.Affiliation = r.Affiliation
	}
}

// ListQuery - GET /characters?page=1&limit=10
type ListQuery struct {
	Page  int `form:"page,default=1" json:"page"`
	Limit int `form:"limit,default=10" json:"limit"`
}

func (q ListQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Page,
			validation.Required.Error("page must be at least 1"),
			validation.Min(MinPageOrLimit),
		),
		validation.Field(&q.Limit,
			validation.Required.Error("limit must be at least 1"),
			validation.Min(MinPageOrLimit),
			validation.Max(MaxLimit),
		),
	)
}

func episodeValues() []interface{} {
	values := make([]interface{}, len(allEpisodes))
	for i, e := range allEpisodes {
		values[i] = e
	}
	return values
}
