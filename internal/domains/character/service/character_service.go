package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"starwars-api/internal/domains/character"
)

// characterService implements character.Service interface
// It holds no state; everything lives behind the repository.
type characterService struct {
	repo character.Repository // Persistence gateway (injected)
}

// NewCharacterService creates a new character service instance
func NewCharacterService(repo character.Repository) character.Service {
	return &characterService{
		repo: repo,
	}
}

func (s *characterService) Create(ctx context.Context, req *character.CreateCharacterRequest) (*character.Character, error) {
	candidate := s.repo.CreateTransient(req.ToFields())

	created, err := s.repo.Save(ctx, candidate)
	if err != nil {
		return nil, translatePersistError(err)
	}

	return created, nil
}

func (s *characterService) FindAll(ctx context.Context, page, limit int) (*character.Page[character.Character], error) {
	skip := (page - 1) * limit

	items, total, err := s.repo.FindPage(ctx, character.PageRequest{
		Skip:  skip,
		Take:  limit,
		Order: character.OrderCreatedAtDesc,
	})
	if err != nil {
		return nil, err
	}

	result := character.Paginate(items, total, page, limit)
	return &result, nil
}

func (s *characterService) FindOne(ctx context.Context, id uuid.UUID) (*character.Character, error) {
	return s.findOneBy(ctx, character.ByID(id), &character.NotFoundError{Field: "ID", Value: id.String()})
}

func (s *characterService) FindByName(ctx context.Context, name string) (*character.Character, error) {
	return s.findOneBy(ctx, character.ByName(name), &character.NotFoundError{Field: "name", Value: name})
}

// Update implements character.Service.Update as a merge onto the stored record
func (s *characterService) Update(ctx context.Context, id uuid.UUID, req *character.UpdateCharacterRequest) (*character.Character, error) {
	// ═══════════════════════════════════════════════════════════
	// STEP 1: FETCH CURRENT CHARACTER
	// ═══════════════════════════════════════════════════════════
	current, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	// ═══════════════════════════════════════════════════════════
	// STEP 2: APPLY PARTIAL UPDATES
	// ═══════════════════════════════════════════════════════════
	req.ApplyTo(current)

	// ═══════════════════════════════════════════════════════════
	// STEP 3: PERSIST (name collisions surface from the constraint)
	// ═══════════════════════════════════════════════════════════
	updated, err := s.repo.Save(ctx, current)
	if err != nil {
		return nil, translatePersistError(err)
	}

	return updated, nil
}

func (s *characterService) Remove(ctx context.Context, id uuid.UUID) error {
	current, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}

	return s.repo.Remove(ctx, current)
}

// Seed is gated on the population, not on individual names: a non-empty
// store is left alone even if some roster entries are missing.
func (s *characterService) Seed(ctx context.Context) ([]*character.Character, error) {
	count, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return []*character.Character{}, nil
	}

	roster := character.SeedRoster()
	batch := make([]*character.Character, 0, len(roster))
	for _, fields := range roster {
		batch = append(batch, s.repo.CreateTransient(fields))
	}

	// Errors are returned as-is, including a racing seed's unique violation.
	return s.repo.SaveBatch(ctx, batch)
}

func (s *characterService) findOneBy(ctx context.Context, criteria character.Criteria, notFound error) (*character.Character, error) {
	found, err := s.repo.FindOneBy(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, notFound
	}
	return found, nil
}

// translatePersistError is the single place where a storage failure is
// classified. Only the name constraint becomes a domain error.
func translatePersistError(err error) error {
	if errors.Is(err, character.ErrUniqueViolation) {
		return character.ErrDuplicateName
	}
	return err
}
