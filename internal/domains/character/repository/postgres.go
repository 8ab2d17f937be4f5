package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"starwars-api/internal/domains/character"
	"starwars-api/pkg/database"
)

// postgresRepository implements character.Repository interface
// Uses pgxpool for PostgreSQL. Constraints live in schema/postgres.sql.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new character repository instance
func NewPostgresRepository(pool *pgxpool.Pool) character.Repository {
	return &postgresRepository{
		pool: pool,
	}
}

const pgUniqueViolation = "23505"

const characterColumns = `id, name, episodes, planet, species, affiliation, created_at, updated_at`

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *postgresRepository) CreateTransient(fields character.Fields) *character.Character {
	return character.NewTransient(fields)
}

// Save inserts a new character or overwrites an existing one by id
func (r *postgresRepository) Save(ctx context.Context, c *character.Character) (*character.Character, error) {
	return r.save(ctx, r.pool, c)
}

// SaveBatch inserts every character in one transaction
func (r *postgresRepository) SaveBatch(ctx context.Context, cs []*character.Character) ([]*character.Character, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]*character.Character, error) {
		saved := make([]*character.Character, 0, len(cs))
		for _, c := range cs {
			s, err := r.save(ctx, tx, c)
			if err != nil {
				return nil, err
			}
			saved = append(saved, s)
		}
		return saved, nil
	})
}

func (r *postgresRepository) save(ctx context.Context, q rowQuerier, c *character.Character) (*character.Character, error) {
	var row pgx.Row

	if !c.IsPersisted() {
		query := `
			INSERT INTO characters (name, episodes, planet, species, affiliation)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING ` + characterColumns

		row = q.QueryRow(ctx, query,
			c.Name,
			pq.Array(episodesToStrings(c.Episodes)),
			c.Planet,
			c.Species,
			c.Affiliation,
		)
	} else {
		// Overwrite by identity. Only the id constraint is the arbiter, so a
		// name taken by another row still raises unique_violation.
		query := `
			INSERT INTO characters (id, name, episodes, planet, species, affiliation)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				name        = EXCLUDED.name,
				episodes    = EXCLUDED.episodes,
				planet      = EXCLUDED.planet,
				species     = EXCLUDED.species,
				affiliation = EXCLUDED.affiliation,
				updated_at  = GREATEST(NOW(), characters.updated_at + INTERVAL '1 microsecond')
			RETURNING ` + characterColumns

		row = q.QueryRow(ctx, query,
			c.ID,
			c.Name,
			pq.Array(episodesToStrings(c.Episodes)),
			c.Planet,
			c.Species,
			c.Affiliation,
		)
	}

	saved, err := scanCharacter(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %w", character.ErrUniqueViolation, err)
		}
		return nil, fmt.Errorf("failed to save character: %w", err)
	}

	return saved, nil
}

// FindOneBy retrieves at most one character by id or name
func (r *postgresRepository) FindOneBy(ctx context.Context, criteria character.Criteria) (*character.Character, error) {
	var (
		query string
		arg   any
	)

	switch {
	case criteria.ID != nil:
		query = `SELECT ` + characterColumns + ` FROM characters WHERE id = $1`
		arg = *criteria.ID
	case criteria.Name != nil:
		query = `SELECT ` + characterColumns + ` FROM characters WHERE name = $1`
		arg = *criteria.Name
	default:
		return nil, fmt.Errorf("find character: empty criteria")
	}

	c, err := scanCharacter(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find character: %w", err)
	}

	return c, nil
}

// FindPage retrieves one page plus the total row count
func (r *postgresRepository) FindPage(ctx context.Context, req character.PageRequest) ([]character.Character, int64, error) {
	query := `
		SELECT ` + characterColumns + `
		FROM characters
		ORDER BY ` + orderClause(req.Order) + `
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, req.Take, req.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query characters: %w", err)
	}
	defer rows.Close()

	characters := make([]character.Character, 0, req.Take)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating characters: %w", err)
	}

	total, err := r.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	return characters, total, nil
}

// Remove deletes the character by id
func (r *postgresRepository) Remove(ctx context.Context, c *character.Character) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM characters WHERE id = $1`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return character.ErrCharacterNotFound
	}

	return nil
}

// CountAll returns number of stored characters
func (r *postgresRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM characters`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count characters: %w", err)
	}
	return total, nil
}

// scanCharacter reads one row in characterColumns order. TEXT[] arrives in
// binary format and is scanned with pgx's native array codec.
func scanCharacter(row pgx.Row) (*character.Character, error) {
	var (
		c        character.Character
		id       uuid.UUID
		episodes []string
	)

	err := row.Scan(
		&id,
		&c.Name,
		&episodes,
		&c.Planet,
		&c.Species,
		&c.Affiliation,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.ID = id
	c.Episodes = stringsToEpisodes(episodes)
	return &c, nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
