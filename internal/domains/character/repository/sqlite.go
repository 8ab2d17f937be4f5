package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"starwars-api/internal/domains/character"
)

// sqliteRepository implements character.Repository on SQLite.
// Ids and timestamps are produced here since SQLite has no uuid or
// auto-updated timestamp columns.
type sqliteRepository struct {
	db    *sql.DB
	now   func() time.Time
	newID func() uuid.UUID
}

// SQLiteOption customises the SQLite repository
type SQLiteOption func(*sqliteRepository)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) SQLiteOption {
	return func(r *sqliteRepository) {
		r.now = now
	}
}

// NewSQLiteRepository creates a character repository over an open SQLite handle
func NewSQLiteRepository(db *sql.DB, opts ...SQLiteOption) character.Repository {
	r := &sqliteRepository{
		db:    db,
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// sqlQuerier is satisfied by both *sql.DB and *sql.Tx
type sqlQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlScanner interface {
	Scan(dest ...any) error
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func (r *sqliteRepository) CreateTransient(fields character.Fields) *character.Character {
	return character.NewTransient(fields)
}

func (r *sqliteRepository) Save(ctx context.Context, c *character.Character) (*character.Character, error) {
	return r.save(ctx, r.db, c)
}

func (r *sqliteRepository) SaveBatch(ctx context.Context, cs []*character.Character) ([]*character.Character, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	saved := make([]*character.Character, 0, len(cs))
	for _, c := range cs {
		s, err := r.save(ctx, tx, c)
		if err != nil {
			return nil, err
		}
		saved = append(saved, s)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return saved, nil
}

func (r *sqliteRepository) save(ctx context.Context, q sqlQuerier, c *character.Character) (*character.Character, error) {
	now := r.now()

	id := c.ID
	createdAt := c.CreatedAt
	if !c.IsPersisted() {
		id = r.newID()
		createdAt = now
	}
	if createdAt.IsZero() {
		createdAt = now
	}

	// The upsert target is the primary key; SQLite checks it first, so a
	// name owned by a different row still fails with a unique constraint.
	// updated_at moves forward at least one millisecond per overwrite.
	query := `
		INSERT INTO characters (id, name, episodes, planet, species, affiliation, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name        = excluded.name,
			episodes    = excluded.episodes,
			planet      = excluded.planet,
			species     = excluded.species,
			affiliation = excluded.affiliation,
			updated_at  = MAX(excluded.updated_at, characters.updated_at + 1)
		RETURNING ` + characterColumns

	row := q.QueryRowContext(ctx, query,
		id.String(),
		c.Name,
		joinEpisodes(c.Episodes),
		nullString(c.Planet),
		nullString(c.Species),
		nullString(c.Affiliation),
		toMillis(createdAt),
		toMillis(now),
	)

	saved, err := scanSQLiteCharacter(row)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %w", character.ErrUniqueViolation, err)
		}
		return nil, fmt.Errorf("failed to save character: %w", err)
	}
	return saved, nil
}

func (r *sqliteRepository) FindOneBy(ctx context.Context, criteria character.Criteria) (*character.Character, error) {
	var (
		query string
		arg   any
	)

	switch {
	case criteria.ID != nil:
		query = `SELECT ` + characterColumns + ` FROM characters WHERE id = ?`
		arg = criteria.ID.String()
	case criteria.Name != nil:
		query = `SELECT ` + characterColumns + ` FROM characters WHERE name = ?`
		arg = *criteria.Name
	default:
		return nil, fmt.Errorf("find character: empty criteria")
	}

	c, err := scanSQLiteCharacter(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find character: %w", err)
	}
	return c, nil
}

func (r *sqliteRepository) FindPage(ctx context.Context, req character.PageRequest) ([]character.Character, int64, error) {
	query := `SELECT ` + characterColumns + ` FROM characters ORDER BY ` + orderClause(req.Order) + ` LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, req.Take, req.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query characters: %w", err)
	}

	characters := make([]character.Character, 0, req.Take)
	for rows.Next() {
		c, err := scanSQLiteCharacter(rows)
		if err != nil {
			_ = rows.Close()
			return nil, 0, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, *c)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, 0, fmt.Errorf("error iterating characters: %w", err)
	}
	// Release the connection before counting; the pool holds a single one.
	if err := rows.Close(); err != nil {
		return nil, 0, fmt.Errorf("failed to close rows: %w", err)
	}

	total, err := r.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return characters, total, nil
}

func (r *sqliteRepository) Remove(ctx context.Context, c *character.Character) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, c.ID.String())
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if affected == 0 {
		return character.ErrCharacterNotFound
	}
	return nil
}

func (r *sqliteRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM characters`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count characters: %w", err)
	}
	return total, nil
}

func scanSQLiteCharacter(row sqlScanner) (*character.Character, error) {
	var (
		c           character.Character
		id          string
		episodes    string
		planet      sql.NullString
		species     sql.NullString
		affiliation sql.NullString
		createdAt   int64
		updatedAt   int64
	)

	if err := row.Scan(&id, &c.Name, &episodes, &planet, &species, &affiliation, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse character id %q: %w", id, err)
	}

	c.ID = parsed
	c.Episodes = splitEpisodes(episodes)
	c.Planet = stringPtr(planet)
	c.Species = stringPtr(species)
	c.Affiliation = stringPtr(affiliation)
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return &c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func isSQLiteUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "characters.name")
}
