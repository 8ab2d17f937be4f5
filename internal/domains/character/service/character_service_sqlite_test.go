package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwars-api/internal/domains/character"
	"starwars-api/internal/domains/character/repository"
	"starwars-api/internal/infrastructure/database"
)

func newSQLiteService(t *testing.T) character.Service {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "starwars.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplySchema(ctx, repository.SQLiteSchema))

	return NewCharacterService(repository.NewSQLiteRepository(db.DB))
}

func TestCharacterLifecycle(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &character.CreateCharacterRequest{
		Name:     "Luke Skywalker",
		Episodes: []character.Episode{character.EpisodeNewHope, character.EpisodeEmpire, character.EpisodeJedi},
		Planet:   strPtr("Tatooine"),
		Species:  strPtr("Human"),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &character.CreateCharacterRequest{Name: "Luke Skywalker", Episodes: []character.Episode{}})
	assert.ErrorIs(t, err, character.ErrDuplicateName)

	byName, err := svc.FindByName(ctx, "Luke Skywalker")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	updated, err := svc.Update(ctx, created.ID, &character.UpdateCharacterRequest{Planet: strPtr("Dagobah")})
	require.NoError(t, err)
	assert.Equal(t, "Dagobah", *updated.Planet)
	assert.Equal(t, "Human", *updated.Species)
	assert.Equal(t, created.Episodes, updated.Episodes)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	require.NoError(t, svc.Remove(ctx, created.ID))
	assert.ErrorIs(t, svc.Remove(ctx, created.ID), character.ErrCharacterNotFound)

	_, err = svc.FindOne(ctx, created.ID)
	assert.ErrorIs(t, err, character.ErrCharacterNotFound)
}

func TestUpdateAlwaysAdvancesUpdatedAt(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		created, err := svc.Create(ctx, &character.CreateCharacterRequest{
			Name:     fmt.Sprintf("Clone %d", i),
			Episodes: []character.Episode{},
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, &character.UpdateCharacterRequest{Planet: strPtr("Kamino")})
		require.NoError(t, err)
		require.True(t, updated.UpdatedAt.After(created.UpdatedAt), "update %d did not advance updatedAt", i)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	require.Len(t, seeded, 7)

	again, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)

	page, err := svc.FindAll(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), page.Total)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestSeedSkipsPartiallyPopulatedStore(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &character.CreateCharacterRequest{Name: "Yoda", Episodes: []character.Episode{}})
	require.NoError(t, err)

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Empty(t, seeded)

	_, err = svc.FindByName(ctx, "Luke Skywalker")
	assert.ErrorIs(t, err, character.ErrCharacterNotFound)
}
