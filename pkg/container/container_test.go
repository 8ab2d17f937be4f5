package container

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwars-api/internal/config"
)

func sqliteConfig(t *testing.T, sync bool) *config.Config {
	return &config.Config{
		App: config.AppConfig{Environment: config.EnvTest, Port: "0"},
		Database: config.DatabaseConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "starwars.db"),
			Sync:       sync,
		},
	}
}

func TestNewContainerWithConfig_SQLite(t *testing.T) {
	ctx := context.Background()

	c, err := NewContainerWithConfig(ctx, sqliteConfig(t, true))
	require.NoError(t, err)
	defer c.Cleanup()

	assert.NotNil(t, c.SQLite)
	assert.Nil(t, c.Postgres)
	assert.NotNil(t, c.CharacterRepo)
	assert.NotNil(t, c.CharacterService)
	assert.NotNil(t, c.CharacterHandler)
	require.NoError(t, c.HealthCheck(ctx))

	seeded, err := c.CharacterService.Seed(ctx)
	require.NoError(t, err)
	assert.Len(t, seeded, 7)
}

func TestNewContainerWithConfig_WithoutSyncLeavesSchemaAlone(t *testing.T) {
	ctx := context.Background()

	c, err := NewContainerWithConfig(ctx, sqliteConfig(t, false))
	require.NoError(t, err)
	defer c.Cleanup()

	// No table yet
	_, err = c.CharacterService.Seed(ctx)
	assert.Error(t, err)
}

func TestHealthCheck_WithoutStore(t *testing.T) {
	c := &Container{}
	assert.Error(t, c.HealthCheck(context.Background()))
	c.Cleanup()
}
