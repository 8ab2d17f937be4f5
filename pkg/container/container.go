package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"starwars-api/internal/config"
	"starwars-api/internal/domains/character"
	characterHandler "starwars-api/internal/domains/character/handler"
	characterRepo "starwars-api/internal/domains/character/repository"
	characterService "starwars-api/internal/domains/character/service"
	"starwars-api/internal/infrastructure/database"
)

// Store is the lifecycle surface shared by the PostgreSQL and SQLite handles
type Store interface {
	HealthCheck(ctx context.Context) error
	ApplySchema(ctx context.Context, schema string) error
	Close() error
}

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application.
// Lifecycle: one instance per process.
type Container struct {
	// INFRASTRUCTURE LAYER
	Config   *config.Config
	Postgres *database.PostgresDB // set when DB_DRIVER=postgres
	SQLite   *database.SQLiteDB   // set when DB_DRIVER=sqlite
	Store    Store

	// REPOSITORY LAYER
	CharacterRepo character.Repository

	// SERVICE LAYER
	CharacterService character.Service

	// HANDLER LAYER
	CharacterHandler *characterHandler.CharacterHandler
}

// NewContainer loads configuration from the environment and builds the graph
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("environment", cfg.App.Environment).Str("driver", cfg.Database.Driver).Msg("Config loaded")

	return NewContainerWithConfig(ctx, cfg)
}

// NewContainerWithConfig builds the dependency graph in order:
//  1. Database (depends on Config)
//  2. Schema sync (optional)
//  3. Repositories (depend on Database)
//  4. Services (depend on Repositories)
//  5. Handlers (depend on Services)
func NewContainerWithConfig(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INITIALIZE DATABASE
	// ========================================
	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 2: SCHEMA SYNC
	// ========================================
	if cfg.Database.Sync {
		if err := c.syncSchema(ctx); err != nil {
			c.Cleanup()
			return nil, fmt.Errorf("failed to sync schema: %w", err)
		}
	}

	// ========================================
	// STEP 3-5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, c.Config.Database.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite: %w", err)
		}
		c.SQLite = db
		c.Store = db

	default:
		db := database.NewPostgresDB(c.Config.ToDBConfig())

		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := db.Connect(connectCtx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.HealthCheck(connectCtx); err != nil {
			_ = db.Close()
			return fmt.Errorf("database health check failed: %w", err)
		}
		c.Postgres = db
		c.Store = db
	}

	log.Info().Str("driver", c.Config.Database.Driver).Msg("Database connected")
	return nil
}

func (c *Container) syncSchema(ctx context.Context) error {
	schema := characterRepo.PostgresSchema
	if c.SQLite != nil {
		schema = characterRepo.SQLiteSchema
	}
	return c.Store.ApplySchema(ctx, schema)
}

func (c *Container) initRepositories() {
	if c.SQLite != nil {
		c.CharacterRepo = characterRepo.NewSQLiteRepository(c.SQLite.DB)
		return
	}
	c.CharacterRepo = characterRepo.NewPostgresRepository(c.Postgres.Pool)
}

func (c *Container) initServices() {
	c.CharacterService = characterService.NewCharacterService(c.CharacterRepo)
}

func (c *Container) initHandlers() {
	c.CharacterHandler = characterHandler.NewCharacterHandler(c.CharacterService)
}

// HealthCheck pings the active store
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.Store == nil {
		return fmt.Errorf("database not initialized")
	}
	return c.Store.HealthCheck(ctx)
}

// Cleanup releases resources on shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		} else {
			log.Info().Msg("Database connections closed")
		}
	}
}
