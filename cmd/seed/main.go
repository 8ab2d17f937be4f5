// Command seed populates an empty character store with the canonical roster.
// A store that already holds characters is left untouched.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"starwars-api/pkg/container"
	"starwars-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env, os.Getenv("LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error("Error running seeds", err)
		stop()
		os.Exit(1)
	}
	log.Info().Msg("All seeds completed successfully")
}

func run(ctx context.Context) error {
	appContainer, err := container.NewContainer(ctx)
	if err != nil {
		return err
	}
	defer appContainer.Cleanup()

	seeded, err := appContainer.CharacterService.Seed(ctx)
	if err != nil {
		return err
	}

	if len(seeded) == 0 {
		log.Info().Msg("Characters already exist, skipping seed")
		return nil
	}
	logger.Info("Seeded characters", map[string]interface{}{"count": len(seeded)})
	return nil
}
