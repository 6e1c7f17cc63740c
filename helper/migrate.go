package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"floorplan/config"
	"floorplan/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type action string

const (
	actionUp     action = "up"
	actionDown   action = "down"
	actionStepUp action = "step-up"
	actionDrop   action = "drop"
)

func getConnection(cfg *config.Config) (*migrate.Migrate, error) {
	dsn := postgres.WriteEndpoint(cfg).DSN(url.Values{"x-migrations-table": {cfg.DB.Postgres.MigrationTable}})

	mig, err := migrate.New(migrationSource, dsn)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func run(config *config.Config, act action) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch act {
	case actionUp:
		err = mig.Up()
	case actionDown:
		err = mig.Steps(-1)
	case actionStepUp:
		err = mig.Steps(1)
	case actionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("unknown migration action %q", act)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", act, err)
	}

	version, dirty, verr := mig.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		log.Warn().Err(verr).Msg("could not read migration version")
	}

	log.Info().Str("action", string(act)).Uint("version", version).Bool("dirty", dirty).Msg("database migrations completed")

	return nil
}

func Up(config *config.Config) error {
	return run(config, actionUp)
}

func StepUp(config *config.Config) error {
	return run(config, actionStepUp)
}

func Down(config *config.Config) error {
	return run(config, actionDown)
}

func Drop(config *config.Config) error {
	return run(config, actionDrop)
}

// AutoMigrate applies pending migrations at boot when enabled.
func AutoMigrate(config *config.Config) {
	if !config.DB.Postgres.AutoMigrate {
		return
	}

	if err := Up(config); err != nil {
		log.Fatal().Err(err).Msg("auto migration failed")
	}
}
