package main

import (
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/james-henry-git/nhl-stats-tracker/db/migrations"
	"github.com/james-henry-git/nhl-stats-tracker/internal/config"
	"github.com/james-henry-git/nhl-stats-tracker/internal/platform/logging"
)

// runMigrations applies every pending migration from the embedded schema.
func runMigrations(cfg config.Config, logger *logging.Logger) error {
	source, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return crerr.Wrap(err, "open embedded migrations")
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, cfg.DBURL)
	if err != nil {
		return crerr.Wrap(err, "create migrator")
	}
	defer func() {
		srcErr, dbErr := migrator.Close()
		if srcErr != nil {
			logger.Warn("close migration source", "error", srcErr)
		}
		if dbErr != nil {
			logger.Warn("close migration db", "error", dbErr)
		}
	}()

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("schema already up to date")
			return nil
		}
		return crerr.Wrap(err, "apply migrations")
	}

	logger.Info("migrations applied")

	return nil
}
