package commands

import (
	"database/sql"

	"github.com/garagehq/gms/config"
	"github.com/garagehq/gms/db"
	"github.com/garagehq/gms/errors"
	"github.com/garagehq/gms/logger"
	"github.com/garagehq/gms/storage"
)

// openDatabase opens and migrates the database at the specified path.
// If dbPath is empty, the configured path is used, falling back to
// gms.db in the working directory.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		path, err := config.GetDatabasePath()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get database path")
		}
		if path == "" {
			dbPath = "gms.db"
		} else {
			dbPath = path
		}
	}

	database, err := db.Open(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}

	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, errors.Wrapf(err, "failed to run migrations on %s", dbPath)
	}

	return database, nil
}

// newStore builds a store with thresholds from configuration.
func newStore(database *sql.DB) (*storage.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	opts := storage.Options{
		Limit:                 cfg.Search.Limit,
		MinScore:              cfg.Search.MinScore,
		WorkingSet:            cfg.Search.WorkingSet,
		MinQueryLen:           cfg.Search.MinQueryLen,
		CustomerLinkThreshold: cfg.Linkage.CustomerThreshold,
		VehicleLinkThreshold:  cfg.Linkage.VehicleThreshold,
	}

	return storage.NewStoreWithOptions(database, logger.Logger, opts), nil
}
