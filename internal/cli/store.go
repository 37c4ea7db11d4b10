package cli

import (
	"context"
	"fmt"

	"github.com/iliyamo/course-reviews/internal/config"
	"github.com/iliyamo/course-reviews/internal/database"
	"github.com/iliyamo/course-reviews/internal/logger"
	"github.com/iliyamo/course-reviews/internal/repository"
	"github.com/iliyamo/course-reviews/internal/seed"
)

// openStore connects the backend selected by cfg.StoreDriver. The returned
// func releases the connection.
func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (repository.Store, func(), error) {
	noop := func() {}
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, noop, fmt.Errorf("connect mongo: %w", err)
		}
		log.Info("store ready", "driver", cfg.StoreDriver, "database", cfg.MongoDB)
		return repository.NewMongoStore(db), func() { _ = client.Disconnect(context.Background()) }, nil

	case config.DriverMySQL:
		db, err := database.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, noop, fmt.Errorf("connect mysql: %w", err)
		}
		log.Info("store ready", "driver", cfg.StoreDriver, "host", cfg.DBHost, "database", cfg.DBName)
		return repository.NewSQLStore(db), func() { _ = db.Close() }, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite: %w", err)
		}
		// a fresh SQLite file has no tables yet
		if err := repository.CreateTables(ctx, db, repository.DialectSQLite); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		log.Info("store ready", "driver", cfg.StoreDriver, "path", cfg.SQLitePath)
		return repository.NewSQLStore(db), func() { _ = db.Close() }, nil

	case config.DriverMemory:
		store := repository.NewMemoryStore()
		if cfg.SeedFile != "" {
			fx, err := seed.LoadFixture(cfg.SeedFile)
			if err != nil {
				return nil, noop, err
			}
			if _, err := (&seed.Seeder{Writer: store, Log: log}).Run(ctx, fx); err != nil {
				return nil, noop, err
			}
		}
		log.Info("store ready", "driver", cfg.StoreDriver, "seed_file", cfg.SeedFile)
		return store, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// setup loads configuration and builds the logger shared by all commands.
func setup() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return cfg, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}
