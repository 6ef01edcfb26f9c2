package bootstrap

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"glamstore/internal/config"
	"glamstore/internal/logging"
	"glamstore/internal/repository"
	"glamstore/internal/repository/fallback"
	"glamstore/internal/repository/mongodb"
	"glamstore/internal/repository/postgres"
	"glamstore/pkg/database"
)

// OpenStore connects the backend named by cfg and prepares its schema. The
// returned store is shared by the whole process; callers Close it.
func OpenStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repository.Store, error) {
	backend := cfg.Backend()
	entry := log.WithField("backend", backend)

	switch backend {
	case config.BackendMongoDB:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		store := mongodb.NewStore(client, cfg.MongoDatabase)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(context.Background())
			return nil, errors.Wrap(err, "ensure mongodb indexes")
		}
		entry.WithField("database", cfg.MongoDatabase).Info("connected to mongodb")
		return store, nil

	case config.BackendPostgres:
		db, err := database.ConnectPostgres(cfg.PostgresDSN(), logging.Gorm(log))
		if err != nil {
			return nil, err
		}
		store := postgres.NewStore(db)
		if err := store.Migrate(); err != nil {
			_ = store.Close(context.Background())
			return nil, errors.Wrap(err, "migrate postgres")
		}
		entry.Info("connected to postgres")
		return store, nil

	case config.BackendStatic:
		entry.Warn("no database configured, serving the read-only sample dataset")
		return fallback.NewStore(fallback.DefaultDataset()), nil
	}
	return nil, errors.Errorf("unknown store backend %q", backend)
}
