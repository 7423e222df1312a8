package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/internal/domain/user"
	"github.com/khoahotran/devconnect/pkg/logger"
)

// Store bundles the repositories of the configured driver.
type Store struct {
	Profiles profile.Repository
	Users    user.Repository

	close func()
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore connects the backend named by store.driver.
func OpenStore(ctx context.Context, cfg config.Config, log logger.Logger) (*Store, error) {
	log.Info("Opening store", zap.String("driver", cfg.Store.Driver))

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres, "":
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return &Store{
			Profiles: NewPostgresProfileRepo(pool, log),
			Users:    NewPostgresUserRepo(pool, log),
			close:    pool.Close,
		}, nil

	case config.StoreDriverMongo:
		client, err := NewMongoClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &Store{
			Profiles: NewMongoProfileRepo(db, log),
			Users:    NewMongoUserRepo(db, log),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error("Failed to disconnect MongoDB", err)
				}
			},
		}, nil

	case config.StoreDriverMemory:
		mem := NewMemoryStore()
		return &Store{Profiles: mem.Profiles(), Users: mem.Users()}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
