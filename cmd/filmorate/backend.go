package main

import (
	"context"

	"gorm.io/gorm"

	"github.com/mroshb/filmorate/internal/config"
	"github.com/mroshb/filmorate/internal/database"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/internal/repositories/memory"
	"github.com/mroshb/filmorate/internal/repositories/redisstore"
	"github.com/mroshb/filmorate/pkg/logger"
)

// backend holds the stores picked by configuration and whatever must be
// closed on exit.
type backend struct {
	entities  repositories.EntityStore
	relations repositories.RelationshipStore
	db        *gorm.DB
	closers   []func() error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		store := memory.NewStore()
		b.entities = store
		b.relations = store
		logger.Info("Using in-memory store")
		return b, nil
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		b.db = db
		b.closers = append(b.closers, func() error { return database.Close(db) })

		store := repositories.NewGormStore(db)
		b.entities = store
		b.relations = store
	}

	if cfg.RelationBackend == config.BackendRedis {
		client, err := redisstore.NewClient(ctx, redisstore.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			b.close()
			return nil, err
		}
		b.closers = append(b.closers, client.Close)
		b.relations = redisstore.NewStore(client)
		logger.Info("Using redis for likes and friendships", "addr", cfg.GetRedisAddr())
	}

	return b, nil
}

func (b *backend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("Failed to close backend", "error", err)
		}
	}
}
