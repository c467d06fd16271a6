package main

import (
	"context"
	"fmt"

	"github.com/jwalitptl/medclinic-admin/internal/config"
	"github.com/jwalitptl/medclinic-admin/internal/handler/health"
	"github.com/jwalitptl/medclinic-admin/internal/repository"
	"github.com/jwalitptl/medclinic-admin/internal/repository/memory"
	"github.com/jwalitptl/medclinic-admin/internal/repository/postgres"
	redisrepo "github.com/jwalitptl/medclinic-admin/internal/repository/redis"
)

// storage is the opened backend with its readiness probes and a closer.
type storage struct {
	repos  *repository.Repositories
	checks map[string]health.Check
	close  func() error
}

func openStorage(ctx context.Context, cfg config.StorageConfig) (*storage, error) {
	switch cfg.Driver {
	case "redis":
		client, err := redisrepo.NewClient(ctx, redisrepo.Config{
			URL:      cfg.Redis.URL,
			Prefix:   cfg.Redis.KeyPrefix,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, err
		}
		return &storage{
			repos: redisrepo.NewRepositories(client, cfg.Redis.KeyPrefix),
			checks: map[string]health.Check{
				"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
			},
			close: client.Close,
		}, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, postgres.Config{
			DSN:          cfg.Postgres.DSN,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
			MaxIdleConns: cfg.Postgres.MaxIdleConns,
		})
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &storage{
			repos: postgres.NewRepositories(db),
			checks: map[string]health.Check{
				"database": db.PingContext,
			},
			close: db.Close,
		}, nil

	case "memory":
		return &storage{
			repos:  memory.NewRepositories(),
			checks: map[string]health.Check{},
			close:  func() error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
