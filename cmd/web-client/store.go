package main

import (
	"context"
	"log"

	"github.com/hackgods/counseling-scheduler/internal/config"
	"github.com/hackgods/counseling-scheduler/internal/db"
	redisclient "github.com/hackgods/counseling-scheduler/internal/redis"
	"github.com/hackgods/counseling-scheduler/internal/session"
)

const redisKeyPrefix = "counsel:"

type sessionBackend struct {
	store  session.Store
	locker session.Locker
	close  func()
}

// openSessionBackend connects the configured session store. Only redis shares
// action locks between web nodes; every other backend locks in process.
func openSessionBackend(ctx context.Context, cfg config.Config) (sessionBackend, error) {
	switch cfg.SessionBackend {
	case config.SessionRedis:
		rdb, err := redisclient.Connect(ctx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return sessionBackend{}, err
		}
		return sessionBackend{
			store:  redisclient.NewStore(rdb, redisKeyPrefix),
			locker: redisclient.NewActionLocker(rdb, cfg.LockTTL),
			close: func() {
				if err := rdb.Close(); err != nil {
					log.Printf("error closing redis: %v", err)
				}
			},
		}, nil

	case config.SessionPostgres:
		pool, err := db.OpenSessionPool(ctx, db.PostgresOptions{
			DSN:      cfg.PostgresDSN,
			AppName:  "counsel-web-client",
			MaxConns: cfg.PostgresConns,
		})
		if err != nil {
			return sessionBackend{}, err
		}
		store := db.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return sessionBackend{}, err
		}
		return sessionBackend{store: store, locker: session.NewLocalLocker(), close: pool.Close}, nil

	case config.SessionSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return sessionBackend{}, err
		}
		return sessionBackend{
			store:  db.NewSQLiteStore(sqlDB),
			locker: session.NewLocalLocker(),
			close: func() {
				if err := sqlDB.Close(); err != nil {
					log.Printf("error closing sqlite: %v", err)
				}
			},
		}, nil

	default:
		return sessionBackend{
			store:  session.NewMemoryStore(),
			locker: session.NewLocalLocker(),
			close:  func() {},
		}, nil
	}
}
