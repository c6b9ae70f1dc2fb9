package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOptions configures the session store pool.
type PostgresOptions struct {
	DSN      string
	AppName  string // reported as application_name unless the DSN sets one
	MaxConns int32  // <= 0 keeps the pgx default
}

func poolConfig(opts PostgresOptions) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse session store dsn: %w", err)
	}

	params := cfg.ConnConfig.RuntimeParams
	if params["application_name"] == "" && opts.AppName != "" {
		params["application_name"] = opts.AppName
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	cfg.MinConns = 0
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = time.Minute
	return cfg, nil
}

// OpenSessionPool connects the pool behind PostgresStore and checks it answers.
func OpenSessionPool(ctx context.Context, opts PostgresOptions) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open session pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping session store: %w", err)
	}
	return pool, nil
}
