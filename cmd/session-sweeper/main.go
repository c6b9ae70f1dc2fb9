package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/hackgods/counseling-scheduler/internal/config"
	"github.com/hackgods/counseling-scheduler/internal/db"
)

// expirer is a session store that needs expired rows removed by hand.
type expirer interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("session-sweeper starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running session sweeper in env=%s backend=%s interval=%s", cfg.Env, cfg.SessionBackend, cfg.WorkerInterval)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store expirer
	switch cfg.SessionBackend {
	case config.SessionPostgres:
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pgPool, err := db.OpenSessionPool(pgCtx, db.PostgresOptions{
			DSN:      cfg.PostgresDSN,
			AppName:  "counsel-session-sweeper",
			MaxConns: 1,
		})
		cancelPg()
		if err != nil {
			log.Fatalf("postgres connection error: %v", err)
		}
		defer pgPool.Close()
		log.Println("connected to Postgres")

		pg := db.NewPostgresStore(pgPool)
		if err := pg.Migrate(rootCtx); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		store = pg

	case config.SessionSQLite:
		sqlDB, err := db.OpenSQLite(rootCtx, cfg.SQLitePath)
		if err != nil {
			log.Fatalf("sqlite open error: %v", err)
		}
		defer sqlDB.Close()
		log.Printf("opened SQLite path=%s", cfg.SQLitePath)
		store = db.NewSQLiteStore(sqlDB)

	default:
		// redis expires keys itself and the memory store is swept by the web node
		log.Printf("session backend %s expires keys itself, nothing to sweep", cfg.SessionBackend)
		return
	}

	interval := cfg.WorkerInterval
	if interval <= 0 {
		interval = time.Minute
	}

	// Run once at startup
	runOnce(rootCtx, store)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Println("shutdown signal received, stopping session sweeper")
			return
		case <-ticker.C:
			runOnce(rootCtx, store)
		}
	}
}

func runOnce(ctx context.Context, store expirer) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	n, err := store.DeleteExpired(runCtx)
	if err != nil {
		log.Printf("sweep run error: %v", err)
		return
	}
	log.Printf("sweep run complete removed=%d in %s", n, time.Since(start))
}
