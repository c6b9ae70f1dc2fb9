package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/backend"
	"github.com/hackgods/counseling-scheduler/internal/config"
	"github.com/hackgods/counseling-scheduler/internal/session"
	"github.com/hackgods/counseling-scheduler/internal/web"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("web-client starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s backend=%s session_backend=%s",
		cfg.Env, cfg.HTTPPort, cfg.BackendURL, cfg.SessionBackend)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storeCtx, cancelStore := context.WithTimeout(rootCtx, 10*time.Second)
	sb, err := openSessionBackend(storeCtx, cfg)
	cancelStore()
	if err != nil {
		log.Fatalf("session store error: %v", err)
	}
	defer sb.close()
	log.Printf("session store ready backend=%s", cfg.SessionBackend)

	if mem, ok := sb.store.(*session.MemoryStore); ok {
		go sweepMemory(rootCtx, mem, cfg.WorkerInterval)
	}

	csrfKey := cfg.CSRFKey
	if csrfKey == nil {
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			log.Fatalf("generate csrf key: %v", err)
		}
		log.Println("CSRF_KEY not set, using a per-process key")
	}

	router := web.NewRouter(web.RouterConfig{
		Backend:      backend.New(cfg.BackendURL, cfg.BackendTimeout),
		Holder:       session.NewHolder(sb.store, cfg.SessionTTL),
		Locker:       sb.locker,
		Cache:        appointment.NewCache(cfg.CacheTTL),
		Env:          cfg.Env,
		Version:      version,
		CookieName:   cfg.SessionCookie,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
		CSRFKey:      csrfKey,
		RateLimit:    cfg.LoginRateLimit,
		RateBurst:    cfg.LoginRateBurst,
		Now:          cfg.Now,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("http server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()
	log.Println("shutting down web-client")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
}

func sweepMemory(ctx context.Context, m *session.MemoryStore, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Printf("op=sweep_sessions removed=%d", n)
			}
		}
	}
}
