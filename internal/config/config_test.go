package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "HTTP_PORT", "BACKEND_URL", "BACKEND_TIMEOUT", "SESSION_BACKEND", "SESSION_TTL",
		"SESSION_COOKIE", "COOKIE_SECURE", "CSRF_KEY", "POSTGRES_DSN", "SQLITE_PATH", "REDIS_URL",
		"REDIS_ADDR", "REDIS_USERNAME", "REDIS_PASSWORD", "LOCK_TTL", "CACHE_TTL", "SHUTDOWN_TIMEOUT",
		"WORKER_INTERVAL", "TIMEZONE", "LOGIN_RATE_LIMIT", "LOGIN_RATE_BURST", "POSTGRES_MAX_CONNS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://localhost:5000" || cfg.HTTPPort != "8080" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.BackendTimeout != 0 {
		t.Errorf("BackendTimeout = %s, want none", cfg.BackendTimeout)
	}
	if cfg.SessionBackend != SessionMemory || cfg.SessionTTL != 24*time.Hour {
		t.Errorf("session = %s %s", cfg.SessionBackend, cfg.SessionTTL)
	}
	if cfg.Location.String() != "UTC" || cfg.CSRFKey != nil {
		t.Errorf("location = %s key = %v", cfg.Location, cfg.CSRFKey)
	}
	if cfg.RedisAddr != "127.0.0.1:6379" {
		t.Errorf("RedisAddr = %s", cfg.RedisAddr)
	}
	if cfg.PostgresConns != 5 {
		t.Errorf("PostgresConns = %d", cfg.PostgresConns)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKEND_TIMEOUT", "15")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CSRF_KEY", strings.Repeat("ab", 32))
	t.Setenv("REDIS_URL", "redis://bob:pw@cache:6380")
	t.Setenv("TIMEZONE", "Asia/Manila")
	t.Setenv("LOGIN_RATE_BURST", "3")
	t.Setenv("POSTGRES_MAX_CONNS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendTimeout != 15*time.Second || cfg.SessionTTL != 90*time.Minute {
		t.Errorf("durations = %s %s", cfg.BackendTimeout, cfg.SessionTTL)
	}
	if !cfg.CookieSecure || len(cfg.CSRFKey) != 32 || cfg.LoginRateBurst != 3 || cfg.PostgresConns != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.RedisAddr != "cache:6380" || cfg.RedisUsername != "bob" || cfg.RedisPassword != "pw" {
		t.Errorf("redis = %s %s %s", cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	}
	if cfg.Location.String() != "Asia/Manila" {
		t.Errorf("location = %s", cfg.Location)
	}
}

func TestLoadRejectsBadCombinations(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without dsn", map[string]string{"SESSION_BACKEND": "postgres"}},
		{"unknown backend", map[string]string{"SESSION_BACKEND": "etcd"}},
		{"short csrf key", map[string]string{"CSRF_KEY": "abcd"}},
		{"non hex csrf key", map[string]string{"CSRF_KEY": strings.Repeat("zz", 32)}},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{"bad backend url", map[string]string{"BACKEND_URL": "not a url"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("Load succeeded, want error")
			}
		})
	}
}
