package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "ticket-tracker" {
		t.Fatalf("App.Name = %q", cfg.App.Name)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("App.Port = %q", cfg.App.Port)
	}
	if cfg.Auth.AccessTokenTTLMinutes != 60 {
		t.Fatalf("AccessTokenTTLMinutes = %d", cfg.Auth.AccessTokenTTLMinutes)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Fatalf("BcryptCost = %d", cfg.Auth.BcryptCost)
	}
	if !cfg.Postgres.RunMigrations {
		t.Fatal("RunMigrations default = false, want true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "not-a-number")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Fatalf("App.Port = %q, want 9090", cfg.App.Port)
	}
	if cfg.App.RequestTimeout() != 5*time.Second {
		t.Fatalf("RequestTimeout = %v, want 5s", cfg.App.RequestTimeout())
	}
	// malformed ints fall back to the default rather than failing startup
	if cfg.Auth.AccessTokenTTLMinutes != 60 {
		t.Fatalf("AccessTokenTTLMinutes = %d, want fallback 60", cfg.Auth.AccessTokenTTLMinutes)
	}
	if cfg.Postgres.RunMigrations {
		t.Fatal("RunMigrations override ignored")
	}
}

func TestAddr(t *testing.T) {
	app := AppConfig{Host: "127.0.0.1", Port: "3000"}
	if got := app.Addr(); got != "127.0.0.1:3000" {
		t.Fatalf("Addr = %q", got)
	}
}
