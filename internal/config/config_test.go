package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("default port want 8080 got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("default driver want sqlite got %s", cfg.Database.Driver)
	}
	if cfg.Reference.CacheTTL() != 5*time.Minute {
		t.Fatalf("default cache ttl want 5m got %s", cfg.Reference.CacheTTL())
	}
	if cfg.Security.SubmitRateLimit.MaxAttempts != 5 {
		t.Fatalf("default submit attempts want 5 got %d", cfg.Security.SubmitRateLimit.MaxAttempts)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CATALOGKIT_SERVER_PORT", "9090")
	t.Setenv("CATALOGKIT_DATABASE_DRIVER", "postgres")
	t.Setenv("CATALOGKIT_CONSOLE_TIMEOUT_SECONDS", "3")

	cfg := Load()
	if cfg.Server.Port != "9090" {
		t.Fatalf("port want 9090 got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("driver want postgres got %s", cfg.Database.Driver)
	}
	if cfg.Console.Timeout() != 3*time.Second {
		t.Fatalf("console timeout want 3s got %s", cfg.Console.Timeout())
	}
}
