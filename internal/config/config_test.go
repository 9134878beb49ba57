package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Database.DBName != "fleetflow" {
		t.Errorf("expected db name fleetflow, got %s", cfg.Database.DBName)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis enabled by default")
	}
	if cfg.JWT.Expiry != 24*time.Hour {
		t.Errorf("expected 24h token expiry, got %s", cfg.JWT.Expiry)
	}
	if cfg.NewRelic.Enabled {
		t.Error("expected new relic disabled by default")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "fleetflow_test")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.DBName != "fleetflow_test" {
		t.Errorf("expected db name fleetflow_test, got %s", cfg.Database.DBName)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis disabled")
	}
	if cfg.JWT.Expiry != time.Hour {
		t.Errorf("expected 1h token expiry, got %s", cfg.JWT.Expiry)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("REDIS_ENABLED", "not-a-bool")
	t.Setenv("JWT_EXPIRY", "soon")

	cfg := Load()

	if cfg.Redis.DB != 0 {
		t.Errorf("expected redis db fallback 0, got %d", cfg.Redis.DB)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis enabled fallback true")
	}
	if cfg.JWT.Expiry != 24*time.Hour {
		t.Errorf("expected 24h fallback, got %s", cfg.JWT.Expiry)
	}
}
