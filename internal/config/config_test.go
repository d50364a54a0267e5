package config

import (
	"strings"
	"testing"
	"time"

	"github.com/james-henry-git/nhl-stats-tracker/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected dev env by default, got %q", cfg.AppEnv)
	}
	if cfg.ServiceName != "nhl-stats-tracker" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.NHLAPITimeout != 30*time.Second {
		t.Fatalf("unexpected api timeout %s", cfg.NHLAPITimeout)
	}
	if cfg.NHLAPIMaxRetries != 3 {
		t.Fatalf("unexpected retries %d", cfg.NHLAPIMaxRetries)
	}
	if cfg.UpdateInterval != 24*time.Hour {
		t.Fatalf("unexpected update interval %s", cfg.UpdateInterval)
	}
	if !cfg.RunAtStart {
		t.Fatalf("expected run-at-start enabled by default")
	}
	if !cfg.NHLCircuitEnabled {
		t.Fatalf("expected circuit breaker enabled by default")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level %v", cfg.LogLevel)
	}
	if !strings.Contains(cfg.DBURL, "nhl_stats") {
		t.Fatalf("unexpected default db url %q", cfg.DBURL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("NHL_API_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("NHL_API_TIMEOUT", "5s")
	t.Setenv("NHL_API_MAX_RETRIES", "1")
	t.Setenv("UPDATE_INTERVAL", "1h")
	t.Setenv("RUN_AT_START", "false")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppEnv != EnvProd {
		t.Fatalf("unexpected env %q", cfg.AppEnv)
	}
	if cfg.NHLAPIBaseURL != "http://localhost:9999/v1" {
		t.Fatalf("unexpected base url %q", cfg.NHLAPIBaseURL)
	}
	if cfg.NHLAPITimeout != 5*time.Second || cfg.NHLAPIMaxRetries != 1 {
		t.Fatalf("unexpected client settings: %+v", cfg)
	}
	if cfg.UpdateInterval != time.Hour || cfg.RunAtStart {
		t.Fatalf("unexpected scheduler settings: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected log level %v", cfg.LogLevel)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Run("invalid app env", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid APP_ENV")
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Setenv("NHL_API_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid NHL_API_TIMEOUT")
		}
	})

	t.Run("negative retries", func(t *testing.T) {
		t.Setenv("NHL_API_MAX_RETRIES", "-2")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative NHL_API_MAX_RETRIES")
		}
	})

	t.Run("uptrace enabled without dsn", func(t *testing.T) {
		t.Setenv("UPTRACE_ENABLED", "true")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when UPTRACE_DSN is missing")
		}
	})

	t.Run("pyroscope enabled without address", func(t *testing.T) {
		t.Setenv("PYROSCOPE_ENABLED", "true")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when PYROSCOPE_SERVER_ADDRESS is missing")
		}
	})
}
