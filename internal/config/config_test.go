package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/match-goals/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FlashscoreBaseURL != "https://www.flashscore.com/" {
		t.Fatalf("unexpected flashscore base url: %q", cfg.FlashscoreBaseURL)
	}
	if !cfg.BrowserHeadless {
		t.Fatalf("expected headless browser by default")
	}
	if cfg.BrowserWaitTimeout != 10*time.Second {
		t.Fatalf("unexpected browser wait timeout: %s", cfg.BrowserWaitTimeout)
	}
	if cfg.SearchSettleDelay != 3*time.Second {
		t.Fatalf("unexpected search settle delay: %s", cfg.SearchSettleDelay)
	}
	if cfg.ShowMoreDelay != time.Second || cfg.ShowMoreSettleDelay != 3*time.Second {
		t.Fatalf("unexpected show more delays: %s %s", cfg.ShowMoreDelay, cfg.ShowMoreSettleDelay)
	}
	if cfg.SnapshotStore != SnapshotStoreMemory {
		t.Fatalf("unexpected snapshot store: %q", cfg.SnapshotStore)
	}
	if cfg.BatchMaxWorkers != 4 {
		t.Fatalf("unexpected batch max workers: %d", cfg.BatchMaxWorkers)
	}
	if cfg.ScrapeCircuitFailureCount != 3 || cfg.ScrapeCircuitHalfOpenMaxReq != 1 {
		t.Fatalf("unexpected circuit defaults: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn=\"https://token@api.uptrace.dev/1\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "match-goals-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "match-goals-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
	}
	if cfg.CORSAllowedOrigins[0] != "https://a.example.com" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_SnapshotStoreParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("postgres", func(t *testing.T) {
		t.Setenv("SNAPSHOT_STORE", " Postgres ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SnapshotStore != SnapshotStorePostgres {
			t.Fatalf("unexpected snapshot store: %q", cfg.SnapshotStore)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("SNAPSHOT_STORE", "redis")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid SNAPSHOT_STORE")
		}
	})
}

func TestLoad_DurationValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unparseable wait timeout", key: "BROWSER_WAIT_TIMEOUT", value: "soon"},
		{name: "zero wait timeout", key: "BROWSER_WAIT_TIMEOUT", value: "0s"},
		{name: "negative settle delay", key: "SEARCH_SETTLE_DELAY", value: "-1s"},
		{name: "zero scrape timeout", key: "SCRAPE_TIMEOUT", value: "0s"},
		{name: "invalid cache ttl", key: "CACHE_TTL", value: "bad"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_ZeroDelaysAllowed(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SHOW_MORE_DELAY", "0s")
	t.Setenv("SHOW_MORE_SETTLE_DELAY", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ShowMoreDelay != 0 || cfg.ShowMoreSettleDelay != 0 {
		t.Fatalf("expected zero delays, got %s %s", cfg.ShowMoreDelay, cfg.ShowMoreSettleDelay)
	}
}

func TestLoad_BatchMaxWorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BATCH_MAX_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for BATCH_MAX_WORKERS=0")
	}
}
