package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DataDir != "public" {
		t.Fatalf("unexpected DataDir: %q", cfg.DataDir)
	}
	if cfg.FootballDataRequestDelay != 7*time.Second {
		t.Fatalf("unexpected FootballDataRequestDelay: %s", cfg.FootballDataRequestDelay)
	}
	if cfg.ReconcileDateToleranceDays != 1 {
		t.Fatalf("unexpected ReconcileDateToleranceDays: %d", cfg.ReconcileDateToleranceDays)
	}
	if cfg.Location().String() != "America/Sao_Paulo" {
		t.Fatalf("unexpected location: %s", cfg.Location())
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_MissingCredentialsAreNotAnError(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BALLDONTLIE_API_KEY", "")
	t.Setenv("API_FOOTBALLDATA_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BallDontLieAPIKey != "" || cfg.FootballDataAPIKey != "" {
		t.Fatalf("expected empty credentials")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"TIMEZONE":             "Mars/Olympus",
		"REFRESH_WORKERS":      "0",
		"CACHE_TTL":            "0s",
		"BALLDONTLIE_TIMEOUT":  "soon",
		"LOG_FILE_MAX_SIZE_MB": "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_ZeroRequestDelayAllowed(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALLDATA_REQUEST_DELAY", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballDataRequestDelay != 0 {
		t.Fatalf("expected zero delay, got %s", cfg.FootballDataRequestDelay)
	}
}

func TestLoadDotEnv_ProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env.local")
	if err := os.WriteFile(path, []byte("AGENDAFC_TEST_A=from-file\nAGENDAFC_TEST_B=from-file\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("AGENDAFC_TEST_A", "from-process")
	t.Setenv("AGENDAFC_TEST_B", "")
	os.Unsetenv("AGENDAFC_TEST_B")

	if err := loadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("AGENDAFC_TEST_A"); got != "from-process" {
		t.Fatalf("process env should win, got %q", got)
	}
	if got := os.Getenv("AGENDAFC_TEST_B"); got != "from-file" {
		t.Fatalf("file value should be loaded, got %q", got)
	}
}
