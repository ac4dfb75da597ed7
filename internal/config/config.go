package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
	"github.com/riskibarqy/agenda-fc/internal/platform/timeutil"
)

// Config stores runtime configuration for the CLI and the API.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	LogLevel          logging.Level
	LogFile           string
	LogFileMaxSizeMB  int
	LogFileMaxBackups int
	LogFileMaxAgeDays int

	DataDir          string
	LeaguesFile      string
	CompetitionsFile string
	FixturesFile     string
	FootballCacheDir string
	Timezone         string

	BallDontLieAPIKey       string
	BallDontLieBaseURL      string
	BallDontLieTimeout      time.Duration
	BallDontLieMaxRetries   int
	BallDontLieRequestDelay time.Duration

	FootballDataAPIKey       string
	FootballDataBaseURL      string
	FootballDataTimeout      time.Duration
	FootballDataRequestDelay time.Duration

	ReconcileDateToleranceDays int
	RefreshWorkers             int

	CacheEnabled       bool
	CacheTTL           time.Duration
	CORSAllowedOrigins []string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// DotEnvFiles are loaded in order before reading the environment. Variables
// already set in the process win over file values.
var DotEnvFiles = []string{".env.local", ".env"}

func Load() (Config, error) {
	if err := loadDotEnv(DotEnvFiles...); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:              appEnv,
		ServiceName:         getEnv("APP_SERVICE_NAME", "agenda-fc"),
		ServiceVersion:      getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:            getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:            logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFile:             strings.TrimSpace(getEnv("LOG_FILE", "")),
		DataDir:             strings.TrimSpace(getEnv("DATA_DIR", "public")),
		LeaguesFile:         strings.TrimSpace(getEnv("LEAGUES_FILE", "")),
		CompetitionsFile:    strings.TrimSpace(getEnv("COMPETITIONS_FILE", "competicoes-unificadas.json")),
		FixturesFile:        strings.TrimSpace(getEnv("FIXTURES_FILE", "jogos.json")),
		FootballCacheDir:    strings.TrimSpace(getEnv("FOOTBALL_CACHE_DIR", "api-cache")),
		Timezone:            strings.TrimSpace(getEnv("TIMEZONE", timeutil.DefaultZone)),
		BallDontLieAPIKey:   strings.TrimSpace(getEnv("BALLDONTLIE_API_KEY", "")),
		BallDontLieBaseURL:  strings.TrimSpace(getEnv("BALLDONTLIE_BASE_URL", "https://api.balldontlie.io")),
		FootballDataAPIKey:  strings.TrimSpace(getEnv("API_FOOTBALLDATA_KEY", "")),
		FootballDataBaseURL: strings.TrimSpace(getEnv("FOOTBALLDATA_BASE_URL", "https://api.football-data.org/v4")),
		CORSAllowedOrigins:  splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		UptraceDSN:          strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
	}

	if _, err := timeutil.LoadZone(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("parse TIMEZONE: %w", err)
	}
	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	durations := []struct {
		key       string
		fallback  string
		target    *time.Duration
		allowZero bool
	}{
		{key: "APP_READ_TIMEOUT", fallback: "10s", target: &cfg.ReadTimeout},
		{key: "APP_WRITE_TIMEOUT", fallback: "15s", target: &cfg.WriteTimeout},
		{key: "BALLDONTLIE_TIMEOUT", fallback: "15s", target: &cfg.BallDontLieTimeout},
		{key: "BALLDONTLIE_REQUEST_DELAY", fallback: "1s", target: &cfg.BallDontLieRequestDelay, allowZero: true},
		{key: "FOOTBALLDATA_TIMEOUT", fallback: "15s", target: &cfg.FootballDataTimeout},
		{key: "FOOTBALLDATA_REQUEST_DELAY", fallback: "7s", target: &cfg.FootballDataRequestDelay, allowZero: true},
		{key: "CACHE_TTL", fallback: "60s", target: &cfg.CacheTTL},
		{key: "PYROSCOPE_UPLOAD_RATE", fallback: "15s", target: &cfg.PyroscopeUploadRate},
	}
	for _, d := range durations {
		value, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		if value < 0 || (value == 0 && !d.allowZero) {
			return Config{}, fmt.Errorf("%s must be > 0", d.key)
		}
		*d.target = value
	}

	if cfg.LogFileMaxSizeMB, err = getEnvAsInt("LOG_FILE_MAX_SIZE_MB", 10); err != nil {
		return Config{}, fmt.Errorf("parse LOG_FILE_MAX_SIZE_MB: %w", err)
	}
	if cfg.LogFileMaxBackups, err = getEnvAsInt("LOG_FILE_MAX_BACKUPS", 5); err != nil {
		return Config{}, fmt.Errorf("parse LOG_FILE_MAX_BACKUPS: %w", err)
	}
	if cfg.LogFileMaxAgeDays, err = getEnvAsInt("LOG_FILE_MAX_AGE_DAYS", 28); err != nil {
		return Config{}, fmt.Errorf("parse LOG_FILE_MAX_AGE_DAYS: %w", err)
	}
	if cfg.LogFileMaxSizeMB <= 0 {
		return Config{}, fmt.Errorf("LOG_FILE_MAX_SIZE_MB must be > 0")
	}

	if cfg.BallDontLieMaxRetries, err = getEnvAsInt("BALLDONTLIE_MAX_RETRIES", 2); err != nil {
		return Config{}, fmt.Errorf("parse BALLDONTLIE_MAX_RETRIES: %w", err)
	}
	if cfg.BallDontLieMaxRetries < 0 {
		return Config{}, fmt.Errorf("BALLDONTLIE_MAX_RETRIES must be >= 0")
	}

	if cfg.ReconcileDateToleranceDays, err = getEnvAsInt("RECONCILE_DATE_TOLERANCE_DAYS", 1); err != nil {
		return Config{}, fmt.Errorf("parse RECONCILE_DATE_TOLERANCE_DAYS: %w", err)
	}

	if cfg.RefreshWorkers, err = getEnvAsInt("REFRESH_WORKERS", 2); err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_WORKERS: %w", err)
	}
	if cfg.RefreshWorkers <= 0 {
		return Config{}, fmt.Errorf("REFRESH_WORKERS must be > 0")
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

// Location resolves the configured time zone. Load has already validated it.
func (c Config) Location() *time.Location {
	loc, err := timeutil.LoadZone(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:      c.LogLevel,
		FilePath:   c.LogFile,
		MaxSizeMB:  c.LogFileMaxSizeMB,
		MaxBackups: c.LogFileMaxBackups,
		MaxAgeDays: c.LogFileMaxAgeDays,
		Compress:   c.AppEnv == EnvProd,
	}
}

func loadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
