package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Backend  BackendConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Session  SessionConfig
	Audit    AuditConfig
	Reports  ReportsConfig
	Exports  ExportsConfig
}

// BackendConfig points the gateway at the activity/administration backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SessionConfig controls persistence of per-user report workspace snapshots.
type SessionConfig struct {
	Enabled bool
	TTL     time.Duration
}

// AuditConfig toggles the Postgres audit trail for console mutations.
type AuditConfig struct {
	Enabled bool
}

// ReportsConfig tunes the reports workspace.
type ReportsConfig struct {
	SearchDebounce    time.Duration
	OldAfter          time.Duration
	DeleteConcurrency int
	WorkspaceIdleTTL  time.Duration
}

// ExportsConfig configures dashboard exports and their signed download URLs.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupInterval time.Duration
	PDFFontFamily   string
	PDFFontPath     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Backend = BackendConfig{
		BaseURL: strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("BACKEND_TIMEOUT"), 15*time.Second),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{Secret: v.GetString("JWT_SECRET")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Session = SessionConfig{
		Enabled: v.GetBool("ENABLE_SESSION_STORE"),
		TTL:     parseDuration(v.GetString("SESSION_TTL"), 12*time.Hour),
	}

	cfg.Audit = AuditConfig{Enabled: v.GetBool("ENABLE_AUDIT")}

	concurrency := v.GetInt("REPORTS_DELETE_CONCURRENCY")
	if concurrency <= 0 {
		concurrency = 4
	}
	cfg.Reports = ReportsConfig{
		SearchDebounce:    parseDuration(v.GetString("REPORTS_SEARCH_DEBOUNCE"), 300*time.Millisecond),
		OldAfter:          parseDuration(v.GetString("REPORTS_OLD_AFTER"), 30*24*time.Hour),
		DeleteConcurrency: concurrency,
		WorkspaceIdleTTL:  parseDuration(v.GetString("WORKSPACE_IDLE_TTL"), 30*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), time.Hour),
		CleanupInterval: parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
		PDFFontFamily:   v.GetString("EXPORTS_PDF_FONT_FAMILY"),
		PDFFontPath:     v.GetString("EXPORTS_PDF_FONT_PATH"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("BACKEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("BACKEND_TIMEOUT", "15s")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "achievement_console")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_SESSION_STORE", false)
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("ENABLE_AUDIT", false)

	v.SetDefault("REPORTS_SEARCH_DEBOUNCE", "300ms")
	v.SetDefault("REPORTS_OLD_AFTER", "720h")
	v.SetDefault("REPORTS_DELETE_CONCURRENCY", 4)
	v.SetDefault("WORKSPACE_IDLE_TTL", "30m")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "1h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("EXPORTS_PDF_FONT_FAMILY", "Amiri")
	v.SetDefault("EXPORTS_PDF_FONT_PATH", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
