package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"resume-optimizer/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string
	RunMigrations   bool
	MetricsEnabled  bool

	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	DownloadURLTTL     time.Duration
	MaxUploadSizeMB    int
	AllowedUploadTypes []string

	StorageBackend string
	LocalStoreDir  string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccountID    string
	S3AccessKeyID  string
	S3SecretKey    string
	S3Prefix       string
	S3PublicURL    string
	SSEKMSKeyID    string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", getEnv("ENVIRONMENT", "dev")))
	dbURL := os.Getenv("DATABASE_URL")
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))

	if env == "production" {
		if dbURL == "" {
			telemetry.Warn("config.missing", map[string]any{"key": "DATABASE_URL"})
		}
		if secret == "" {
			telemetry.Warn("config.missing", map[string]any{"key": "JWT_SECRET"})
		}
	}

	return Config{
		Port:               getEnv("PORT", "8000"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		DatabaseURL:        dbURL,
		RunMigrations:      getBool("RUN_MIGRATIONS", true),
		MetricsEnabled:     getBool("METRICS_ENABLED", true),
		JWTSecret:          secret,
		AccessTokenTTL:     time.Duration(getInt("ACCESS_TOKEN_EXPIRE_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL:    time.Duration(getInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		DownloadURLTTL:     getDuration("DOWNLOAD_URL_TTL", time.Hour),
		MaxUploadSizeMB:    getInt("MAX_UPLOAD_SIZE_MB", 5),
		AllowedUploadTypes: splitAndTrim(strings.ToLower(getEnv("ALLOWED_UPLOAD_TYPES", "pdf,docx"))),
		StorageBackend:     NormalizeStorageBackend(getEnv("STORAGE_BACKEND", "local")),
		LocalStoreDir:      getEnv("LOCAL_STORE_DIR", "./data"),
		S3Bucket:           getEnv("S3_BUCKET", "resume-uploads"),
		S3Region:           getEnv("S3_REGION", ""),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		S3AccountID:        getEnv("S3_ACCOUNT_ID", ""),
		S3AccessKeyID:      getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:        getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Prefix:           getEnv("S3_PREFIX", ""),
		S3PublicURL:        getEnv("S3_PUBLIC_URL", ""),
		SSEKMSKeyID:        getEnv("SSE_KMS_KEY_ID", ""),
	}
}

// IsProduction reports whether the service runs with production guarantees.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// IsDevLike reports whether in-memory fallbacks are acceptable.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "", "dev", "local":
		return true
	default:
		return false
	}
}

// MaxUploadBytes returns the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	mb := c.MaxUploadSizeMB
	if mb <= 0 {
		mb = 5
	}
	return int64(mb) << 20
}

// NormalizeStorageBackend maps user-facing backend names onto "local" or "s3".
// R2 is S3-compatible and shares the s3 backend.
func NormalizeStorageBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3", "r2":
		return "s3"
	default:
		return "local"
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
