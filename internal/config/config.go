package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"
)

type Config struct {
	Port      string
	DBUrl     string
	DBLogMode string
	JWTSecret string
	GinMode   string

	PostsPerPage  int
	IndexCacheTTL time.Duration
	SessionTTL    time.Duration

	MediaBackend string
	MediaRoot    string
	MediaURL     string

	AWSBucket          string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	CorsAllowedOrigins []string
}

// LoadConfig reads the optional .env file, then the process environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", "8080"),
		DBUrl:     getEnv("DATABASE_URL", ""),
		DBLogMode: getEnv("DB_LOG_LEVEL", "warn"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		GinMode:   getEnv("GIN_MODE", "debug"),

		PostsPerPage:  getEnvInt("POSTS_PER_PAGE", 10),
		IndexCacheTTL: getEnvDuration("INDEX_CACHE_TTL", 20*time.Second),
		SessionTTL:    getEnvDuration("SESSION_TTL", 14*24*time.Hour),

		MediaBackend: strings.ToLower(getEnv("MEDIA_BACKEND", MediaBackendLocal)),
		MediaRoot:    getEnv("MEDIA_ROOT", "media"),
		MediaURL:     getEnv("MEDIA_URL", "/media/"),

		AWSBucket:          getEnv("AWS_BUCKET_NAME", ""),
		AWSRegion:          getEnv("AWS_REGION", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// Validate reports the first missing or inconsistent setting.
func (c *Config) Validate() error {
	if c.DBUrl == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.PostsPerPage <= 0 {
		return errors.New("POSTS_PER_PAGE must be positive")
	}
	switch c.MediaBackend {
	case MediaBackendLocal:
	case MediaBackendS3:
		if c.AWSBucket == "" || c.AWSRegion == "" {
			return errors.New("AWS_BUCKET_NAME and AWS_REGION are required for the s3 media backend")
		}
	default:
		return errors.New("MEDIA_BACKEND must be local or s3")
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	parsed, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return parsed
}

// getEnvDuration accepts Go durations ("20s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
