package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	DBMaxConns  int
	RedisURL    string
	AutoMigrate bool

	AIAPIKey         string
	AIAPIURL         string
	AIModel          string
	AITimeout        time.Duration
	AIMaxRetries     int
	AIRetryBaseDelay time.Duration
	AIAppTitle       string
	AIReferer        string

	CORSOrigin      string
	LogLevel        string
	LogFormat       string
	RateLimitWindow time.Duration
	RateLimitMax    int
	StaleAfter      time.Duration
	LockTTL         time.Duration
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBMaxConns:  getEnvInt("DB_MAX_CONNS", 10),
		RedisURL:    os.Getenv("REDIS_URL"),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", true),

		AIAPIKey:         os.Getenv("OPENROUTER_API_KEY"),
		AIAPIURL:         getEnv("AI_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		AIModel:          getEnv("AI_MODEL", "deepseek/deepseek-chat-v3-0324:free"),
		AITimeout:        getEnvDuration("AI_TIMEOUT", 30*time.Second),
		AIMaxRetries:     getEnvInt("AI_MAX_RETRIES", 3),
		AIRetryBaseDelay: getEnvDuration("AI_RETRY_BASE_DELAY", time.Second),
		AIAppTitle:       getEnv("OPENROUTER_APP_TITLE", "HR Interview Trainer"),
		AIReferer:        os.Getenv("OPENROUTER_REFERER"),

		CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		StaleAfter:      getEnvDuration("STALE_INTERVIEW_AFTER", 24*time.Hour),
		LockTTL:         getEnvDuration("INTERVIEW_LOCK_TTL", 3*time.Minute),
	}
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.AIAPIKey == "" {
		errs = append(errs, errors.New("OPENROUTER_API_KEY is required"))
	}
	if c.AIMaxRetries < 0 {
		errs = append(errs, errors.New("AI_MAX_RETRIES must not be negative"))
	}
	if c.AITimeout <= 0 {
		errs = append(errs, errors.New("AI_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
