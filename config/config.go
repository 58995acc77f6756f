package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultPollInterval is how often the dashboard silently refreshes its statistics
	DefaultPollInterval = 30 * time.Second
	// MinPollInterval keeps misconfigured intervals from hammering the API
	MinPollInterval = time.Second
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	LogLevel    string
	// Dashboard engine
	PollInterval      time.Duration
	WarningWindowDays int
	GridSlots         int
	SearchLimit       int
	// Dashboard watcher
	APIBaseURL string
	// Jobs
	SweepTimezone string
	// Other
	AllowedOrigins     []string
	RateLimitPerMinute int
}

// Load reads configuration from .env and the environment
func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBPath:             getEnv("DB_PATH", "db/app.db"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		PollInterval:       getEnvDuration("POLL_INTERVAL", DefaultPollInterval, MinPollInterval),
		WarningWindowDays:  getEnvInt("WARNING_WINDOW_DAYS", 30),
		GridSlots:          getEnvInt("GRID_SLOTS", 4),
		SearchLimit:        getEnvInt("SEARCH_LIMIT", 4),
		APIBaseURL:         strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		SweepTimezone:      getEnv("SWEEP_TIMEZONE", "UTC"),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvInt returns a positive integer, falling back to the default on bad input
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		log.Printf("[WARNING] Invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

// getEnvDuration accepts Go durations ("45s") or plain seconds ("45")
func getEnvDuration(key string, defaultValue, minValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		seconds, convErr := strconv.Atoi(value)
		if convErr != nil {
			log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
			return defaultValue
		}
		parsed = time.Duration(seconds) * time.Second
	}

	if parsed < minValue {
		log.Printf("[WARNING] %s=%s is below the minimum, using %s", key, parsed, minValue)
		return minValue
	}
	return parsed
}
