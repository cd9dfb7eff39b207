package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Dataset sources.
const (
	SourceFile  = "file"
	SourceStore = "store"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetPath   string
	DatasetSource string

	HTTPAddr   string
	LogLevel   string
	SessionTTL time.Duration

	StoreDriver string
	StoreDSN    string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxRetries int

	DashboardURL        string
	SnapshotDir         string
	SnapshotConcurrency int
	RateLimitMs         int
	ChromeBin           string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DatasetPath:   getEnv("DATASET_PATH", "./data/spacex_launch_dash.csv"),
		DatasetSource: getEnv("DATASET_SOURCE", SourceFile),

		HTTPAddr:   getEnv("HTTP_ADDR", ":8050"),
		LogLevel:   getEnv("LOG_LEVEL", "INFO"),
		SessionTTL: time.Duration(getEnvInt("SESSION_TTL_MINUTES", 30)) * time.Minute,

		StoreDriver: getEnv("STORE_DRIVER", ""),
		StoreDSN:    getEnv("STORE_DSN", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "dashboard"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "dashboard"),
		PostgresDB:       getEnv("POSTGRES_DB", "launches"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxRetries: getEnvInt("MAX_RETRIES", 3),

		DashboardURL:        getEnv("DASHBOARD_URL", "http://localhost:8050/"),
		SnapshotDir:         getEnv("SNAPSHOT_DIR", "./output/snapshots"),
		SnapshotConcurrency: getEnvInt("SNAPSHOT_CONCURRENCY", 2),
		RateLimitMs:         getEnvInt("RATE_LIMIT_MS", 500),
		ChromeBin:           getEnv("CHROME_BIN", ""),
	}
}

// StoreEnabled reports whether the dataset mirror store is configured.
func (c *Config) StoreEnabled() bool {
	return c.StoreDriver != ""
}

// DSN returns the store connection string. An explicit STORE_DSN wins;
// for postgres one is assembled from the POSTGRES_* settings.
func (c *Config) DSN() string {
	if c.StoreDSN != "" || c.StoreDriver != "postgres" {
		return c.StoreDSN
	}
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
