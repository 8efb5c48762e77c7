package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment driven settings. Secrets come from the
// environment or a .env file, never from code.
type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string

	// PageSize is the number of posts per feed page.
	PageSize int
	// IndexCacheTTL bounds how stale the cached index page may get.
	IndexCacheTTL time.Duration
	// CacheSize is the entry capacity of the in-process page cache.
	CacheSize int

	UploadDir    string
	TemplatesDir string
	StaticDir    string

	LogPath  string
	LogLevel string
}

// Load reads the optional .env file and assembles the runtime config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	return Config{
		Port:          envString("PORT", "8080"),
		DatabaseURL:   envString("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=inkwell port=5432 sslmode=disable"),
		SessionSecret: envString("SESSION_SECRET", "secret_key_change_me"),
		PageSize:      envInt("PAGE_SIZE", 10),
		IndexCacheTTL: envDuration("INDEX_CACHE_TTL", 20*time.Second),
		CacheSize:     envInt("CACHE_SIZE", 500),
		UploadDir:     envString("UPLOAD_DIR", "./web/uploads"),
		TemplatesDir:  envString("TEMPLATES_DIR", "./web/templates"),
		StaticDir:     envString("STATIC_DIR", "./web/static"),
		LogPath:       envString("LOG_PATH", ""),
		LogLevel:      envString("LOG_LEVEL", "info"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
