package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"rapidaid-dashboard-service/internal/domain"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config is the typed view of the environment shared by the binaries.
type Config struct {
	Port         string
	Store        string
	DatabaseURL  string
	RedisURL     string
	LinkCacheTTL time.Duration
	Region       domain.BoundingBox
	MapLinkHosts []string
	// ShortLinkHosts are expanded over HTTP; empty means the service defaults.
	ShortLinkHosts []string
	SeedPath       string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads .env into the process environment if the file exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads and validates the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		Store:       strings.ToLower(Get("STORE", StorePostgres)),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:    strings.TrimSpace(os.Getenv("REDIS_URL")),
		SeedPath:    Get("SEED_PATH", "data/seeds/stations.json"),
		Region:      domain.DefaultBoundingBox,
	}

	ttl, err := time.ParseDuration(Get("LINK_CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: LINK_CACHE_TTL: %w", err)
	}
	if ttl < 0 {
		return Config{}, errors.New("load config: LINK_CACHE_TTL must not be negative")
	}
	cfg.LinkCacheTTL = ttl

	if raw := strings.TrimSpace(os.Getenv("REGION_BBOX")); raw != "" {
		box, err := domain.ParseBoundingBox(raw)
		if err != nil {
			return Config{}, fmt.Errorf("load config: REGION_BBOX: %w", err)
		}
		cfg.Region = box
	}

	cfg.MapLinkHosts = splitList(os.Getenv("MAP_LINK_HOSTS"))
	cfg.ShortLinkHosts = splitList(os.Getenv("SHORT_LINK_HOSTS"))

	switch cfg.Store {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("load config: DATABASE_URL is required when STORE=postgres")
		}
	case StoreMemory:
	default:
		return Config{}, fmt.Errorf("load config: unknown STORE %q", cfg.Store)
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
