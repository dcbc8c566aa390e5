// Package config reads the BFF settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const envFile = ".env"

// Storage backends of the per-browser local storage.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

var defaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

type Config struct {
	Port           string
	APIBaseURL     string
	APITimeout     time.Duration
	AdminCacheTTL  time.Duration
	SessionIdleTTL time.Duration
	MaxSessions    int
	StorageBackend string
	RedisAddr      string
	RedisPassword  string
	CORSOrigins    []string
	LogLevel       string
	PRNumber       string
}

// Load reads an optional .env file into the process environment and then the
// settings from the environment. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		log.Info("No .env file found, using environment variables from system")
	} else {
		log.Info("Loaded environment variables from .env file")
	}
	return LoadFromEnv(os.Getenv)
}

func LoadFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		APIBaseURL:     strings.TrimSpace(getenv("API_BASE_URL")),
		StorageBackend: strings.ToLower(strings.TrimSpace(getenv("STORAGE_BACKEND"))),
		RedisAddr:      strings.TrimSpace(getenv("REDIS_ADDR")),
		RedisPassword:  getenv("REDIS_PASSWORD"),
		LogLevel:       strings.ToUpper(strings.TrimSpace(getenv("LOG_LEVEL"))),
		PRNumber:       strings.TrimSpace(getenv("PR_NUMBER")),
	}

	port := strings.TrimSpace(getenv("PORT"))
	if port == "" {
		port = "8080"
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return Config{}, fmt.Errorf("PORT: invalid port %q", port)
	}
	cfg.Port = port

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8000/api"
	}
	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return Config{}, fmt.Errorf("API_BASE_URL: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return Config{}, errors.New("API_BASE_URL: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "http", "https":
	default:
		return Config{}, errors.New("API_BASE_URL: scheme must be http or https")
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if cfg.APITimeout, err = parseDuration(getenv, "API_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AdminCacheTTL, err = parseDuration(getenv, "ADMIN_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}

	if cfg.SessionIdleTTL, err = parseDuration(getenv, "SESSION_IDLE_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	cfg.MaxSessions = 10000
	if raw := strings.TrimSpace(getenv("MAX_SESSIONS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("MAX_SESSIONS: invalid count %q", raw)
		}
		cfg.MaxSessions = n
	}

	switch cfg.StorageBackend {
	case "":
		cfg.StorageBackend = StorageMemory
	case StorageMemory:
	case StorageRedis:
		if cfg.RedisAddr == "" {
			return Config{}, errors.New("REDIS_ADDR: required when STORAGE_BACKEND is redis")
		}
	default:
		return Config{}, errors.New("STORAGE_BACKEND: must be one of memory, redis")
	}

	cfg.CORSOrigins = parseCSV(getenv("CORS_ORIGINS"))
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = append([]string{}, defaultCORSOrigins...)
	}

	return cfg, nil
}

// Addr is the listen address of the BFF.
func (c Config) Addr() string {
	return ":" + c.Port
}

func parseDuration(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be > 0", key)
	}
	return d, nil
}

func parseCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimRight(strings.TrimSpace(p), "/")
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
