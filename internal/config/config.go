// ABOUTME: Configuration loader for the eamctl console
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is used when no base URL is configured anywhere.
const DefaultBaseURL = "http://localhost:8080"

// DefaultTimeout is the per-request timeout when EAM_TIMEOUT_MS is unset.
const DefaultTimeout = 10 * time.Second

type Config struct {
	// Gateway
	BaseURL string        // EAM_API_URL
	Timeout time.Duration // EAM_TIMEOUT_MS

	// Retry budget for transient failures
	Retries   int           // EAM_RETRIES (default 3)
	BaseDelay time.Duration // EAM_RETRY_BASE_DELAY_MS (default 400ms)

	// Optional SSH+SOCKS5 jumpbox proxy for reaching the gateway
	// Format: ssh+socks5://user@host:port?private-key=/path/to/key
	AllProxy string // EAM_ALL_PROXY

	SkipSSLValidation bool // EAM_SKIP_SSL_VALIDATION, explicit opt-in
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:           ensureScheme(getEnv("EAM_API_URL", DefaultBaseURL)),
		Timeout:           time.Duration(getEnvInt("EAM_TIMEOUT_MS", int(DefaultTimeout/time.Millisecond))) * time.Millisecond,
		Retries:           getEnvInt("EAM_RETRIES", 3),
		BaseDelay:         time.Duration(getEnvInt("EAM_RETRY_BASE_DELAY_MS", 400)) * time.Millisecond,
		AllProxy:          os.Getenv("EAM_ALL_PROXY"),
		SkipSSLValidation: getEnvBool("EAM_SKIP_SSL_VALIDATION", false),
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("EAM_TIMEOUT_MS must be positive")
	}
	if cfg.Retries < 0 || cfg.Retries > 10 {
		return nil, fmt.Errorf("EAM_RETRIES must be between 0 and 10, got %d", cfg.Retries)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme. The default
// deployment serves the gateway over plain HTTP on localhost.
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
