// Package config provides configuration management for the Iron Frontier
// generation service. It handles environment variable loading, validation,
// and provides secure defaults for production deployment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"ironfrontier/pkg/retry"

	"github.com/sirupsen/logrus"
)

// Config represents the generation server configuration with environment
// variable support. Config is thread-safe; all field access should be done
// through getter methods when used concurrently, or by holding the mutex
// directly.
type Config struct {
	mu sync.RWMutex `json:"-"`

	// ServerPort is the port the HTTP/WebSocket server will listen on.
	ServerPort int `json:"server_port"`

	// LogLevel controls the logging verbosity (debug, info, warn, error).
	LogLevel string `json:"log_level"`

	// AllowedOrigins is a list of allowed WebSocket origins for CORS.
	AllowedOrigins []string `json:"allowed_origins"`

	// MaxRequestSize is the maximum size of incoming requests in bytes.
	MaxRequestSize int64 `json:"max_request_size"`

	// EnableDevMode enables development-friendly settings (broader CORS,
	// verbose logging).
	EnableDevMode bool `json:"enable_dev_mode"`

	// RequestTimeout is the maximum duration for processing requests.
	RequestTimeout time.Duration `json:"request_timeout"`

	// World generation defaults

	// WorldSeed seeds the deterministic generator at startup.
	WorldSeed uint32 `json:"world_seed"`

	// WorldName is the default world name used to derive the master RNG.
	WorldName string `json:"world_name"`

	// RegionCount is the default number of regions generateWorld produces.
	RegionCount int `json:"region_count"`

	// LocationsPerRegionMin/Max bound the per-region location count draw.
	LocationsPerRegionMin int `json:"locations_per_region_min"`
	LocationsPerRegionMax int `json:"locations_per_region_max"`

	// ContentOverlayPath optionally points at a YAML overlay merged onto the
	// built-in content registry defaults.
	ContentOverlayPath string `json:"content_overlay_path"`

	// WorldSnapshotDir, when non-empty, enables persisting the most recently
	// generated world to disk so the server can reload it across restarts
	// instead of regenerating from the configured seed.
	WorldSnapshotDir string `json:"world_snapshot_dir"`

	// Metrics configuration

	// MetricsEnabled enables the Prometheus metrics endpoint.
	MetricsEnabled bool `json:"metrics_enabled"`

	// MetricsPort is the port for the metrics server (0 = same port as main server).
	MetricsPort int `json:"metrics_port"`

	// Rate limiting configuration

	// RateLimitEnabled enables rate limiting middleware.
	RateLimitEnabled bool `json:"rate_limit_enabled"`

	// RateLimitRequestsPerSecond is the number of requests allowed per
	// second per IP.
	RateLimitRequestsPerSecond float64 `json:"rate_limit_requests_per_second"`

	// RateLimitBurst is the maximum number of requests allowed in a burst
	// per IP.
	RateLimitBurst int `json:"rate_limit_burst"`

	// RateLimitCleanupInterval is how often to clean up expired rate
	// limiters.
	RateLimitCleanupInterval time.Duration `json:"rate_limit_cleanup_interval"`

	// Retry configuration

	// RetryEnabled enables retry logic around overlay loading and other
	// transient failures.
	RetryEnabled bool `json:"retry_enabled"`

	// RetryMaxAttempts is the maximum number of retry attempts (including
	// initial attempt).
	RetryMaxAttempts int `json:"retry_max_attempts"`

	// RetryInitialDelay is the initial delay before the first retry.
	RetryInitialDelay time.Duration `json:"retry_initial_delay"`

	// RetryMaxDelay is the maximum delay between retries.
	RetryMaxDelay time.Duration `json:"retry_max_delay"`

	// RetryBackoffMultiplier is the multiplier for exponential backoff
	// (typically 2.0).
	RetryBackoffMultiplier float64 `json:"retry_backoff_multiplier"`

	// RetryJitterPercent is the maximum percentage of jitter to add (0-100).
	RetryJitterPercent int `json:"retry_jitter_percent"`

	// Server lifecycle timeouts

	// ShutdownTimeout is the maximum duration for graceful server shutdown.
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// ShutdownGracePeriod is the grace period after shutdown before forcing
	// exit.
	ShutdownGracePeriod time.Duration `json:"shutdown_grace_period"`
}

// Load creates a new Config instance by reading from environment variables
// and applying secure defaults. It validates all configuration values and
// returns an error if any required values are missing or invalid.
func Load() (*Config, error) {
	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"package":  "config",
	}).Debug("entering Load")

	cfg := &Config{
		ServerPort:     getEnvAsInt("IRONFRONTIER_PORT", 8080),
		LogLevel:       getEnvAsString("IRONFRONTIER_LOG_LEVEL", "info"),
		AllowedOrigins: getEnvAsStringSlice("IRONFRONTIER_ALLOWED_ORIGINS", []string{}),
		MaxRequestSize: getEnvAsInt64("IRONFRONTIER_MAX_REQUEST_SIZE", 1*1024*1024),
		EnableDevMode:  getEnvAsBool("IRONFRONTIER_DEV_MODE", true),
		RequestTimeout: getEnvAsDuration("IRONFRONTIER_REQUEST_TIMEOUT", 30*time.Second),

		WorldSeed:             uint32(getEnvAsInt64("IRONFRONTIER_WORLD_SEED", 1)),
		WorldName:             getEnvAsString("IRONFRONTIER_WORLD_NAME", "Iron Frontier"),
		RegionCount:           getEnvAsInt("IRONFRONTIER_REGION_COUNT", 3),
		LocationsPerRegionMin: getEnvAsInt("IRONFRONTIER_LOCATIONS_PER_REGION_MIN", 3),
		LocationsPerRegionMax: getEnvAsInt("IRONFRONTIER_LOCATIONS_PER_REGION_MAX", 7),
		ContentOverlayPath:    getEnvAsString("IRONFRONTIER_CONTENT_OVERLAY", ""),
		WorldSnapshotDir:      getEnvAsString("IRONFRONTIER_WORLD_SNAPSHOT_DIR", ""),

		MetricsEnabled: getEnvAsBool("IRONFRONTIER_METRICS_ENABLED", true),
		MetricsPort:    getEnvAsInt("IRONFRONTIER_METRICS_PORT", 0),

		RateLimitEnabled:           getEnvAsBool("IRONFRONTIER_RATE_LIMIT_ENABLED", false),
		RateLimitRequestsPerSecond: getEnvAsFloat64("IRONFRONTIER_RATE_LIMIT_REQUESTS_PER_SECOND", 5),
		RateLimitBurst:             getEnvAsInt("IRONFRONTIER_RATE_LIMIT_BURST", 10),
		RateLimitCleanupInterval:   getEnvAsDuration("IRONFRONTIER_RATE_LIMIT_CLEANUP_INTERVAL", 1*time.Minute),

		RetryEnabled:           getEnvAsBool("IRONFRONTIER_RETRY_ENABLED", true),
		RetryMaxAttempts:       getEnvAsInt("IRONFRONTIER_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay:      getEnvAsDuration("IRONFRONTIER_RETRY_INITIAL_DELAY", 100*time.Millisecond),
		RetryMaxDelay:          getEnvAsDuration("IRONFRONTIER_RETRY_MAX_DELAY", 30*time.Second),
		RetryBackoffMultiplier: getEnvAsFloat64("IRONFRONTIER_RETRY_BACKOFF_MULTIPLIER", 2.0),
		RetryJitterPercent:     getEnvAsInt("IRONFRONTIER_RETRY_JITTER_PERCENT", 10),

		ShutdownTimeout:     getEnvAsDuration("IRONFRONTIER_SHUTDOWN_TIMEOUT", 30*time.Second),
		ShutdownGracePeriod: getEnvAsDuration("IRONFRONTIER_SHUTDOWN_GRACE_PERIOD", 1*time.Second),
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Load",
		"package":     "config",
		"server_port": cfg.ServerPort,
		"world_seed":  cfg.WorldSeed,
		"dev_mode":    cfg.EnableDevMode,
	}).Debug("configuration loaded, starting validation")

	if err := cfg.validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Load",
			"package":  "config",
			"error":    err,
		}).Error("configuration validation failed")
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if err := c.validateServerSettings(); err != nil {
		return err
	}
	if err := c.validateWorldSettings(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateSecuritySettings(); err != nil {
		return err
	}
	if err := c.validateRateLimitConfig(); err != nil {
		return err
	}
	if err := c.validateRetryConfig(); err != nil {
		return err
	}
	return nil
}

// validateServerSettings checks server port and log level configuration.
func (c *Config) validateServerSettings() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.ServerPort)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	found := false
	for _, level := range validLogLevels {
		if strings.ToLower(c.LogLevel) == level {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("log level must be one of %v, got %s", validLogLevels, c.LogLevel)
	}

	return nil
}

// validateWorldSettings ensures the region/location draw ranges are sane.
func (c *Config) validateWorldSettings() error {
	if c.RegionCount < 0 {
		return fmt.Errorf("region count must be non-negative, got %d", c.RegionCount)
	}
	if c.LocationsPerRegionMin < 1 {
		return fmt.Errorf("locations per region minimum must be at least 1, got %d", c.LocationsPerRegionMin)
	}
	if c.LocationsPerRegionMax < c.LocationsPerRegionMin {
		return fmt.Errorf("locations per region maximum (%d) must be >= minimum (%d)", c.LocationsPerRegionMax, c.LocationsPerRegionMin)
	}
	return nil
}

// validateTimeouts ensures timeout values meet minimum requirements.
func (c *Config) validateTimeouts() error {
	if c.RequestTimeout < time.Second {
		return fmt.Errorf("request timeout must be at least 1 second, got %v", c.RequestTimeout)
	}
	return nil
}

// validateSecuritySettings checks security-related configuration.
func (c *Config) validateSecuritySettings() error {
	if c.MaxRequestSize < 1024 {
		return fmt.Errorf("max request size must be at least 1024 bytes, got %d", c.MaxRequestSize)
	}

	if !c.EnableDevMode && len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("allowed origins must be specified when dev mode is disabled")
	}

	return nil
}

// validateRateLimitConfig ensures rate limiting parameters are valid when enabled.
func (c *Config) validateRateLimitConfig() error {
	if c.RateLimitEnabled {
		if c.RateLimitRequestsPerSecond <= 0 {
			return fmt.Errorf("rate limit requests per second must be greater than 0 when rate limiting is enabled")
		}
		if c.RateLimitBurst <= 0 {
			return fmt.Errorf("rate limit burst must be greater than 0 when rate limiting is enabled")
		}
	}
	return nil
}

// validateRetryConfig ensures retry policy parameters are valid when enabled.
func (c *Config) validateRetryConfig() error {
	if c.RetryEnabled {
		if c.RetryMaxAttempts < 1 {
			return fmt.Errorf("retry max attempts must be at least 1 when retry is enabled")
		}
		if c.RetryInitialDelay < 0 {
			return fmt.Errorf("retry initial delay must be non-negative when retry is enabled")
		}
		if c.RetryMaxDelay < c.RetryInitialDelay {
			return fmt.Errorf("retry max delay must be greater than or equal to initial delay when retry is enabled")
		}
		if c.RetryBackoffMultiplier <= 1.0 {
			return fmt.Errorf("retry backoff multiplier must be greater than 1.0 when retry is enabled")
		}
		if c.RetryJitterPercent < 0 || c.RetryJitterPercent > 100 {
			return fmt.Errorf("retry jitter percent must be between 0 and 100 when retry is enabled")
		}
	}
	return nil
}

// OriginAllowed checks if the given origin is allowed for WebSocket
// connections. In development mode, all origins are allowed. This method is
// thread-safe.
func (c *Config) OriginAllowed(origin string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.EnableDevMode {
		return true
	}

	for _, allowed := range c.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}

// GetRetryConfig creates a retry.RetryConfig from the current configuration,
// usable directly with retry.NewRetrier().
func (c *Config) GetRetryConfig() retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts:       c.RetryMaxAttempts,
		InitialDelay:      c.RetryInitialDelay,
		MaxDelay:          c.RetryMaxDelay,
		BackoffMultiplier: c.RetryBackoffMultiplier,
		JitterMaxPercent:  c.RetryJitterPercent,
		RetryableErrors:   []error{},
	}
}

// Helper functions for environment variable parsing with type safety and defaults

func getEnvAsString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
