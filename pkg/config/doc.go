// Package config provides configuration management for the Iron Frontier
// generation service.
//
// This package handles environment variable loading with type-safe parsing,
// applies secure production defaults, and performs extensive validation of
// all configuration values.
//
// # Loading Configuration
//
// Configuration is loaded from environment variables with the
// IRONFRONTIER_ prefix:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
// Server settings:
//   - IRONFRONTIER_PORT: HTTP port (default: 8080)
//   - IRONFRONTIER_LOG_LEVEL: Logging verbosity (default: "info")
//
// World generation:
//   - IRONFRONTIER_WORLD_SEED: Default world seed (default: 1)
//   - IRONFRONTIER_WORLD_NAME: Default world name (default: "Iron Frontier")
//   - IRONFRONTIER_REGION_COUNT: Default region count (default: 3)
//   - IRONFRONTIER_LOCATIONS_PER_REGION_MIN/MAX: Per-region location draw range
//   - IRONFRONTIER_CONTENT_OVERLAY: Path to a YAML content overlay
//
// Security:
//   - IRONFRONTIER_DEV_MODE: Enable development mode (default: true)
//   - IRONFRONTIER_ALLOWED_ORIGINS: CORS allowed origins (comma-separated)
//   - IRONFRONTIER_MAX_REQUEST_SIZE: Maximum request body size (default: 1MB)
//
// Metrics:
//   - IRONFRONTIER_METRICS_ENABLED: Enable the Prometheus endpoint (default: true)
//   - IRONFRONTIER_METRICS_PORT: Metrics port, 0 = same port as main server
//
// Rate limiting:
//   - IRONFRONTIER_RATE_LIMIT_ENABLED: Enable rate limiting (default: false)
//   - IRONFRONTIER_RATE_LIMIT_REQUESTS_PER_SECOND: Requests per second (default: 5)
//   - IRONFRONTIER_RATE_LIMIT_BURST: Burst allowance (default: 10)
//
// Retry policy:
//   - IRONFRONTIER_RETRY_MAX_ATTEMPTS: Maximum attempts, including the first (default: 3)
//   - IRONFRONTIER_RETRY_INITIAL_DELAY: First retry delay (default: 100ms)
//   - IRONFRONTIER_RETRY_MAX_DELAY: Maximum retry delay (default: 30s)
//   - IRONFRONTIER_RETRY_BACKOFF_MULTIPLIER: Backoff factor (default: 2.0)
//
// # Validation
//
// All configuration values are validated on load:
//   - Port must be in valid range (1-65535)
//   - Location draw range must be internally consistent
//   - Rate limit values must be positive when enabled
//   - Retry configuration must be sensible when enabled
//
// # CORS Support
//
// Use OriginAllowed to check WebSocket origins:
//
//	if cfg.OriginAllowed(origin) {
//	    // Allow connection
//	}
//
// In development mode (EnableDevMode=true), all origins are allowed.
package config
