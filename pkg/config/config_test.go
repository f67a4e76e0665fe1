package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		validate    func(t *testing.T, config *Config)
	}{
		{
			name:        "default configuration",
			envVars:     map[string]string{},
			expectError: false,
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, 8080, config.ServerPort)
				assert.Equal(t, "info", config.LogLevel)
				assert.Equal(t, []string{}, config.AllowedOrigins)
				assert.Equal(t, int64(1*1024*1024), config.MaxRequestSize)
				assert.Equal(t, true, config.EnableDevMode)
				assert.Equal(t, 30*time.Second, config.RequestTimeout)
				assert.Equal(t, uint32(1), config.WorldSeed)
				assert.Equal(t, "Iron Frontier", config.WorldName)
				assert.Equal(t, 3, config.RegionCount)
				assert.Equal(t, 3, config.LocationsPerRegionMin)
				assert.Equal(t, 7, config.LocationsPerRegionMax)
				assert.Equal(t, "", config.WorldSnapshotDir)
			},
		},
		{
			name: "custom configuration from environment",
			envVars: map[string]string{
				"IRONFRONTIER_PORT":                    "9090",
				"IRONFRONTIER_LOG_LEVEL":                "debug",
				"IRONFRONTIER_ALLOWED_ORIGINS":          "http://localhost:3000,https://example.com",
				"IRONFRONTIER_MAX_REQUEST_SIZE":         "2097152",
				"IRONFRONTIER_DEV_MODE":                 "true",
				"IRONFRONTIER_REQUEST_TIMEOUT":          "45s",
				"IRONFRONTIER_WORLD_SEED":               "99",
				"IRONFRONTIER_WORLD_NAME":               "Dustbowl",
				"IRONFRONTIER_REGION_COUNT":             "6",
				"IRONFRONTIER_LOCATIONS_PER_REGION_MIN": "2",
				"IRONFRONTIER_LOCATIONS_PER_REGION_MAX": "4",
				"IRONFRONTIER_WORLD_SNAPSHOT_DIR":        "/tmp/ironfrontier-snapshots",
			},
			expectError: false,
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, 9090, config.ServerPort)
				assert.Equal(t, "debug", config.LogLevel)
				assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, config.AllowedOrigins)
				assert.Equal(t, int64(2*1024*1024), config.MaxRequestSize)
				assert.Equal(t, 45*time.Second, config.RequestTimeout)
				assert.Equal(t, uint32(99), config.WorldSeed)
				assert.Equal(t, "Dustbowl", config.WorldName)
				assert.Equal(t, 6, config.RegionCount)
				assert.Equal(t, 2, config.LocationsPerRegionMin)
				assert.Equal(t, 4, config.LocationsPerRegionMax)
				assert.Equal(t, "/tmp/ironfrontier-snapshots", config.WorldSnapshotDir)
			},
		},
		{
			name: "invalid port",
			envVars: map[string]string{
				"IRONFRONTIER_PORT": "99999",
			},
			expectError: true,
		},
		{
			name: "invalid log level",
			envVars: map[string]string{
				"IRONFRONTIER_LOG_LEVEL": "invalid",
			},
			expectError: true,
		},
		{
			name: "request timeout too short",
			envVars: map[string]string{
				"IRONFRONTIER_REQUEST_TIMEOUT": "500ms",
			},
			expectError: true,
		},
		{
			name: "max request size too small",
			envVars: map[string]string{
				"IRONFRONTIER_MAX_REQUEST_SIZE": "512",
			},
			expectError: true,
		},
		{
			name: "production mode without allowed origins",
			envVars: map[string]string{
				"IRONFRONTIER_DEV_MODE": "false",
			},
			expectError: true,
		},
		{
			name: "production mode with allowed origins",
			envVars: map[string]string{
				"IRONFRONTIER_DEV_MODE":        "false",
				"IRONFRONTIER_ALLOWED_ORIGINS": "https://production.example.com",
			},
			expectError: false,
			validate: func(t *testing.T, config *Config) {
				assert.Equal(t, false, config.EnableDevMode)
				assert.Equal(t, []string{"https://production.example.com"}, config.AllowedOrigins)
			},
		},
		{
			name: "locations per region max below min",
			envVars: map[string]string{
				"IRONFRONTIER_LOCATIONS_PER_REGION_MIN": "5",
				"IRONFRONTIER_LOCATIONS_PER_REGION_MAX": "2",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnv()

			for key, value := range tt.envVars {
				os.Setenv(key, value)
				defer os.Unsetenv(key)
			}

			config, err := Load()

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, config)
			} else {
				require.NoError(t, err)
				require.NotNil(t, config)
				if tt.validate != nil {
					tt.validate(t, config)
				}
			}
		})
	}
}

func TestConfig_OriginAllowed(t *testing.T) {
	tests := []struct {
		name           string
		config         *Config
		origin         string
		expectedResult bool
	}{
		{
			name: "dev mode allows all origins",
			config: &Config{
				EnableDevMode:  true,
				AllowedOrigins: []string{"https://example.com"},
			},
			origin:         "https://unknown.com",
			expectedResult: true,
		},
		{
			name: "production mode allows listed origin",
			config: &Config{
				EnableDevMode:  false,
				AllowedOrigins: []string{"https://example.com", "https://app.example.com"},
			},
			origin:         "https://example.com",
			expectedResult: true,
		},
		{
			name: "production mode blocks unlisted origin",
			config: &Config{
				EnableDevMode:  false,
				AllowedOrigins: []string{"https://example.com"},
			},
			origin:         "https://malicious.com",
			expectedResult: false,
		},
		{
			name: "production mode blocks empty origin",
			config: &Config{
				EnableDevMode:  false,
				AllowedOrigins: []string{"https://example.com"},
			},
			origin:         "",
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.OriginAllowed(tt.origin)
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestConfig_GetRetryConfig(t *testing.T) {
	c := &Config{
		RetryMaxAttempts:       5,
		RetryInitialDelay:      50 * time.Millisecond,
		RetryMaxDelay:          2 * time.Second,
		RetryBackoffMultiplier: 1.5,
		RetryJitterPercent:     20,
	}
	rc := c.GetRetryConfig()
	assert.Equal(t, 5, rc.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, rc.InitialDelay)
	assert.Equal(t, 2*time.Second, rc.MaxDelay)
	assert.Equal(t, 1.5, rc.BackoffMultiplier)
	assert.Equal(t, 20, rc.JitterMaxPercent)
}

func TestGetEnvHelpers(t *testing.T) {
	clearTestEnv()

	t.Run("getEnvAsString", func(t *testing.T) {
		assert.Equal(t, "default", getEnvAsString("TEST_STRING", "default"))
		os.Setenv("TEST_STRING", "custom")
		defer os.Unsetenv("TEST_STRING")
		assert.Equal(t, "custom", getEnvAsString("TEST_STRING", "default"))
	})

	t.Run("getEnvAsInt", func(t *testing.T) {
		assert.Equal(t, 42, getEnvAsInt("TEST_INT", 42))
		os.Setenv("TEST_INT", "100")
		defer os.Unsetenv("TEST_INT")
		assert.Equal(t, 100, getEnvAsInt("TEST_INT", 42))

		os.Setenv("TEST_INT_INVALID", "not-a-number")
		defer os.Unsetenv("TEST_INT_INVALID")
		assert.Equal(t, 42, getEnvAsInt("TEST_INT_INVALID", 42))
	})

	t.Run("getEnvAsInt64", func(t *testing.T) {
		assert.Equal(t, int64(42), getEnvAsInt64("TEST_INT64", 42))
		os.Setenv("TEST_INT64", "9223372036854775807")
		defer os.Unsetenv("TEST_INT64")
		assert.Equal(t, int64(9223372036854775807), getEnvAsInt64("TEST_INT64", 42))
	})

	t.Run("getEnvAsBool", func(t *testing.T) {
		assert.Equal(t, true, getEnvAsBool("TEST_BOOL", true))

		testCases := []struct {
			value    string
			expected bool
		}{
			{"true", true},
			{"false", false},
			{"1", true},
			{"0", false},
			{"TRUE", true},
			{"FALSE", false},
		}

		for _, tc := range testCases {
			os.Setenv("TEST_BOOL", tc.value)
			assert.Equal(t, tc.expected, getEnvAsBool("TEST_BOOL", false), "value: %s", tc.value)
		}
		os.Unsetenv("TEST_BOOL")
	})

	t.Run("getEnvAsDuration", func(t *testing.T) {
		assert.Equal(t, 5*time.Minute, getEnvAsDuration("TEST_DURATION", 5*time.Minute))
		os.Setenv("TEST_DURATION", "2h30m")
		defer os.Unsetenv("TEST_DURATION")
		assert.Equal(t, 2*time.Hour+30*time.Minute, getEnvAsDuration("TEST_DURATION", 5*time.Minute))
	})

	t.Run("getEnvAsStringSlice", func(t *testing.T) {
		defaultSlice := []string{"a", "b"}
		assert.Equal(t, defaultSlice, getEnvAsStringSlice("TEST_SLICE", defaultSlice))

		os.Setenv("TEST_SLICE", "one,two,three")
		defer os.Unsetenv("TEST_SLICE")
		assert.Equal(t, []string{"one", "two", "three"}, getEnvAsStringSlice("TEST_SLICE", defaultSlice))

		os.Setenv("TEST_SLICE_WHITESPACE", " one , two , three ")
		defer os.Unsetenv("TEST_SLICE_WHITESPACE")
		assert.Equal(t, []string{"one", "two", "three"}, getEnvAsStringSlice("TEST_SLICE_WHITESPACE", defaultSlice))

		os.Setenv("TEST_SLICE_EMPTY", "one,,three,")
		defer os.Unsetenv("TEST_SLICE_EMPTY")
		assert.Equal(t, []string{"one", "three"}, getEnvAsStringSlice("TEST_SLICE_EMPTY", defaultSlice))
	})

	t.Run("getEnvAsFloat64", func(t *testing.T) {
		assert.Equal(t, 1.5, getEnvAsFloat64("TEST_FLOAT", 1.5))
		os.Setenv("TEST_FLOAT", "2.75")
		defer os.Unsetenv("TEST_FLOAT")
		assert.Equal(t, 2.75, getEnvAsFloat64("TEST_FLOAT", 1.5))
	})
}

// clearTestEnv removes all environment variables that might affect tests.
func clearTestEnv() {
	testVars := []string{
		"IRONFRONTIER_PORT", "IRONFRONTIER_LOG_LEVEL",
		"IRONFRONTIER_ALLOWED_ORIGINS", "IRONFRONTIER_MAX_REQUEST_SIZE",
		"IRONFRONTIER_DEV_MODE", "IRONFRONTIER_REQUEST_TIMEOUT",
		"IRONFRONTIER_WORLD_SEED", "IRONFRONTIER_WORLD_NAME", "IRONFRONTIER_REGION_COUNT",
		"IRONFRONTIER_LOCATIONS_PER_REGION_MIN", "IRONFRONTIER_LOCATIONS_PER_REGION_MAX",
		"IRONFRONTIER_CONTENT_OVERLAY", "IRONFRONTIER_METRICS_ENABLED", "IRONFRONTIER_METRICS_PORT",
		"IRONFRONTIER_RATE_LIMIT_ENABLED", "IRONFRONTIER_RATE_LIMIT_REQUESTS_PER_SECOND",
		"IRONFRONTIER_RATE_LIMIT_BURST", "IRONFRONTIER_RETRY_ENABLED",
		"IRONFRONTIER_RETRY_MAX_ATTEMPTS", "IRONFRONTIER_RETRY_INITIAL_DELAY",
		"IRONFRONTIER_RETRY_MAX_DELAY", "IRONFRONTIER_RETRY_BACKOFF_MULTIPLIER",
		"IRONFRONTIER_RETRY_JITTER_PERCENT", "IRONFRONTIER_SHUTDOWN_TIMEOUT",
		"IRONFRONTIER_SHUTDOWN_GRACE_PERIOD",
		"TEST_STRING", "TEST_INT", "TEST_INT_INVALID", "TEST_INT64", "TEST_BOOL",
		"TEST_DURATION", "TEST_SLICE", "TEST_SLICE_WHITESPACE", "TEST_SLICE_EMPTY", "TEST_FLOAT",
	}

	for _, v := range testVars {
		os.Unsetenv(v)
	}
}
