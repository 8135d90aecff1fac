package fireauth

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds client configuration. Zero values fall back to the defaults
// set by CreateConfig.
type Config struct {
	// APIKey is the web API key of the project. Required.
	APIKey string

	// RequestTimeout bounds a whole request, DialTimeout the connection
	// establishment.
	RequestTimeout time.Duration
	DialTimeout    time.Duration

	// RateLimit and RateBurst shape the client-side limiter guarding
	// provider quota. Exceeding them fails fast instead of letting the
	// provider answer TOO_MANY_ATTEMPTS_TRY_LATER.
	RateLimit float64
	RateBurst int

	// LogLevel is one of "debug", "info", "error". Anything else keeps the
	// client silent.
	LogLevel string

	// IdentityToolkitURL and SecureTokenURL override the endpoint bases,
	// for tests and the local emulator.
	IdentityToolkitURL string
	SecureTokenURL     string

	// HTTPClient replaces the default tuned transport when set.
	HTTPClient *http.Client

	// Logger replaces the level-derived logger when set.
	Logger *Logger
}

// CreateConfig returns a Config with defaults applied.
func CreateConfig() *Config {
	return &Config{
		RequestTimeout: 60 * time.Second,
		DialTimeout:    10 * time.Second,
		RateLimit:      10,
		RateBurst:      20,
		LogLevel:       "error",
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("apiKey is required")
	}
	if c.RequestTimeout < 0 || c.DialTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rateLimit must be positive")
	}
	if c.RateBurst <= 0 {
		return fmt.Errorf("rateBurst must be positive")
	}
	return nil
}

// fileConfig is the YAML form of Config. Durations are plain seconds so the
// file stays toolable.
type fileConfig struct {
	APIKey                string  `yaml:"apiKey"`
	RequestTimeoutSeconds int     `yaml:"requestTimeoutSeconds"`
	DialTimeoutSeconds    int     `yaml:"dialTimeoutSeconds"`
	RateLimit             float64 `yaml:"rateLimit"`
	RateBurst             int     `yaml:"rateBurst"`
	LogLevel              string  `yaml:"logLevel"`
	IdentityToolkitURL    string  `yaml:"identityToolkitURL"`
	SecureTokenURL        string  `yaml:"secureTokenURL"`
}

// LoadConfig reads a YAML configuration file and overlays it on the
// defaults from CreateConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := CreateConfig()
	config.APIKey = fc.APIKey
	if fc.RequestTimeoutSeconds > 0 {
		config.RequestTimeout = time.Duration(fc.RequestTimeoutSeconds) * time.Second
	}
	if fc.DialTimeoutSeconds > 0 {
		config.DialTimeout = time.Duration(fc.DialTimeoutSeconds) * time.Second
	}
	if fc.RateLimit > 0 {
		config.RateLimit = fc.RateLimit
	}
	if fc.RateBurst > 0 {
		config.RateBurst = fc.RateBurst
	}
	if fc.LogLevel != "" {
		config.LogLevel = fc.LogLevel
	}
	config.IdentityToolkitURL = fc.IdentityToolkitURL
	config.SecureTokenURL = fc.SecureTokenURL
	return config, nil
}
