package fireauth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConfigDefaults(t *testing.T) {
	config := CreateConfig()

	assert.Equal(t, 60*time.Second, config.RequestTimeout)
	assert.Equal(t, 10*time.Second, config.DialTimeout)
	assert.Equal(t, float64(10), config.RateLimit)
	assert.Equal(t, 20, config.RateBurst)
	assert.Equal(t, "error", config.LogLevel)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) { c.APIKey = "k" }, false},
		{"missing api key", func(c *Config) {}, true},
		{"negative timeout", func(c *Config) { c.APIKey = "k"; c.RequestTimeout = -time.Second }, true},
		{"zero rate limit", func(c *Config) { c.APIKey = "k"; c.RateLimit = 0 }, true},
		{"zero burst", func(c *Config) { c.APIKey = "k"; c.RateBurst = 0 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := CreateConfig()
			tc.mutate(config)
			err := config.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{})
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fireauth.yaml")
	content := `
apiKey: file-api-key
requestTimeoutSeconds: 30
rateLimit: 5
logLevel: debug
secureTokenURL: http://localhost:9099/securetoken.googleapis.com/v1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "file-api-key", config.APIKey)
	assert.Equal(t, 30*time.Second, config.RequestTimeout)
	assert.Equal(t, float64(5), config.RateLimit)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "http://localhost:9099/securetoken.googleapis.com/v1", config.SecureTokenURL)
	// Unset fields keep their defaults.
	assert.Equal(t, 10*time.Second, config.DialTimeout)
	assert.Equal(t, 20, config.RateBurst)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apiKey: [unterminated"), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestEndpointURLs(t *testing.T) {
	config := CreateConfig()
	config.APIKey = "k123"
	client, err := New(config)
	require.NoError(t, err)

	assert.Equal(t,
		"https://identitytoolkit.googleapis.com/v1/accounts:lookup?key=k123",
		client.accountsURL("lookup"))
	assert.Equal(t,
		"https://securetoken.googleapis.com/v1/token?key=k123",
		client.tokenURL())
}
