package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mainnet", cfg.Node.Network)
	assert.Equal(t, 3*time.Second, cfg.Registration.PollInterval)
	assert.Equal(t, 100*time.Millisecond, cfg.Registration.VisibilityRetryInterval)
	assert.Equal(t, 20000, cfg.Registration.MaxVisibilityRetries)
	assert.Equal(t, "wallet", cfg.Registration.Lookup)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
node:
  network: testnet
  url: http://127.0.0.1:18843
  user: rpcuser
  password: rpcpass
registration:
  poll_interval: 500ms
  lookup: raw
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "testnet", cfg.Node.Network)
	assert.Equal(t, "http://127.0.0.1:18843", cfg.Node.URL)
	assert.Equal(t, 30*time.Second, cfg.Node.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Registration.PollInterval)
	assert.Equal(t, 100*time.Millisecond, cfg.Registration.VisibilityRetryInterval)
	assert.Equal(t, "raw", cfg.Registration.Lookup)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_SecretFromEnv(t *testing.T) {
	t.Setenv("VRSC_IDENTITY_NODE_PASSWORD", "from-env")
	t.Setenv("VRSC_IDENTITY_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load(writeConfig(t, "node:\n  user: rpcuser\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Node.Password)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.Auth.JWTSecret)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"network":      "node:\n  network: regtest\n",
		"lookup":       "registration:\n  lookup: mempool\n",
		"short secret": "auth:\n  jwt_secret: short\n",
		"port":         "server:\n  port: 70000\n",
		"node url":     "node:\n  url: not a url\n",

		// a zero request timeout would cancel every API request at once
		"request timeout": "server:\n  request_timeout: 0s\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(LoggingConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}
