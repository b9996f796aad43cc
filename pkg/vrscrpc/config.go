package vrscrpc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"

	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
)

const defaultRPCHost = "127.0.0.1"

// Config contains the settings required to reach a node's RPC endpoint.
type Config struct {
	URL      string
	User     string
	Password string //nolint:gosec // node rpcpassword

	// Timeout bounds a single RPC call. Zero means no per-call timeout.
	Timeout time.Duration
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if c.URL == "" {
		return errors.New("url is required")
	}
	if c.User == "" && c.Password != "" {
		return errors.New("password given without user")
	}
	return nil
}

// DefaultDataDir returns the directory the node keeps its chain data and
// config file in for the given network.
func DefaultDataDir(network vrsc.Network) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Komodo", network.ChainName()), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Komodo", network.ChainName()), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "Komodo", network.ChainName()), nil
	default:
		return filepath.Join(home, ".komodo", network.ChainName()), nil
	}
}

// LoadNodeConfig reads rpcuser, rpcpassword, rpcport and rpcconnect from the
// node's <chain>.conf file. An empty dataDir selects DefaultDataDir.
func LoadNodeConfig(dataDir string, network vrsc.Network) (*Config, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir(network)
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	path := filepath.Join(dataDir, network.ChainName()+".conf")

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("properties")
	v.SetDefault("rpcport", network.DefaultRPCPort())
	v.SetDefault("rpcconnect", defaultRPCHost)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read node config %s: %w", path, err)
	}

	cfg := &Config{
		URL:      fmt.Sprintf("http://%s:%d", v.GetString("rpcconnect"), v.GetInt("rpcport")),
		User:     v.GetString("rpcuser"),
		Password: v.GetString("rpcpassword"),
	}
	if cfg.User == "" || cfg.Password == "" {
		return nil, fmt.Errorf("node config %s: rpcuser and rpcpassword are required", path)
	}
	return cfg, nil
}
