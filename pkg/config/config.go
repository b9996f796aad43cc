package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. VRSC_IDENTITY_NODE_PASSWORD.
const EnvPrefix = "VRSC_IDENTITY"

// Config is the identity creator configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Node         NodeConfig         `mapstructure:"node"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Auth         AuthConfig         `mapstructure:"auth"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host" default:"0.0.0.0"`
	Port            int           `mapstructure:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" default:"15s"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" default:"60s"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" default:"60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"30s"`
}

// DatabaseConfig contains database connection settings for the registration journal
type DatabaseConfig struct {
	Host     string `mapstructure:"host" default:"localhost"`
	Port     int    `mapstructure:"port" default:"5432" validate:"min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database" default:"vrsc_identity"`
	SSLMode  string `mapstructure:"ssl_mode" default:"disable" validate:"oneof=disable require verify-ca verify-full"`
}

// NodeConfig selects the node and its RPC credentials. When URL is empty the
// endpoint and credentials are read from the node's own config file in DataDir.
type NodeConfig struct {
	Network  string        `mapstructure:"network" default:"mainnet" validate:"oneof=mainnet testnet"`
	URL      string        `mapstructure:"url" validate:"omitempty,url"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	DataDir  string        `mapstructure:"data_dir"`
	Timeout  time.Duration `mapstructure:"timeout" default:"30s"`
}

// RegistrationConfig tunes the confirmation wait
type RegistrationConfig struct {
	PollInterval            time.Duration `mapstructure:"poll_interval" default:"3s"`
	VisibilityRetryInterval time.Duration `mapstructure:"visibility_retry_interval" default:"100ms"`
	MaxVisibilityRetries    int           `mapstructure:"max_visibility_retries" default:"20000" validate:"min=0"`
	Lookup                  string        `mapstructure:"lookup" default:"wallet" validate:"oneof=wallet raw"`
	// Timeout bounds a whole run. Zero waits until the run ends on its own.
	Timeout time.Duration `mapstructure:"timeout"`
}

// AuthConfig holds API authentication settings. An empty secret disables
// authentication.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	Issuer    string `mapstructure:"issuer"`
}

// RateLimitConfig limits API requests per client address
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled" default:"true"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"5" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" default:"10" validate:"min=1"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level" default:"info" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `mapstructure:"output_path" default:"stderr"`
}

var (
	configValidator = validator.New(validator.WithRequiredStructEnabled())

	secretKeys = []string{
		"database.password",
		"node.password",
		"auth.jwt_secret",
	}
)

// Default returns a configuration with every default applied.
func Default() (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}
	return &cfg, nil
}

// Load loads configuration from a YAML file. Keys present in the file, and the
// secrets, can be overridden from the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range secretKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	return configValidator.Struct(c)
}

// GetConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
