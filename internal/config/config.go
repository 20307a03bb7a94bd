package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. APP_DATABASE_HOST.
const EnvPrefix = "APP"

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	GRPCPort       int           `mapstructure:"grpc_port"`
	HTTPPort       int           `mapstructure:"http_port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type DatabaseConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Name              string `mapstructure:"name"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	SSLMode           string `mapstructure:"ssl_mode"`
	MaxConnections    int    `mapstructure:"max_connections"`
	ConnectionTimeout int    `mapstructure:"connection_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type SchedulerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"`
}

// Load reads configuration from file and environment variables.
// ${VAR} references inside the file are expanded first; APP_* variables
// then override individual keys.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal([]byte(expanded), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw config: %w", err)
	}

	v := newViper()
	if err := v.MergeConfigMap(rawConfig); err != nil {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}

	return decode(v)
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate reports the first setting the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.GRPCPort <= 0 || c.Server.HTTPPort <= 0 {
		return errors.New("server ports must be positive")
	}
	if c.Server.GRPCPort == c.Server.HTTPPort {
		return fmt.Errorf("grpc_port and http_port must differ, both are %d", c.Server.GRPCPort)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate limit rps and burst must be positive")
	}
	if c.Scheduler.Enabled && c.Scheduler.Spec == "" {
		return errors.New("scheduler spec is required when the scheduler is enabled")
	}
	return nil
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.SSLMode)
	if d.Password != "" {
		dsn += fmt.Sprintf(" password=%s", d.Password)
	}
	if d.ConnectionTimeout > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", d.ConnectionTimeout)
	}
	return dsn
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.request_timeout", 10*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "feedstats")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.connection_timeout", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("cache.size", 128)
	v.SetDefault("cache.ttl", 5*time.Minute)

	v.SetDefault("rate_limit.rps", 5.0)
	v.SetDefault("rate_limit.burst", 10)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.spec", "*/5 * * * *")
}
