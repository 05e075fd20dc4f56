// Package config loads service settings from an optional YAML file, a .env
// file and SCHEMED_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SCHEMED"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Returns ReturnsConfig `mapstructure:"returns"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	RateLimit       int           `mapstructure:"rate_limit"` // requests per window per client
	RateWindow      time.Duration `mapstructure:"rate_window"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AmountRange struct {
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
	Step float64 `mapstructure:"step"`
}

type ReturnsConfig struct {
	AnnualRate float64     `mapstructure:"annual_rate"` // percent
	SIP        AmountRange `mapstructure:"sip"`
	LumpSum    AmountRange `mapstructure:"lumpsum"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver"` // "memory" or "sqlite"
	Path       string `mapstructure:"path"`
	BundleFile string `mapstructure:"bundle_file"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads ./config/config.yaml or ~/.schemed/config.yaml when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".schemed"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 5)
	v.SetDefault("server.rate_window", time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("returns.annual_rate", 12.0)
	v.SetDefault("returns.sip.min", 500.0)
	v.SetDefault("returns.sip.max", 100000.0)
	v.SetDefault("returns.sip.step", 500.0)
	v.SetDefault("returns.lumpsum.min", 5000.0)
	v.SetDefault("returns.lumpsum.max", 1000000.0)
	v.SetDefault("returns.lumpsum.step", 5000.0)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.path", "./data/schemed.db")
	v.SetDefault("storage.bundle_file", "")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", true)
}

// Validate rejects settings the calculator cannot work with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.RateLimit <= 0 {
		return errors.New("server.rate_limit must be positive")
	}
	if c.Server.RateWindow <= 0 {
		return errors.New("server.rate_window must be positive")
	}
	if c.Returns.AnnualRate < 0 {
		return errors.New("returns.annual_rate must not be negative")
	}
	for name, r := range map[string]AmountRange{"sip": c.Returns.SIP, "lumpsum": c.Returns.LumpSum} {
		if r.Min <= 0 || r.Max < r.Min {
			return fmt.Errorf("returns.%s: invalid range [%v, %v]", name, r.Min, r.Max)
		}
		if r.Step <= 0 {
			return fmt.Errorf("returns.%s.step must be positive", name)
		}
	}
	switch c.Storage.Driver {
	case "memory":
	case "sqlite":
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when redis is enabled")
	}
	return nil
}
