package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Market   MarketConfig   `mapstructure:"market"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type AuthConfig struct {
	Secret     string        `mapstructure:"secret"`
	Iterations int           `mapstructure:"iterations"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	SweepSpec  string        `mapstructure:"sweep_spec"` // cron spec, e.g. "@every 1m"

	// SSM parameter holding the secret in prod
	SecretParameter string `mapstructure:"secret_parameter"`
}

// MarketConfig describes the exchange the server fronts and the one the
// CLI talks to.
type MarketConfig struct {
	Exchange    string        `mapstructure:"exchange"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	WSURL       string        `mapstructure:"ws_url"`
	Symbols     []string      `mapstructure:"symbols"` // e.g. BTC_ETH
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	DefaultBase string        `mapstructure:"default_base"`
	MaxInFlight int           `mapstructure:"max_in_flight"`
}

type StorageConfig struct {
	Driver   string `mapstructure:"driver"` // "memory" or "postgres"
	CreateDB bool   `mapstructure:"create_db"`
}

// Options defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"

	// rotation of OutputFile
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Load loads application configuration using Viper.
// It reads config.yaml next to the binary and overrides with environment variables.
func Load() *Config {
	v := newViper()

	ex, _ := os.Executable()
	if strings.Contains(ex, "go-build") {
		pwd, _ := os.Getwd()
		v.AddConfigPath(filepath.Join(pwd, "../../config"))
	} else {
		v.AddConfigPath(filepath.Join(filepath.Dir(ex), "../config"))
	}
	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("failed to read config: %v", err)
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}
	return cfg
}

// LoadFrom reads the configuration from an explicit file.
func LoadFrom(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	// Support environment variables with dot notation (e.g., SERVER_ADDR)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Every key has a default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.iterations", 10000)
	v.SetDefault("auth.session_ttl", 24*time.Hour)
	v.SetDefault("auth.sweep_spec", "@every 1m")
	v.SetDefault("auth.secret_parameter", "VCDESK_AUTH_SECRET")

	v.SetDefault("market.exchange", "poloniex")
	v.SetDefault("market.base_url", "http://localhost:8080")
	v.SetDefault("market.timeout", 10*time.Second)
	v.SetDefault("market.ws_url", "")
	v.SetDefault("market.symbols", []string{})
	v.SetDefault("market.username", "")
	v.SetDefault("market.password", "")
	v.SetDefault("market.default_base", "BTC")
	v.SetDefault("market.max_in_flight", 4)

	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.create_db", false)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "vcdesk")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", time.Hour)
	v.SetDefault("postgres.host_parameter", "VCDESK_DB_HOST")
	v.SetDefault("postgres.user_parameter", "VCDESK_DB_USER")
	v.SetDefault("postgres.password_parameter", "VCDESK_DB_PASSWORD")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.compress", true)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
