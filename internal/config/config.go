package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string         `mapstructure:"port"`
	BodyLimit int            `mapstructure:"body_limit"`
	DB        DatabaseConfig `mapstructure:",squash"`
	JWT       JWTConfig      `mapstructure:",squash"`
	Log       LogConfig      `mapstructure:",squash"`
	Seed      SeedConfig     `mapstructure:",squash"`

	LoginRateMax int `mapstructure:"login_rate_max"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"db_driver"` // sqlite | postgres | mysql
	DSN             string        `mapstructure:"db_dsn"`
	MaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"jwt_secret"`
	TTL    time.Duration `mapstructure:"jwt_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"log_level"`
	Format string `mapstructure:"log_format"` // json | text
	File   string `mapstructure:"log_file"`
}

type SeedConfig struct {
	Demo          bool   `mapstructure:"seed_demo"`
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
}

const (
	devSecret        = "easyshop-dev-secret-change-me-please"
	devAdminPassword = "Passw0rd!"
)

var drivers = map[string]struct{}{"sqlite": {}, "postgres": {}, "mysql": {}}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("body_limit", 1<<20)
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "easyshop.db")
	v.SetDefault("db_max_open_conns", 10)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_conn_max_lifetime", 30*time.Minute)
	v.SetDefault("jwt_secret", devSecret)
	v.SetDefault("jwt_ttl", 24*time.Hour)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("log_file", "")
	v.SetDefault("seed_demo", true)
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", devAdminPassword)
	v.SetDefault("login_rate_max", 5)
}

// Load reads defaults, then an optional config.yaml, then the environment
// (PORT, DB_DSN, JWT_SECRET, ...).
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	logrus.WithFields(logrus.Fields{
		"port":      cfg.Port,
		"db_driver": cfg.DB.Driver,
		"db_dsn":    cfg.DB.DSN,
		"log_file":  cfg.Log.File,
		"seed_demo": cfg.Seed.Demo,
	}).Info("config loaded")
	if cfg.JWT.Secret == devSecret {
		logrus.Warn("JWT_SECRET not set; using the development secret")
	}
	if cfg.Seed.AdminUsername != "" && cfg.Seed.AdminPassword == devAdminPassword {
		logrus.WithField("admin_username", cfg.Seed.AdminUsername).
			Warn("ADMIN_PASSWORD not set; the seeded admin uses the default password")
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, ok := drivers[c.DB.Driver]; !ok {
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite, postgres or mysql)", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("DB_DSN must not be empty")
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if len(c.JWT.Secret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }
