package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"stellar-experiment/admiralty/internal/logging"
)

type Config struct {
	AppEnv      string
	ServiceHost string
	ServicePort int

	Postgres  PostgresConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the connection string shared by the sqlx pool and GORM.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig selects the cache backend: "memory" (default) or "redis".
type CacheConfig struct {
	Backend string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// NewConfig loads configuration from an optional config.toml, a local
// .env file and the process environment, in increasing priority.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Warn("No .env file found, relying on environment")
	}

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	setDefaults()
	bindEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		logging.Info("No config file found, using defaults")
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	logging.Info("Config parsed", "env", cfg.AppEnv, "cache_backend", cfg.Cache.Backend)
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("AppEnv", "development")
	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)

	viper.SetDefault("Postgres.Host", "localhost")
	viper.SetDefault("Postgres.Port", "5432")
	viper.SetDefault("Postgres.User", "postgres")
	viper.SetDefault("Postgres.Password", "")
	viper.SetDefault("Postgres.Name", "admiralty")
	viper.SetDefault("Postgres.SSLMode", "disable")

	viper.SetDefault("Redis.Host", "localhost")
	viper.SetDefault("Redis.Port", 6379)
	viper.SetDefault("Redis.Password", "")
	viper.SetDefault("Redis.DB", 0)

	viper.SetDefault("Cache.Backend", "memory")

	viper.SetDefault("RateLimit.RPS", 5)
	viper.SetDefault("RateLimit.Burst", 10)
}

func bindEnv() {
	viper.BindEnv("AppEnv", "APP_ENV")
	viper.BindEnv("ServiceHost", "SERVICE_HOST")
	viper.BindEnv("ServicePort", "SERVICE_PORT")

	viper.BindEnv("Postgres.Host", "PG_HOST")
	viper.BindEnv("Postgres.Port", "PG_PORT")
	viper.BindEnv("Postgres.User", "PG_USER")
	viper.BindEnv("Postgres.Password", "PG_PASSWORD")
	viper.BindEnv("Postgres.Name", "PG_DB")
	viper.BindEnv("Postgres.SSLMode", "PG_SSLMODE")

	viper.BindEnv("Redis.Host", "REDIS_HOST")
	viper.BindEnv("Redis.Port", "REDIS_PORT")
	viper.BindEnv("Redis.Password", "REDIS_PASSWORD")
	viper.BindEnv("Redis.DB", "REDIS_DB")

	viper.BindEnv("Cache.Backend", "CACHE_BACKEND")

	viper.BindEnv("RateLimit.RPS", "RATE_LIMIT_RPS")
	viper.BindEnv("RateLimit.Burst", "RATE_LIMIT_BURST")
}
