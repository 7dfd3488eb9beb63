// Package config loads service settings from defaults, an optional config
// file and STOREFRONT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP      HTTPConfig
	Log       LogConfig
	Storage   StorageConfig
	Postgres  PostgresConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Catalog   CatalogConfig
	RateLimit RateLimitConfig
	Kafka     KafkaConfig
}

type HTTPConfig struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type StorageConfig struct {
	// Driver is one of memory, file, postgres or mongo.
	Driver string
	Dir    string
}

type PostgresConfig struct {
	URL string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type AuthConfig struct {
	Enabled    bool
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// AdminUsername and AdminPassword seed an admin account at startup when
	// both are set.
	AdminUsername string
	AdminPassword string
}

type CatalogConfig struct {
	BaseURL string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

const envPrefix = "STOREFRONT"

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.request_timeout", 15*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.dir", "data")

	v.SetDefault("postgres.url", "")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "storefront")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", 5*time.Minute)

	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.jwt_secret", "super-secret-key")
	v.SetDefault("auth.access_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_ttl", 7*24*time.Hour)
	v.SetDefault("auth.admin_username", "")
	v.SetDefault("auth.admin_password", "")

	v.SetDefault("catalog.base_url", "http://localhost:8080/api/products")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "storefront.products")
}

// Load reads configuration. path may be empty, in which case only defaults
// and the environment are used.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			RequestTimeout:  v.GetDuration("http.request_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
			Dir:    v.GetString("storage.dir"),
		},
		Postgres: PostgresConfig{URL: v.GetString("postgres.url")},
		Mongo: MongoConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			CacheTTL: v.GetDuration("redis.cache_ttl"),
		},
		Auth: AuthConfig{
			Enabled:    v.GetBool("auth.enabled"),
			JWTSecret:  v.GetString("auth.jwt_secret"),
			AccessTTL:  v.GetDuration("auth.access_ttl"),
			RefreshTTL: v.GetDuration("auth.refresh_ttl"),

			AdminUsername: v.GetString("auth.admin_username"),
			AdminPassword: v.GetString("auth.admin_password"),
		},
		Catalog: CatalogConfig{BaseURL: v.GetString("catalog.base_url")},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("ratelimit.enabled"),
			RPS:     v.GetFloat64("ratelimit.rps"),
			Burst:   v.GetInt("ratelimit.burst"),
		},
		Kafka: KafkaConfig{
			Brokers: v.GetStringSlice("kafka.brokers"),
			Topic:   v.GetString("kafka.topic"),
		},
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case "memory", "file":
	case "postgres":
		if c.Postgres.URL == "" {
			return errors.New("postgres.url is required for the postgres storage driver")
		}
	case "mongo":
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("mongo.uri and mongo.database are required for the mongo storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret must be set when auth is enabled")
	}
	return nil
}
