package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment overrides, e.g.
// MEDCLINIC_STORAGE_DRIVER=redis.
const EnvPrefix = "MEDCLINIC"

type Config struct {
	Server       ServerConfig       `mapstructure:"server" split_words:"true"`
	Log          LogConfig          `mapstructure:"log" split_words:"true"`
	Storage      StorageConfig      `mapstructure:"storage" split_words:"true"`
	Auth         AuthConfig         `mapstructure:"auth" split_words:"true"`
	Drafts       DraftsConfig       `mapstructure:"drafts" split_words:"true"`
	Scheduling   SchedulingConfig   `mapstructure:"scheduling" split_words:"true"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit" split_words:"true"`
	CORS         CORSConfig         `mapstructure:"cors" split_words:"true"`
	Audit        AuditConfig        `mapstructure:"audit" split_words:"true"`
	Notification NotificationConfig `mapstructure:"notification" split_words:"true"`
	Events       EventsConfig       `mapstructure:"events" split_words:"true"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" split_words:"true"`
	Mode            string        `mapstructure:"mode" split_words:"true"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" split_words:"true"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" split_words:"true"`
}

type LogConfig struct {
	Level   string `mapstructure:"level" split_words:"true"`
	Console bool   `mapstructure:"console" split_words:"true"`
}

type StorageConfig struct {
	// Driver is one of memory, redis or postgres.
	Driver   string         `mapstructure:"driver" split_words:"true"`
	Seed     bool           `mapstructure:"seed" split_words:"true"`
	Redis    RedisConfig    `mapstructure:"redis" split_words:"true"`
	Postgres PostgresConfig `mapstructure:"postgres" split_words:"true"`
}

type RedisConfig struct {
	URL       string `mapstructure:"url" split_words:"true"`
	KeyPrefix string `mapstructure:"key_prefix" split_words:"true"`
	PoolSize  int    `mapstructure:"pool_size" split_words:"true"`
}

type PostgresConfig struct {
	DSN          string `mapstructure:"dsn" split_words:"true"`
	MaxOpenConns int    `mapstructure:"max_open_conns" split_words:"true"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" split_words:"true"`
}

type AuthConfig struct {
	Secret            string        `mapstructure:"secret" split_words:"true"`
	Issuer            string        `mapstructure:"issuer" split_words:"true"`
	TokenExpiry       time.Duration `mapstructure:"token_expiry" split_words:"true"`
	BootstrapPassword string        `mapstructure:"bootstrap_password" split_words:"true"`
	BcryptCost        int           `mapstructure:"bcrypt_cost" split_words:"true"`
	MaxLoginAttempts  int           `mapstructure:"max_login_attempts" split_words:"true"`
	LockoutDuration   time.Duration `mapstructure:"lockout_duration" split_words:"true"`
}

type DraftsConfig struct {
	TTL time.Duration `mapstructure:"ttl" split_words:"true"`
}

type SchedulingConfig struct {
	// DoctorSource is static for the built-in roster or users to derive
	// doctors from user records.
	DoctorSource string `mapstructure:"doctor_source" split_words:"true"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled" split_words:"true"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" split_words:"true"`
	Burst             int     `mapstructure:"burst" split_words:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" split_words:"true"`
}

type AuditConfig struct {
	OutputPaths []string `mapstructure:"output_paths" split_words:"true"`
	Retain      int      `mapstructure:"retain" split_words:"true"`
}

type NotificationConfig struct {
	Enabled         bool          `mapstructure:"enabled" split_words:"true"`
	SMTP            SMTPConfig    `mapstructure:"smtp" split_words:"true"`
	BreakerFailures int           `mapstructure:"breaker_failures" split_words:"true"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout" split_words:"true"`
}

// EventsConfig publishes booking events over Redis pub/sub, using the
// storage.redis connection settings.
type EventsConfig struct {
	Enabled bool   `mapstructure:"enabled" split_words:"true"`
	Channel string `mapstructure:"channel" split_words:"true"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" split_words:"true"`
	Port     int    `mapstructure:"port" split_words:"true"`
	Username string `mapstructure:"username" split_words:"true"`
	Password string `mapstructure:"password" split_words:"true"`
	From     string `mapstructure:"from" split_words:"true"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.seed", true)
	v.SetDefault("storage.redis.url", "redis://localhost:6379/0")
	v.SetDefault("storage.redis.key_prefix", "medclinic")
	v.SetDefault("storage.postgres.max_open_conns", 10)
	v.SetDefault("storage.postgres.max_idle_conns", 5)

	v.SetDefault("auth.issuer", "medclinic-admin")
	v.SetDefault("auth.token_expiry", 8*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.max_login_attempts", 5)
	v.SetDefault("auth.lockout_duration", 15*time.Minute)

	v.SetDefault("drafts.ttl", 30*time.Minute)
	v.SetDefault("scheduling.doctor_source", "static")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("audit.output_paths", []string{"stdout"})
	v.SetDefault("audit.retain", 500)

	v.SetDefault("notification.smtp.port", 587)
	v.SetDefault("notification.breaker_failures", 5)
	v.SetDefault("notification.breaker_timeout", 30*time.Second)

	v.SetDefault("events.channel", "medclinic.events")
}

// LoadConfig reads config.yaml from the working directory, ./config or
// /app/config when present, then applies MEDCLINIC_* environment
// overrides. A missing file is not an error; defaults apply.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config", "/app/config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.Storage.Postgres.DSN == "" {
		return errors.New("storage.postgres.dsn is required for the postgres driver")
	}

	switch c.Scheduling.DoctorSource {
	case "static", "users":
	default:
		return fmt.Errorf("unknown scheduling doctor source %q", c.Scheduling.DoctorSource)
	}

	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret is required")
	}
	if c.Auth.TokenExpiry <= 0 {
		return errors.New("auth.token_expiry must be positive")
	}
	if c.Notification.Enabled && (c.Notification.SMTP.Host == "" || c.Notification.SMTP.From == "") {
		return errors.New("notification.smtp host and from are required when notifications are enabled")
	}
	if c.Events.Enabled && (c.Storage.Redis.URL == "" || c.Events.Channel == "") {
		return errors.New("events need storage.redis.url and events.channel")
	}
	return nil
}
