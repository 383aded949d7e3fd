package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/assignments/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Logging    LoggingConfig    `mapstructure:"logging" validate:"required"`
	Postgres   PostgresConfig   `mapstructure:"postgres" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Pyroscope  PyroscopeConfig  `mapstructure:"pyroscope"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Webhook    Webhook          `mapstructure:"webhook"`
	Assignment AssignmentConfig `mapstructure:"assignment"`
	Client     ClientConfig     `mapstructure:"client"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" default:"10"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" default:"5"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" default:"60"`
}

type AuthConfig struct {
	Secret  string            `mapstructure:"secret" validate:"required"`
	APIKeys map[string]APIKey `mapstructure:"api_keys"`
}

// APIKey describes the principal an api key authenticates as, keyed by the
// SHA-256 hex digest of the raw key
type APIKey struct {
	TenantID string `mapstructure:"tenant_id" json:"tenant_id" validate:"required"`
	UserID   string `mapstructure:"user_id" json:"user_id" validate:"required"`
	Name     string `mapstructure:"name" json:"name"`
	IsActive bool   `mapstructure:"is_active" json:"is_active"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" default:"1.0"`
}

// PyroscopeConfig controls continuous profiling of the api server
type PyroscopeConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	ServerAddress   string   `mapstructure:"server_address" validate:"required_if=Enabled true"`
	ApplicationName string   `mapstructure:"application_name"`
	BasicAuthUser   string   `mapstructure:"basic_auth_user"`
	BasicAuthPass   string   `mapstructure:"basic_auth_pass"`
	ProfileTypes    []string `mapstructure:"profile_types"`
	SampleRate      uint32   `mapstructure:"sample_rate"`
	DisableGCRuns   bool     `mapstructure:"disable_gc_runs"`
}

type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultTTL      time.Duration `mapstructure:"default_ttl" default:"30m"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" default:"10m"`
}

// AssignmentConfig tunes the bulk fan-out
type AssignmentConfig struct {
	// MaxConcurrency caps in-flight entity tasks, 0 means unbounded
	MaxConcurrency int `mapstructure:"max_concurrency" validate:"min=0"`
	// TaskTimeout bounds a single entity task, 0 means no timeout
	TaskTimeout time.Duration `mapstructure:"task_timeout" validate:"min=0"`
}

// ClientConfig is read by assignctl
type ClientConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	RetryMax          int           `mapstructure:"retry_max" validate:"min=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"min=0"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

func NewConfig() (*Configuration, error) {
	v, err := load()
	if err != nil {
		return nil, err
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadClientConfig reads only the client section, so assignctl works without
// the server settings being present
func LoadClientConfig() (ClientConfig, error) {
	v, err := load()
	if err != nil {
		return ClientConfig{}, err
	}

	var client ClientConfig
	if err := v.UnmarshalKey("client", &client); err != nil {
		return ClientConfig{}, err
	}

	if err := validator.New().Struct(client); err != nil {
		return ClientConfig{}, err
	}

	return client, nil
}

func load() (*viper.Viper, error) {
	// .env is optional, real environment variables take precedence
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/assignments")

	v.SetEnvPrefix("ASSIGNMENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return v, nil
}

// setDefaults registers every key so AutomaticEnv can override values that
// are absent from config.yaml
func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "assignments")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "assignments")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 60)

	v.SetDefault("auth.secret", "")

	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)

	v.SetDefault("pyroscope.enabled", false)
	v.SetDefault("pyroscope.application_name", "assignments")
	v.SetDefault("pyroscope.sample_rate", 100)
	v.SetDefault("pyroscope.disable_gc_runs", false)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.default_ttl", 30*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)

	v.SetDefault("webhook.enabled", false)
	v.SetDefault("webhook.topic", "webhooks")
	v.SetDefault("webhook.pubsub", types.PubSubTypeMemory)
	v.SetDefault("webhook.max_retries", 3)
	v.SetDefault("webhook.initial_interval", time.Second)
	v.SetDefault("webhook.max_interval", 10*time.Second)
	v.SetDefault("webhook.multiplier", 2.0)
	v.SetDefault("webhook.max_elapsed_time", 2*time.Minute)

	v.SetDefault("assignment.max_concurrency", 0)
	v.SetDefault("assignment.task_timeout", 0)

	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.api_key", "")
	v.SetDefault("client.retry_max", 3)
	v.SetDefault("client.requests_per_second", 0)
	v.SetDefault("client.timeout", 30*time.Second)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Cache: CacheConfig{
			Enabled:         true,
			DefaultTTL:      30 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Webhook: Webhook{
			Topic:           "webhooks",
			PubSub:          types.PubSubTypeMemory,
			MaxRetries:      3,
			InitialInterval: time.Second,
			MaxInterval:     10 * time.Second,
			Multiplier:      2.0,
			MaxElapsedTime:  2 * time.Minute,
		},
		Client: ClientConfig{
			BaseURL:  "http://localhost:8080",
			RetryMax: 3,
			Timeout:  30 * time.Second,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
