package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string        `mapstructure:"PGSQL_URL" validate:"required_if=StorageDriver postgres"`
	Port           string        `mapstructure:"PORT" validate:"required,numeric"`
	IsProduction   bool          `mapstructure:"IS_PRODUCTION"`
	EnableDBCheck  bool          `mapstructure:"ENABLE_DB_CHECK"`
	StorageDriver  string        `mapstructure:"STORAGE_DRIVER" validate:"oneof=postgres memory"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH" validate:"required"`
	JWTSecret      string        `mapstructure:"JWT_SECRET" validate:"required,min=16"`
	LogLevel       string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	RateLimit      string        `mapstructure:"RATE_LIMIT" validate:"required"`
	CORSOrigins    []string      `mapstructure:"CORS_ALLOWED_ORIGINS" validate:"min=1,dive,required"`

	// Lifecycle
	TrashRetention    time.Duration `mapstructure:"TRASH_RETENTION" validate:"gt=0"`
	PurgeInterval     time.Duration `mapstructure:"PURGE_INTERVAL" validate:"gt=0"`
	PrintHistoryLimit int           `mapstructure:"PRINT_HISTORY_LIMIT" validate:"min=1,max=500"`

	// Change feed
	KafkaBrokers []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string   `mapstructure:"KAFKA_TOPIC" validate:"required_with=KafkaBrokers"`
	RedisURL     string   `mapstructure:"REDIS_URL"`
	RedisChannel string   `mapstructure:"REDIS_CHANNEL" validate:"required_with=RedisURL"`

	// Tracing
	TracingEnabled bool   `mapstructure:"TRACING_ENABLED"`
	OTLPEndpoint   string `mapstructure:"OTLP_ENDPOINT" validate:"required_if=TracingEnabled true"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:       v.GetString("PGSQL_URL"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:     strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath:    v.GetString("MIGRATIONS_PATH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		RateLimit:         v.GetString("RATE_LIMIT"),
		CORSOrigins:       splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		TrashRetention:    v.GetDuration("TRASH_RETENTION"),
		PurgeInterval:     v.GetDuration("PURGE_INTERVAL"),
		PrintHistoryLimit: v.GetInt("PRINT_HISTORY_LIMIT"),
		KafkaBrokers:      splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:        v.GetString("KAFKA_TOPIC"),
		RedisURL:          v.GetString("REDIS_URL"),
		RedisChannel:      v.GetString("REDIS_CHANNEL"),
		TracingEnabled:    v.GetBool("TRACING_ENABLED"),
		OTLPEndpoint:      v.GetString("OTLP_ENDPOINT"),
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", "postgres")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("TRASH_RETENTION", "168h")
	v.SetDefault("PURGE_INTERVAL", "1h")
	v.SetDefault("PRINT_HISTORY_LIMIT", 50)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "commission-changes")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_CHANNEL", "commission-changes")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("OTLP_ENDPOINT", "localhost:4317")
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
