package config

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port      int    `mapstructure:"PORT"`
	APIPrefix string `mapstructure:"API_PREFIX"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`

	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`

	MessageTTL   time.Duration `mapstructure:"MESSAGE_TTL"`
	RoomExpiry   bool          `mapstructure:"ROOM_EXPIRY"`
	SeedRooms    bool          `mapstructure:"SEED_ROOMS"`
	PasswordHash string        `mapstructure:"PASSWORD_HASH"`

	RedisURL          string        `mapstructure:"REDIS_URL"`
	RateLimitRequests int           `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow   time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`

	MobyAccountID    string `mapstructure:"MOBY_ACCOUNT_ID"`
	MobyAPIToken     string `mapstructure:"MOBY_API_TOKEN"`
	MobyModel        string `mapstructure:"MOBY_MODEL"`
	MobyBaseURL      string `mapstructure:"MOBY_BASE_URL"`
	MobySystemPrompt string `mapstructure:"MOBY_SYSTEM_PROMPT"`
}

var AppConfig *Config

const defaultMobyPrompt = "あなたは「モビー」という名前のやさしいAIアシスタントです。ユーザーの相談に親切に、やさしい口調で答えてください。回答は簡潔にしてください。"

// Every key needs a default, otherwise AutomaticEnv never binds it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MESSAGE_TTL", 24*time.Hour)
	v.SetDefault("ROOM_EXPIRY", true)
	v.SetDefault("SEED_ROOMS", true)
	v.SetDefault("PASSWORD_HASH", "sha256")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 30)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	v.SetDefault("MOBY_ACCOUNT_ID", "")
	v.SetDefault("MOBY_API_TOKEN", "")
	v.SetDefault("MOBY_MODEL", "@cf/qwen/qwen3-30b-a3b-fp8")
	v.SetDefault("MOBY_BASE_URL", "https://api.cloudflare.com/client/v4")
	v.SetDefault("MOBY_SYSTEM_PROMPT", defaultMobyPrompt)
}

// Load reads configuration from a .env file in dir and the environment.
// Environment variables take precedence over the file.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	setDefaults(v)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		logrus.Info(".env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads the configuration from a .env file and environment variables
// into AppConfig.
func LoadConfig() {
	cfg, err := Load(".")
	if err != nil {
		logrus.Fatalf("Unable to load configuration: %v", err)
	}
	AppConfig = cfg
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return errors.New("DATABASE_DRIVER must be postgres or sqlite")
	}
	switch c.PasswordHash {
	case "sha256", "bcrypt":
	default:
		return errors.New("PASSWORD_HASH must be sha256 or bcrypt")
	}
	if c.MessageTTL <= 0 {
		return errors.New("MESSAGE_TTL must be positive")
	}
	if c.RedisURL != "" && (c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0) {
		return errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// MobyEnabled reports whether assistant credentials are configured.
func (c *Config) MobyEnabled() bool {
	return c.MobyAccountID != "" && c.MobyAPIToken != ""
}
