package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port" envconfig:"PORT"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Seed         bool          `mapstructure:"seed" envconfig:"SEED_DATA"`
}

type DatabaseConfig struct {
	// Empty host selects the in-memory store.
	Host     string `mapstructure:"host" envconfig:"DB_HOST"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT"`
	User     string `mapstructure:"user" envconfig:"DB_USER"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	// Empty URL disables the event sink.
	URL          string        `mapstructure:"url" envconfig:"REDIS_URL"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// FrontDeskConfig holds the business rules for assignment and queueing.
type FrontDeskConfig struct {
	EscortBufferMinutes  int  `mapstructure:"escort_buffer_minutes" envconfig:"ESCORT_BUFFER_MINUTES"`
	LateThresholdMinutes int  `mapstructure:"late_threshold_minutes" envconfig:"LATE_THRESHOLD_MINUTES"`
	BufferTimeMinutes    int  `mapstructure:"buffer_time_minutes" envconfig:"BUFFER_TIME_MINUTES"`
	AutoPromoteLate      bool `mapstructure:"auto_promote_late" envconfig:"AUTO_PROMOTE_LATE"`
	MaxQueueSize         int  `mapstructure:"max_queue_size" envconfig:"MAX_QUEUE_SIZE"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	FrontDesk FrontDeskConfig `mapstructure:"front_desk"`
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("server.seed", false)
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.min_idle_conns", 2)
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_second", 50.0)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("front_desk.escort_buffer_minutes", 12)
	viper.SetDefault("front_desk.late_threshold_minutes", 15)
	viper.SetDefault("front_desk.buffer_time_minutes", 15)
	viper.SetDefault("front_desk.auto_promote_late", true)
	viper.SetDefault("front_desk.max_queue_size", 20)
}

// LoadConfig reads an optional config file, falls back to defaults, and lets
// environment variables override both.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for _, section := range []interface{}{
		&config.Server, &config.Database, &config.Redis, &config.FrontDesk,
	} {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to process environment overrides: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.FrontDesk.EscortBufferMinutes < 0 {
		return fmt.Errorf("escort_buffer_minutes must not be negative")
	}
	if c.FrontDesk.LateThresholdMinutes < 0 {
		return fmt.Errorf("late_threshold_minutes must not be negative")
	}
	if c.FrontDesk.BufferTimeMinutes < 0 {
		return fmt.Errorf("buffer_time_minutes must not be negative")
	}
	if c.FrontDesk.MaxQueueSize <= 0 {
		return fmt.Errorf("max_queue_size must be positive")
	}
	return nil
}
