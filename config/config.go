// Package config loads the service configuration from a YAML file with
// environment overrides for deployment secrets.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/swasthya/subcenter-api/internal/email"
	"github.com/swasthya/subcenter-api/internal/repository/postgres"
	"github.com/swasthya/subcenter-api/internal/repository/redis"
	"github.com/swasthya/subcenter-api/internal/service/attendance"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type LocationConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type RecordsConfig struct {
	EditWindowHours int `mapstructure:"edit_window_hours"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Database   postgres.Config   `mapstructure:"database"`
	Redis      redis.Config      `mapstructure:"redis"`
	JWT        JWTConfig         `mapstructure:"jwt"`
	SMTP       email.Config      `mapstructure:"smtp"`
	Attendance attendance.Config `mapstructure:"attendance"`
	Location   LocationConfig    `mapstructure:"location"`
	Records    RecordsConfig     `mapstructure:"records"`
	RateLimit  RateLimitConfig   `mapstructure:"rate_limit"`
	CORS       CORSConfig        `mapstructure:"cors"`
	Logging    LoggingConfig     `mapstructure:"logging"`
}

// envOverrides carries the deployment secrets that must never live in
// the config file.
type envOverrides struct {
	DBHost       string `envconfig:"DB_HOST"`
	DBPassword   string `envconfig:"DB_PASSWORD"`
	RedisAddr    string `envconfig:"REDIS_ADDR"`
	JWTSecret    string `envconfig:"JWT_SECRET"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if env.DBHost != "" {
		config.Database.Host = env.DBHost
	}
	if env.DBPassword != "" {
		config.Database.Password = env.DBPassword
	}
	if env.RedisAddr != "" {
		config.Redis.Addr = env.RedisAddr
	}
	if env.JWTSecret != "" {
		config.JWT.Secret = env.JWTSecret
	}
	if env.SMTPPassword != "" {
		config.SMTP.Password = env.SMTPPassword
	}

	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	return &config, nil
}
