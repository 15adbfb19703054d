package main

import (
	"fmt"
	"strings"
	"time"

	"challenge_league_api/internal/repository"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"

	environmentDevelopment = "development"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	Auth      AuthConfig      `yaml:"auth"`
	League    LeagueConfig    `yaml:"league"`
	Streak    StreakConfig    `yaml:"streak"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`

	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuthConfig struct {
	JWTSecret    string        `yaml:"jwtSecret"`
	TokenTTL     time.Duration `yaml:"tokenTTL"`
	RequireToken bool          `yaml:"requireToken"`
	AdminKey     string        `yaml:"adminKey"`
}

type LeagueConfig struct {
	WaitingRoomCapacity int `yaml:"waitingRoomCapacity"`
}

type StreakConfig struct {
	BonusPerDay int `yaml:"bonusPerDay"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == environmentDevelopment
}

func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("environment", "production")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("database.migrationsPath", "migrations")
	viper.SetDefault("auth.tokenTTL", 24*time.Hour)
	viper.SetDefault("league.waitingRoomCapacity", 10)
	viper.SetDefault("streak.bonusPerDay", 5)
	viper.SetDefault("rateLimit.rps", 5)
	viper.SetDefault("rateLimit.burst", 30)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwtSecret must be set")
	}
	if cfg.League.WaitingRoomCapacity < 1 {
		return nil, fmt.Errorf("league.waitingRoomCapacity must be positive")
	}

	return &cfg, nil
}
