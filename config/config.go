package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
	Rating        RatingConfig        `yaml:"rating"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// ObservabilityConfig holds logging and metrics configuration.
type ObservabilityConfig struct {
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	MetricsAddress string `yaml:"metrics_address"`
}

// RatingConfig holds the defaults applied to newly created rankings. Each
// ranking stores its own copy and may be tuned independently afterwards.
type RatingConfig struct {
	Scale             float64       `yaml:"scale"`
	DefaultRating     float64       `yaml:"default_rating"`
	Tau               float64       `yaml:"tau"`
	InitialRating     float64       `yaml:"initial_rating"`
	InitialDeviation  float64       `yaml:"initial_deviation"`
	InitialVolatility float64       `yaml:"initial_volatility"`
	PeriodLength      time.Duration `yaml:"period_length"`
	WinDiffStep       float64       `yaml:"win_diff_step"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is missing.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfigFromEnv() (*Config, error) {
	cfg := &Config{
		Postgres: PostgresConfig{DSN: os.Getenv("POSTGRES_DSN")},
		NATS:     NATSConfig{URL: os.Getenv("NATS_URL")},
		Observability: ObservabilityConfig{
			Environment:    os.Getenv("APP_ENV"),
			LogLevel:       os.Getenv("LOG_LEVEL"),
			MetricsAddress: os.Getenv("METRICS_ADDRESS"),
		},
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Observability.MetricsAddress == "" {
		c.Observability.MetricsAddress = ":9090"
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
	if c.Rating.Scale == 0 {
		c.Rating.Scale = 173.7178
	}
	if c.Rating.DefaultRating == 0 {
		c.Rating.DefaultRating = 1500
	}
	if c.Rating.Tau == 0 {
		c.Rating.Tau = 0.5
	}
	if c.Rating.InitialRating == 0 {
		c.Rating.InitialRating = 1500
	}
	if c.Rating.InitialDeviation == 0 {
		c.Rating.InitialDeviation = 350
	}
	if c.Rating.InitialVolatility == 0 {
		c.Rating.InitialVolatility = 0.06
	}
	if c.Rating.PeriodLength == 0 {
		c.Rating.PeriodLength = 7 * 24 * time.Hour
	}
	if c.Rating.WinDiffStep == 0 {
		c.Rating.WinDiffStep = 25
	}
}

func (c *Config) validate() error {
	if c.Postgres.DSN == "" {
		return fmt.Errorf("postgres DSN is required")
	}
	if c.NATS.URL == "" {
		return fmt.Errorf("NATS URL is required")
	}
	if c.Rating.Tau <= 0 || c.Rating.Scale <= 0 || c.Rating.PeriodLength <= 0 {
		return fmt.Errorf("rating config must have positive tau, scale, and period length")
	}
	return nil
}
