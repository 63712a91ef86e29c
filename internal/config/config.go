package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string   `mapstructure:"PORT"`
	Env           string   `mapstructure:"ENV"`
	DatabaseURL   string   `mapstructure:"DATABASE_URL"`
	DBMaxConns    int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns    int32    `mapstructure:"DB_MIN_CONNS"`
	DefaultTenant string   `mapstructure:"DEFAULT_TENANT"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`

	// Simulation knobs. SimSeed of zero selects a time-based seed, so every
	// run produces a different dataset; fix it to reproduce one.
	SimSeed               int64 `mapstructure:"SIM_SEED"`
	SeedBatchSize         int   `mapstructure:"SEED_BATCH_SIZE"`
	SeedContinuationDelay int   `mapstructure:"SEED_CONTINUATION_DELAY"`
	LifecycleSweepLimit   int   `mapstructure:"LIFECYCLE_SWEEP_LIMIT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DEFAULT_TENANT", "default")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SIM_SEED", 0)
	v.SetDefault("SEED_BATCH_SIZE", 500)
	v.SetDefault("SEED_CONTINUATION_DELAY", 250)
	v.SetDefault("LIFECYCLE_SWEEP_LIMIT", 2000)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("DEFAULT_TENANT")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SIM_SEED")
	v.BindEnv("SEED_BATCH_SIZE")
	v.BindEnv("SEED_CONTINUATION_DELAY")
	v.BindEnv("LIFECYCLE_SWEEP_LIMIT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ContinuationDelay returns the pause between seed batches.
func (c *Config) ContinuationDelay() time.Duration {
	return time.Duration(c.SeedContinuationDelay) * time.Millisecond
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.SeedBatchSize < 1 {
		return fmt.Errorf("SEED_BATCH_SIZE must be at least 1, got %d", c.SeedBatchSize)
	}
	if c.SeedContinuationDelay < 0 {
		return fmt.Errorf("SEED_CONTINUATION_DELAY must not be negative, got %d", c.SeedContinuationDelay)
	}
	if c.LifecycleSweepLimit < 1 {
		return fmt.Errorf("LIFECYCLE_SWEEP_LIMIT must be at least 1, got %d", c.LifecycleSweepLimit)
	}
	return nil
}
