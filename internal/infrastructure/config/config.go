package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
type Config struct {
	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Validation
	WarningThreshold float64 `env:"WARNING_THRESHOLD" envDefault:"0.8"`

	// Submit retry budget
	RetryMaxAttempts int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryBaseDelay   time.Duration `env:"RETRY_BASE_DELAY"   envDefault:"1s"`
	RetryMaxDelay    time.Duration `env:"RETRY_MAX_DELAY"    envDefault:"10s"`

	// Simulated transport
	GatewayLatency     time.Duration `env:"GATEWAY_LATENCY"      envDefault:"150ms"`
	GatewayFailureRate float64       `env:"GATEWAY_FAILURE_RATE" envDefault:"0.1"`

	// Seeded demo state
	SeedBalance        string `env:"SEED_BALANCE"               envDefault:"10000"`
	SeedDailyLimit     string `env:"SEED_DAILY_LIMIT"           envDefault:"10000"`
	SeedMonthlyLimit   string `env:"SEED_MONTHLY_LIMIT"         envDefault:"50000"`
	SeedPerTransaction string `env:"SEED_PER_TRANSACTION_LIMIT" envDefault:"5000"`

	// Idempotency (Redis optional - leave URL empty for in-memory)
	RedisURL       string        `env:"REDIS_URL"       envDefault:""`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Rate limiting
	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" envDefault:"50"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST"      envDefault:"100"`
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.WarningThreshold <= 0 || c.WarningThreshold > 1 {
		return fmt.Errorf("WARNING_THRESHOLD must be in (0, 1], got %v", c.WarningThreshold)
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.RetryMaxAttempts)
	}
	if c.GatewayFailureRate < 0 || c.GatewayFailureRate >= 1 {
		return fmt.Errorf("GATEWAY_FAILURE_RATE must be in [0, 1), got %v", c.GatewayFailureRate)
	}

	for name, v := range map[string]string{
		"SEED_BALANCE":               c.SeedBalance,
		"SEED_DAILY_LIMIT":           c.SeedDailyLimit,
		"SEED_MONTHLY_LIMIT":         c.SeedMonthlyLimit,
		"SEED_PER_TRANSACTION_LIMIT": c.SeedPerTransaction,
	} {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("%s is not a decimal: %w", name, err)
		}
		if d.IsNegative() {
			return fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}

	return nil
}

// Threshold returns the warning threshold as a decimal.
func (c *Config) Threshold() decimal.Decimal {
	return decimal.NewFromFloat(c.WarningThreshold)
}
