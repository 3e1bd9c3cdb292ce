package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the process-wide settings. Database settings live in
// internal/storage/postgres and are loaded separately.
type Config struct {
	APIPort     string `env:"API_PORT,default=8080"`
	MetricsPort string `env:"METRICS_PORT,default=9090"`

	TickInterval    time.Duration `env:"SCHEDULER_TICK_INTERVAL,default=60s"`
	DeliveryTimeout time.Duration `env:"DELIVERY_TIMEOUT,default=30s"`
	MaxInflight     int64         `env:"MAX_INFLIGHT_DELIVERIES,default=8"`
}

// to help with testing
var envProcess = envconfig.Process

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envProcess(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if cfg.TickInterval < time.Second {
		return nil, fmt.Errorf("SCHEDULER_TICK_INTERVAL must be at least 1s")
	}
	if cfg.DeliveryTimeout <= 0 {
		return nil, fmt.Errorf("DELIVERY_TIMEOUT must be positive")
	}
	if cfg.MaxInflight < 1 {
		return nil, fmt.Errorf("MAX_INFLIGHT_DELIVERIES must be at least 1")
	}

	return &cfg, nil
}
