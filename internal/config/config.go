package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// AppConfig holds everything the arena process reads from the environment.
// DATABASE_URL and REDIS_URL are optional; leaving them empty disables the
// corresponding result sink.
type AppConfig struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":3000"`

	// HMAC-SHA256 secret shared with the credential issuer.
	TokenSecret string `env:"TOKEN_SECRET"`

	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	// Per-connection outbound queue length. A full queue blocks the sender
	// until the writer drains or the connection dies.
	OutboundQueueSize int `env:"OUTBOUND_QUEUE_SIZE" envDefault:"32"`
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.ListenAddr = strings.TrimSpace(cfg.ListenAddr)
	cfg.TokenSecret = strings.TrimSpace(cfg.TokenSecret)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)

	if cfg.TokenSecret == "" {
		return nil, errors.New("TOKEN_SECRET is required")
	}
	if cfg.OutboundQueueSize <= 0 {
		cfg.OutboundQueueSize = 32
	}
	return cfg, nil
}
