package config

import (
	"os"
	"testing"
)

func clearOptionalEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LISTEN_ADDR", "DATABASE_URL", "REDIS_URL", "OUTBOUND_QUEUE_SIZE"} {
		t.Setenv(key, "ignored") // register restore
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "s3cret")
	clearOptionalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":3000" {
		t.Fatalf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.OutboundQueueSize != 32 {
		t.Fatalf("OutboundQueueSize = %d", cfg.OutboundQueueSize)
	}
	if cfg.DatabaseURL != "" || cfg.RedisURL != "" {
		t.Fatalf("optional urls should default empty: %+v", cfg)
	}
}

func TestLoadRequiresTokenSecret(t *testing.T) {
	clearOptionalEnv(t)
	t.Setenv("TOKEN_SECRET", "   ")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without TOKEN_SECRET")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearOptionalEnv(t)
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("LISTEN_ADDR", " :8080 ")
	t.Setenv("OUTBOUND_QUEUE_SIZE", "64")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.OutboundQueueSize != 64 {
		t.Fatalf("OutboundQueueSize = %d", cfg.OutboundQueueSize)
	}
}
