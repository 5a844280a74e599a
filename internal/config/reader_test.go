package config

import (
	"testing"
	"time"
)

func TestEnvReader_Defaults(t *testing.T) {
	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if cfg.Env != EnvLocal {
		t.Fatalf("env=%q want %q", cfg.Env, EnvLocal)
	}
	if cfg.HTTP.Port != "3000" {
		t.Fatalf("port=%q want 3000", cfg.HTTP.Port)
	}
	if cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout=%s", cfg.HTTP.ShutdownTimeout)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Fatalf("driver=%q want %q", cfg.Storage.Driver, StorageMemory)
	}
	if cfg.Tasks.StrictDelete {
		t.Fatalf("strict delete enabled by default")
	}
}

func TestEnvReader_Overrides(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("STORAGE_DRIVER", StorageMongo)
	t.Setenv("MONGO_COLLECTION", "todo")
	t.Setenv("TASKS_STRICT_DELETE", "true")
	t.Setenv("STORAGE_BREAKER_TIMEOUT", "30s")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if cfg.Env != EnvProd || cfg.HTTP.Port != "8081" {
		t.Fatalf("env=%q port=%q", cfg.Env, cfg.HTTP.Port)
	}
	if cfg.Storage.Driver != StorageMongo || cfg.Mongo.Collection != "todo" {
		t.Fatalf("driver=%q collection=%q", cfg.Storage.Driver, cfg.Mongo.Collection)
	}
	if !cfg.Tasks.StrictDelete {
		t.Fatalf("strict delete not enabled")
	}
	if cfg.Storage.BreakerTimeout != 30*time.Second {
		t.Fatalf("breaker timeout=%s", cfg.Storage.BreakerTimeout)
	}
}

func TestEnvReader_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown env", key: "ENV", value: "staging"},
		{name: "unknown driver", key: "STORAGE_DRIVER", value: "redis"},
		{name: "bad duration", key: "HTTP_SHUTDOWN_TIMEOUT", value: "soon"},
		{name: "non-numeric port", key: "HTTP_PORT", value: "abc"},
		{name: "port out of range", key: "HTTP_PORT", value: "70000"},
		{name: "zero port", key: "HTTP_PORT", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := NewEnvReader().Read()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
