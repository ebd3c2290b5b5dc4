package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avtools/qrcctl/internal/testutil/testlog"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "core.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCoreConfig(t *testing.T) {
	testlog.Start(t)
	path := writeTempConfig(t, `
address = "10.0.0.5:1710"
user = "operator"
password = "secret"
dial_timeout = "2s"
tick_interval = "500ms"
idle_ticks = 10
`)
	cfg, err := LoadCoreConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Address != "10.0.0.5:1710" || cfg.User != "operator" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	client := cfg.ClientConfig()
	if client.DialTimeout != 2*time.Second {
		t.Fatalf("dial timeout: %v", client.DialTimeout)
	}
	if client.TickInterval != 500*time.Millisecond {
		t.Fatalf("tick interval: %v", client.TickInterval)
	}
	if client.IdleTicks != 10 {
		t.Fatalf("idle ticks: %d", client.IdleTicks)
	}
}

func TestLoadCoreConfigDefaultsPreserved(t *testing.T) {
	testlog.Start(t)
	path := writeTempConfig(t, `address = "core.local"`)
	cfg, err := LoadCoreConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	client := cfg.ClientConfig()
	if client.IdleTicks != 29 {
		t.Fatalf("expected default idle ticks, got %d", client.IdleTicks)
	}
	if client.TickInterval != time.Second {
		t.Fatalf("expected default tick interval, got %v", client.TickInterval)
	}
}

func TestLoadCoreConfigRejectsMissingAddress(t *testing.T) {
	testlog.Start(t)
	path := writeTempConfig(t, `user = "operator"`)
	if _, err := LoadCoreConfig(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadCoreConfigRejectsBadDuration(t *testing.T) {
	testlog.Start(t)
	path := writeTempConfig(t, `
address = "core.local"
dial_timeout = "soon"
`)
	if _, err := LoadCoreConfig(path); err == nil {
		t.Fatalf("expected duration parse error")
	}
}
