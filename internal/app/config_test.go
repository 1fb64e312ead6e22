package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadConfig on missing file: %v", err)
	}
	if cfg.ServerURL != "http://localhost:5000/api" {
		t.Fatalf("default ServerURL = %q", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 30 || cfg.ChatDelayMs != 1000 {
		t.Fatalf("default timeouts = %d/%d, want 30/1000", cfg.RequestTimeout, cfg.ChatDelayMs)
	}
}

func TestLoadConfig_NormalizesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte("server_url: https://clinic.example.com/api/\nrequest_timeout_seconds: -5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerURL != "https://clinic.example.com/api" {
		t.Fatalf("ServerURL = %q, want trailing slash stripped", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 30 {
		t.Fatalf("RequestTimeout = %d, want fallback 30", cfg.RequestTimeout)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	in := Config{ServerURL: "http://10.0.0.2:5000/api", RequestTimeout: 10, ChatDelayMs: 250}
	if err := SaveConfig(in, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	out, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}
