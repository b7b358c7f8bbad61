package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PACKMERGER_ROOT", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ListenAddr != ":5001" {
		t.Errorf("ListenAddr = %q, want :5001", cfg.ListenAddr)
	}
	if cfg.MaxUploadBytes != 500*1024*1024 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("PACKMERGER_ROOT", t.TempDir())
	t.Setenv("PACKMERGER_LISTEN_ADDR", "127.0.0.1:9999")
	t.Setenv("PACKMERGER_SESSION_TTL", "1h")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9999" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
}

func TestLoadConfig_File(t *testing.T) {
	root := t.TempDir()
	t.Setenv("PACKMERGER_ROOT", root)

	body := "listen_addr: \":8080\"\nsession_ttl: 2h\n"
	if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %v, want 2h", cfg.SessionTTL)
	}
}

func TestLoadConfig_BadFileFails(t *testing.T) {
	root := t.TempDir()
	t.Setenv("PACKMERGER_ROOT", root)

	if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte(": not yaml ["), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("expected an error for an unparseable config file")
	}
}
