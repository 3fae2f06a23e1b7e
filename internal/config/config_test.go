package config

import "testing"

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.General.Currency != "INR" {
		t.Errorf("Currency = %q, want INR", cfg.General.Currency)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://api.financeflow.example"
	cfg.General.DefaultGroup = "g1"
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Server.BaseURL != cfg.Server.BaseURL {
		t.Errorf("BaseURL = %q, want %q", got.Server.BaseURL, cfg.Server.BaseURL)
	}
	if got.General.DefaultGroup != "g1" {
		t.Errorf("DefaultGroup = %q, want g1", got.General.DefaultGroup)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FINFLOW_SERVER", "http://10.0.0.5:9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("BaseURL = %q, want env override", cfg.Server.BaseURL)
	}
}

func TestSocketURL_DerivedFromBase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://api.financeflow.example/"
	if got := cfg.SocketURL(); got != "wss://api.financeflow.example/socket" {
		t.Errorf("SocketURL = %q", got)
	}

	cfg.Server.SocketURL = "wss://ws.financeflow.example"
	if got := cfg.SocketURL(); got != "wss://ws.financeflow.example" {
		t.Errorf("explicit SocketURL = %q", got)
	}
}
