package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr ':8080', got %q", cfg.Addr)
	}
	if cfg.DBPath != "foundling.sqlite3" {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.AuthSecret == "" {
		t.Error("expected auto-generated auth secret")
	}
}

func TestLoadFlagsOverride(t *testing.T) {
	cfg, err := Load([]string{"-addr", ":9090", "-auth-secret", "fixed", "-uploads", "photos"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("expected addr ':9090', got %q", cfg.Addr)
	}
	if cfg.AuthSecret != "fixed" {
		t.Errorf("expected configured secret to be kept, got %q", cfg.AuthSecret)
	}
	if cfg.UploadDir != "photos" {
		t.Errorf("expected upload dir 'photos', got %q", cfg.UploadDir)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("FOUNDLING_ADDR", ":7070")
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("expected addr from environment, got %q", cfg.Addr)
	}
}
