// Package config assembles the process configuration from, in order of
// precedence: command-line flags, environment variables, and a .env file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs at construction time. Nothing in
// here is read from process-wide globals after startup.
type Config struct {
	Addr       string `env:"FOUNDLING_ADDR" envDefault:":8080"`
	DBPath     string `env:"FOUNDLING_DB" envDefault:"foundling.sqlite3"`
	UploadDir  string `env:"FOUNDLING_UPLOAD_DIR" envDefault:"uploads"`
	AuthSecret string `env:"FOUNDLING_AUTH_SECRET"`
	LogPath    string `env:"FOUNDLING_LOG"`
}

// Load parses the .env file (if any), the environment, and the given
// command-line arguments. If no auth secret is configured one is generated,
// which invalidates all sessions on restart.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	fs := flag.NewFlagSet("foundling", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to SQLite database file")
	fs.StringVar(&cfg.UploadDir, "uploads", cfg.UploadDir, "directory for uploaded photos")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "session signing key (auto-generated if empty)")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "log file path (default: stdout/stderr only)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.AuthSecret == "" {
		secret, err := generateSecret()
		if err != nil {
			return nil, fmt.Errorf("generating auth secret: %w", err)
		}
		cfg.AuthSecret = secret
	}

	return cfg, nil
}

// EnsureDirs creates the directories the server writes to.
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.UploadDir, 0755); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}
	return nil
}

func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
