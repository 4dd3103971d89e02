package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./vibes.db" {
			t.Errorf("expected database path ./vibes.db, got %s", config.Database.Path)
		}
		if config.Database.Driver != "sqlite3" {
			t.Errorf("expected driver sqlite3, got %s", config.Database.Driver)
		}
		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}
		if config.Server.ShutdownTimeout.Duration != 5*time.Second {
			t.Errorf("expected shutdown timeout 5s, got %s", config.Server.ShutdownTimeout)
		}
		if config.Client.BaseURL != "http://127.0.0.1:5000" {
			t.Errorf("expected client base URL http://127.0.0.1:5000, got %s", config.Client.BaseURL)
		}
		if config.Client.PlaylistID != 1 {
			t.Errorf("expected playlist id 1, got %d", config.Client.PlaylistID)
		}
		if config.Seed.Mode != "always" {
			t.Errorf("expected seed mode always, got %s", config.Seed.Mode)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("Addr", func(t *testing.T) {
		cfg := ServerConfig{Host: "0.0.0.0", Port: 8080}
		if got := cfg.Addr(); got != "0.0.0.0:8080" {
			t.Errorf("Addr() = %s", got)
		}
	})

	t.Run("Source", func(t *testing.T) {
		sqlite := DatabaseConfig{Driver: "sqlite3", Path: "./a.db", DSN: "ignored"}
		if sqlite.Source() != "./a.db" {
			t.Errorf("expected sqlite path, got %s", sqlite.Source())
		}

		pg := DatabaseConfig{Driver: "postgres", Path: "ignored", DSN: "postgres://localhost/vibes"}
		if pg.Source() != "postgres://localhost/vibes" {
			t.Errorf("expected postgres dsn, got %s", pg.Source())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20

[server]
host = "0.0.0.0"
port = 8080
allowed_origins = ["https://vibes.example.com"]
shutdown_timeout = "1m"

[seed]
mode = "once"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Database.MaxIdleConns != 5 {
			t.Errorf("expected default max idle conns 5, got %d", config.Database.MaxIdleConns)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
		if len(config.Server.AllowedOrigins) != 1 || config.Server.AllowedOrigins[0] != "https://vibes.example.com" {
			t.Errorf("unexpected allowed origins %v", config.Server.AllowedOrigins)
		}
		if config.Server.ShutdownTimeout.Duration != time.Minute {
			t.Errorf("expected shutdown timeout 1m, got %s", config.Server.ShutdownTimeout)
		}
		if config.Seed.Mode != "once" {
			t.Errorf("expected seed mode once, got %s", config.Seed.Mode)
		}
	})

	t.Run("LoadConfig Invalid", func(t *testing.T) {
		tc := []struct {
			name    string
			content string
			wantErr error
		}{
			{name: "driver", content: "[database]\ndriver = \"mysql\"\n", wantErr: ErrInvalidConfig},
			{name: "postgres without dsn", content: "[database]\ndriver = \"postgres\"\n", wantErr: ErrMissingConfig},
			{name: "seed mode", content: "[seed]\nmode = \"sometimes\"\n", wantErr: ErrInvalidConfig},
			{name: "port", content: "[server]\nport = 70000\n", wantErr: ErrInvalidConfig},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				configPath := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
					t.Fatalf("failed to write test config: %v", err)
				}

				_, err := LoadConfig(configPath)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})

	t.Run("LoadConfig bad duration", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[client]\ntimeout = \"soon\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for unparsable duration")
		}
	})

	t.Run("LoadConfigOrDefault missing file", func(t *testing.T) {
		config, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("expected defaults, got %v", err)
		}
		if config.Server.Port != 5000 {
			t.Errorf("expected default port, got %d", config.Server.Port)
		}
	})
}
