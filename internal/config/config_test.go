// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML and TOML loading, env var expansion, defaults and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  http_addr: "0.0.0.0:8080"
  read_header_timeout: "5s"

storage:
  data_dir: "/srv/scribe/data"
  users_file: "/srv/scribe/users.yml"

session:
  secret: "0123456789abcdef0123"
  ttl: "2h"
  max_sessions: 50
  cookie_name: "docs"

auth:
  admin_username: "root"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}
	if cfg.Server.ReadHeaderTimeout != 5*time.Second {
		t.Errorf("Server.ReadHeaderTimeout = %v, want %v", cfg.Server.ReadHeaderTimeout, 5*time.Second)
	}
	if cfg.Storage.DataDir != "/srv/scribe/data" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "/srv/scribe/data")
	}
	if cfg.Storage.UsersFile != "/srv/scribe/users.yml" {
		t.Errorf("Storage.UsersFile = %q, want %q", cfg.Storage.UsersFile, "/srv/scribe/users.yml")
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("Session.TTL = %v, want %v", cfg.Session.TTL, 2*time.Hour)
	}
	if cfg.Session.MaxSessions != 50 {
		t.Errorf("Session.MaxSessions = %d, want 50", cfg.Session.MaxSessions)
	}
	if cfg.Session.CookieName != "docs" {
		t.Errorf("Session.CookieName = %q, want %q", cfg.Session.CookieName, "docs")
	}
	if cfg.Auth.AdminUsername != "root" {
		t.Errorf("Auth.AdminUsername = %q, want %q", cfg.Auth.AdminUsername, "root")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
session:
  secret: "0123456789abcdef"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, DefaultHTTPAddr)
	}
	if cfg.Server.ReadHeaderTimeout != DefaultReadHeaderTimeout {
		t.Errorf("Server.ReadHeaderTimeout = %v, want %v", cfg.Server.ReadHeaderTimeout, DefaultReadHeaderTimeout)
	}
	if cfg.Storage.DataDir != DefaultDataDir {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, DefaultDataDir)
	}
	if cfg.Storage.UsersFile != DefaultUsersFile {
		t.Errorf("Storage.UsersFile = %q, want %q", cfg.Storage.UsersFile, DefaultUsersFile)
	}
	if cfg.Session.TTL != DefaultSessionTTL {
		t.Errorf("Session.TTL = %v, want %v", cfg.Session.TTL, DefaultSessionTTL)
	}
	if cfg.Session.MaxSessions != DefaultMaxSessions {
		t.Errorf("Session.MaxSessions = %d, want %d", cfg.Session.MaxSessions, DefaultMaxSessions)
	}
	if cfg.Session.CookieName != DefaultCookieName {
		t.Errorf("Session.CookieName = %q, want %q", cfg.Session.CookieName, DefaultCookieName)
	}
	if cfg.Auth.AdminUsername != "admin" {
		t.Errorf("Auth.AdminUsername = %q, want %q", cfg.Auth.AdminUsername, "admin")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want info/text", cfg.Logging)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[server]
http_addr = "127.0.0.1:9000"

[storage]
data_dir = "./docs"

[session]
secret = "toml-secret-0123456789"
ttl = "30m"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "127.0.0.1:9000")
	}
	if cfg.Storage.DataDir != "./docs" {
		t.Errorf("Storage.DataDir = %q, want %q", cfg.Storage.DataDir, "./docs")
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v, want %v", cfg.Session.TTL, 30*time.Minute)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_SCRIBE_SECRET", "from-the-environment")
	t.Setenv("TEST_SCRIBE_ADDR", "localhost:7000")

	path := writeConfig(t, "config.yaml", `
server:
  http_addr: "${TEST_SCRIBE_ADDR}"
session:
  secret: "${TEST_SCRIBE_SECRET}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Session.Secret != "from-the-environment" {
		t.Errorf("Session.Secret = %q, want %q", cfg.Session.Secret, "from-the-environment")
	}
	if cfg.Server.HTTPAddr != "localhost:7000" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "localhost:7000")
	}
}

func TestLoad_MissingEnvVarFailsValidation(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
session:
  secret: "${TEST_SCRIBE_UNSET_SECRET_VAR}"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for empty secret")
	}
	if !strings.Contains(err.Error(), "Secret") {
		t.Errorf("error = %v, want mention of Secret", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "short secret",
			file:    "config.yaml",
			content: "session:\n  secret: \"short\"\n",
			wantErr: "min=16",
		},
		{
			name:    "bad ttl",
			file:    "config.yaml",
			content: "session:\n  secret: \"0123456789abcdef\"\n  ttl: \"forever\"\n",
			wantErr: "session.ttl",
		},
		{
			name:    "bad header timeout",
			file:    "config.yaml",
			content: "server:\n  read_header_timeout: \"soon\"\nsession:\n  secret: \"0123456789abcdef\"\n",
			wantErr: "read_header_timeout",
		},
		{
			name:    "bad log level",
			file:    "config.yaml",
			content: "session:\n  secret: \"0123456789abcdef\"\nlogging:\n  level: \"loud\"\n",
			wantErr: "oneof",
		},
		{
			name:    "negative ttl",
			file:    "config.yaml",
			content: "session:\n  secret: \"0123456789abcdef\"\n  ttl: \"-1h\"\n",
			wantErr: "TTL",
		},
		{
			name:    "invalid yaml",
			file:    "config.yaml",
			content: "server: [",
			wantErr: "parsing config file",
		},
		{
			name:    "invalid toml",
			file:    "config.toml",
			content: "[server\n",
			wantErr: "parsing config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("error = %v, want reading config file", err)
	}
}

func TestValidate_SecretNotLeaked(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Session.Secret = "tiny-secret"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	if strings.Contains(err.Error(), "tiny-secret") {
		t.Errorf("error leaks secret: %v", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_EXPAND_A", "alpha")

	got := expandEnvVars("a=${TEST_EXPAND_A} b=${TEST_EXPAND_MISSING_VAR}")
	if got != "a=alpha b=" {
		t.Errorf("expandEnvVars() = %q, want %q", got, "a=alpha b=")
	}
}
