package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadMissingFile verifies that a missing .build.yaml yields defaults.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Remote != "origin" {
		t.Errorf("Remote = %q, want %q", cfg.Remote, "origin")
	}
	if cfg.CommitMessage != "updated" {
		t.Errorf("CommitMessage = %q, want %q", cfg.CommitMessage, "updated")
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.Marker != "requirements.txt" {
		t.Errorf("Server.Marker = %q, want requirements.txt", cfg.Server.Marker)
	}
	if cfg.Node.Dir != "nodejs-app" {
		t.Errorf("Node.Dir = %q, want nodejs-app", cfg.Node.Dir)
	}
}

// TestLoadOverrides verifies that set fields override defaults while unset
// fields keep them.
func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `
remote: upstream
server:
  port: 5000
  command: waitress-serve
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Remote != "upstream" {
		t.Errorf("Remote = %q, want upstream", cfg.Remote)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.Command != "waitress-serve" {
		t.Errorf("Server.Command = %q, want waitress-serve", cfg.Server.Command)
	}
	// Untouched fields keep defaults
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.CommitMessage != "updated" {
		t.Errorf("CommitMessage = %q, want updated", cfg.CommitMessage)
	}
}

// TestLoadInvalidYAML verifies that a malformed config file is an error.
func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(":\n  - ["), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load() error = nil for malformed YAML, want error")
	}
}

// TestServerAddrURL verifies address formatting.
func TestServerAddrURL(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8000}

	if got := s.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8000", got)
	}
	if got := s.URL(); got != "http://127.0.0.1:8000" {
		t.Errorf("URL() = %q, want http://127.0.0.1:8000", got)
	}
}
