// Package config provides project configuration for the build CLI.
//
// Configuration lives in an optional .build.yaml file at the working
// directory root. A missing file yields defaults; every field is
// individually overridable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jgrd/build/internal/cache"
)

// FileName is the optional project config file.
const FileName = ".build.yaml"

// Config represents the .build.yaml file.
type Config struct {
	// Remote is the git remote used for fetch/pull/push.
	Remote string `yaml:"remote,omitempty"`

	// CommitMessage is the default commit message for the update rule.
	CommitMessage string `yaml:"commit_message,omitempty"`

	// CacheFile is the path of the last-successful-branch cache.
	CacheFile string `yaml:"cache_file,omitempty"`

	// Server configures the local Python WSGI server.
	Server ServerConfig `yaml:"server,omitempty"`

	// Node configures the Node.js app skeleton.
	Node NodeConfig `yaml:"node,omitempty"`
}

// ServerConfig configures the local WSGI server launched by the run rule.
type ServerConfig struct {
	// Command is the server launcher binary.
	Command string `yaml:"command,omitempty"`

	// App is the WSGI application spec passed to the launcher.
	App string `yaml:"app,omitempty"`

	// Host is the bind address.
	Host string `yaml:"host,omitempty"`

	// Port is the bind port, also the port freed by the exit rule.
	Port int `yaml:"port,omitempty"`

	// Marker is the file whose presence marks a Python project.
	Marker string `yaml:"marker,omitempty"`
}

// NodeConfig configures the Node.js bootstrapper.
type NodeConfig struct {
	// Dir is the app folder scaffolded and launched by `run nodejs`.
	Dir string `yaml:"dir,omitempty"`
}

// Addr returns the host:port bind address for the server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// URL returns the browsable local URL for the server.
func (s ServerConfig) URL() string {
	return fmt.Sprintf("http://%s:%d", s.Host, s.Port)
}

// Default returns the configuration used when no .build.yaml exists.
func Default() *Config {
	return &Config{
		Remote:        "origin",
		CommitMessage: "updated",
		CacheFile:     cache.DefaultFileName,
		Server: ServerConfig{
			Command: "gunicorn",
			App:     "app:app",
			Host:    "127.0.0.1",
			Port:    8000,
			Marker:  "requirements.txt",
		},
		Node: NodeConfig{
			Dir: "nodejs-app",
		},
	}
}

// Load reads the config file from dir, falling back to defaults for a
// missing file and for any field left unset.
//
// Parameters:
//   - dir: Directory containing the optional .build.yaml
//
// Returns:
//   - *Config: The effective configuration
//   - error: Any error reading or parsing an existing file
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var overrides Config
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	cfg.merge(&overrides)
	return cfg, nil
}

// merge applies non-zero override fields on top of the receiver.
func (c *Config) merge(o *Config) {
	if o.Remote != "" {
		c.Remote = o.Remote
	}
	if o.CommitMessage != "" {
		c.CommitMessage = o.CommitMessage
	}
	if o.CacheFile != "" {
		c.CacheFile = o.CacheFile
	}
	if o.Server.Command != "" {
		c.Server.Command = o.Server.Command
	}
	if o.Server.App != "" {
		c.Server.App = o.Server.App
	}
	if o.Server.Host != "" {
		c.Server.Host = o.Server.Host
	}
	if o.Server.Port != 0 {
		c.Server.Port = o.Server.Port
	}
	if o.Server.Marker != "" {
		c.Server.Marker = o.Server.Marker
	}
	if o.Node.Dir != "" {
		c.Node.Dir = o.Node.Dir
	}
}
