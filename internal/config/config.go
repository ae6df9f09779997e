// Package config holds the server's startup configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = 8080
	DefaultRoot           = "."
	DefaultDocument       = "index.html"
	DefaultBacklog        = 16
	DefaultReadTimeout    = 10 * time.Second
	DefaultMaxRequestLine = 2048
	minMaxRequestLine     = 16
	maxPort               = 65535
)

// Config specifies how the server listens and what it serves.
type Config struct {
	// Port is the TCP port bound on all interfaces. 0 picks an ephemeral port.
	Port int `toml:"port" yaml:"port"`
	// Root is the serving directory. Requested paths never resolve outside it.
	Root string `toml:"root" yaml:"root"`
	// DefaultDocument is served for an empty request path (e.g. "GET /").
	DefaultDocument string `toml:"default_document" yaml:"default_document"`
	// Backlog is the listen(2) queue length.
	Backlog int `toml:"backlog" yaml:"backlog"`
	// ReadTimeout bounds the wait for the request line. Zero disables it.
	ReadTimeout Duration `toml:"read_timeout" yaml:"read_timeout"`
	// WriteTimeout bounds sending the response. Zero disables it.
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
	// MaxRequestLine is the longest accepted request line in bytes.
	MaxRequestLine int `toml:"max_request_line" yaml:"max_request_line"`
	// Color forces colored log output on or off. Nil leaves the decision to
	// terminal detection.
	Color *bool `toml:"color" yaml:"color"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Port:            DefaultPort,
		Root:            DefaultRoot,
		DefaultDocument: DefaultDocument,
		Backlog:         DefaultBacklog,
		ReadTimeout:     Duration(DefaultReadTimeout),
		MaxRequestLine:  DefaultMaxRequestLine,
	}
}

// Load decodes the file at path over the defaults. The format is chosen by
// extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return cfg, nil
}

// Validate checks ranges and that Root is an existing directory.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > maxPort {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.DefaultDocument == "" {
		errs = append(errs, errors.New("default document must not be empty"))
	} else if strings.ContainsAny(c.DefaultDocument, `/\`) {
		errs = append(errs, fmt.Errorf("default document %q must be a plain file name", c.DefaultDocument))
	}
	if c.Backlog <= 0 {
		errs = append(errs, fmt.Errorf("backlog %d must be positive", c.Backlog))
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	if c.MaxRequestLine < minMaxRequestLine {
		errs = append(errs, fmt.Errorf("max request line %d below %d", c.MaxRequestLine, minMaxRequestLine))
	}

	info, err := os.Stat(c.Root)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("root: %w", err))
	case !info.IsDir():
		errs = append(errs, fmt.Errorf("root %q is not a directory", c.Root))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address for all interfaces.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
