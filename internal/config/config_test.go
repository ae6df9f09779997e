package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, "index.html", cfg.DefaultDocument)
	assert.Equal(t, 16, cfg.Backlog)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout.Std())
	assert.Equal(t, time.Duration(0), cfg.WriteTimeout.Std())
	assert.Equal(t, 2048, cfg.MaxRequestLine)
	assert.Nil(t, cfg.Color)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	root := t.TempDir()

	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "staticd.toml",
			content: `port = 9090
root = "` + filepath.ToSlash(root) + `"
default_document = "home.html"
read_timeout = "3s"
write_timeout = "1m"
color = false
`,
		},
		{
			name: "yaml",
			file: "staticd.yaml",
			content: `port: 9090
root: "` + filepath.ToSlash(root) + `"
default_document: home.html
read_timeout: 3s
write_timeout: 1m
color: false
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tc.file, tc.content))
			require.NoError(t, err)

			assert.Equal(t, 9090, cfg.Port)
			assert.Equal(t, filepath.ToSlash(root), cfg.Root)
			assert.Equal(t, "home.html", cfg.DefaultDocument)
			assert.Equal(t, 3*time.Second, cfg.ReadTimeout.Std())
			assert.Equal(t, time.Minute, cfg.WriteTimeout.Std())
			require.NotNil(t, cfg.Color)
			assert.False(t, *cfg.Color)

			// unset keys keep their defaults
			assert.Equal(t, DefaultBacklog, cfg.Backlog)
			assert.Equal(t, DefaultMaxRequestLine, cfg.MaxRequestLine)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		path    string
		content string
	}{
		{name: "unknown extension", path: "staticd.ini", content: "port=1"},
		{name: "bad toml", path: "bad.toml", content: "port = "},
		{name: "bad yaml", path: "bad.yml", content: "port: [1"},
		{name: "bad duration", path: "bad.toml", content: `read_timeout = "soon"`},
		{name: "bad yaml duration", path: "bad.yaml", content: "read_timeout: [1s]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.path, tc.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, "index.html", "x")

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "ephemeral port", mutate: func(c *Config) { c.Port = 0 }},
		{name: "negative port", mutate: func(c *Config) { c.Port = -1 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "empty default document", mutate: func(c *Config) { c.DefaultDocument = "" }, wantErr: true},
		{name: "default document with separator", mutate: func(c *Config) { c.DefaultDocument = "a/index.html" }, wantErr: true},
		{name: "zero backlog", mutate: func(c *Config) { c.Backlog = 0 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.ReadTimeout = -1 }, wantErr: true},
		{name: "tiny request line", mutate: func(c *Config) { c.MaxRequestLine = 4 }, wantErr: true},
		{name: "missing root", mutate: func(c *Config) { c.Root = filepath.Join(dir, "missing") }, wantErr: true},
		{name: "root is a file", mutate: func(c *Config) { c.Root = file }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Root = dir
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
