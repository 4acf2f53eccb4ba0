package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 5*time.Second, cfg.Timeouts.Short)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.Long)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.CookieSettle)
	assert.Equal(t, "https://demo.nopcommerce.com", cfg.URLs.Storefront)
	assert.Equal(t, "https://admin-demo.nopcommerce.com", cfg.URLs.Admin)
	assert.Equal(t, BackendSelenium, cfg.Browser.Backend)
	assert.Equal(t, 1, cfg.Runner.Parallel)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"short above long", func(c *Config) { c.Timeouts.Short = time.Minute }, "must not exceed"},
		{"zero long", func(c *Config) { c.Timeouts.Long = 0 }, "must be positive"},
		{"zero poll", func(c *Config) { c.Timeouts.Poll = 0 }, "timeouts.poll"},
		{"negative pause", func(c *Config) { c.Timeouts.CookieSettle = -time.Second }, "must not be negative"},
		{"zero parallel", func(c *Config) { c.Runner.Parallel = 0 }, "runner.parallel"},
		{"unknown backend", func(c *Config) { c.Browser.Backend = "lynx" }, "browser.backend"},
		{"missing url", func(c *Config) { c.URLs.Admin = "" }, "urls.storefront"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	content := `
timeouts:
  long: 45s
urls:
  storefront: http://localhost:5000
browser:
  backend: playwright
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("STOREFRONT_RUNNER_PARALLEL", "3")
	t.Setenv("STOREFRONT_ADMIN_PASSWORD", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Timeouts.Long)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Short, "unset keys keep their defaults")
	assert.Equal(t, "http://localhost:5000", cfg.URLs.Storefront)
	assert.Equal(t, BackendPlaywright, cfg.Browser.Backend)
	assert.Equal(t, 3, cfg.Runner.Parallel)
	assert.Equal(t, "s3cret", cfg.Credentials.AdminPassword)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestUploadPath(t *testing.T) {
	p := PathConfig{Upload: "/data/upload"}

	assert.Equal(t, filepath.Join("/data/upload", "a.png"), p.UploadPath("a.png"))

	multi := p.UploadPath("a.png", "b.png")
	parts := strings.Split(multi, "\n")
	require.Len(t, parts, 2)
	assert.Equal(t, filepath.Join("/data/upload", "b.png"), parts[1])
}

func TestPathsExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cfg := NewDefaultConfig()
	assert.Equal(t, filepath.Join(home, ".storefront_automation"), cfg.Paths.State)

	t.Setenv("STOREFRONT_PATHS_REPORTS", "~/reports")
	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "reports"), loaded.Paths.Reports)
}
