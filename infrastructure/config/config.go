package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names accepted by browser.backend
const (
	BackendSelenium   = "selenium"
	BackendPlaywright = "playwright"
)

// Config holds the whole automation configuration. It is read-only once
// loaded and may be shared between parallel sessions.
type Config struct {
	Timeouts    TimeoutConfig     `mapstructure:"timeouts" yaml:"timeouts"`
	URLs        URLConfig         `mapstructure:"urls" yaml:"urls"`
	Paths       PathConfig        `mapstructure:"paths" yaml:"paths"`
	Browser     BrowserConfig     `mapstructure:"browser" yaml:"browser"`
	Logger      LoggerConfig      `mapstructure:"logger" yaml:"logger"`
	Runner      RunnerConfig      `mapstructure:"runner" yaml:"runner"`
	Credentials CredentialsConfig `mapstructure:"credentials" yaml:"credentials"`
}

// TimeoutConfig holds the wait bounds and fixed pauses
type TimeoutConfig struct {
	Short time.Duration `mapstructure:"short" yaml:"short"`
	Long  time.Duration `mapstructure:"long" yaml:"long"`
	// Poll is the interval between two evaluations of an explicit wait
	Poll time.Duration `mapstructure:"poll" yaml:"poll"`
	// CookieSettle is the pause between adding cookies and reloading
	CookieSettle time.Duration `mapstructure:"cookie_settle" yaml:"cookie_settle"`
	Highlight    time.Duration `mapstructure:"highlight" yaml:"highlight"`
	ScrollSettle time.Duration `mapstructure:"scroll_settle" yaml:"scroll_settle"`
}

// URLConfig holds the base URLs of the storefront and the admin console
type URLConfig struct {
	Storefront string `mapstructure:"storefront" yaml:"storefront"`
	Admin      string `mapstructure:"admin" yaml:"admin"`
}

// PathConfig holds filesystem locations used by scenarios and reports
type PathConfig struct {
	Upload   string `mapstructure:"upload" yaml:"upload"`
	Download string `mapstructure:"download" yaml:"download"`
	Reports  string `mapstructure:"reports" yaml:"reports"`
	State    string `mapstructure:"state" yaml:"state"`
}

// BrowserConfig selects and tunes the driver backend
type BrowserConfig struct {
	Backend      string `mapstructure:"backend" yaml:"backend"`
	DriverPath   string `mapstructure:"driver_path" yaml:"driver_path"`
	BinaryPath   string `mapstructure:"binary_path" yaml:"binary_path"`
	Port         int    `mapstructure:"port" yaml:"port"`
	Headless     bool   `mapstructure:"headless" yaml:"headless"`
	WindowWidth  int    `mapstructure:"window_width" yaml:"window_width"`
	WindowHeight int    `mapstructure:"window_height" yaml:"window_height"`
}

// LoggerConfig configures the logrus logger
type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// RunnerConfig configures scenario execution
type RunnerConfig struct {
	// Parallel is the number of sessions that may run at the same time
	Parallel int `mapstructure:"parallel" yaml:"parallel"`
}

// CredentialsConfig holds accounts used by the scenarios
type CredentialsConfig struct {
	AdminEmail    string `mapstructure:"admin_email" yaml:"admin_email"`
	AdminPassword string `mapstructure:"admin_password" yaml:"admin_password"`
	UserPassword  string `mapstructure:"user_password" yaml:"user_password"`
}

// SetDefaults initializes default values for every configuration key
func SetDefaults(v *viper.Viper) {
	// -- Timeouts --
	v.SetDefault("timeouts.short", 5*time.Second)
	v.SetDefault("timeouts.long", 30*time.Second)
	v.SetDefault("timeouts.poll", 500*time.Millisecond)
	v.SetDefault("timeouts.cookie_settle", 5*time.Second)
	v.SetDefault("timeouts.highlight", time.Second)
	v.SetDefault("timeouts.scroll_settle", time.Second)

	// -- URLs --
	v.SetDefault("urls.storefront", "https://demo.nopcommerce.com")
	v.SetDefault("urls.admin", "https://admin-demo.nopcommerce.com")

	// -- Paths --
	v.SetDefault("paths.upload", "uploadFile")
	v.SetDefault("paths.download", "downloadFile")
	v.SetDefault("paths.reports", "reports")
	v.SetDefault("paths.state", "~/.storefront_automation")

	// -- Browser --
	v.SetDefault("browser.backend", BackendSelenium)
	v.SetDefault("browser.driver_path", "")
	v.SetDefault("browser.binary_path", "")
	v.SetDefault("browser.port", 9515)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.window_width", 1280)
	v.SetDefault("browser.window_height", 720)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Runner --
	v.SetDefault("runner.parallel", 1)

	// -- Credentials --
	v.SetDefault("credentials.admin_email", "admin@yourstore.com")
	v.SetDefault("credentials.admin_password", "admin")
	v.SetDefault("credentials.user_password", "123456")
}

// NewDefaultConfig creates a configuration populated with default values only
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	if err := cfg.expandPaths(); err != nil {
		panic(fmt.Sprintf("failed to expand default paths: %v", err))
	}
	return &cfg
}

// NewViper returns a viper instance with defaults and STOREFRONT_* environment
// overrides. The optional file is read when path is not empty; otherwise a
// storefront.yaml in the working directory is picked up if present.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("credentials.admin_password", "STOREFRONT_ADMIN_PASSWORD")
	v.BindEnv("browser.driver_path", "STOREFRONT_BROWSER_DRIVER_PATH", "BROWSER_DRIVER_PATH")
	v.BindEnv("browser.binary_path", "STOREFRONT_BROWSER_BINARY_PATH", "CHROME_BINARY_PATH")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// NewConfigFromViper creates a validated configuration from a viper instance
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Load reads the configuration file at path (optional) plus environment
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return NewConfigFromViper(v)
}

// Validate checks the configuration for sane values
func (c *Config) Validate() error {
	if c.Timeouts.Short <= 0 || c.Timeouts.Long <= 0 {
		return fmt.Errorf("timeouts.short and timeouts.long must be positive durations")
	}
	if c.Timeouts.Short > c.Timeouts.Long {
		return fmt.Errorf("timeouts.short (%s) must not exceed timeouts.long (%s)", c.Timeouts.Short, c.Timeouts.Long)
	}
	if c.Timeouts.Poll <= 0 {
		return fmt.Errorf("timeouts.poll must be a positive duration")
	}
	if c.Timeouts.CookieSettle < 0 || c.Timeouts.Highlight < 0 || c.Timeouts.ScrollSettle < 0 {
		return fmt.Errorf("pause durations must not be negative")
	}
	if c.Runner.Parallel <= 0 {
		return fmt.Errorf("runner.parallel must be a positive integer")
	}
	switch c.Browser.Backend {
	case BackendSelenium, BackendPlaywright:
	default:
		return fmt.Errorf("browser.backend must be %q or %q, got %q", BackendSelenium, BackendPlaywright, c.Browser.Backend)
	}
	if c.URLs.Storefront == "" || c.URLs.Admin == "" {
		return fmt.Errorf("urls.storefront and urls.admin are required")
	}
	return nil
}

// UploadPath - joins file names below the upload folder. Several names are
// separated by newlines, which is how a multi-file input accepts them.
func (p PathConfig) UploadPath(names ...string) string {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(absolute(p.Upload), name))
	}
	return strings.Join(paths, "\n")
}

// DownloadDir - returns the absolute download folder the browser saves into
func (p PathConfig) DownloadDir() string {
	return absolute(p.Download)
}

// DownloadPath - returns the absolute path of a downloaded file
func (p PathConfig) DownloadPath(name string) string {
	return filepath.Join(p.DownloadDir(), name)
}

func absolute(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// expandPaths - resolves a leading ~ in every configured filesystem path
func (c *Config) expandPaths() error {
	paths := []*string{
		&c.Paths.Upload,
		&c.Paths.Download,
		&c.Paths.Reports,
		&c.Paths.State,
		&c.Browser.DriverPath,
		&c.Browser.BinaryPath,
		&c.Logger.File,
	}
	for _, p := range paths {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}
