// Package config loads the dashboard settings from a TOML file, with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/xolan/wfdash/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "wfdash"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// EnvFile is the optional dotenv file read from the working directory
	EnvFile = ".env"
)

// Environment variables that override file values.
const (
	EnvAPIURL = "WFDASH_API_URL"
	EnvTheme  = "WFDASH_THEME"
	EnvDebug  = "WFDASH_DEBUG"
)

// TimesheetPeriods lists the lookback windows the timesheet offers.
var TimesheetPeriods = []int{7, 14, 30}

// Config represents the application configuration
type Config struct {
	// APIBaseURL is the root of the workforce backend, without the /api suffix
	APIBaseURL string `toml:"api_base_url"`
	// RefreshInterval is how often the today view reloads (Go duration)
	RefreshInterval string `toml:"refresh_interval"`
	// TimesheetDays is the initial timesheet lookback window
	TimesheetDays int `toml:"timesheet_days"`
	// Theme is a bubbletint theme id
	Theme string `toml:"theme"`
	// DownloadDir receives downloaded screenshots; empty means ~/Downloads
	DownloadDir string `toml:"download_dir"`
	// Debug enables debug logging
	Debug bool `toml:"debug"`
}

// DefaultConfig returns a Config pointing at a backend on localhost.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:      "http://127.0.0.1:8000",
		RefreshInterval: "60s",
		TimesheetDays:   7,
		Theme:           "dracula",
		DownloadDir:     "",
		Debug:           false,
	}
}

// Interval returns RefreshInterval as a duration, falling back to one
// minute when it does not parse.
func (c Config) Interval() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// ResolvedDownloadDir returns DownloadDir or the user's Downloads folder.
func (c Config) ResolvedDownloadDir() string {
	if c.DownloadDir != "" {
		return c.DownloadDir
	}
	return osutil.DefaultDownloadDir()
}

// Normalize trims whitespace, lower-cases the theme and strips trailing
// slashes from the base URL.
func (c *Config) Normalize() {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	c.RefreshInterval = strings.TrimSpace(c.RefreshInterval)
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.DownloadDir = strings.TrimSpace(c.DownloadDir)
}

// Validate checks field values. Call Normalize first.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q: must be an http(s) URL such as http://127.0.0.1:8000", c.APIBaseURL)
	}

	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return fmt.Errorf("invalid refresh_interval %q: %w", c.RefreshInterval, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid refresh_interval %q: must be positive", c.RefreshInterval)
	}

	if !ValidTimesheetDays(c.TimesheetDays) {
		return fmt.Errorf("invalid timesheet_days %d: must be one of 7, 14 or 30", c.TimesheetDays)
	}

	if c.Theme == "" {
		return errors.New("invalid theme: must not be empty")
	}

	return nil
}

// ValidTimesheetDays reports whether days is an offered timesheet period.
func ValidTimesheetDays(days int) bool {
	for _, d := range TimesheetPeriods {
		if d == days {
			return true
		}
	}
	return false
}

// Load reads the config file at path. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path, returning DefaultConfig when the
// file does not exist. Any other failure is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString("# wfdash configuration file\n\n"); err != nil {
		return err
	}
	return toml.NewEncoder(f).Encode(cfg)
}

// LoadDotEnv loads variables from a dotenv file into the process
// environment. Variables already set are not overridden and a missing file
// is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides fields from WFDASH_* environment variables.
func (c *Config) ApplyEnv() error {
	c.APIBaseURL = getEnv(EnvAPIURL, c.APIBaseURL)
	c.Theme = getEnv(EnvTheme, c.Theme)

	if v, ok := os.LookupEnv(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDebug, v, err)
		}
		c.Debug = debug
	}

	c.Normalize()
	return c.Validate()
}

// Resolve returns the effective configuration: the file at path (or the
// defaults) with environment overrides applied.
func Resolve(path string) (Config, error) {
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Dir returns the wfdash config directory, creating it if needed.
func Dir() (string, error) {
	return osutil.AppDir(AppName)
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// GenerateSampleConfig returns a commented config file documenting every key.
func GenerateSampleConfig() string {
	def := DefaultConfig()
	return fmt.Sprintf(`# wfdash configuration file
# Uncomment and edit the values you want to change.

# Root URL of the workforce backend (the /api prefix is added automatically).
# Overridden by %s.
# api_base_url = %q

# How often the Today view reloads, as a Go duration ("30s", "2m").
# refresh_interval = %q

# Initial timesheet window: 7, 14 or 30 days.
# timesheet_days = %d

# Colour theme, any bubbletint id (e.g. "dracula", "nord", "gruvbox_dark").
# Overridden by %s.
# theme = %q

# Where downloaded screenshots are saved. Empty means ~/Downloads.
# download_dir = ""

# Write debug output to the log file. Overridden by %s.
# debug = false
`, EnvAPIURL, def.APIBaseURL, def.RefreshInterval, def.TimesheetDays, EnvTheme, def.Theme, EnvDebug)
}
