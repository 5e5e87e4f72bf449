package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appDir = "filename-copier"

type Config struct {
	Debounce       string       `toml:"debounce"`
	CaptureTimeout string       `toml:"capture_timeout"`
	Notify         bool         `toml:"notify"`
	Assets         AssetsConfig `toml:"assets"`
	Settle         SettleConfig `toml:"settle"`
	Log            LogConfig    `toml:"log"`
	Window         WindowConfig `toml:"window"`
}

type AssetsConfig struct {
	Dir        string `toml:"dir"`
	Background string `toml:"background"`
	Sound      string `toml:"sound"`
}

// SettleConfig enables waiting for the watched folder to go quiet after the
// debounce delay. Off by default.
type SettleConfig struct {
	Enabled bool   `toml:"enabled"`
	Quiet   string `toml:"quiet"`
	Timeout string `toml:"timeout"`
}

type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

func Default() *Config {
	return &Config{
		Debounce:       "1.5s",
		CaptureTimeout: "10s",
		Assets: AssetsConfig{
			Background: "background.png",
			Sound:      "signature.wav",
		},
		Settle: SettleConfig{
			Quiet:   "300ms",
			Timeout: "5s",
		},
		Log: LogConfig{
			Level: "info",
		},
		Window: WindowConfig{
			Width:  500,
			Height: 500,
		},
	}
}

// Path returns $FNC_CONFIG when set, otherwise config.toml inside the user
// config directory.
func Path() (string, error) {
	if p := os.Getenv("FNC_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, appDir, "config.toml"), nil
}

// Load reads the configuration file if it exists and applies environment
// overrides. The file is never created or written.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FNC_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	} else if os.Getenv("FNC_DEBUG") == "1" {
		c.Log.Level = "debug"
	}

	if os.Getenv("FNC_JSON_LOGS") == "true" {
		c.Log.JSON = true
	}

	if v := os.Getenv("FNC_ASSET_DIR"); v != "" {
		c.Assets.Dir = v
	}
}

func (c *Config) Validate() error {
	durations := []struct {
		name  string
		value string
	}{
		{"debounce", c.Debounce},
		{"capture_timeout", c.CaptureTimeout},
		{"settle.quiet", c.Settle.Quiet},
		{"settle.timeout", c.Settle.Timeout},
	}
	for _, d := range durations {
		if _, err := parseDuration(d.name, d.value); err != nil {
			return err
		}
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Assets.Background == "" {
		return errors.New("assets.background must not be empty")
	}
	if c.Assets.Sound == "" {
		return errors.New("assets.sound must not be empty")
	}
	return nil
}

func (c *Config) DebounceDuration() time.Duration {
	d, _ := parseDuration("debounce", c.Debounce)
	return d
}

func (c *Config) CaptureTimeoutDuration() time.Duration {
	d, _ := parseDuration("capture_timeout", c.CaptureTimeout)
	return d
}

func (c *Config) SettleQuietDuration() time.Duration {
	d, _ := parseDuration("settle.quiet", c.Settle.Quiet)
	return d
}

func (c *Config) SettleTimeoutDuration() time.Duration {
	d, _ := parseDuration("settle.timeout", c.Settle.Timeout)
	return d
}

// An empty value means zero.
func parseDuration(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", name, value)
	}
	return d, nil
}
