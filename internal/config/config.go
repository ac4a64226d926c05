package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds regexfav settings.
type Config struct {
	APIBase       string
	PrefsPath     string
	LogFile       string
	LogLevel      string
	PreviewLength int
	SettleDelay   time.Duration
}

const (
	defaultConfigPath    = "~/.config/regexfav/config.toml"
	defaultAPIBase       = "https://regexr.com"
	defaultPrefsPath     = "~/.config/regexfav/prefs.toml"
	defaultLogFile       = "~/.local/state/regexfav/regexfav.log"
	defaultLogLevel      = "info"
	defaultPreviewLength = 125
	defaultSettleDelayMS = 100
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:       defaultAPIBase,
		PrefsPath:     mustExpand(defaultPrefsPath),
		LogFile:       mustExpand(defaultLogFile),
		LogLevel:      defaultLogLevel,
		PreviewLength: defaultPreviewLength,
		SettleDelay:   defaultSettleDelayMS * time.Millisecond,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase       string `toml:"api_base"`
		PrefsPath     string `toml:"prefs_path"`
		LogFile       string `toml:"log_file"`
		LogLevel      string `toml:"log_level"`
		PreviewLength int    `toml:"preview_length"`
		SettleDelayMS int    `toml:"settle_delay_ms"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.PrefsPath); v != "" {
		cfg.PrefsPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.PreviewLength > 0 {
		cfg.PreviewLength = raw.PreviewLength
	}
	if raw.SettleDelayMS > 0 {
		cfg.SettleDelay = time.Duration(raw.SettleDelayMS) * time.Millisecond
	}

	return cfg, nil
}

// Override applies non-empty command-line values on top of the loaded config.
func (c Config) Override(apiBase, prefsPath string) Config {
	if v := strings.TrimSpace(apiBase); v != "" {
		c.APIBase = v
	}
	if v := strings.TrimSpace(prefsPath); v != "" {
		c.PrefsPath = mustExpand(v)
	}
	return c
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
