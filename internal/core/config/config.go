// Package config handles configuration loading and validation for desknotify.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PlatformKind selects the notification backend.
type PlatformKind string

const (
	PlatformAuto       PlatformKind = "auto"
	PlatformDBus       PlatformKind = "dbus"
	PlatformNotifySend PlatformKind = "notify-send"
	PlatformMemory     PlatformKind = "memory"
)

// IsValid reports whether k is a supported platform.
func (k PlatformKind) IsValid() bool {
	switch k {
	case PlatformAuto, PlatformDBus, PlatformNotifySend, PlatformMemory:
		return true
	default:
		return false
	}
}

// InstallMode overrides packaged install detection.
type InstallMode string

const (
	InstallAuto     InstallMode = "auto"
	InstallPackaged InstallMode = "packaged"
	InstallPortable InstallMode = "portable"
)

// IsValid reports whether m is a supported install mode.
func (m InstallMode) IsValid() bool {
	switch m {
	case InstallAuto, InstallPackaged, InstallPortable:
		return true
	default:
		return false
	}
}

// Config holds the application configuration.
type Config struct {
	AppName       string              `yaml:"app_name"`
	Platform      PlatformKind        `yaml:"platform"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Progress      ProgressConfig      `yaml:"progress"`
	Rate          RateConfig          `yaml:"rate"`
	Install       InstallConfig       `yaml:"install"`
	DataDir       string              `yaml:"-"` // set by caller, not from config file
}

// NotificationsConfig holds defaults applied to posted notifications.
type NotificationsConfig struct {
	DefaultTitle string        `yaml:"default_title"`
	Timeout      time.Duration `yaml:"timeout"` // 0 = server default
}

// ProgressConfig holds progress notification settings.
type ProgressConfig struct {
	Max           float64 `yaml:"max"`            // value that counts as complete
	DefaultStatus string  `yaml:"default_status"` // status shown when the text has none
}

// RateConfig limits calls into the notification server.
type RateConfig struct {
	PerSecond float64 `yaml:"per_second"` // 0 disables limiting
	Burst     int     `yaml:"burst"`
}

// InstallConfig controls packaged install detection.
type InstallConfig struct {
	Mode InstallMode `yaml:"mode"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		AppName:  "desknotify",
		Platform: PlatformAuto,
		Notifications: NotificationsConfig{
			DefaultTitle: "desknotify",
		},
		Progress: ProgressConfig{
			Max:           100,
			DefaultStatus: "Downloading…",
		},
		Rate: RateConfig{
			PerSecond: 10,
			Burst:     5,
		},
		Install: InstallConfig{
			Mode: InstallAuto,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.AppName == "" {
		c.AppName = defaults.AppName
	}
	if c.Platform == "" {
		c.Platform = defaults.Platform
	}
	if strings.TrimSpace(c.Notifications.DefaultTitle) == "" {
		c.Notifications.DefaultTitle = defaults.Notifications.DefaultTitle
	}
	if c.Progress.Max == 0 {
		c.Progress.Max = defaults.Progress.Max
	}
	if strings.TrimSpace(c.Progress.DefaultStatus) == "" {
		c.Progress.DefaultStatus = defaults.Progress.DefaultStatus
	}
	if c.Rate.Burst == 0 {
		c.Rate.Burst = defaults.Rate.Burst
	}
	if c.Install.Mode == "" {
		c.Install.Mode = defaults.Install.Mode
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !c.Platform.IsValid() {
		return fmt.Errorf("platform %q is not one of auto, dbus, notify-send, memory", c.Platform)
	}

	if !c.Install.Mode.IsValid() {
		return fmt.Errorf("install.mode %q is not one of auto, packaged, portable", c.Install.Mode)
	}

	if c.Progress.Max <= 0 {
		return fmt.Errorf("progress.max must be greater than 0")
	}

	if c.Notifications.Timeout < 0 {
		return fmt.Errorf("notifications.timeout cannot be negative")
	}

	if c.Rate.PerSecond < 0 {
		return fmt.Errorf("rate.per_second cannot be negative")
	}

	if c.Rate.Burst < 1 {
		return fmt.Errorf("rate.burst must be at least 1")
	}

	return nil
}

// SlotsFile returns the path to the notification slot store.
func (c *Config) SlotsFile() string {
	return filepath.Join(c.DataDir, "slots.yaml")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "desknotify.log")
}
