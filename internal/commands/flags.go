package commands

import (
	"os"
	"path/filepath"

	"github.com/hay-kot/desknotify/internal/core/config"
	"github.com/hay-kot/desknotify/internal/core/eventbus"
	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/hay-kot/desknotify/internal/platform"
	"github.com/hay-kot/desknotify/pkg/executil"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	Theme      string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Platform is the backend selected by the config
	Platform *platform.Platform

	// PlatformErr is set when the configured backend failed to open and
	// Platform holds the disabled fallback (doctor only)
	PlatformErr error

	// Service is the notification facade over Platform
	Service *notify.Service

	// Bus carries activation and closed events from the backend
	Bus *eventbus.EventBus

	// Exec runs external commands
	Exec executil.Executor
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "desknotify", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "desknotify")
}

// DefaultLogFile returns the default log file path using XDG_STATE_HOME.
// Defaults to ~/.local/state/desknotify/desknotify.log.
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "desknotify", "desknotify.log")
}
