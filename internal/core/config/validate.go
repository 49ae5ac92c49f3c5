package config

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility and the tools the selected platform depends on. The configPath
// argument specifies the config file location to validate (empty string skips config
// file check). This calls Validate() first for basic structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validatePlatformTools(),
		c.validateText(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Rate.PerSecond == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Rate",
			Message:  "rate limiting is disabled; fast progress producers may flood the notification server",
		})
	}

	if c.Notifications.Timeout > 0 && c.Notifications.Timeout < time.Second {
		warnings = append(warnings, ValidationWarning{
			Category: "Notifications",
			Item:     "timeout",
			Message:  fmt.Sprintf("timeout %s is shorter than a second", c.Notifications.Timeout),
		})
	}

	if c.Platform == PlatformMemory {
		warnings = append(warnings, ValidationWarning{
			Category: "Platform",
			Message:  "memory platform never shows notifications on the desktop",
		})
	}

	return warnings
}

// validateFileAccess checks config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validatePlatformTools checks the commands the notify-send platform runs.
func (c *Config) validatePlatformTools() error {
	if c.Platform != PlatformNotifySend {
		return nil
	}

	var errs criterio.FieldErrorsBuilder
	for _, tool := range []string{"notify-send", "gdbus"} {
		if err := executableExists(tool); err != nil {
			errs = errs.Append("platform", err)
		}
	}
	return errs.ToError()
}

// validateText checks the strings shown to the user.
func (c *Config) validateText() error {
	var errs criterio.FieldErrorsBuilder
	if strings.ContainsAny(c.Progress.DefaultStatus, ":：") {
		errs = errs.Append("progress.default_status", fmt.Errorf("must not contain a colon separator"))
	}
	if strings.ContainsAny(c.AppName, "\n\t") {
		errs = errs.Append("app_name", fmt.Errorf("must be a single line"))
	}
	return errs.ToError()
}

// executableExists validates that the command is on PATH.
func executableExists(path string) error {
	if path == "" {
		return nil
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("executable not found: %s", path)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
