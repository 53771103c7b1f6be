package openweb

import (
	"strings"
	"time"

	"github.com/temirov/openrepo/internal/execshell"
)

// CommandConfiguration captures configuration values shared by the open command family.
type CommandConfiguration struct {
	RemoteName     string        `mapstructure:"remote"`
	CommandTimeout time.Duration `mapstructure:"timeout"`
	PrintOnly      bool          `mapstructure:"print_only"`
}

// DefaultCommandConfiguration provides baseline configuration values.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RemoteName:     "",
		CommandTimeout: execshell.DefaultCommandTimeout,
		PrintOnly:      false,
	}
}

// DefaultConfigurationValues exposes the baseline configuration as loader defaults
// rooted at the provided configuration key.
func DefaultConfigurationValues(configurationRootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()

	return map[string]any{
		configurationRootKey + ".remote":     defaults.RemoteName,
		configurationRootKey + ".timeout":    defaults.CommandTimeout.String(),
		configurationRootKey + ".print_only": defaults.PrintOnly,
	}
}

// sanitize trims configuration values and restores defaults for unusable entries.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if sanitized.CommandTimeout <= 0 {
		sanitized.CommandTimeout = execshell.DefaultCommandTimeout
	}

	return sanitized
}
