package fsutil

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the name of the application used in paths
	AppName = "tilegrab"

	// ConfigFileName is the settings file name inside the config directory.
	ConfigFileName = "config.yaml"
)

// GetConfigDir returns the platform-specific configuration directory for the application
// On Linux: ~/.config/tilegrab/
// On macOS: ~/Library/Application Support/tilegrab/
// On Windows: %AppData%\tilegrab\
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// GetDefaultConfigPath returns the default location of the settings file.
func GetDefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}
