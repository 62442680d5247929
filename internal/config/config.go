package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/guisettings/internal/branding"
	"github.com/agentx-labs/guisettings/internal/settings"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys.
const (
	KeySettingsDir = "settings_dir"
	KeyLogFormat   = "log_format"
)

// Dir returns the path to the CLI config directory (~/.guisettings/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.guisettings/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates ~/.guisettings so Set has somewhere to write. It is
// separate from the settings directory, which holds the emulator's INI
// files and is created by the store on first write.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load reads the CLI's own configuration: where the settings directory
// lives (settings_dir) and how logs are rendered (log_format). Values come
// from ~/.guisettings/config.yaml and GUISETTINGS_* variables, with the
// environment taking precedence. A missing config file is not an error.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyLogFormat, "text")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// SettingsDir returns the GUI settings directory: the settings_dir key
// (GUISETTINGS_SETTINGS_DIR) when set, otherwise <executable dir>/GuiConfigs.
func SettingsDir() string {
	if dir := viper.GetString(KeySettingsDir); dir != "" {
		return dir
	}
	return settings.DefaultDir()
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
