// Package branding provides compile-time identity values for the CLI and
// the settings store.
//
// Values come from branding.yaml, embedded with //go:embed. Hard defaults
// apply when the embedded file is missing a field.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	SettingsDir string `yaml:"settings_dir"`
	LiveStore   string `yaml:"live_store"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "guisettings",
			DisplayName: "GUI Settings",
			Description: "Inspect and edit emulator front-end preferences and profiles",
			HomeDir:     ".guisettings",
			EnvPrefix:   "GUISETTINGS",
			GoModule:    "github.com/agentx-labs/guisettings",
			SettingsDir: "GuiConfigs",
			LiveStore:   "CurrentSettings",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "guisettings").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".guisettings").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "GUISETTINGS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path.
func GoModule() string { load(); return defaults.GoModule }

// SettingsDir returns the name of the directory, next to the executable,
// that holds the live store, profiles and stylesheets (e.g., "GuiConfigs").
func SettingsDir() string { load(); return defaults.SettingsDir }

// LiveStore returns the reserved base name of the live settings file
// (e.g., "CurrentSettings").
func LiveStore() string { load(); return defaults.LiveStore }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("DIR") → "GUISETTINGS_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
