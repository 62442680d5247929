// Package config manages the CLI's own settings stored at
// ~/.guisettings/config.yaml, such as where the GUI settings directory
// lives and how log output is formatted. Every key can be overridden with
// a GUISETTINGS_* environment variable.
package config
