// Package cli defines the Cobra command tree for the guisettings CLI. Each
// file registers one top-level command (get, set, profile, category, etc.)
// with the root command. Commands open the settings store, delegate to the
// settings, gui and transfer packages, and only handle argument parsing,
// output formatting and user interaction.
package cli
