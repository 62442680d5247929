package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/guisettings/internal/branding"
	"github.com/agentx-labs/guisettings/internal/platform"
)

// File extensions used inside the settings directory.
const (
	ProfileExt    = ".ini"
	StylesheetExt = ".qss"
)

// Groups with a fixed meaning to the store.
const (
	GroupLogger     = "Logger"
	GroupMainWindow = "main_window"
	GroupGameList   = "GameList"
	GroupMeta       = "Meta"
)

// RootGroup holds keys whose path has no group component.
const RootGroup = "General"

const rootSection = RootGroup

// ResetGroups are the groups a partial Reset removes. Everything else
// (meta bookkeeping, stylesheet choice, unrelated groups) survives.
var ResetGroups = []string{GroupLogger, GroupMainWindow, GroupGameList}

// Permission constants.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// ErrInvalidName is returned for profile names that are empty or would
// escape the settings directory.
var ErrInvalidName = errors.New("invalid profile name")

// ErrInvalidKey is returned for key paths that would not read back from
// the settings file as written.
var ErrInvalidKey = errors.New("invalid settings key")

// DefaultDir returns the settings directory next to the running
// executable (<exe dir>/GuiConfigs). It falls back to a relative path
// when the executable location cannot be resolved.
func DefaultDir() string {
	dir, err := platform.ExecutableDir()
	if err != nil {
		return branding.SettingsDir()
	}
	return filepath.Join(dir, branding.SettingsDir())
}

// ValidateName checks that name can be used as a profile file base name.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// ValidateKey checks that path names a key that survives a write and
// reload. The key name must be non-empty, carry no surrounding
// whitespace, not start with a comment or section marker, and contain
// none of = : " ` or control characters. The group may not contain ] or
// control characters, nor begin or end with whitespace.
func ValidateKey(path string) error {
	section, key := SplitPath(path)
	switch {
	case key == "":
		return fmt.Errorf("%w: %q has an empty key name", ErrInvalidKey, path)
	case strings.TrimSpace(key) != key:
		return fmt.Errorf("%w: %q has surrounding whitespace in its key name", ErrInvalidKey, path)
	case strings.ContainsAny(key[:1], "#;["):
		return fmt.Errorf("%w: %q key name starts with %q", ErrInvalidKey, path, key[:1])
	case strings.ContainsAny(key, "=:\"`") || hasControl(key):
		return fmt.Errorf("%w: %q key name contains a reserved character", ErrInvalidKey, path)
	case strings.TrimSpace(section) != section:
		return fmt.Errorf("%w: %q has surrounding whitespace in its group", ErrInvalidKey, path)
	case strings.Contains(section, "]") || hasControl(section):
		return fmt.Errorf("%w: %q group contains a reserved character", ErrInvalidKey, path)
	case section == defaultSection:
		return fmt.Errorf("%w: group %q is reserved", ErrInvalidKey, section)
	}
	return nil
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}

// SplitPath breaks "group/key" at the last slash. A path without a slash
// belongs to the root group "General".
func SplitPath(path string) (section, key string) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return rootSection, path
	}
	return path[:i], path[i+1:]
}

// joinPath is the inverse of SplitPath.
func joinPath(section, key string) string {
	if section == rootSection || section == "" || section == defaultSection {
		return key
	}
	return section + "/" + key
}

// IsMeta reports whether path is store bookkeeping excluded from profile
// exports.
func IsMeta(path string) bool {
	return strings.HasPrefix(path, GroupMeta)
}
