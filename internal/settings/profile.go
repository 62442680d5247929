package settings

import (
	"path/filepath"
	"strings"

	"github.com/agentx-labs/guisettings/internal/branding"
	"github.com/spf13/afero"
)

// CurrentProfileEntry records the name of the profile the live store was
// last saved as. It is a meta key and never leaves the live store.
var CurrentProfileEntry = Entry{Group: GroupMeta, Name: "currentConfig", Default: branding.LiveStore()}

// SwitchToProfile replaces the live settings with the contents of the
// named profile: a partial Reset, then every key of <name>.ini copied in,
// then a sync. Switching to the live store's own name returns immediately
// without touching the filesystem. A missing profile reads as empty.
func (s *Store) SwitchToProfile(name string) error {
	if name == s.name {
		return nil
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	s.Reset(false)

	path := s.profilePath(name)
	if ok, _ := afero.Exists(s.fs, path); !ok {
		s.logger.Warn("profile not found, loading empty profile", "profile", name, "path", path)
	}
	other := s.loadFile(path)
	s.migrate(other, "")

	for key, raw := range allValues(other) {
		setRaw(s.file, key, raw)
	}
	s.Set(CurrentProfileEntry, name)
	return s.Sync()
}

// ListProfiles returns the base names of every profile file in the
// settings directory, the live store included, in directory order.
// A missing directory yields no names.
func (s *Store) ListProfiles() []string {
	return s.listByExt(ProfileExt)
}

// SaveCurrentAsProfile marks name as the current profile and exports the
// live settings to <name>.ini.
func (s *Store) SaveCurrentAsProfile(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.Set(CurrentProfileEntry, name)
	if err := s.BackupTo(name); err != nil {
		return err
	}
	return s.Sync()
}

// BackupTo copies every non-meta key into <name>.ini, creating the file
// or merging into an existing one, and writes it out. Backing up to the
// live store's own name just syncs.
func (s *Store) BackupTo(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if name == s.name {
		return s.Sync()
	}

	path := s.profilePath(name)
	target := s.loadFile(path)
	for key, raw := range allValues(s.file) {
		if IsMeta(key) {
			continue
		}
		setRaw(target, key, raw)
	}
	if err := s.writeFile(target, path); err != nil {
		s.logger.Warn("profile not saved", "profile", name, "path", path, "error", err)
		return err
	}
	return nil
}

func (s *Store) listByExt(ext string) []string {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	return names
}
