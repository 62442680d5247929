package settings

import (
	"bytes"
	"sort"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/ini.v1"
)

// SchemaVersion is the settings layout version stamped into Meta/version.
const SchemaVersion = "1.1.0"

// VersionEntry holds the schema version that last wrote the live store.
var VersionEntry = Entry{Group: GroupMeta, Name: "version", Default: ""}

// Migration upgrades settings written by an older schema. Apply must be
// idempotent: profile files carry no version stamp, so every migration
// runs against them each time they are loaded.
type Migration struct {
	// Version is the schema version the migration upgrades to.
	Version     string
	Description string
	Apply       func(Editor)
}

// Editor is the raw key view a Migration works against.
type Editor interface {
	Get(path string) Value
	Lookup(path string) (string, bool)
	SetRaw(path, raw string)
	Remove(path string)
	Keys() []string
}

// fileEditor lets a migration edit either the live file or a loaded profile.
type fileEditor struct {
	file *ini.File
}

// migrate runs every registered migration newer than stored and not newer
// than SchemaVersion, in version order. It reports whether they changed
// f; migrations that find nothing to upgrade leave the store clean.
func (s *Store) migrate(f *ini.File, stored string) bool {
	if len(s.migrations) == 0 {
		return false
	}

	current := semver.MustParse(SchemaVersion)
	from := parseStoredVersion(stored)
	if from == nil {
		s.logger.Warn("unparseable settings version, treating as unversioned", "version", stored)
		from = semver.MustParse("0.0.0")
	}
	if from.GreaterThan(current) {
		s.logger.Warn("settings written by a newer version, using as-is",
			"stored", stored, "supported", SchemaVersion)
		return false
	}

	type pending struct {
		v *semver.Version
		m Migration
	}
	var todo []pending
	for _, m := range s.migrations {
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			s.logger.Warn("skipping migration with invalid version", "version", m.Version, "error", err)
			continue
		}
		if v.GreaterThan(from) && !v.GreaterThan(current) {
			todo = append(todo, pending{v: v, m: m})
		}
	}
	sort.SliceStable(todo, func(i, j int) bool { return todo[i].v.LessThan(todo[j].v) })

	if len(todo) == 0 {
		return false
	}

	before := serialize(f)
	ed := &fileEditor{file: f}
	for _, p := range todo {
		s.logger.Debug("applying settings migration", "version", p.m.Version, "description", p.m.Description)
		p.m.Apply(ed)
	}
	return !bytes.Equal(before, serialize(f))
}

func serialize(f *ini.File) []byte {
	var buf bytes.Buffer
	_, _ = f.WriteTo(&buf)
	return buf.Bytes()
}

// parseStoredVersion returns nil for a non-empty unparseable version and
// 0.0.0 for an unversioned file.
func parseStoredVersion(stored string) *semver.Version {
	if stored == "" {
		return semver.MustParse("0.0.0")
	}
	v, err := semver.NewVersion(stored)
	if err != nil {
		return nil
	}
	return v
}

// newerThanSchema reports whether stored names a version later than
// SchemaVersion.
func newerThanSchema(stored string) bool {
	v := parseStoredVersion(stored)
	return v != nil && v.GreaterThan(semver.MustParse(SchemaVersion))
}

func (e *fileEditor) Get(path string) Value {
	raw, ok := lookup(e.file, path)
	return Value{raw: raw, set: ok}
}

func (e *fileEditor) Lookup(path string) (string, bool) { return lookup(e.file, path) }

func (e *fileEditor) SetRaw(path, raw string) {
	if ValidateKey(path) == nil {
		setRaw(e.file, path, raw)
	}
}

func (e *fileEditor) Remove(path string) { removeKey(e.file, path) }

func (e *fileEditor) Keys() []string { return sortedKeys(e.file) }
