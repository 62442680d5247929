package settings

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/agentx-labs/guisettings/internal/branding"
	"github.com/agentx-labs/guisettings/internal/platform"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

var defaultSection = ini.DefaultSection

// loadOptions keeps values verbatim and disables ini's dotted-section
// key inheritance; group names are opaque here. A trailing backslash is
// text, not a line continuation, and surrounding quotes are left for
// decodeValue to interpret.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	SkipUnrecognizableLines: true,
	ChildSectionDelimiter:   "\x1f",
}

// Store is the live settings namespace backed by <dir>/<name>.ini.
type Store struct {
	fs         afero.Fs
	dir        string
	name       string
	file       *ini.File
	dirty      bool
	logger     *slog.Logger
	migrations []Migration
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem the store reads and writes. Defaults to the
// OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

// WithLogger sets the logger for warnings. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithName overrides the base name of the live settings file.
func WithName(name string) Option {
	return func(s *Store) { s.name = name }
}

// WithMigrations registers schema migrations run on open and when a
// profile is loaded.
func WithMigrations(m ...Migration) Option {
	return func(s *Store) { s.migrations = append(s.migrations, m...) }
}

// Open loads the live settings file from dir. A missing or unreadable
// file yields an empty store; the problem is logged, never returned.
func Open(dir string, opts ...Option) *Store {
	s := &Store{
		fs:     afero.NewOsFs(),
		dir:    dir,
		name:   branding.LiveStore(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.file = s.loadFile(s.Path())
	stored := s.Get(VersionEntry).String()
	if s.migrate(s.file, stored) {
		s.dirty = true
	}
	// The stamp alone does not make the store dirty; it is written along
	// with the next real change.
	if !newerThanSchema(stored) {
		setRaw(s.file, VersionEntry.Path(), SchemaVersion)
	}
	return s
}

// Dir returns the settings directory.
func (s *Store) Dir() string { return s.dir }

// Name returns the base name of the live settings file. Switching to a
// profile with this name is a no-op.
func (s *Store) Name() string { return s.name }

// Path returns the live settings file path.
func (s *Store) Path() string { return s.profilePath(s.name) }

// Dirty reports whether there are unsynced changes.
func (s *Store) Dirty() bool { return s.dirty }

// Get returns the stored value for e, falling back to e.Default.
func (s *Store) Get(e Entry) Value {
	return s.GetPath(e.Path(), e.Default)
}

// GetPath returns the stored value at a raw "group/key" path.
func (s *Store) GetPath(path string, def any) Value {
	raw, ok := lookup(s.file, path)
	return Value{raw: raw, set: ok, def: def}
}

// Set stores value under e's path, creating the key if needed.
func (s *Store) Set(e Entry, value any) {
	s.SetPath(e.Path(), value)
}

// SetPath stores value under a raw "group/key" path. Values of an
// unsupported type and paths rejected by ValidateKey are dropped with a
// warning.
func (s *Store) SetPath(path string, value any) {
	if err := ValidateKey(path); err != nil {
		s.logger.Warn("dropping setting with invalid key", "key", path, "error", err)
		return
	}
	raw, err := formatValue(value)
	if err != nil {
		s.logger.Warn("dropping setting with unencodable value", "key", path, "error", err)
		return
	}
	setRaw(s.file, path, raw)
	s.dirty = true
}

// SetRaw stores text exactly as given, with no escaping. Paths rejected by
// ValidateKey are dropped with a warning.
func (s *Store) SetRaw(path, raw string) {
	if err := ValidateKey(path); err != nil {
		s.logger.Warn("dropping setting with invalid key", "key", path, "error", err)
		return
	}
	setRaw(s.file, path, raw)
	s.dirty = true
}

// Contains reports whether a key exists at path.
func (s *Store) Contains(path string) bool {
	_, ok := lookup(s.file, path)
	return ok
}

// Remove deletes the key at path and every key in the group named path,
// including nested groups.
func (s *Store) Remove(path string) {
	if removeKey(s.file, path) {
		s.dirty = true
	}
	if removeGroup(s.file, path) {
		s.dirty = true
	}
}

// Keys returns every key path in the store, sorted.
func (s *Store) Keys() []string {
	return sortedKeys(s.file)
}

// Reset clears settings. With clearAll every key goes, meta included.
// Otherwise only the ResetGroups are removed.
func (s *Store) Reset(clearAll bool) {
	if clearAll {
		s.file = ini.Empty(loadOptions)
		s.dirty = true
		return
	}
	for _, g := range ResetGroups {
		if removeGroup(s.file, g) {
			s.dirty = true
		}
	}
}

// Sync writes pending changes to disk. It is a no-op when nothing changed.
func (s *Store) Sync() error {
	if !s.dirty {
		return nil
	}
	if err := s.writeFile(s.file, s.Path()); err != nil {
		s.logger.Warn("settings not saved", "path", s.Path(), "error", err)
		return err
	}
	s.dirty = false
	return nil
}

// Close syncs the store. The store remains usable afterwards.
func (s *Store) Close() error {
	return s.Sync()
}

func (s *Store) profilePath(name string) string {
	return filepath.Join(s.dir, name+ProfileExt)
}

// loadFile parses the INI file at path, returning an empty file when it
// is missing or malformed.
func (s *Store) loadFile(path string) *ini.File {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("settings file unreadable, using defaults", "path", path, "error", err)
		}
		return ini.Empty(loadOptions)
	}
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		s.logger.Warn("settings file malformed, using defaults", "path", path, "error", err)
		return ini.Empty(loadOptions)
	}
	return f
}

// writeFile serializes f and atomically replaces path.
func (s *Store) writeFile(f *ini.File, path string) error {
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("serializing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", dir, err)
	}
	if err := platform.Chmod(s.fs, dir, DirPerm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), FilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func lookup(f *ini.File, path string) (string, bool) {
	section, key := SplitPath(path)
	sec, err := f.GetSection(section)
	if err != nil && section == rootSection {
		sec, err = f.GetSection(defaultSection)
	}
	if err != nil {
		return "", false
	}
	k, err := sec.GetKey(key)
	if err != nil {
		return "", false
	}
	return decodeValue(k.Value()), true
}

func setRaw(f *ini.File, path, raw string) {
	section, key := SplitPath(path)
	f.Section(section).Key(key).SetValue(encodeValue(raw))
}

// encodeValue returns raw unchanged when ini writes and reloads it
// verbatim. Anything else (line breaks, backticks, control characters,
// surrounding whitespace, a leading double quote) is written as a Go
// quoted string with backticks escaped.
func encodeValue(raw string) string {
	if verbatimSafe(raw) {
		return raw
	}
	return strings.ReplaceAll(strconv.Quote(raw), "`", `\x60`)
}

// decodeValue reverses encodeValue. A double-quoted value that does not
// unquote is returned as written.
func decodeValue(stored string) string {
	if len(stored) < 2 || stored[0] != '"' || stored[len(stored)-1] != '"' {
		return stored
	}
	if raw, err := strconv.Unquote(stored); err == nil {
		return raw
	}
	return stored
}

func verbatimSafe(raw string) bool {
	if raw == "" {
		return true
	}
	if raw[0] == '"' || strings.TrimSpace(raw) != raw {
		return false
	}
	for _, r := range raw {
		if r < 0x20 || r == 0x7f || r == '`' {
			return false
		}
	}
	return true
}

// allValues flattens f into a path → raw value map.
func allValues(f *ini.File) map[string]string {
	values := make(map[string]string)
	for _, sec := range f.Sections() {
		for _, k := range sec.Keys() {
			values[joinPath(sec.Name(), k.Name())] = decodeValue(k.Value())
		}
	}
	return values
}

func sortedKeys(f *ini.File) []string {
	values := allValues(f)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// removeKey deletes one key, dropping its section once empty.
func removeKey(f *ini.File, path string) bool {
	section, key := SplitPath(path)
	sec, err := f.GetSection(section)
	if err != nil || !sec.HasKey(key) {
		return false
	}
	sec.DeleteKey(key)
	if len(sec.Keys()) == 0 && section != defaultSection {
		f.DeleteSection(section)
	}
	return true
}

// removeGroup deletes section g and any section nested under it.
func removeGroup(f *ini.File, g string) bool {
	removed := false
	for _, name := range f.SectionStrings() {
		if name == g || strings.HasPrefix(name, g+"/") {
			f.DeleteSection(name)
			removed = true
		}
	}
	return removed
}
