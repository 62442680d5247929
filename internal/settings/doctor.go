package settings

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/agentx-labs/guisettings/internal/platform"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// Check reports on the health of the settings directory: that it exists,
// that the live store and every profile parse, how the live store's
// schema version compares with SchemaVersion, and whether an interrupted
// write left temp files behind. With fix set, it creates a missing
// directory and removes stale temp files. It returns an error when a
// problem remains.
func (s *Store) Check(w io.Writer, fix bool) error {
	fmt.Fprintln(w, "Settings check:")
	problems := 0

	info, err := s.fs.Stat(s.dir)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", s.dir)
		if !fix {
			fmt.Fprintln(w, "         Run with --fix to create it")
			return fmt.Errorf("settings directory %s does not exist", s.dir)
		}
		if err := s.fs.MkdirAll(s.dir, DirPerm); err != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", s.dir, err)
			return fmt.Errorf("creating settings directory: %w", err)
		}
		if err := platform.Chmod(s.fs, s.dir, DirPerm); err != nil {
			fmt.Fprintf(w, "  [WARN] Could not set permissions on %s: %v\n", s.dir, err)
		}
		fmt.Fprintf(w, "  [FIX ] Created %s with %o\n", s.dir, DirPerm)
		return nil
	case err != nil:
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", s.dir, err)
		return fmt.Errorf("reading settings directory: %w", err)
	case !info.IsDir():
		fmt.Fprintf(w, "  [FAIL] %s is not a directory\n", s.dir)
		return fmt.Errorf("settings path %s is not a directory", s.dir)
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", s.dir)

	problems += s.checkLiveStore(w)

	for _, name := range s.ListProfiles() {
		if name == s.name {
			continue
		}
		if !s.checkParses(w, s.profilePath(name), "profile "+name) {
			problems++
		}
	}

	problems += s.checkTempFiles(w, fix)

	if problems > 0 {
		return fmt.Errorf("%d settings problem(s) found", problems)
	}
	return nil
}

func (s *Store) checkLiveStore(w io.Writer) int {
	path := s.Path()
	if ok, _ := afero.Exists(s.fs, path); !ok {
		fmt.Fprintf(w, "  [INFO] %s not written yet; defaults apply\n", filepath.Base(path))
		return 0
	}
	if !s.checkParses(w, path, "live store") {
		return 1
	}

	f := s.loadFile(path)
	stored, _ := lookup(f, VersionEntry.Path())
	current := semver.MustParse(SchemaVersion)
	v := parseStoredVersion(stored)
	switch {
	case stored == "":
		fmt.Fprintf(w, "  [WARN] live store has no schema version; it is stamped %s on the next save\n", SchemaVersion)
	case v == nil:
		fmt.Fprintf(w, "  [WARN] live store schema version %q is not a version\n", stored)
	case v.GreaterThan(current):
		fmt.Fprintf(w, "  [WARN] live store written by schema %s, newer than supported %s\n", v, current)
	case v.LessThan(current):
		fmt.Fprintf(w, "  [INFO] live store at schema %s; migrated to %s on the next save\n", v, current)
	default:
		fmt.Fprintf(w, "  [ OK ] live store at schema %s\n", v)
	}
	return 0
}

// checkParses loads path strictly, without the lenient options the store
// reads with, so that lines the store would skip are reported.
func (s *Store) checkParses(w io.Writer, path, label string) bool {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", label, err)
		return false
	}
	strict := loadOptions
	strict.SkipUnrecognizableLines = false
	if _, err := ini.LoadSources(strict, data); err != nil {
		fmt.Fprintf(w, "  [FAIL] %s (%s) does not parse: %v\n", label, filepath.Base(path), err)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s parses\n", label)
	return true
}

func (s *Store) checkTempFiles(w io.Writer, fix bool) int {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return 0
	}
	problems := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ProfileExt+".tmp") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if !fix {
			fmt.Fprintf(w, "  [WARN] leftover %s from an interrupted save\n", e.Name())
			problems++
			continue
		}
		if err := s.fs.Remove(path); err != nil {
			fmt.Fprintf(w, "  [FAIL] Could not remove %s: %v\n", e.Name(), err)
			problems++
			continue
		}
		fmt.Fprintf(w, "  [FIX ] Removed %s\n", e.Name())
	}
	return problems
}
