package settings

import "path/filepath"

// ListStylesheets returns the base names of the stylesheet files in the
// settings directory. Their contents are not read.
func (s *Store) ListStylesheets() []string {
	return s.listByExt(StylesheetExt)
}

// StylesheetPath resolves a stylesheet base name to an absolute path in
// the settings directory.
func (s *Store) StylesheetPath(base string) string {
	p := filepath.Join(s.dir, base+StylesheetExt)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
