// Package settings implements the persistent preferences store: a flat
// "group/key" namespace backed by one INI file in the settings directory,
// with typed accessors keyed by Entry descriptors, bulk reset, and export
// to and import from named profile files that share the same directory
// and format.
//
// Reads never fail. A missing file, a missing key, or a malformed value
// all resolve to the entry's default. Writes go through an afero.Fs and
// replace the target file atomically.
//
// A Store is owned by one caller and is not safe for concurrent use.
package settings
