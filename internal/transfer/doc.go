// Package transfer moves settings in and out of the store as JSON or
// YAML documents keyed by group then key. Imported documents are
// validated against an embedded JSON Schema before any key is written.
package transfer
