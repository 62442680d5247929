// Package pairlist encodes ordered lists of (key, value) string pairs into
// the opaque blobs the settings store persists for list-valued entries.
//
// The blob is the CBOR core deterministic encoding of the two-element
// array [version, [[key, value], ...]]. Version is currently 1. Only the
// canonical encoding of a list is accepted on decode, so a valid blob
// always re-encodes to the same bytes.
package pairlist
