// Package manifest reads and rewrites the project's pyproject.toml.
//
// Writes are merge-on-write: the document is loaded in full, a single
// dot-separated key path is assigned, and the whole document is written back
// with a temp-file-then-rename so readers never see a partial file. Keys the
// writer does not manage survive the round trip; table ordering follows the
// serializer, which TOML treats as insignificant.
package manifest
