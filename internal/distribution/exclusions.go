package distribution

import "strings"

// Ruleset decides which paths never appear in a distribution archive.
// Matching any single segment of a candidate path excludes the whole path.
type Ruleset struct {
	segments        map[string]struct{}
	segmentSuffixes []string
	fileSuffixes    []string
	names           map[string]struct{}
}

// DefaultRuleset returns the exclusions applied to every direct archival
// build: virtual environments, build output, caches, version-control
// metadata, coverage data, compiled bytecode, OS metadata files, and
// packaging metadata directories.
func DefaultRuleset() Ruleset {
	return NewRuleset(
		[]string{
			".venv", "venv", "dist", "build",
			"__pycache__", ".git", ".hg", ".svn",
			".pytest_cache", ".mypy_cache", ".ruff_cache",
			".tox", ".eggs", "htmlcov", ".idea", ".vscode",
		},
		[]string{".egg-info", ".dist-info"},
		[]string{".pyc", ".pyo", ".pyd"},
		[]string{".DS_Store", "Thumbs.db", ".coverage", ".pypeline.lock"},
	)
}

// NewRuleset builds a Ruleset from literal segment names, reserved segment
// suffixes (packaging metadata directories), reserved file suffixes (compiled
// and cache artifacts), and reserved filenames (OS metadata).
func NewRuleset(segments, segmentSuffixes, fileSuffixes, names []string) Ruleset {
	r := Ruleset{
		segments:        make(map[string]struct{}, len(segments)),
		segmentSuffixes: append([]string(nil), segmentSuffixes...),
		fileSuffixes:    append([]string(nil), fileSuffixes...),
		names:           make(map[string]struct{}, len(names)),
	}
	for _, s := range segments {
		r.segments[s] = struct{}{}
	}
	for _, n := range names {
		r.names[n] = struct{}{}
	}
	return r
}

// Excludes reports whether the root-relative slash-separated path is barred
// from the archive: some segment matches a literal rule or reserved segment
// suffix, or the final segment matches a reserved filename or file suffix.
func (r Ruleset) Excludes(relPath string) bool {
	segments := strings.Split(relPath, "/")
	for _, segment := range segments {
		if r.SegmentExcluded(segment) {
			return true
		}
	}
	name := segments[len(segments)-1]
	if _, ok := r.names[name]; ok {
		return true
	}
	for _, suffix := range r.fileSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// SegmentExcluded reports whether a single path segment matches a literal
// rule or a reserved segment suffix. Used to prune directory descent during
// traversal.
func (r Ruleset) SegmentExcluded(segment string) bool {
	if _, ok := r.segments[segment]; ok {
		return true
	}
	for _, suffix := range r.segmentSuffixes {
		if strings.HasSuffix(segment, suffix) {
			return true
		}
	}
	return false
}
