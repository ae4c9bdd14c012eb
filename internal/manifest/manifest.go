package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dbrown540/pypeline-cli/internal/services"
)

// PlaceholderVersion stands in when the project version is computed
// dynamically by the build backend and is absent from the manifest.
const PlaceholderVersion = "0.0.0"

// Document is a loaded pyproject.toml. Reads are served from the decoded
// tree; writes go through Set followed by Save, which rewrites the file
// atomically while preserving every key it does not manage.
type Document struct {
	path string
	data map[string]any
}

// Load parses the manifest at path. A malformed document surfaces as a
// services.ErrManifest-tagged parse error; the file on disk is left untouched.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	data := map[string]any{}
	if err := toml.Unmarshal(raw, &data); err != nil {
		return nil, services.Wrap(services.ErrManifest, "manifest", "parse", path, err)
	}
	return &Document{path: path, data: data}, nil
}

// Path returns the on-disk location of the document.
func (d *Document) Path() string { return d.path }

// Name returns the declared project name, or "" when absent.
func (d *Document) Name() string {
	if v, ok := d.lookup("project", "name").(string); ok {
		return v
	}
	return ""
}

// Version returns the declared project version. When the version is dynamic
// (declared via project.dynamic) or missing, PlaceholderVersion is returned.
func (d *Document) Version() string {
	if v, ok := d.lookup("project", "version").(string); ok && v != "" {
		return v
	}
	return PlaceholderVersion
}

// Dependencies returns the project.dependencies list as written, order
// preserved, duplicates passed through.
func (d *Document) Dependencies() []string {
	raw, ok := d.lookup("project", "dependencies").([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// HasMarker reports whether the document carries the [tool.pypeline]
// ownership marker.
func (d *Document) HasMarker() bool {
	return d.lookup("tool", "pypeline") != nil
}

// Set navigates the dot-separated key path, creating intermediate tables as
// needed, and assigns the leaf value. A non-table value encountered along the
// path is an error; nothing is modified in that case.
func (d *Document) Set(keyPath string, value any) error {
	keys := strings.Split(keyPath, ".")
	if len(keys) == 0 || keyPath == "" {
		return services.Wrap(services.ErrManifest, "manifest", "set", "empty key path", nil)
	}

	node := d.data
	for _, key := range keys[:len(keys)-1] {
		child, ok := node[key]
		if !ok {
			created := map[string]any{}
			node[key] = created
			node = created
			continue
		}
		table, ok := child.(map[string]any)
		if !ok {
			return services.Wrap(services.ErrManifest, "manifest", "set",
				fmt.Sprintf("%q is not a table in key path %q", key, keyPath), nil)
		}
		node = table
	}
	node[keys[len(keys)-1]] = value
	return nil
}

// Save rewrites the document to its original path atomically: the full
// serialized form goes to a temporary file in the same directory, which then
// replaces the original. Readers never observe a partial write.
func (d *Document) Save() error {
	encoded, err := toml.Marshal(d.data)
	if err != nil {
		return services.Wrap(services.ErrManifest, "manifest", "encode", d.path, err)
	}

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".pyproject-*.toml")
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp manifest: %w", err)
	}
	if err := os.Rename(tmpPath, d.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// SetKey is the one-shot merge-on-write operation: load the manifest at path,
// set keyPath to value, and save atomically. Every unrelated key survives the
// round trip.
func SetKey(path, keyPath string, value any) error {
	doc, err := Load(path)
	if err != nil {
		return err
	}
	if err := doc.Set(keyPath, value); err != nil {
		return err
	}
	return doc.Save()
}

func (d *Document) lookup(keys ...string) any {
	var node any = d.data
	for _, key := range keys {
		table, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node, ok = table[key]
		if !ok {
			return nil
		}
	}
	return node
}
