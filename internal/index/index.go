// Package index builds the in-memory view of every model file in a
// repository: one parse per file, fanned out in parallel, with an optional
// SQLite cache so unchanged files are not re-parsed across runs.
package index

import "sort"

// ModelFile is one parsed model document. Immutable once indexed.
type ModelFile struct {
	Path  string // repository-relative path
	Class string // root tag local name, namespace stripped
	ID    string // root id attribute; may be empty when the file is broken
}

// FileIndex holds both index mappings. ByName maps bare filenames to
// repository paths for reference resolution; filenames are assumed unique
// across the tree, and a later walk entry with a duplicate name silently
// overwrites the earlier one. ByName covers every listed file, including
// ones that failed to parse; ByPath covers only parsed files.
type FileIndex struct {
	ByPath map[string]*ModelFile
	ByName map[string]string
}

// NewFileIndex returns an empty index.
func NewFileIndex() *FileIndex {
	return &FileIndex{
		ByPath: make(map[string]*ModelFile),
		ByName: make(map[string]string),
	}
}

// Lookup resolves a bare filename to its ModelFile. The second return is
// false when the name is unknown or the named file never parsed.
func (ix *FileIndex) Lookup(name string) (*ModelFile, bool) {
	path, ok := ix.ByName[name]
	if !ok {
		return nil, false
	}
	mf, ok := ix.ByPath[path]
	return mf, ok
}

// HasName reports whether any listed file carries the bare filename.
func (ix *FileIndex) HasName(name string) bool {
	_, ok := ix.ByName[name]
	return ok
}

// Files returns the parsed files sorted by path, for deterministic
// iteration in the checking phases.
func (ix *FileIndex) Files() []*ModelFile {
	out := make([]*ModelFile, 0, len(ix.ByPath))
	for _, mf := range ix.ByPath {
		out = append(out, mf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
