// Package storage provides read-only access to a repository checkout on
// the local file system.
package storage

// FileInfo describes one repository file found by List.
type FileInfo struct {
	Path     string // relative to the repository root
	Checksum string // SHA-256 of the content
}

// Provider abstracts repository access so checks can run against fixtures.
type Provider interface {
	// Root returns the absolute repository root.
	Root() string
	// List walks dir (relative to root) and returns every .xml file.
	List(dir string) ([]FileInfo, error)
	// Read returns the raw bytes of a repository file.
	Read(path string) ([]byte, error)
	// IsDir reports whether the relative path is an existing directory.
	IsDir(path string) bool
	// IsFile reports whether the relative path is an existing regular file.
	IsFile(path string) bool
}
