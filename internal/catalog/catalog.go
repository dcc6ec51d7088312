// Package catalog loads the optional metadata documents of a repository:
// the class catalog (default folder per class) and the relationship rule
// set. Both are optional; an absent document leaves the dependent checks
// permissive.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/starford/graflint/internal/grafico"
)

const catalogFile = "catalog.json"

// Catalog maps model classes to their declared default folders and records
// which classes the repository considers elements, relationships, or
// diagrams.
type Catalog struct {
	ClassToFolder map[string]string
	Elements      map[string]struct{}
	Relationships map[string]struct{}
	Diagrams      map[string]struct{}
}

// Empty reports whether no catalog data was loaded.
func (c Catalog) Empty() bool {
	return len(c.ClassToFolder) == 0
}

// DefaultFolder returns the declared top-level folder for a class.
func (c Catalog) DefaultFolder(class string) (string, bool) {
	f, ok := c.ClassToFolder[class]
	return f, ok
}

type classEntry struct {
	Class         string `json:"class"`
	DefaultFolder string `json:"defaultFolder"`
}

type catalogDoc struct {
	Elements      []classEntry `json:"elements"`
	Relationships []classEntry `json:"relationships"`
	Diagrams      []classEntry `json:"diagrams"`
}

func emptyCatalog() Catalog {
	return Catalog{
		ClassToFolder: map[string]string{},
		Elements:      map[string]struct{}{},
		Relationships: map[string]struct{}{},
		Diagrams:      map[string]struct{}{},
	}
}

// LoadCatalog reads types/catalog.json under the repository root. An
// absent file yields an empty catalog and no error. A present but
// unreadable or malformed file yields an empty catalog and an error the
// caller should surface as a warning.
func LoadCatalog(repoRoot string) (Catalog, error) {
	cat := emptyCatalog()

	path := filepath.Join(repoRoot, grafico.TypesDir, catalogFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cat, nil
	}
	if err != nil {
		return cat, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var doc catalogDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return cat, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	add := func(entries []classEntry, kind map[string]struct{}) {
		for _, e := range entries {
			if e.Class == "" || e.DefaultFolder == "" {
				continue
			}
			cat.ClassToFolder[e.Class] = e.DefaultFolder
			kind[e.Class] = struct{}{}
		}
	}
	add(doc.Elements, cat.Elements)
	add(doc.Relationships, cat.Relationships)
	add(doc.Diagrams, cat.Diagrams)
	return cat, nil
}
