package checks

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/starford/graflint/internal/catalog"
	"github.com/starford/graflint/internal/diag"
	"github.com/starford/graflint/internal/grafico"
	"github.com/starford/graflint/internal/index"
	"github.com/starford/graflint/internal/storage"
)

// Identity verifies that every indexed file's name encodes its class and
// identifier consistently with the parsed root: <Class>_<id>.xml with the
// class token matching the root tag (diagram roots may sit under either
// diagram token) and the id matching the root id attribute byte for byte.
// With strictIDs set the id must also match id-<32 hex>. When a catalog is
// loaded, the file's top-level folder must match the class's declared
// default folder. Carriage returns anywhere in the file are a warning.
func Identity(ix *index.FileIndex, store storage.Provider, cat catalog.Catalog, strictIDs bool) diag.Batch {
	var b diag.Batch

	for _, mf := range ix.Files() {
		base := filepath.Base(mf.Path)
		class, fid, ok := grafico.SplitFilename(base)
		if !ok {
			b.Errorf(diag.CategoryIdentity, "Invalid filename pattern (expected <Class>_<id>.xml): %s", mf.Path)
			continue
		}

		if !grafico.IsDiagram(class) && mf.Class != class {
			b.Errorf(diag.CategoryIdentity, "Root element (%s) does not match class (%s) in filename: %s",
				mf.Class, class, mf.Path)
		}
		if mf.ID != fid {
			b.Errorf(diag.CategoryIdentity, "Root id (%s) does not match filename id (%s): %s",
				mf.ID, fid, mf.Path)
		}
		if strictIDs && !grafico.ValidStrictID(fid) {
			b.Errorf(diag.CategoryIdentity, "ID not in recommended form id-<32 hex>: %s (%s)", fid, mf.Path)
		}

		if !cat.Empty() {
			if expected, declared := cat.DefaultFolder(class); declared {
				if top := topFolder(mf.Path); top != "" && top != expected {
					b.Errorf(diag.CategoryPlacement, "Class %s expected in folder %q, found in %q: %s",
						class, expected, top, mf.Path)
				}
			}
		}

		// Line-ending hygiene only; never fatal.
		if data, err := store.Read(mf.Path); err == nil && bytes.ContainsRune(data, '\r') {
			b.Warnf(diag.CategoryIdentity, "CR characters found (non-UNIX newlines): %s", mf.Path)
		}
	}

	return b
}

// topFolder returns the path component directly under model/.
func topFolder(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) < 2 || parts[0] != grafico.ModelDir {
		return ""
	}
	return parts[1]
}
