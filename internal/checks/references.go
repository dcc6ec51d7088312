package checks

import (
	"github.com/starford/graflint/internal/diag"
	"github.com/starford/graflint/internal/grafico"
	"github.com/starford/graflint/internal/index"
	"github.com/starford/graflint/internal/parser"
	"github.com/starford/graflint/internal/storage"
)

// References resolves every href attribute anywhere in every indexed
// file. A reference must look like Filename.xml#fragment with no folder
// segments, name a file present in the index, and carry a fragment equal
// to the target's root id. Indexing is total before this phase runs, so a
// known filename whose file never parsed is reported here as an
// unresolvable target rather than re-parsed on demand.
func References(ix *index.FileIndex, store storage.Provider) diag.Batch {
	var b diag.Batch

	for _, mf := range ix.Files() {
		root, err := loadDoc(store, mf.Path)
		if err != nil {
			continue
		}
		path := mf.Path
		root.Walk(func(n *parser.Node) {
			href := n.Attr("href")
			if href == "" {
				return
			}
			file, frag, ok := grafico.SplitHref(href)
			if !ok {
				b.Errorf(diag.CategoryReference, "Invalid href (must be Filename.xml#id, no folder segments): %s in %s", href, path)
				return
			}
			if !ix.HasName(file) {
				b.Errorf(diag.CategoryReference, "Href target file not found: %s (in %s)", href, path)
				return
			}
			target, ok := ix.Lookup(file)
			if !ok {
				b.Errorf(diag.CategoryReference, "Href target could not be parsed: %s (in %s)", href, path)
				return
			}
			if frag != target.ID {
				b.Errorf(diag.CategoryReference, "Href id (%s) does not match target root id (%s): %s (in %s)",
					frag, target.ID, href, path)
			}
		})
	}

	return b
}
