package checks

import (
	"github.com/starford/graflint/internal/catalog"
	"github.com/starford/graflint/internal/diag"
	"github.com/starford/graflint/internal/grafico"
	"github.com/starford/graflint/internal/index"
	"github.com/starford/graflint/internal/parser"
	"github.com/starford/graflint/internal/storage"
)

// Relationships verifies every file whose root ends in "Relationship":
// exactly one source and one target child, each carrying both an href and
// an xsi:type. When rules are loaded and both ends are well formed, the
// (relationship, source type, target type) triple is evaluated against
// the rule set.
func Relationships(ix *index.FileIndex, store storage.Provider, rules *catalog.RuleSet) diag.Batch {
	var b diag.Batch

	for _, mf := range ix.Files() {
		if !grafico.IsRelationship(mf.Class) {
			continue
		}
		root, err := loadDoc(store, mf.Path)
		if err != nil {
			continue
		}
		v := grafico.NewRelationshipView(root)

		if len(v.Sources) != 1 {
			b.Errorf(diag.CategoryRelationship, "Relationship missing single <source>: %s", mf.Path)
		}
		if len(v.Targets) != 1 {
			b.Errorf(diag.CategoryRelationship, "Relationship missing single <target>: %s", mf.Path)
		}

		checkEnd(&b, "source", v.Sources, mf.Path)
		checkEnd(&b, "target", v.Targets, mf.Path)

		if rules.Loaded() && len(v.Sources) == 1 && len(v.Targets) == 1 {
			src := parser.StripPrefix(v.Sources[0].Type)
			tgt := parser.StripPrefix(v.Targets[0].Type)
			if !rules.Allowed(mf.Class, src, tgt) {
				b.Errorf(diag.CategoryLegality, "Relationship %s not allowed between %s and %s: %s",
					mf.Class, src, tgt, mf.Path)
			}
		}
	}

	return b
}

func checkEnd(b *diag.Batch, label string, ends []grafico.End, path string) {
	if len(ends) == 0 {
		return
	}
	e := ends[0]
	if e.Href == "" {
		b.Errorf(diag.CategoryRelationship, "Relationship %s missing href: %s", label, path)
	}
	if e.Type == "" {
		b.Errorf(diag.CategoryRelationship, "Relationship %s missing xsi:type: %s", label, path)
	}
}
